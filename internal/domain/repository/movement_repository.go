package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para movimientos de camión.
type MovementRepository interface {
	// Create asigna el ID y persiste el movimiento.
	Create(ctx context.Context, m *entity.Movement) error
	// GetByID devuelve domain.ErrNotFound si no existe.
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	// Complete aplica los campos de fase 2 sin verificar el estado previo (última escritura gana).
	Complete(ctx context.Context, id string, c entity.MovementCompletion) (*entity.Movement, error)
	// List devuelve los movimientos del rango ordenados por date_key desc y creación desc.
	List(ctx context.Context, f entity.MovementFilter) ([]*entity.Movement, error)
}
