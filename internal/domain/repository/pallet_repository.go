package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// PalletRepository define el puerto de persistencia para tarimas.
type PalletRepository interface {
	Create(ctx context.Context, p *entity.Pallet) error
	GetByID(ctx context.Context, id string) (*entity.Pallet, error)
	// FindByCodeAndDay devuelve la tarima más reciente con ese código en el día, o nil si no hay.
	FindByCodeAndDay(ctx context.Context, code, dateKey string) (*entity.Pallet, error)
	List(ctx context.Context, f entity.PalletFilter) ([]*entity.Pallet, error)
	Delete(ctx context.Context, id string) error
	// DeleteByDay elimina todas las tarimas del día y devuelve cuántas borró.
	DeleteByDay(ctx context.Context, dateKey string) (int64, error)
}
