package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// WorkerRepository define el puerto de persistencia para trabajadoras.
type WorkerRepository interface {
	Create(ctx context.Context, w *entity.Worker) error
	List(ctx context.Context) ([]*entity.Worker, error)
	Delete(ctx context.Context, id string) error
}
