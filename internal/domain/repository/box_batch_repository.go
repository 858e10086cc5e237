package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// BoxBatchRepository define el puerto de persistencia para conteos de cajas.
type BoxBatchRepository interface {
	Create(ctx context.Context, b *entity.BoxBatch) error
	GetByID(ctx context.Context, id string) (*entity.BoxBatch, error)
	Update(ctx context.Context, b *entity.BoxBatch) error
	List(ctx context.Context, f entity.BoxBatchFilter) ([]*entity.BoxBatch, error)
	Delete(ctx context.Context, id string) error
}
