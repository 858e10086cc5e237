package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// WarehouseScanRepository define el puerto de persistencia para copias de almacén.
// Create debe rechazar con domain.ErrConflict un segundo (code, date_key); la unicidad
// la impone el almacén, no una consulta previa.
type WarehouseScanRepository interface {
	Create(ctx context.Context, s *entity.WarehouseScan) error
	Exists(ctx context.Context, code, dateKey string) (bool, error)
	List(ctx context.Context, f entity.WarehouseScanFilter) ([]*entity.WarehouseScan, error)
}
