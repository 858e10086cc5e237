package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.WarehouseScanRepository = (*WarehouseScanRepo)(nil)

// WarehouseScanRepo implementación sobre PostgreSQL. La constraint uniq_code_date
// serializa a los escáneres concurrentes.
type WarehouseScanRepo struct {
	q Querier
}

// NewWarehouseScanRepository construye el adaptador.
func NewWarehouseScanRepository(q Querier) *WarehouseScanRepo {
	return &WarehouseScanRepo{q: q}
}

const warehouseScanColumns = `id, code, shift, responsible, date_key, recorded_by, scanned_at, pallet`

func (r *WarehouseScanRepo) Create(ctx context.Context, ws *entity.WarehouseScan) error {
	pallet, err := encodeFields(ws.Pallet)
	if err != nil {
		return storageErr("codificar copia de tarima", err)
	}
	ws.ID = uuid.New().String()
	// Se envía como texto para que la columna json guarde el orden tal cual.
	_, err = r.q.Exec(ctx,
		`INSERT INTO warehouse_scans (`+warehouseScanColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8::json)`,
		ws.ID, ws.Code, string(ws.Shift), ws.Responsible, ws.DateKey, ws.RecordedBy, ws.ScannedAt, string(pallet),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrConflict
		}
		return storageErr("insertar copia de almacén", err)
	}
	return nil
}

func (r *WarehouseScanRepo) Exists(ctx context.Context, code, dateKey string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM warehouse_scans WHERE code = $1 AND date_key = $2)`, code, dateKey,
	).Scan(&exists)
	if err != nil {
		return false, storageErr("verificar copia de almacén", err)
	}
	return exists, nil
}

func (r *WarehouseScanRepo) List(ctx context.Context, f entity.WarehouseScanFilter) ([]*entity.WarehouseScan, error) {
	query := `SELECT id, code, shift, responsible, date_key, recorded_by, scanned_at, pallet::text
		FROM warehouse_scans
		WHERE date_key BETWEEN $1 AND $2 AND ($3 = '' OR shift = $3)
		ORDER BY date_key DESC, scanned_at DESC`
	rows, err := r.q.Query(ctx, query, f.From, f.To, string(f.Shift))
	if err != nil {
		return nil, storageErr("listar copias de almacén", err)
	}
	list, err := collect(rows, scanWarehouseScan)
	if err != nil {
		return nil, storageErr("listar copias de almacén", err)
	}
	return list, nil
}

func scanWarehouseScan(row rowScanner) (*entity.WarehouseScan, error) {
	var (
		ws     entity.WarehouseScan
		shift  string
		pallet string
	)
	if err := row.Scan(&ws.ID, &ws.Code, &shift, &ws.Responsible, &ws.DateKey, &ws.RecordedBy, &ws.ScannedAt, &pallet); err != nil {
		return nil, err
	}
	fields, err := decodeFields([]byte(pallet))
	if err != nil {
		return nil, err
	}
	ws.Shift = entity.Shift(shift)
	ws.ScannedAt = ws.ScannedAt.UTC()
	ws.Pallet = fields
	return &ws, nil
}
