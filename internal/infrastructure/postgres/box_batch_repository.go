package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.BoxBatchRepository = (*BoxBatchRepo)(nil)

// BoxBatchRepo implementación sobre PostgreSQL.
type BoxBatchRepo struct {
	q Querier
}

// NewBoxBatchRepository construye el adaptador.
func NewBoxBatchRepository(q Querier) *BoxBatchRepo {
	return &BoxBatchRepo{q: q}
}

const boxBatchColumns = `id, box_type, quantity, date_key, notes, recorded_by, created_at, updated_at`

func (r *BoxBatchRepo) Create(ctx context.Context, b *entity.BoxBatch) error {
	b.ID = uuid.New().String()
	_, err := r.q.Exec(ctx,
		`INSERT INTO box_batches (`+boxBatchColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		b.ID, b.BoxType, b.Quantity, b.DateKey, b.Notes, b.RecordedBy, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return storageErr("insertar conteo de cajas", err)
	}
	return nil
}

func (r *BoxBatchRepo) GetByID(ctx context.Context, id string) (*entity.BoxBatch, error) {
	b, err := scanBoxBatch(r.q.QueryRow(ctx, `SELECT `+boxBatchColumns+` FROM box_batches WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("obtener conteo de cajas", err)
	}
	return b, nil
}

func (r *BoxBatchRepo) Update(ctx context.Context, b *entity.BoxBatch) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE box_batches SET box_type = $2, quantity = $3, notes = $4, updated_at = $5 WHERE id = $1`,
		b.ID, b.BoxType, b.Quantity, b.Notes, b.UpdatedAt,
	)
	if err != nil {
		return storageErr("actualizar conteo de cajas", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BoxBatchRepo) List(ctx context.Context, f entity.BoxBatchFilter) ([]*entity.BoxBatch, error) {
	query := `SELECT ` + boxBatchColumns + ` FROM box_batches
		WHERE date_key BETWEEN $1 AND $2 AND ($3 = '' OR box_type = $3)
		ORDER BY date_key DESC, created_at DESC`
	rows, err := r.q.Query(ctx, query, f.From, f.To, f.BoxType)
	if err != nil {
		return nil, storageErr("listar conteos de cajas", err)
	}
	list, err := collect(rows, scanBoxBatch)
	if err != nil {
		return nil, storageErr("listar conteos de cajas", err)
	}
	return list, nil
}

func (r *BoxBatchRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.q, "box_batches", id)
}

func scanBoxBatch(row rowScanner) (*entity.BoxBatch, error) {
	var b entity.BoxBatch
	if err := row.Scan(&b.ID, &b.BoxType, &b.Quantity, &b.DateKey, &b.Notes, &b.RecordedBy, &b.CreatedAt, &b.UpdatedAt); err != nil {
		return nil, err
	}
	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()
	return &b, nil
}
