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

var _ repository.PalletRepository = (*PalletRepo)(nil)

// PalletRepo implementación sobre PostgreSQL.
type PalletRepo struct {
	q Querier
}

// NewPalletRepository construye el adaptador.
func NewPalletRepository(q Querier) *PalletRepo {
	return &PalletRepo{q: q}
}

const palletColumns = `id, code, assigned_worker, pallet_type, date_key, recorded_by, created_at`

func (r *PalletRepo) Create(ctx context.Context, p *entity.Pallet) error {
	p.ID = uuid.New().String()
	_, err := r.q.Exec(ctx,
		`INSERT INTO pallets (`+palletColumns+`) VALUES ($1,$2,$3,$4,$5,$6,$7)`,
		p.ID, p.Code, p.AssignedWorker, p.PalletType, p.DateKey, p.RecordedBy, p.CreatedAt,
	)
	if err != nil {
		return storageErr("insertar tarima", err)
	}
	return nil
}

func (r *PalletRepo) GetByID(ctx context.Context, id string) (*entity.Pallet, error) {
	p, err := scanPallet(r.q.QueryRow(ctx, `SELECT `+palletColumns+` FROM pallets WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("obtener tarima", err)
	}
	return p, nil
}

func (r *PalletRepo) FindByCodeAndDay(ctx context.Context, code, dateKey string) (*entity.Pallet, error) {
	query := `SELECT ` + palletColumns + ` FROM pallets
		WHERE code = $1 AND date_key = $2 ORDER BY created_at DESC LIMIT 1`
	p, err := scanPallet(r.q.QueryRow(ctx, query, code, dateKey))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("buscar tarima", err)
	}
	return p, nil
}

func (r *PalletRepo) List(ctx context.Context, f entity.PalletFilter) ([]*entity.Pallet, error) {
	query := `SELECT ` + palletColumns + ` FROM pallets
		WHERE date_key BETWEEN $1 AND $2 AND ($3 = '' OR pallet_type = $3)
		ORDER BY date_key DESC, created_at DESC`
	rows, err := r.q.Query(ctx, query, f.From, f.To, f.PalletType)
	if err != nil {
		return nil, storageErr("listar tarimas", err)
	}
	list, err := collect(rows, scanPallet)
	if err != nil {
		return nil, storageErr("listar tarimas", err)
	}
	return list, nil
}

func (r *PalletRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.q, "pallets", id)
}

func (r *PalletRepo) DeleteByDay(ctx context.Context, dateKey string) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM pallets WHERE date_key = $1`, dateKey)
	if err != nil {
		return 0, storageErr("eliminar tarimas del día", err)
	}
	return tag.RowsAffected(), nil
}

func scanPallet(row rowScanner) (*entity.Pallet, error) {
	var p entity.Pallet
	if err := row.Scan(&p.ID, &p.Code, &p.AssignedWorker, &p.PalletType, &p.DateKey, &p.RecordedBy, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.CreatedAt = p.CreatedAt.UTC()
	return &p, nil
}
