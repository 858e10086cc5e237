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

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador.
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

type lineItemRow struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

const movementColumns = `id, kind, date_key, recorded_by, container_number, origin, seal_number, personnel,
	carrier, pallet_type, pallet_count, trailer_id, tractor_id, items, arrival_at,
	departure_at, pallets_inside, boxes_inside, created_at, updated_at`

// Create persiste un movimiento en estado OPEN.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	m.ID = uuid.New().String()
	items := make([]lineItemRow, 0, len(m.Items))
	for _, it := range m.Items {
		items = append(items, lineItemRow{Type: it.Type, Count: it.Count})
	}
	query := `INSERT INTO movements (` + movementColumns + `)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)`
	_, err := r.q.Exec(ctx, query,
		m.ID, string(m.Kind), m.DateKey, m.RecordedBy, m.ContainerNumber, m.Origin, m.SealNumber, m.Personnel,
		m.Carrier, m.PalletType, m.PalletCount, m.TrailerID, m.TractorID, items, m.ArrivalAt,
		m.DepartureAt, m.PalletsInside, m.BoxesInside, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return storageErr("insertar movimiento", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	row := r.q.QueryRow(ctx, `SELECT `+movementColumns+` FROM movements WHERE id = $1`, id)
	m, err := scanMovement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("obtener movimiento", err)
	}
	return m, nil
}

// Complete escribe la fase 2 sin condición de estado.
func (r *MovementRepo) Complete(ctx context.Context, id string, c entity.MovementCompletion) (*entity.Movement, error) {
	query := `UPDATE movements
		SET departure_at = $2, pallets_inside = $3, boxes_inside = $4, updated_at = $5
		WHERE id = $1
		RETURNING ` + movementColumns
	row := r.q.QueryRow(ctx, query, id, c.DepartureAt, c.PalletsInside, c.BoxesInside, c.UpdatedAt)
	m, err := scanMovement(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, storageErr("cerrar movimiento", err)
	}
	return m, nil
}

// List filtra por rango inclusivo de date_key y tipo opcional.
func (r *MovementRepo) List(ctx context.Context, f entity.MovementFilter) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements
		WHERE date_key BETWEEN $1 AND $2 AND ($3 = '' OR kind = $3)
		ORDER BY date_key DESC, created_at DESC`
	rows, err := r.q.Query(ctx, query, f.From, f.To, string(f.Kind))
	if err != nil {
		return nil, storageErr("listar movimientos", err)
	}
	list, err := collect(rows, scanMovement)
	if err != nil {
		return nil, storageErr("listar movimientos", err)
	}
	return list, nil
}

func scanMovement(row rowScanner) (*entity.Movement, error) {
	var (
		m     entity.Movement
		kind  string
		items []lineItemRow
	)
	err := row.Scan(
		&m.ID, &kind, &m.DateKey, &m.RecordedBy, &m.ContainerNumber, &m.Origin, &m.SealNumber, &m.Personnel,
		&m.Carrier, &m.PalletType, &m.PalletCount, &m.TrailerID, &m.TractorID, &items, &m.ArrivalAt,
		&m.DepartureAt, &m.PalletsInside, &m.BoxesInside, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Kind = entity.MovementKind(kind)
	for _, it := range items {
		m.Items = append(m.Items, entity.LineItem{Type: it.Type, Count: it.Count})
	}
	m.ArrivalAt = m.ArrivalAt.UTC()
	m.CreatedAt = m.CreatedAt.UTC()
	m.UpdatedAt = m.UpdatedAt.UTC()
	if m.DepartureAt != nil {
		d := m.DepartureAt.UTC()
		m.DepartureAt = &d
	}
	return &m, nil
}
