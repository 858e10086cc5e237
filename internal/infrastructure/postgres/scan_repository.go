package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var (
	_ repository.ScanAttemptRepository = (*ScanAttemptRepo)(nil)
	_ repository.IncidentRepository    = (*IncidentRepo)(nil)
)

// ScanAttemptRepo registro append-only de escaneos.
type ScanAttemptRepo struct {
	q Querier
}

// NewScanAttemptRepository construye el adaptador.
func NewScanAttemptRepository(q Querier) *ScanAttemptRepo {
	return &ScanAttemptRepo{q: q}
}

func (r *ScanAttemptRepo) Create(ctx context.Context, a *entity.ScanAttempt) error {
	a.ID = uuid.New().String()
	_, err := r.q.Exec(ctx,
		`INSERT INTO scan_attempts (id, code, actor_id, actor_name, role, found, pallet_id, date_key, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		a.ID, a.Code, a.ActorID, a.ActorName, string(a.Role), a.Found, a.PalletID, a.DateKey, a.CreatedAt,
	)
	if err != nil {
		return storageErr("insertar intento de escaneo", err)
	}
	return nil
}

func (r *ScanAttemptRepo) ListByDay(ctx context.Context, dateKey string) ([]*entity.ScanAttempt, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, code, actor_id, actor_name, role, found, pallet_id, date_key, created_at
		FROM scan_attempts WHERE date_key = $1 ORDER BY created_at DESC`, dateKey)
	if err != nil {
		return nil, storageErr("listar intentos de escaneo", err)
	}
	list, err := collect(rows, func(row rowScanner) (*entity.ScanAttempt, error) {
		var (
			a    entity.ScanAttempt
			role string
		)
		if err := row.Scan(&a.ID, &a.Code, &a.ActorID, &a.ActorName, &role, &a.Found, &a.PalletID, &a.DateKey, &a.CreatedAt); err != nil {
			return nil, err
		}
		a.Role = entity.Role(role)
		a.CreatedAt = a.CreatedAt.UTC()
		return &a, nil
	})
	if err != nil {
		return nil, storageErr("listar intentos de escaneo", err)
	}
	return list, nil
}

// IncidentRepo registro append-only de incidencias.
type IncidentRepo struct {
	q Querier
}

// NewIncidentRepository construye el adaptador.
func NewIncidentRepository(q Querier) *IncidentRepo {
	return &IncidentRepo{q: q}
}

func (r *IncidentRepo) Create(ctx context.Context, i *entity.Incident) error {
	i.ID = uuid.New().String()
	_, err := r.q.Exec(ctx,
		`INSERT INTO incidents (id, code, reported_by, reported_by_name, status, scan_attempt_id, date_key, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		i.ID, i.Code, i.ReportedBy, i.ReportedByName, i.Status, i.ScanAttemptID, i.DateKey, i.CreatedAt,
	)
	if err != nil {
		return storageErr("insertar incidencia", err)
	}
	return nil
}

func (r *IncidentRepo) ListByDay(ctx context.Context, dateKey string) ([]*entity.Incident, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, code, reported_by, reported_by_name, status, scan_attempt_id, date_key, created_at
		FROM incidents WHERE date_key = $1 ORDER BY created_at DESC`, dateKey)
	if err != nil {
		return nil, storageErr("listar incidencias", err)
	}
	list, err := collect(rows, func(row rowScanner) (*entity.Incident, error) {
		var i entity.Incident
		if err := row.Scan(&i.ID, &i.Code, &i.ReportedBy, &i.ReportedByName, &i.Status, &i.ScanAttemptID, &i.DateKey, &i.CreatedAt); err != nil {
			return nil, err
		}
		i.CreatedAt = i.CreatedAt.UTC()
		return &i, nil
	})
	if err != nil {
		return nil, storageErr("listar incidencias", err)
	}
	return list, nil
}
