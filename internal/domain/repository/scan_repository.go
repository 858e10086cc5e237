package repository

import (
	"context"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ScanAttemptRepository registro append-only de escaneos.
type ScanAttemptRepository interface {
	Create(ctx context.Context, a *entity.ScanAttempt) error
	ListByDay(ctx context.Context, dateKey string) ([]*entity.ScanAttempt, error)
}

// IncidentRepository registro append-only de incidencias.
type IncidentRepository interface {
	Create(ctx context.Context, i *entity.Incident) error
	ListByDay(ctx context.Context, dateKey string) ([]*entity.Incident, error)
}
