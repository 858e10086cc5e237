package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

var _ repository.WorkerRepository = (*WorkerRepo)(nil)

// WorkerRepo implementación sobre PostgreSQL.
type WorkerRepo struct {
	q Querier
}

// NewWorkerRepository construye el adaptador.
func NewWorkerRepository(q Querier) *WorkerRepo {
	return &WorkerRepo{q: q}
}

func (r *WorkerRepo) Create(ctx context.Context, w *entity.Worker) error {
	w.ID = uuid.New().String()
	_, err := r.q.Exec(ctx,
		`INSERT INTO workers (id, name, area, created_at) VALUES ($1,$2,$3,$4)`,
		w.ID, w.Name, w.Area, w.CreatedAt,
	)
	if err != nil {
		return storageErr("insertar trabajadora", err)
	}
	return nil
}

func (r *WorkerRepo) List(ctx context.Context) ([]*entity.Worker, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, area, created_at FROM workers ORDER BY name`)
	if err != nil {
		return nil, storageErr("listar trabajadoras", err)
	}
	list, err := collect(rows, func(row rowScanner) (*entity.Worker, error) {
		var w entity.Worker
		if err := row.Scan(&w.ID, &w.Name, &w.Area, &w.CreatedAt); err != nil {
			return nil, err
		}
		w.CreatedAt = w.CreatedAt.UTC()
		return &w, nil
	})
	if err != nil {
		return nil, storageErr("listar trabajadoras", err)
	}
	return list, nil
}

func (r *WorkerRepo) Delete(ctx context.Context, id string) error {
	return deleteByID(ctx, r.q, "workers", id)
}
