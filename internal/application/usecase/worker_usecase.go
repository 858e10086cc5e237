package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/validation"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// WorkerUseCase alta, consulta y baja de trabajadoras.
type WorkerUseCase struct {
	repo     repository.WorkerRepository
	validate *validation.Validator
}

// NewWorkerUseCase construye el caso de uso.
func NewWorkerUseCase(repo repository.WorkerRepository) *WorkerUseCase {
	return &WorkerUseCase{repo: repo, validate: validation.New()}
}

// Create da de alta una trabajadora.
func (uc *WorkerUseCase) Create(ctx context.Context, in dto.CreateWorkerRequest) (*dto.WorkerResponse, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Area = strings.TrimSpace(in.Area)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	w := &entity.Worker{Name: in.Name, Area: in.Area, CreatedAt: time.Now().UTC()}
	if err := uc.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	out := toWorkerResponse(w)
	return &out, nil
}

// List lista todas las trabajadoras por nombre.
func (uc *WorkerUseCase) List(ctx context.Context) (*dto.WorkerListResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WorkerResponse, 0, len(list))
	for _, w := range list {
		items = append(items, toWorkerResponse(w))
	}
	return &dto.WorkerListResponse{Items: items}, nil
}

// Delete da de baja una trabajadora.
func (uc *WorkerUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toWorkerResponse(w *entity.Worker) dto.WorkerResponse {
	return dto.WorkerResponse{ID: w.ID, Name: w.Name, Area: w.Area, CreatedAt: w.CreatedAt}
}
