package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/validation"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// BoxBatchUseCase casos de uso CRUD para conteos de cajas.
type BoxBatchUseCase struct {
	repo     repository.BoxBatchRepository
	validate *validation.Validator
	loc      *time.Location
	now      func() time.Time
}

// NewBoxBatchUseCase construye el caso de uso.
func NewBoxBatchUseCase(repo repository.BoxBatchRepository, loc *time.Location) *BoxBatchUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &BoxBatchUseCase{repo: repo, validate: validation.New(), loc: loc, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *BoxBatchUseCase) WithClock(now func() time.Time) *BoxBatchUseCase {
	uc.now = now
	return uc
}

// Create registra un conteo; sin fecha se asigna al día actual.
func (uc *BoxBatchUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateBoxBatchRequest) (*dto.BoxBatchResponse, error) {
	in.BoxType = strings.TrimSpace(in.BoxType)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	now := uc.now()
	dateKey := strings.TrimSpace(in.Date)
	if dateKey == "" {
		dateKey = entity.DateKeyOf(now, uc.loc)
	}
	if !entity.ValidDateKey(dateKey) {
		return nil, domain.NewValidationError("date")
	}
	b := &entity.BoxBatch{
		BoxType:    in.BoxType,
		Quantity:   in.Quantity,
		DateKey:    dateKey,
		Notes:      strings.TrimSpace(in.Notes),
		RecordedBy: actor.ID,
		CreatedAt:  now.UTC(),
		UpdatedAt:  now.UTC(),
	}
	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return toBoxBatchResponse(b), nil
}

// Update aplica los campos presentes.
func (uc *BoxBatchUseCase) Update(ctx context.Context, id string, in dto.UpdateBoxBatchRequest) (*dto.BoxBatchResponse, error) {
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	b, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.BoxType != nil {
		b.BoxType = strings.TrimSpace(*in.BoxType)
	}
	if in.Quantity != nil {
		b.Quantity = *in.Quantity
	}
	if in.Notes != nil {
		b.Notes = strings.TrimSpace(*in.Notes)
	}
	b.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return toBoxBatchResponse(b), nil
}

// List lista conteos por día o rango, con tipo de caja opcional.
func (uc *BoxBatchUseCase) List(ctx context.Context, q dto.DateQuery, boxType string) (*dto.BoxBatchListResponse, error) {
	r, err := q.Range(entity.DateKeyOf(uc.now(), uc.loc))
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, entity.BoxBatchFilter{DateRange: r, BoxType: boxType})
	if err != nil {
		return nil, err
	}
	out := &dto.BoxBatchListResponse{Items: make([]dto.BoxBatchResponse, 0, len(list))}
	for _, b := range list {
		out.Items = append(out.Items, *toBoxBatchResponse(b))
		out.TotalBoxes += b.Quantity
	}
	return out, nil
}

// Delete elimina un conteo.
func (uc *BoxBatchUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func toBoxBatchResponse(b *entity.BoxBatch) *dto.BoxBatchResponse {
	return &dto.BoxBatchResponse{
		ID:         b.ID,
		BoxType:    b.BoxType,
		Quantity:   b.Quantity,
		DateKey:    b.DateKey,
		Notes:      b.Notes,
		RecordedBy: b.RecordedBy,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}
