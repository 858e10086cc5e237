package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/application/validation"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/event"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// PalletUseCase registro y consulta de tarimas.
type PalletUseCase struct {
	repo      repository.PalletRepository
	publisher event.Publisher
	log       *logger.Logger
	validate  *validation.Validator
	loc       *time.Location
	now       func() time.Time
}

// NewPalletUseCase construye el caso de uso. publisher puede ser event.Nop.
func NewPalletUseCase(repo repository.PalletRepository, publisher event.Publisher, loc *time.Location, log *logger.Logger) *PalletUseCase {
	if publisher == nil {
		publisher = event.Nop
	}
	if loc == nil {
		loc = time.UTC
	}
	if log == nil {
		log = logger.Nop()
	}
	return &PalletUseCase{
		repo:      repo,
		publisher: publisher,
		log:       log.Component("pallets"),
		validate:  validation.New(),
		loc:       loc,
		now:       time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *PalletUseCase) WithClock(now func() time.Time) *PalletUseCase {
	uc.now = now
	return uc
}

// Create registra la tarima en el día actual y emite PalletCreated.
// Un fallo al publicar se registra en el log y no afecta la respuesta.
func (uc *PalletUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreatePalletRequest) (*dto.PalletResponse, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.AssignedWorker = strings.TrimSpace(in.AssignedWorker)
	in.PalletType = strings.TrimSpace(in.PalletType)
	if err := uc.validate.Struct(in); err != nil {
		return nil, err
	}
	now := uc.now()
	p := &entity.Pallet{
		Code:           in.Code,
		AssignedWorker: in.AssignedWorker,
		PalletType:     in.PalletType,
		DateKey:        entity.DateKeyOf(now, uc.loc),
		RecordedBy:     actor.ID,
		CreatedAt:      now.UTC(),
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	if err := uc.publisher.Publish(ctx, event.PalletCreated{Pallet: *p, OccurredAt: now.UTC()}); err != nil {
		uc.log.Warn().Err(err).Str("pallet_id", p.ID).Msg("no se pudo notificar la tarima creada")
	}
	out := dto.NewPalletResponse(p)
	return &out, nil
}

// GetByID obtiene una tarima por ID.
func (uc *PalletUseCase) GetByID(ctx context.Context, id string) (*entity.Pallet, error) {
	return uc.repo.GetByID(ctx, id)
}

// List lista tarimas por día o rango, con tipo opcional.
func (uc *PalletUseCase) List(ctx context.Context, q dto.DateQuery, palletType string) (*dto.PalletListResponse, error) {
	r, err := q.Range(entity.DateKeyOf(uc.now(), uc.loc))
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, entity.PalletFilter{DateRange: r, PalletType: palletType})
	if err != nil {
		return nil, err
	}
	items := make([]dto.PalletResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.NewPalletResponse(p))
	}
	return &dto.PalletListResponse{Items: items}, nil
}

// Delete elimina una tarima.
func (uc *PalletUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

// DeleteByDay elimina todas las tarimas de un día. La fecha es obligatoria.
func (uc *PalletUseCase) DeleteByDay(ctx context.Context, date string) (*dto.DeletedResponse, error) {
	if !entity.ValidDateKey(date) {
		return nil, domain.NewValidationError("date")
	}
	n, err := uc.repo.DeleteByDay(ctx, date)
	if err != nil {
		return nil, err
	}
	return &dto.DeletedResponse{Deleted: n}, nil
}
