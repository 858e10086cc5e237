// Package movement implementa el ciclo de vida en dos fases de los movimientos de camión
// (descarga, carga, carga-mixta): apertura a la llegada, cierre a la salida.
package movement

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

// Engine casos de uso de movimientos.
type Engine struct {
	repo     repository.MovementRepository
	validate *validation.Validator
	loc      *time.Location
	now      func() time.Time
}

// NewEngine construye el engine. loc es la zona horaria del negocio para derivar date_key.
func NewEngine(repo repository.MovementRepository, loc *time.Location) *Engine {
	if loc == nil {
		loc = time.UTC
	}
	return &Engine{repo: repo, validate: validation.New(), loc: loc, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// Open valida la fase 1 según el tipo y persiste el movimiento en estado OPEN.
// Ante cualquier error de validación no se escribe nada.
func (e *Engine) Open(ctx context.Context, actor entity.Actor, in dto.OpenMovementRequest) (*dto.MovementResponse, error) {
	kind := entity.MovementKind(strings.TrimSpace(in.Kind))
	variant, ok := openVariants[kind]
	if !ok {
		return nil, domain.NewValidationError("kind")
	}
	payload := variant(in)
	if err := e.validatePayload(payload); err != nil {
		return nil, err
	}

	m := &entity.Movement{Kind: kind, RecordedBy: actor.ID}
	payload.apply(m)

	dateKey := strings.TrimSpace(in.Date)
	if dateKey == "" {
		dateKey = entity.DateKeyOf(m.ArrivalAt, e.loc)
	}
	if !entity.ValidDateKey(dateKey) {
		return nil, domain.NewValidationError("date")
	}
	m.DateKey = dateKey

	now := e.now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	if err := e.repo.Create(ctx, m); err != nil {
		return nil, err
	}
	return toMovementResponse(m), nil
}

// Close aplica la fase 2. El movimiento debe existir; se valida con el tipo guardado.
// No se verifica que siga OPEN: un segundo cierre sobrescribe al primero.
func (e *Engine) Close(ctx context.Context, id string, in dto.CloseMovementRequest) (*dto.MovementResponse, error) {
	current, err := e.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if k := strings.TrimSpace(in.Kind); k != "" && entity.MovementKind(k) != current.Kind {
		return nil, domain.NewValidationError("kind")
	}
	variant, ok := closeVariants[current.Kind]
	if !ok {
		return nil, domain.NewValidationError("kind")
	}
	payload := variant(in)
	if err := e.validate.Struct(payload); err != nil {
		return nil, err
	}
	c := payload.completion()
	c.UpdatedAt = e.now().UTC()
	updated, err := e.repo.Complete(ctx, id, c)
	if err != nil {
		return nil, err
	}
	return toMovementResponse(updated), nil
}

// Get obtiene un movimiento por ID.
func (e *Engine) Get(ctx context.Context, id string) (*dto.MovementResponse, error) {
	m, err := e.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toMovementResponse(m), nil
}

// ListByDay lista los movimientos de un día, más recientes primero.
func (e *Engine) ListByDay(ctx context.Context, date, kind string) (*dto.MovementListResponse, error) {
	return e.List(ctx, dto.DateQuery{Date: date}, kind)
}

// ListByRange lista los movimientos con from <= date_key <= to.
func (e *Engine) ListByRange(ctx context.Context, from, to, kind string) (*dto.MovementListResponse, error) {
	if from == "" || to == "" {
		verr := domain.NewValidationError()
		if from == "" {
			verr.Add("from")
		}
		if to == "" {
			verr.Add("to")
		}
		return nil, verr
	}
	return e.List(ctx, dto.DateQuery{From: from, To: to}, kind)
}

// List resuelve el filtro de fecha (hoy si no viene ninguno) y el tipo opcional.
func (e *Engine) List(ctx context.Context, q dto.DateQuery, kind string) (*dto.MovementListResponse, error) {
	r, err := q.Range(entity.DateKeyOf(e.now(), e.loc))
	if err != nil {
		return nil, err
	}
	f := entity.MovementFilter{DateRange: r, Kind: entity.MovementKind(kind)}
	if kind != "" && !f.Kind.Valid() {
		return nil, domain.NewValidationError("kind")
	}
	list, err := e.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMovementResponse(m))
	}
	return &dto.MovementListResponse{Items: items}, nil
}

func (e *Engine) validatePayload(p openPayload) error {
	if err := e.validate.Struct(p); err != nil {
		return err
	}
	return p.check()
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	if m == nil {
		return nil
	}
	out := &dto.MovementResponse{
		ID:              m.ID,
		Kind:            string(m.Kind),
		State:           string(m.State()),
		DateKey:         m.DateKey,
		RecordedBy:      m.RecordedBy,
		ContainerNumber: m.ContainerNumber,
		Origin:          m.Origin,
		SealNumber:      m.SealNumber,
		Personnel:       m.Personnel,
		Carrier:         m.Carrier,
		PalletType:      m.PalletType,
		PalletCount:     m.PalletCount,
		TrailerID:       m.TrailerID,
		TractorID:       m.TractorID,
		ArrivalAt:       m.ArrivalAt,
		DepartureAt:     m.DepartureAt,
		PalletsInside:   m.PalletsInside,
		BoxesInside:     m.BoxesInside,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
	for _, it := range m.Items {
		out.Items = append(out.Items, dto.LineItemDTO{Type: it.Type, Count: it.Count})
	}
	return out
}
