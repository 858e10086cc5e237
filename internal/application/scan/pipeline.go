// Package scan implementa el flujo de escaneo QR: búsqueda de la tarima del día,
// bitácora de intentos e incidencias, y la copia deduplicada a almacén.
package scan

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/repository"
)

// ErrAlreadyScanned la tarima ya tiene copia de almacén para ese día.
var ErrAlreadyScanned = fmt.Errorf("%w: ya escaneado hoy", domain.ErrConflict)

// Recorder recibe los resultados del flujo (métricas).
type Recorder interface {
	ScanSubmitted(found bool)
	WarehouseScanSaved(duplicate bool)
}

type nopRecorder struct{}

func (nopRecorder) ScanSubmitted(bool)      {}
func (nopRecorder) WarehouseScanSaved(bool) {}

// Pipeline casos de uso de escaneo.
type Pipeline struct {
	pallets   repository.PalletRepository
	scans     repository.WarehouseScanRepository
	attempts  repository.ScanAttemptRepository
	incidents repository.IncidentRepository
	loc       *time.Location
	now       func() time.Time
	recorder  Recorder
}

// NewPipeline construye el flujo sobre los repositorios del store.
func NewPipeline(store *repository.Store, loc *time.Location) *Pipeline {
	if loc == nil {
		loc = time.UTC
	}
	return &Pipeline{
		pallets:   store.Pallets,
		scans:     store.WarehouseScans,
		attempts:  store.ScanAttempts,
		incidents: store.Incidents,
		loc:       loc,
		now:       time.Now,
		recorder:  nopRecorder{},
	}
}

// WithClock reemplaza el reloj (tests).
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	p.now = now
	return p
}

// WithRecorder registra los resultados en r.
func (p *Pipeline) WithRecorder(r Recorder) *Pipeline {
	if r != nil {
		p.recorder = r
	}
	return p
}

func (p *Pipeline) today() (time.Time, string) {
	now := p.now()
	return now.UTC(), entity.DateKeyOf(now, p.loc)
}

// Scan busca una tarima del día con ese código. Siempre deja un ScanAttempt;
// si no hay coincidencia abre además una incidencia. Nunca escribe la copia de almacén.
func (p *Pipeline) Scan(ctx context.Context, actor entity.Actor, code string) (*dto.ScanResponse, error) {
	if !entity.ScanRoles.Allows(actor.Role) {
		return nil, domain.ErrForbidden
	}
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.NewValidationError("code")
	}
	now, dateKey := p.today()

	pallet, err := p.pallets.FindByCodeAndDay(ctx, code, dateKey)
	if err != nil {
		return nil, err
	}
	attempt := &entity.ScanAttempt{
		Code:      code,
		ActorID:   actor.ID,
		ActorName: actor.Name,
		Role:      actor.Role,
		Found:     pallet != nil,
		DateKey:   dateKey,
		CreatedAt: now,
	}
	if pallet != nil {
		id := pallet.ID
		attempt.PalletID = &id
	}
	if err := p.attempts.Create(ctx, attempt); err != nil {
		return nil, err
	}
	p.recorder.ScanSubmitted(pallet != nil)

	if pallet == nil {
		incident := &entity.Incident{
			Code:           code,
			ReportedBy:     actor.ID,
			ReportedByName: actor.Name,
			Status:         entity.IncidentStatusNew,
			ScanAttemptID:  attempt.ID,
			DateKey:        dateKey,
			CreatedAt:      now,
		}
		if err := p.incidents.Create(ctx, incident); err != nil {
			return nil, err
		}
		return &dto.ScanResponse{Registered: false, IncidentID: incident.ID}, nil
	}
	out := dto.NewPalletResponse(pallet)
	return &dto.ScanResponse{Registered: true, Pallet: &out}, nil
}

// SaveToWarehouse guarda la copia de la tarima con turno y responsable. La unicidad
// (code, date_key) la decide el almacén: el perdedor de una carrera recibe ErrAlreadyScanned.
func (p *Pipeline) SaveToWarehouse(ctx context.Context, actor entity.Actor, in *dto.SaveWarehouseScanRequest) (*dto.WarehouseScanResponse, error) {
	now, today := p.today()

	verr := domain.NewValidationError()
	code := strings.TrimSpace(in.Pallet.Text("code"))
	if code == "" {
		verr.Add("code")
	}
	shift := entity.Shift(strings.TrimSpace(in.Shift))
	if !shift.Valid() {
		verr.Add(dto.MetaShift)
	}
	responsible := strings.TrimSpace(in.Responsible)
	if responsible == "" {
		verr.Add(dto.MetaResponsible)
	}
	dateKey := strings.TrimSpace(in.Date)
	if dateKey == "" {
		dateKey = today
	}
	if !entity.ValidDateKey(dateKey) {
		verr.Add(dto.MetaDate)
	}
	for _, kv := range in.Pallet {
		if !entity.IsScalar(kv.Value) {
			verr.Add(kv.Key)
		}
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	ws := &entity.WarehouseScan{
		Code:        code,
		Shift:       shift,
		Responsible: responsible,
		DateKey:     dateKey,
		RecordedBy:  actor.ID,
		ScannedAt:   now,
		Pallet:      in.Pallet,
	}
	if err := p.scans.Create(ctx, ws); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			p.recorder.WarehouseScanSaved(true)
			return nil, ErrAlreadyScanned
		}
		return nil, err
	}
	p.recorder.WarehouseScanSaved(false)
	out := toWarehouseScanResponse(ws)
	return &out, nil
}

// Check indica si ya existe copia para (code, date). Es sólo informativo: la
// garantía la da SaveToWarehouse.
func (p *Pipeline) Check(ctx context.Context, code, date string) (*dto.WarehouseScanCheckResponse, error) {
	code = strings.TrimSpace(code)
	_, today := p.today()
	if date == "" {
		date = today
	}
	verr := domain.NewValidationError()
	if code == "" {
		verr.Add("code")
	}
	if !entity.ValidDateKey(date) {
		verr.Add("date")
	}
	if err := verr.OrNil(); err != nil {
		return nil, err
	}
	exists, err := p.scans.Exists(ctx, code, date)
	if err != nil {
		return nil, err
	}
	return &dto.WarehouseScanCheckResponse{Code: code, DateKey: date, Exists: exists}, nil
}

// List lista copias de almacén por día o rango, con turno opcional.
func (p *Pipeline) List(ctx context.Context, q dto.DateQuery, shift string) (*dto.WarehouseScanListResponse, error) {
	_, today := p.today()
	r, err := q.Range(today)
	if err != nil {
		return nil, err
	}
	f := entity.WarehouseScanFilter{DateRange: r, Shift: entity.Shift(shift)}
	if shift != "" && !f.Shift.Valid() {
		return nil, domain.NewValidationError(dto.MetaShift)
	}
	list, err := p.scans.List(ctx, f)
	if err != nil {
		return nil, err
	}
	items := make([]dto.WarehouseScanResponse, 0, len(list))
	for _, ws := range list {
		items = append(items, toWarehouseScanResponse(ws))
	}
	return &dto.WarehouseScanListResponse{Items: items}, nil
}

// Log devuelve los intentos y las incidencias de un día (hoy si date viene vacío).
func (p *Pipeline) Log(ctx context.Context, date string) (*dto.ScanLogResponse, error) {
	_, today := p.today()
	if date == "" {
		date = today
	}
	if !entity.ValidDateKey(date) {
		return nil, domain.NewValidationError("date")
	}
	attempts, err := p.attempts.ListByDay(ctx, date)
	if err != nil {
		return nil, err
	}
	incidents, err := p.incidents.ListByDay(ctx, date)
	if err != nil {
		return nil, err
	}
	out := &dto.ScanLogResponse{
		DateKey:   date,
		Attempts:  make([]dto.ScanAttemptResponse, 0, len(attempts)),
		Incidents: make([]dto.IncidentResponse, 0, len(incidents)),
	}
	for _, a := range attempts {
		out.Attempts = append(out.Attempts, dto.ScanAttemptResponse{
			ID: a.ID, Code: a.Code, ActorID: a.ActorID, ActorName: a.ActorName, Role: string(a.Role),
			Found: a.Found, PalletID: a.PalletID, DateKey: a.DateKey, CreatedAt: a.CreatedAt,
		})
	}
	for _, i := range incidents {
		out.Incidents = append(out.Incidents, dto.IncidentResponse{
			ID: i.ID, Code: i.Code, ReportedBy: i.ReportedBy, ReportedByName: i.ReportedByName,
			Status: i.Status, ScanAttemptID: i.ScanAttemptID, DateKey: i.DateKey, CreatedAt: i.CreatedAt,
		})
	}
	return out, nil
}

func toWarehouseScanResponse(ws *entity.WarehouseScan) dto.WarehouseScanResponse {
	return dto.WarehouseScanResponse{
		ID:          ws.ID,
		Code:        ws.Code,
		Shift:       string(ws.Shift),
		Responsible: ws.Responsible,
		DateKey:     ws.DateKey,
		ScannedAt:   ws.ScannedAt,
		RecordedBy:  ws.RecordedBy,
		Pallet:      dto.PalletFields(ws.Pallet),
	}
}
