package movement

import (
	"strings"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// Cada tipo de movimiento tiene su propio payload de apertura y de cierre, con sus reglas
// expresadas en tags de validación. El engine sólo elige la variante por kind.

type openPayload interface {
	// check reglas que no caben en tags.
	check() error
	// apply copia los campos validados al movimiento.
	apply(m *entity.Movement)
}

type closePayload interface {
	completion() entity.MovementCompletion
}

var openVariants = map[entity.MovementKind]func(dto.OpenMovementRequest) openPayload{
	entity.MovementDescarga:   newDescargaOpen,
	entity.MovementCarga:      newCargaOpen,
	entity.MovementCargaMixta: newCargaMixtaOpen,
}

var closeVariants = map[entity.MovementKind]func(dto.CloseMovementRequest) closePayload{
	entity.MovementDescarga:   newDescargaClose,
	entity.MovementCarga:      newSalidaClose,
	entity.MovementCargaMixta: newSalidaClose,
}

// ── descarga ─────────────────────────────────────────────────────────────────

type descargaOpen struct {
	ContainerNumber string     `json:"container_number" validate:"required"`
	Origin          string     `json:"origin" validate:"required"`
	SealNumber      string     `json:"seal_number" validate:"required"`
	Personnel       string     `json:"personnel" validate:"required"`
	ArrivalAt       *time.Time `json:"arrival_at" validate:"required"`
	Carrier         string     `json:"carrier"`
	TrailerID       string     `json:"trailer_id"`
	TractorID       string     `json:"tractor_id"`
}

func newDescargaOpen(in dto.OpenMovementRequest) openPayload {
	return &descargaOpen{
		ContainerNumber: trim(in.ContainerNumber),
		Origin:          trim(in.Origin),
		SealNumber:      trim(in.SealNumber),
		Personnel:       trim(in.Personnel),
		ArrivalAt:       in.ArrivalAt,
		Carrier:         trim(in.Carrier),
		TrailerID:       trim(in.TrailerID),
		TractorID:       trim(in.TractorID),
	}
}

func (p *descargaOpen) check() error { return nil }

func (p *descargaOpen) apply(m *entity.Movement) {
	m.ContainerNumber = p.ContainerNumber
	m.Origin = p.Origin
	m.SealNumber = p.SealNumber
	m.Personnel = p.Personnel
	m.ArrivalAt = p.ArrivalAt.UTC()
	m.Carrier = p.Carrier
	m.TrailerID = p.TrailerID
	m.TractorID = p.TractorID
}

type descargaClose struct {
	DepartureAt   *time.Time `json:"departure_at" validate:"required"`
	PalletsInside *int       `json:"pallets_inside" validate:"required,gte=0"`
	BoxesInside   *int       `json:"boxes_inside" validate:"required,gte=0"`
}

func newDescargaClose(in dto.CloseMovementRequest) closePayload {
	return &descargaClose{DepartureAt: in.DepartureAt, PalletsInside: in.PalletsInside, BoxesInside: in.BoxesInside}
}

func (p *descargaClose) completion() entity.MovementCompletion {
	return entity.MovementCompletion{
		DepartureAt:   p.DepartureAt.UTC(),
		PalletsInside: p.PalletsInside,
		BoxesInside:   p.BoxesInside,
	}
}

// ── carga ────────────────────────────────────────────────────────────────────

type cargaOpen struct {
	Carrier         string     `json:"carrier" validate:"required"`
	PalletType      string     `json:"pallet_type" validate:"required"`
	PalletCount     int        `json:"pallet_count" validate:"gt=0"`
	ArrivalAt       *time.Time `json:"arrival_at" validate:"required"`
	SealNumber      string     `json:"seal_number" validate:"required"`
	TrailerID       string     `json:"trailer_id" validate:"required"`
	Personnel       string     `json:"personnel" validate:"required"`
	ContainerNumber string     `json:"container_number"`
	TractorID       string     `json:"tractor_id"`
}

func newCargaOpen(in dto.OpenMovementRequest) openPayload {
	return &cargaOpen{
		Carrier:         trim(in.Carrier),
		PalletType:      trim(in.PalletType),
		PalletCount:     in.PalletCount,
		ArrivalAt:       in.ArrivalAt,
		SealNumber:      trim(in.SealNumber),
		TrailerID:       trim(in.TrailerID),
		Personnel:       trim(in.Personnel),
		ContainerNumber: trim(in.ContainerNumber),
		TractorID:       trim(in.TractorID),
	}
}

func (p *cargaOpen) check() error { return nil }

func (p *cargaOpen) apply(m *entity.Movement) {
	m.Carrier = p.Carrier
	m.PalletType = p.PalletType
	m.PalletCount = p.PalletCount
	m.ArrivalAt = p.ArrivalAt.UTC()
	m.SealNumber = p.SealNumber
	m.TrailerID = p.TrailerID
	m.Personnel = p.Personnel
	m.ContainerNumber = p.ContainerNumber
	m.TractorID = p.TractorID
}

// ── carga-mixta ──────────────────────────────────────────────────────────────

type lineItem struct {
	Type  string `json:"type" validate:"required"`
	Count int    `json:"count" validate:"gt=0"`
}

type cargaMixtaOpen struct {
	Carrier         string     `json:"carrier" validate:"required"`
	ArrivalAt       *time.Time `json:"arrival_at" validate:"required"`
	SealNumber      string     `json:"seal_number" validate:"required"`
	TrailerID       string     `json:"trailer_id" validate:"required"`
	Personnel       string     `json:"personnel" validate:"required"`
	Items           []lineItem `json:"items" validate:"required,min=1,dive"`
	PalletCount     int        `json:"pallet_count" validate:"gt=0"`
	ContainerNumber string     `json:"container_number"`
	TractorID       string     `json:"tractor_id"`
}

func newCargaMixtaOpen(in dto.OpenMovementRequest) openPayload {
	p := &cargaMixtaOpen{
		Carrier:         trim(in.Carrier),
		ArrivalAt:       in.ArrivalAt,
		SealNumber:      trim(in.SealNumber),
		TrailerID:       trim(in.TrailerID),
		Personnel:       trim(in.Personnel),
		PalletCount:     in.PalletCount,
		ContainerNumber: trim(in.ContainerNumber),
		TractorID:       trim(in.TractorID),
	}
	for _, it := range in.Items {
		p.Items = append(p.Items, lineItem{Type: trim(it.Type), Count: it.Count})
	}
	return p
}

// check la suma de las líneas debe coincidir con el total declarado.
func (p *cargaMixtaOpen) check() error {
	sum := 0
	for _, it := range p.Items {
		sum += it.Count
	}
	if sum != p.PalletCount {
		return domain.NewValidationError("items")
	}
	return nil
}

func (p *cargaMixtaOpen) apply(m *entity.Movement) {
	m.Carrier = p.Carrier
	m.ArrivalAt = p.ArrivalAt.UTC()
	m.SealNumber = p.SealNumber
	m.TrailerID = p.TrailerID
	m.Personnel = p.Personnel
	m.PalletCount = p.PalletCount
	m.ContainerNumber = p.ContainerNumber
	m.TractorID = p.TractorID
	m.Items = make([]entity.LineItem, 0, len(p.Items))
	for _, it := range p.Items {
		m.Items = append(m.Items, entity.LineItem{Type: it.Type, Count: it.Count})
	}
}

// ── cierre de cargas ─────────────────────────────────────────────────────────

// salidaClose cierre de carga y carga-mixta: sólo la hora de salida; los conteos se ignoran.
type salidaClose struct {
	DepartureAt *time.Time `json:"departure_at" validate:"required"`
}

func newSalidaClose(in dto.CloseMovementRequest) closePayload {
	return &salidaClose{DepartureAt: in.DepartureAt}
}

func (p *salidaClose) completion() entity.MovementCompletion {
	return entity.MovementCompletion{DepartureAt: p.DepartureAt.UTC()}
}

func trim(s string) string { return strings.TrimSpace(s) }
