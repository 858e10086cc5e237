package entity

import "time"

// MovementKind tipo de movimiento de camión.
type MovementKind string

// Tipos de movimiento.
const (
	MovementDescarga   MovementKind = "descarga"    // descarga de contenedor
	MovementCarga      MovementKind = "carga"       // carga simple: un solo tipo de tarima
	MovementCargaMixta MovementKind = "carga-mixta" // carga con varias líneas tipo/cantidad
)

// Valid indica si el tipo es uno de los reconocidos.
func (k MovementKind) Valid() bool {
	switch k {
	case MovementDescarga, MovementCarga, MovementCargaMixta:
		return true
	}
	return false
}

// MovementState estado derivado del ciclo de vida.
type MovementState string

// Estados del movimiento.
const (
	MovementOpen   MovementState = "OPEN"
	MovementClosed MovementState = "CLOSED"
)

// LineItem línea de una carga mixta.
type LineItem struct {
	Type  string
	Count int
}

// Movement representa un evento de camión en dos fases: apertura (llegada) y cierre (salida).
type Movement struct {
	ID         string
	Kind       MovementKind
	DateKey    string
	RecordedBy string

	// Fase 1
	ContainerNumber string
	Origin          string
	SealNumber      string
	Personnel       string
	Carrier         string
	PalletType      string
	PalletCount     int
	TrailerID       string
	TractorID       string
	Items           []LineItem
	ArrivalAt       time.Time

	// Fase 2 (nil hasta el cierre)
	DepartureAt   *time.Time
	PalletsInside *int
	BoxesInside   *int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// State devuelve OPEN mientras no exista hora de salida.
func (m *Movement) State() MovementState {
	if m.DepartureAt == nil {
		return MovementOpen
	}
	return MovementClosed
}

// MovementCompletion campos de la fase 2.
type MovementCompletion struct {
	DepartureAt   time.Time
	PalletsInside *int
	BoxesInside   *int
	UpdatedAt     time.Time
}

// MovementFilter filtro por día o rango inclusivo, con tipo opcional.
type MovementFilter struct {
	DateRange
	Kind MovementKind
}
