package dto

import "time"

// LineItemDTO línea tipo/cantidad de una carga mixta.
type LineItemDTO struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// OpenMovementRequest cuerpo de la fase 1. Los campos obligatorios dependen de `kind`:
//   - descarga: container_number, origin, seal_number, personnel, arrival_at
//   - carga: carrier, pallet_type, pallet_count (>0), arrival_at, seal_number, trailer_id, personnel
//   - carga-mixta: carrier, arrival_at, seal_number, trailer_id, personnel, items y pallet_count = suma de items
type OpenMovementRequest struct {
	Kind            string        `json:"kind"`
	Date            string        `json:"date"`
	ContainerNumber string        `json:"container_number"`
	Origin          string        `json:"origin"`
	SealNumber      string        `json:"seal_number"`
	Personnel       string        `json:"personnel"`
	Carrier         string        `json:"carrier"`
	PalletType      string        `json:"pallet_type"`
	PalletCount     int           `json:"pallet_count"`
	TrailerID       string        `json:"trailer_id"`
	TractorID       string        `json:"tractor_id"`
	Items           []LineItemDTO `json:"items"`
	ArrivalAt       *time.Time    `json:"arrival_at"`
}

// CloseMovementRequest cuerpo de la fase 2. `kind` es opcional; si viene debe coincidir con el guardado.
type CloseMovementRequest struct {
	Kind          string     `json:"kind"`
	DepartureAt   *time.Time `json:"departure_at"`
	PalletsInside *int       `json:"pallets_inside"`
	BoxesInside   *int       `json:"boxes_inside"`
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID              string        `json:"id"`
	Kind            string        `json:"kind"`
	State           string        `json:"state"`
	DateKey         string        `json:"date_key"`
	RecordedBy      string        `json:"recorded_by"`
	ContainerNumber string        `json:"container_number,omitempty"`
	Origin          string        `json:"origin,omitempty"`
	SealNumber      string        `json:"seal_number,omitempty"`
	Personnel       string        `json:"personnel,omitempty"`
	Carrier         string        `json:"carrier,omitempty"`
	PalletType      string        `json:"pallet_type,omitempty"`
	PalletCount     int           `json:"pallet_count,omitempty"`
	TrailerID       string        `json:"trailer_id,omitempty"`
	TractorID       string        `json:"tractor_id,omitempty"`
	Items           []LineItemDTO `json:"items,omitempty"`
	ArrivalAt       time.Time     `json:"arrival_at"`
	DepartureAt     *time.Time    `json:"departure_at"`
	PalletsInside   *int          `json:"pallets_inside"`
	BoxesInside     *int          `json:"boxes_inside"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// MovementListResponse lista de movimientos (sin paginación).
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
}
