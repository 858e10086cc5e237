package dto

import "time"

// CreateBoxBatchRequest entrada para registrar un conteo de cajas. `date` es opcional (hoy por defecto).
type CreateBoxBatchRequest struct {
	BoxType  string `json:"box_type" validate:"required,max=80"`
	Quantity int    `json:"quantity" validate:"gt=0"`
	Date     string `json:"date"`
	Notes    string `json:"notes" validate:"max=500"`
}

// UpdateBoxBatchRequest entrada para actualizar un conteo; sólo se aplican los campos presentes.
type UpdateBoxBatchRequest struct {
	BoxType  *string `json:"box_type" validate:"omitempty,min=1,max=80"`
	Quantity *int    `json:"quantity" validate:"omitempty,gt=0"`
	Notes    *string `json:"notes" validate:"omitempty,max=500"`
}

// BoxBatchResponse salida de un conteo de cajas.
type BoxBatchResponse struct {
	ID         string    `json:"id"`
	BoxType    string    `json:"box_type"`
	Quantity   int       `json:"quantity"`
	DateKey    string    `json:"date_key"`
	Notes      string    `json:"notes,omitempty"`
	RecordedBy string    `json:"recorded_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BoxBatchListResponse lista de conteos con el total de cajas del filtro.
type BoxBatchListResponse struct {
	Items      []BoxBatchResponse `json:"items"`
	TotalBoxes int                `json:"total_boxes"`
}
