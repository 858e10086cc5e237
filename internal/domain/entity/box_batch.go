package entity

import "time"

// BoxBatch conteo de cajas de un tipo registrado en un día.
type BoxBatch struct {
	ID         string
	BoxType    string
	Quantity   int
	DateKey    string
	Notes      string
	RecordedBy string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// BoxBatchFilter filtro por día o rango, con tipo de caja opcional.
type BoxBatchFilter struct {
	DateRange
	BoxType string
}
