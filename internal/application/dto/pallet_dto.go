package dto

import (
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// CreatePalletRequest entrada para registrar una tarima.
type CreatePalletRequest struct {
	Code           string `json:"code" validate:"required,max=120"`
	AssignedWorker string `json:"assigned_worker" validate:"required,max=200"`
	PalletType     string `json:"pallet_type" validate:"required,max=80"`
}

// PalletResponse salida de una tarima.
type PalletResponse struct {
	ID             string    `json:"id"`
	Code           string    `json:"code"`
	AssignedWorker string    `json:"assigned_worker"`
	PalletType     string    `json:"pallet_type"`
	DateKey        string    `json:"date_key"`
	RecordedBy     string    `json:"recorded_by"`
	CreatedAt      time.Time `json:"created_at"`
}

// PalletListResponse lista de tarimas.
type PalletListResponse struct {
	Items []PalletResponse `json:"items"`
}

// NewPalletResponse construye la salida a partir de la entidad.
func NewPalletResponse(p *entity.Pallet) PalletResponse {
	return PalletResponse{
		ID:             p.ID,
		Code:           p.Code,
		AssignedWorker: p.AssignedWorker,
		PalletType:     p.PalletType,
		DateKey:        p.DateKey,
		RecordedBy:     p.RecordedBy,
		CreatedAt:      p.CreatedAt,
	}
}
