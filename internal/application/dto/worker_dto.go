package dto

import "time"

// CreateWorkerRequest entrada para dar de alta una trabajadora.
type CreateWorkerRequest struct {
	Name string `json:"name" validate:"required,min=1,max=200"`
	Area string `json:"area" validate:"max=80"`
}

// WorkerResponse salida de una trabajadora.
type WorkerResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Area      string    `json:"area,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// WorkerListResponse lista de trabajadoras.
type WorkerListResponse struct {
	Items []WorkerResponse `json:"items"`
}
