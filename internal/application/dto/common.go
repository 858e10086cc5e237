package dto

import (
	"github.com/jhoicas/Almacen-api/internal/domain"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Fields  []string `json:"fields,omitempty"`
}

// DateQuery filtro de fecha común a los listados: un día (`date`) o un rango inclusivo (`from`, `to`).
type DateQuery struct {
	Date string `query:"date"`
	From string `query:"from"`
	To   string `query:"to"`
}

// Range resuelve el filtro. Sin parámetros devuelve el día today.
// Fechas mal formadas o from > to producen domain.ValidationError.
func (q DateQuery) Range(today string) (entity.DateRange, error) {
	switch {
	case q.Date != "":
		if !entity.ValidDateKey(q.Date) {
			return entity.DateRange{}, domain.NewValidationError("date")
		}
		return entity.SingleDay(q.Date), nil
	case q.From == "" && q.To == "":
		return entity.SingleDay(today), nil
	}
	verr := domain.NewValidationError()
	if !entity.ValidDateKey(q.From) {
		verr.Add("from")
	}
	if !entity.ValidDateKey(q.To) {
		verr.Add("to")
	}
	if err := verr.OrNil(); err != nil {
		return entity.DateRange{}, err
	}
	if q.From > q.To {
		return entity.DateRange{}, domain.NewValidationError("from", "to")
	}
	return entity.DateRange{From: q.From, To: q.To}, nil
}

// DeletedResponse salida de un borrado masivo.
type DeletedResponse struct {
	Deleted int64 `json:"deleted"`
}
