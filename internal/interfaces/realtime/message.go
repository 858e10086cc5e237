package realtime

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/event"
)

// Message sobre que reciben los clientes.
type Message struct {
	Type       string    `json:"type"`
	Data       any       `json:"data"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Encode serializa un evento de dominio al formato de los clientes.
func Encode(e event.Event) ([]byte, error) {
	var msg Message
	switch ev := e.(type) {
	case event.PalletCreated:
		msg = Message{Type: ev.EventType(), Data: dto.NewPalletResponse(&ev.Pallet), OccurredAt: ev.OccurredAt.UTC()}
	case *event.PalletCreated:
		msg = Message{Type: ev.EventType(), Data: dto.NewPalletResponse(&ev.Pallet), OccurredAt: ev.OccurredAt.UTC()}
	default:
		return nil, fmt.Errorf("realtime: evento no soportado %q", e.EventType())
	}
	return json.Marshal(msg)
}
