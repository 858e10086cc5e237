// Package event define los eventos de dominio y el puerto por el que se publican.
// El núcleo no conoce el transporte (websocket, redis); sólo el Publisher.
package event

import (
	"context"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// TypePalletCreated nombre del evento emitido al registrar una tarima.
const TypePalletCreated = "pallet.created"

// Event evento de dominio.
type Event interface {
	EventType() string
}

// PalletCreated se emite después de persistir una tarima.
type PalletCreated struct {
	Pallet     entity.Pallet
	OccurredAt time.Time
}

// EventType implementa Event.
func (PalletCreated) EventType() string { return TypePalletCreated }

// Publisher entrega eventos a quien esté escuchando. La entrega es best-effort:
// un error de publicación nunca invalida la operación que originó el evento.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// PublisherFunc adapta una función a Publisher.
type PublisherFunc func(ctx context.Context, e Event) error

// Publish implementa Publisher.
func (f PublisherFunc) Publish(ctx context.Context, e Event) error { return f(ctx, e) }

// Nop descarta todos los eventos.
var Nop Publisher = PublisherFunc(func(context.Context, Event) error { return nil })

// Multi publica en varios destinos; devuelve el primer error sin detener a los demás.
func Multi(pubs ...Publisher) Publisher {
	return PublisherFunc(func(ctx context.Context, e Event) error {
		var first error
		for _, p := range pubs {
			if p == nil {
				continue
			}
			if err := p.Publish(ctx, e); err != nil && first == nil {
				first = err
			}
		}
		return first
	})
}
