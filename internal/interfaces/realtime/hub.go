// Package realtime reparte los eventos de dominio a los clientes conectados (websocket).
// La entrega es best-effort: sin confirmación, sin reintento y sin historial.
package realtime

import (
	"context"
	"sync"

	"github.com/jhoicas/Almacen-api/internal/domain/event"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

// DefaultBuffer mensajes pendientes por suscriptor antes de empezar a descartar.
const DefaultBuffer = 16

// Observer recibe las métricas del hub. Puede ser nil.
type Observer interface {
	SubscribersChanged(n int)
	MessageDropped()
}

// Subscriber un cliente conectado. Lee de C hasta que el canal se cierre.
type Subscriber struct {
	ch     chan []byte
	closed bool
}

// C devuelve el canal de mensajes del suscriptor.
func (s *Subscriber) C() <-chan []byte { return s.ch }

// Hub registro de suscriptores con publicación no bloqueante.
type Hub struct {
	mu     sync.RWMutex
	subs   map[*Subscriber]struct{}
	buffer int
	log    *logger.Logger
	obs    Observer
}

var _ event.Publisher = (*Hub)(nil)

// NewHub construye el hub. buffer <= 0 usa DefaultBuffer.
func NewHub(buffer int, log *logger.Logger) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		subs:   make(map[*Subscriber]struct{}),
		buffer: buffer,
		log:    log.Component("realtime"),
	}
}

// WithObserver registra el observador de métricas.
func (h *Hub) WithObserver(o Observer) *Hub {
	h.obs = o
	return h
}

// Subscribe registra un suscriptor nuevo.
func (h *Hub) Subscribe() *Subscriber {
	s := &Subscriber{ch: make(chan []byte, h.buffer)}
	h.mu.Lock()
	h.subs[s] = struct{}{}
	n := len(h.subs)
	h.mu.Unlock()
	if h.obs != nil {
		h.obs.SubscribersChanged(n)
	}
	return s
}

// Unsubscribe retira el suscriptor y cierra su canal. Es idempotente.
func (h *Hub) Unsubscribe(s *Subscriber) {
	h.mu.Lock()
	if _, ok := h.subs[s]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.subs, s)
	s.closed = true
	close(s.ch)
	n := len(h.subs)
	h.mu.Unlock()
	if h.obs != nil {
		h.obs.SubscribersChanged(n)
	}
}

// Count devuelve cuántos suscriptores hay registrados.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

// Broadcast entrega msg a cada suscriptor sin bloquear. Un suscriptor con el buffer
// lleno pierde el mensaje.
func (h *Hub) Broadcast(msg []byte) (delivered, dropped int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for s := range h.subs {
		if s.closed {
			dropped++
			continue
		}
		select {
		case s.ch <- msg:
			delivered++
		default:
			dropped++
		}
	}
	if dropped > 0 {
		h.log.Warn().Int("dropped", dropped).Int("delivered", delivered).Msg("suscriptores sin espacio, mensaje descartado")
		if h.obs != nil {
			for i := 0; i < dropped; i++ {
				h.obs.MessageDropped()
			}
		}
	}
	return delivered, dropped
}

// Publish implementa event.Publisher sobre el reparto local.
func (h *Hub) Publish(_ context.Context, e event.Event) error {
	msg, err := Encode(e)
	if err != nil {
		return err
	}
	h.Broadcast(msg)
	return nil
}

// Close retira a todos los suscriptores.
func (h *Hub) Close() {
	h.mu.Lock()
	for s := range h.subs {
		delete(h.subs, s)
		s.closed = true
		close(s.ch)
	}
	h.mu.Unlock()
	if h.obs != nil {
		h.obs.SubscribersChanged(0)
	}
}
