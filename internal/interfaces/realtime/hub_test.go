package realtime_test

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/entity"
	"github.com/jhoicas/Almacen-api/internal/domain/event"
	"github.com/jhoicas/Almacen-api/internal/interfaces/realtime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingObserver struct {
	mu          sync.Mutex
	subscribers int
	dropped     int
}

func (o *countingObserver) SubscribersChanged(n int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.subscribers = n
}

func (o *countingObserver) MessageDropped() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.dropped++
}

func palletEvent() event.PalletCreated {
	at := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)
	return event.PalletCreated{
		Pallet: entity.Pallet{
			ID: "p-1", Code: "QR-1", AssignedWorker: "Ana", PalletType: "chica",
			DateKey: "2024-05-01", RecordedBy: "u-1", CreatedAt: at,
		},
		OccurredAt: at,
	}
}

func TestHub_PublishLlegaATodos(t *testing.T) {
	hub := realtime.NewHub(4, nil)
	a, b := hub.Subscribe(), hub.Subscribe()

	require.NoError(t, hub.Publish(context.Background(), palletEvent()))

	for _, s := range []*realtime.Subscriber{a, b} {
		select {
		case raw := <-s.C():
			var msg struct {
				Type       string         `json:"type"`
				Data       map[string]any `json:"data"`
				OccurredAt time.Time      `json:"occurred_at"`
			}
			require.NoError(t, json.Unmarshal(raw, &msg))
			assert.Equal(t, event.TypePalletCreated, msg.Type)
			assert.Equal(t, "QR-1", msg.Data["code"])
			assert.Equal(t, "Ana", msg.Data["assigned_worker"])
		default:
			t.Fatal("el suscriptor no recibió el evento")
		}
	}
}

func TestHub_BufferLlenoDescartaSinBloquear(t *testing.T) {
	obs := &countingObserver{}
	hub := realtime.NewHub(1, nil).WithObserver(obs)
	slow := hub.Subscribe()
	fast := hub.Subscribe()

	delivered, dropped := hub.Broadcast([]byte("uno"))
	assert.Equal(t, 2, delivered)
	assert.Equal(t, 0, dropped)

	<-fast.C()
	delivered, dropped = hub.Broadcast([]byte("dos"))
	assert.Equal(t, 1, delivered)
	assert.Equal(t, 1, dropped)

	assert.Equal(t, []byte("uno"), <-slow.C())
	assert.Equal(t, []byte("dos"), <-fast.C())
	assert.Equal(t, 1, obs.dropped)
}

func TestHub_UnsubscribeCierraCanal(t *testing.T) {
	obs := &countingObserver{}
	hub := realtime.NewHub(0, nil).WithObserver(obs)
	s := hub.Subscribe()
	assert.Equal(t, 1, hub.Count())
	assert.Equal(t, 1, obs.subscribers)

	hub.Unsubscribe(s)
	hub.Unsubscribe(s)
	_, open := <-s.C()
	assert.False(t, open)
	assert.Equal(t, 0, hub.Count())
	assert.Equal(t, 0, obs.subscribers)

	delivered, dropped := hub.Broadcast([]byte("x"))
	assert.Zero(t, delivered)
	assert.Zero(t, dropped)
}

func TestHub_SinSuscriptoresNoFalla(t *testing.T) {
	hub := realtime.NewHub(0, nil)
	assert.NoError(t, hub.Publish(context.Background(), palletEvent()))
}

func TestHub_BroadcastConcurrenteConAltasYBajas(t *testing.T) {
	hub := realtime.NewHub(2, nil)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s := hub.Subscribe()
			hub.Unsubscribe(s)
		}()
		go func() {
			defer wg.Done()
			hub.Broadcast([]byte("x"))
		}()
	}
	wg.Wait()
	hub.Close()
	assert.Equal(t, 0, hub.Count())
}

type otherEvent struct{}

func (otherEvent) EventType() string { return "otro" }

func TestEncode_EventoDesconocido(t *testing.T) {
	_, err := realtime.Encode(otherEvent{})
	assert.Error(t, err)
}
