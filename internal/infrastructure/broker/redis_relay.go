// Package broker difunde los eventos de tarimas entre réplicas a través de un canal de Redis.
// Cada réplica publica en el canal y un relay suscrito alimenta el hub local, de modo que
// los clientes conectados a cualquier réplica reciben el evento.
package broker

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/jhoicas/Almacen-api/internal/domain/event"
	"github.com/jhoicas/Almacen-api/pkg/config"
	"github.com/jhoicas/Almacen-api/pkg/logger"
	"github.com/redis/go-redis/v9"
)

// Broadcaster destino local de los mensajes (el hub realtime).
type Broadcaster interface {
	Broadcast(msg []byte) (delivered, dropped int)
}

// Encoder serializa un evento al formato de los clientes.
type Encoder func(e event.Event) ([]byte, error)

// Tiempos del cliente: con Redis caído una publicación no debe frenar el alta de tarimas.
const (
	dialTimeout    = 500 * time.Millisecond
	ioTimeout      = time.Second
	publishTimeout = 2 * time.Second
)

// NewClient conecta a Redis y verifica con PING.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           0,
		DialTimeout:  dialTimeout,
		ReadTimeout:  ioTimeout,
		WriteTimeout: ioTimeout,
		PoolTimeout:  ioTimeout,
		MaxRetries:   1,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}
	return client, nil
}

// Relay publica en Redis y reenvía lo recibido al Broadcaster local.
// Mientras no hay suscripción activa, lo publicado por esta réplica se reparte
// también en local; los eventos de otras réplicas se pierden en ese intervalo.
type Relay struct {
	client  *redis.Client
	channel string
	local   Broadcaster
	encode  Encoder
	log     *logger.Logger

	subscribed atomic.Bool
	minBackoff time.Duration
	maxBackoff time.Duration
}

var _ event.Publisher = (*Relay)(nil)

// NewRelay construye el relay.
func NewRelay(client *redis.Client, channel string, local Broadcaster, encode Encoder, log *logger.Logger) *Relay {
	if log == nil {
		log = logger.Nop()
	}
	return &Relay{
		client:     client,
		channel:    channel,
		local:      local,
		encode:     encode,
		log:        log.Component("broker"),
		minBackoff: 500 * time.Millisecond,
		maxBackoff: 30 * time.Second,
	}
}

// WithBackoff ajusta la espera entre intentos de suscripción.
func (r *Relay) WithBackoff(min, max time.Duration) *Relay {
	r.minBackoff, r.maxBackoff = min, max
	return r
}

// Subscribed indica si la suscripción al canal está activa.
func (r *Relay) Subscribed() bool { return r.subscribed.Load() }

// Publish envía el evento al canal. Si Redis no responde, o si esta réplica no está
// suscrita, el evento se reparte en local. Nunca devuelve error de transporte.
func (r *Relay) Publish(ctx context.Context, e event.Event) error {
	msg, err := r.encode(e)
	if err != nil {
		return err
	}
	pubCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := r.client.Publish(pubCtx, r.channel, msg).Err(); err != nil {
		r.log.Warn().Err(err).Str("channel", r.channel).Msg("redis no disponible, reparto sólo local")
		r.local.Broadcast(msg)
		return nil
	}
	if !r.subscribed.Load() {
		r.local.Broadcast(msg)
	}
	return nil
}

// Run mantiene la suscripción al canal y reenvía cada mensaje al hub local. Si la
// suscripción falla o se corta, reintenta con espera creciente hasta que ctx termine.
func (r *Relay) Run(ctx context.Context) {
	backoff := r.minBackoff
	for {
		delivered, err := r.subscribe(ctx)
		if ctx.Err() != nil {
			return
		}
		if delivered {
			backoff = r.minBackoff
		}
		r.log.Warn().Err(err).Str("channel", r.channel).Dur("retry_in", backoff).Msg("suscripción a redis perdida")

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		if backoff *= 2; backoff > r.maxBackoff {
			backoff = r.maxBackoff
		}
	}
}

// subscribe atiende una suscripción hasta que se corta. delivered indica si llegó a
// estar activa.
func (r *Relay) subscribe(ctx context.Context) (delivered bool, err error) {
	sub := r.client.Subscribe(ctx, r.channel)
	defer sub.Close()

	if _, err := sub.Receive(ctx); err != nil {
		return false, fmt.Errorf("redis: suscribir a %s: %w", r.channel, err)
	}
	r.subscribed.Store(true)
	defer r.subscribed.Store(false)
	r.log.Info().Str("channel", r.channel).Msg("relay suscrito")

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return true, ctx.Err()
		case m, ok := <-ch:
			if !ok {
				return true, fmt.Errorf("redis: canal %s cerrado", r.channel)
			}
			r.local.Broadcast([]byte(m.Payload))
		}
	}
}
