package http

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Almacen-api/internal/interfaces/realtime"
	"github.com/jhoicas/Almacen-api/pkg/logger"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPingPeriod = 30 * time.Second
)

// RealtimeHandler entrega por websocket los eventos del hub.
type RealtimeHandler struct {
	hub *realtime.Hub
	log *logger.Logger
}

// NewRealtimeHandler construye el handler.
func NewRealtimeHandler(hub *realtime.Hub, log *logger.Logger) *RealtimeHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &RealtimeHandler{hub: hub, log: log.Component("ws")}
}

// RequireUpgrade rechaza con 426 las peticiones que no piden websocket.
func (h *RealtimeHandler) RequireUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Pallets godoc
// @Summary      Notificaciones de tarimas en tiempo real
// @Description  Websocket; cada mensaje es {"type":"pallet.created","data":{...},"occurred_at":"..."}. Sin historial: sólo llega lo publicado mientras la conexión está abierta.
// @Tags         realtime
// @Param        token  query  string  true  "JWT"
// @Router       /ws/pallets [get]
func (h *RealtimeHandler) Pallets() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, _ := conn.Locals(LocalUserID).(string)
		sub := h.hub.Subscribe()
		defer h.hub.Unsubscribe(sub)
		h.log.Debug().Str("user_id", userID).Msg("cliente conectado")

		// el cliente no envía nada; la lectura sólo detecta el cierre
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ping := time.NewTicker(wsPingPeriod)
		defer ping.Stop()
		for {
			select {
			case <-closed:
				h.log.Debug().Str("user_id", userID).Msg("cliente desconectado")
				return
			case msg, ok := <-sub.C():
				if !ok {
					return
				}
				_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					h.log.Warn().Err(err).Str("user_id", userID).Msg("no se pudo enviar al cliente")
					return
				}
			case <-ping.C:
				_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	})
}
