package handler

import (
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/homeservices/booking-app/internal/core/domain"
	"github.com/homeservices/booking-app/internal/core/ports"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     loopbackOrigin,
}

// loopbackOrigin accepts views served from this machine only.
func loopbackOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	host := u.Hostname()
	if host == "localhost" {
		return true
	}
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// ChatStream pushes new messages of a conversation over a websocket, so the
// view sees the delayed provider replies as they arrive.
type ChatStream struct {
	chat ports.ChatService
	log  zerolog.Logger
}

func NewChatStream(chat ports.ChatService, log zerolog.Logger) *ChatStream {
	return &ChatStream{chat: chat, log: log}
}

func (s *ChatStream) Serve(c echo.Context) error {
	id := c.Param("id")
	msgs, cancel, err := s.chat.Subscribe(id)
	if err != nil {
		return err
	}

	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		cancel()
		s.log.Warn().Err(err).Str("conversation_id", id).Msg("websocket upgrade failed")
		return nil
	}
	s.log.Debug().Str("conversation_id", id).Msg("chat stream connected")

	done := make(chan struct{})
	go s.readPump(conn, done)
	s.writePump(conn, msgs, done)

	cancel()
	_ = conn.Close()
	s.log.Debug().Str("conversation_id", id).Msg("chat stream disconnected")
	return nil
}

// readPump discards client frames and closes done when the peer goes away.
func (s *ChatStream) readPump(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn().Err(err).Msg("chat stream read failed")
			}
			return
		}
	}
}

func (s *ChatStream) writePump(conn *websocket.Conn, msgs <-chan domain.ChatMessage, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case msg, ok := <-msgs:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// conversation closed
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, "conversation closed"))
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
