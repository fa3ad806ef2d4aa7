// Package ws adapts gorilla websocket connections to the relay transport.
package ws

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"chat-relay/domain/event"
)

// Conn wraps a websocket connection behind the transport contract. Gorilla
// permits one concurrent writer, so all writes funnel through a mutex.
type Conn struct {
	key          string
	ws           *websocket.Conn
	writeTimeout time.Duration

	writeMu   sync.Mutex
	closeOnce sync.Once
	closeErr  error
}

func NewConn(ws *websocket.Conn, writeTimeout time.Duration) *Conn {
	return &Conn{
		key:          uuid.NewString(),
		ws:           ws,
		writeTimeout: writeTimeout,
	}
}

func (c *Conn) Key() string {
	return c.key
}

func (c *Conn) Send(e event.ChatEvent) error {
	payload, err := event.Encode(e)
	if err != nil {
		return err
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	if err := c.ws.SetWriteDeadline(time.Now().Add(c.writeTimeout)); err != nil {
		return err
	}
	return c.ws.WriteMessage(websocket.TextMessage, payload)
}

func (c *Conn) ReadMessage() ([]byte, error) {
	_, payload, err := c.ws.ReadMessage()
	return payload, err
}

func (c *Conn) Close() error {
	c.closeOnce.Do(func() {
		c.closeErr = c.ws.Close()
	})
	return c.closeErr
}
