// Package netlink provides a link-cable transport that carries serial
// bytes over a websocket connection, so two emulator instances on
// different machines can exchange bytes the way two physical Game Boys
// would over a link cable. It is a collaborator of internal/serial,
// feeding its incoming queue and draining its outgoing queue; it has no
// knowledge of shift-register timing.
package netlink

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tuankiet65/knocknock/internal/serial"
	"github.com/tuankiet65/knocknock/pkg/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1,
	WriteBufferSize: 1,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Link pumps bytes between a serial.Controller and a websocket peer.
type Link struct {
	conn *websocket.Conn
	port *serial.Controller
	log  log.Logger

	done chan struct{}
}

// Accept upgrades an incoming HTTP connection to a websocket and
// returns a Link pumping bytes for port.
func Accept(w http.ResponseWriter, r *http.Request, port *serial.Controller, logger log.Logger) (*Link, error) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	return newLink(conn, port, logger), nil
}

// Dial connects out to a peer's Accept endpoint.
func Dial(url string, port *serial.Controller, logger log.Logger) (*Link, error) {
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, err
	}
	return newLink(conn, port, logger), nil
}

func newLink(conn *websocket.Conn, port *serial.Controller, logger log.Logger) *Link {
	if logger == nil {
		logger = log.NewNullLogger()
	}
	l := &Link{conn: conn, port: port, log: logger, done: make(chan struct{})}
	go l.readPump()
	go l.writePump()
	return l
}

// readPump delivers each inbound byte message to the port's incoming
// queue for the next session to consume.
func (l *Link) readPump() {
	defer close(l.done)
	for {
		_, message, err := l.conn.ReadMessage()
		if err != nil {
			l.log.Errorf("netlink: read: %v", err)
			return
		}
		for _, b := range message {
			l.port.Enqueue(b)
		}
	}
}

// writePump polls the port's outgoing queue and forwards completed
// session bytes to the peer.
func (l *Link) writePump() {
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			for {
				b, ok := l.port.Dequeue()
				if !ok {
					break
				}
				if err := l.conn.WriteMessage(websocket.BinaryMessage, []byte{b}); err != nil {
					l.log.Errorf("netlink: write: %v", err)
					return
				}
			}
		}
	}
}

// Close shuts down the underlying connection.
func (l *Link) Close() error {
	return l.conn.Close()
}
