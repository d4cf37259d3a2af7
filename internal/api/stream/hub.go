package stream

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"degenindex/pkg/errors"
	"degenindex/pkg/logger"
)

var errMaxClients = errors.New("stream hub at capacity")

const (
	maxClients    = 256
	sendQueueSize = 16
	writeTimeout  = 5 * time.Second
)

// Message types sent over /stream
const (
	TypeClassification = "classification"
	TypeSummary        = "summary"
	TypeIndex          = "index"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // dashboards connect cross-origin
	},
}

// --- Command types ---

type hubCmd interface{ hubCmd() }

type cmdRegister struct {
	conn  *websocket.Conn
	errCh chan error
}

func (cmdRegister) hubCmd() {}

type cmdUnregister struct {
	conn *websocket.Conn
}

func (cmdUnregister) hubCmd() {}

type cmdBroadcast struct {
	data []byte
}

func (cmdBroadcast) hubCmd() {}

type cmdClientCount struct {
	replyCh chan int
}

func (cmdClientCount) hubCmd() {}

type cmdStop struct{}

func (cmdStop) hubCmd() {}

// --- Per-connection writer ---

type clientWriter struct {
	conn   *websocket.Conn
	sendCh chan []byte
	done   chan struct{}
}

func newClientWriter(conn *websocket.Conn) *clientWriter {
	cw := &clientWriter{
		conn:   conn,
		sendCh: make(chan []byte, sendQueueSize),
		done:   make(chan struct{}),
	}
	go cw.run()
	return cw
}

func (cw *clientWriter) run() {
	for {
		select {
		case msg, ok := <-cw.sendCh:
			if !ok {
				return
			}
			cw.conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := cw.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-cw.done:
			return
		}
	}
}

func (cw *clientWriter) stop() {
	close(cw.done)
	cw.conn.Close()
}

// --- Hub ---

// Hub fans pipeline events out to /stream subscribers. All connection
// state is owned by the run loop; public methods communicate through the
// command channel so no locking is needed.
type Hub struct {
	cmdCh   chan hubCmd
	clients map[*websocket.Conn]*clientWriter
	log     *logger.Logger
}

// NewHub creates a hub and starts its dispatch loop
func NewHub() *Hub {
	hub := &Hub{
		cmdCh:   make(chan hubCmd, 256),
		clients: make(map[*websocket.Conn]*clientWriter),
		log:     logger.Get().With("component", "stream_hub"),
	}
	go hub.run()
	return hub
}

func (h *Hub) run() {
	for cmd := range h.cmdCh {
		switch c := cmd.(type) {
		case cmdRegister:
			h.handleRegister(c)
		case cmdUnregister:
			h.handleUnregister(c.conn)
		case cmdBroadcast:
			h.handleBroadcast(c.data)
		case cmdClientCount:
			c.replyCh <- len(h.clients)
		case cmdStop:
			h.handleStop()
			return
		}
	}
}

func (h *Hub) handleRegister(c cmdRegister) {
	if len(h.clients) >= maxClients {
		h.log.Warnw("Rejecting stream client, hub full", "max_clients", maxClients)
		c.conn.Close()
		c.errCh <- errMaxClients
		return
	}

	h.clients[c.conn] = newClientWriter(c.conn)
	h.log.Debugw("Stream client registered", "clients", len(h.clients))
	c.errCh <- nil
}

func (h *Hub) handleUnregister(conn *websocket.Conn) {
	cw, exists := h.clients[conn]
	if !exists {
		return
	}

	cw.stop()
	delete(h.clients, conn)
	h.log.Debugw("Stream client unregistered", "clients", len(h.clients))
}

func (h *Hub) handleBroadcast(data []byte) {
	var slow []*websocket.Conn
	for conn, cw := range h.clients {
		select {
		case cw.sendCh <- data:
		default:
			// client cannot keep up, drop it
			slow = append(slow, conn)
		}
	}

	for _, conn := range slow {
		h.log.Warn("Disconnecting slow stream client")
		h.handleUnregister(conn)
	}
}

func (h *Hub) handleStop() {
	for conn, cw := range h.clients {
		cw.stop()
		delete(h.clients, conn)
	}
}

// --- Public API ---

// Register adds a connection to the hub
func (h *Hub) Register(conn *websocket.Conn) error {
	errCh := make(chan error, 1)
	h.cmdCh <- cmdRegister{conn: conn, errCh: errCh}
	return <-errCh
}

// Unregister removes a connection from the hub
func (h *Hub) Unregister(conn *websocket.Conn) {
	h.cmdCh <- cmdUnregister{conn: conn}
}

// Broadcast sends a typed envelope to every connected client
func (h *Hub) Broadcast(messageType string, payload interface{}) {
	data, err := json.Marshal(map[string]interface{}{
		"type": messageType,
		"data": payload,
	})
	if err != nil {
		h.log.Errorw("Failed to marshal stream message", "type", messageType, "error", err)
		return
	}
	h.cmdCh <- cmdBroadcast{data: data}
}

// ClientCount returns the number of connected clients
func (h *Hub) ClientCount() int {
	replyCh := make(chan int, 1)
	h.cmdCh <- cmdClientCount{replyCh: replyCh}
	return <-replyCh
}

// Stop disconnects all clients and terminates the dispatch loop
func (h *Hub) Stop() {
	h.cmdCh <- cmdStop{}
}

// ServeHTTP upgrades the request and pumps reads until the client leaves
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warnw("Websocket upgrade failed", "error", err)
		return
	}

	if err := h.Register(conn); err != nil {
		return
	}

	// Read pump, blocks until the connection closes
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.Unregister(conn)
}
