package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"brawler/internal/game"

	"github.com/gorilla/websocket"
)

const (
	MaxWSConnectionsTotal = 200
	MaxWSConnectionsPerIP = 5

	// BroadcastInterval is the snapshot push rate (10 Hz)
	BroadcastInterval = 100 * time.Millisecond

	wsWriteTimeout = 2 * time.Second
)

// wsMessage is the envelope of every pushed message
type wsMessage struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

type wsClient struct {
	conn *websocket.Conn
	ip   string
}

// WebSocketHub fans match snapshots and events out to spectators.
// Only Run writes to connections.
type WebSocketHub struct {
	clients    map[*websocket.Conn]*wsClient
	broadcast  chan []byte
	register   chan *wsClient
	unregister chan *websocket.Conn
	mu         sync.RWMutex

	upgrader websocket.Upgrader
	limiter  *connLimiter

	stopChan chan struct{}
	stopOnce sync.Once
}

// NewWebSocketHub creates a hub. extraOrigins are accepted besides localhost.
func NewWebSocketHub(extraOrigins []string) *WebSocketHub {
	h := &WebSocketHub{
		clients:    make(map[*websocket.Conn]*wsClient),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *wsClient),
		unregister: make(chan *websocket.Conn),
		limiter:    newConnLimiter(MaxWSConnectionsPerIP),
		stopChan:   make(chan struct{}),
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if IsAllowedOrigin(origin, extraOrigins) {
				return true
			}
			log.Printf("⚠️ WebSocket rejected from origin %s", origin)
			RecordConnectionRejected("origin")
			return false
		},
	}
	return h
}

// Run serves registrations and broadcasts until Stop
func (h *WebSocketHub) Run() {
	for {
		select {
		case <-h.stopChan:
			h.mu.Lock()
			for conn, c := range h.clients {
				h.limiter.release(c.ip)
				conn.Close()
				delete(h.clients, conn)
			}
			h.mu.Unlock()
			UpdateWSConnections(0)
			return

		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.conn] = client
			count := len(h.clients)
			h.mu.Unlock()
			log.Printf("📱 Spectator connected from %s (%d total)", client.ip, count)
			UpdateWSConnections(count)

		case conn := <-h.unregister:
			h.drop(conn)

		case message := <-h.broadcast:
			h.mu.RLock()
			var dead []*websocket.Conn
			for conn := range h.clients {
				conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
					dead = append(dead, conn)
				}
			}
			h.mu.RUnlock()
			for _, conn := range dead {
				h.drop(conn)
			}
			IncrementWSMessages()
		}
	}
}

func (h *WebSocketHub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	client, ok := h.clients[conn]
	if ok {
		h.limiter.release(client.ip)
		delete(h.clients, conn)
		conn.Close()
	}
	count := len(h.clients)
	h.mu.Unlock()
	if ok {
		log.Printf("📱 Spectator disconnected (%d remaining)", count)
		UpdateWSConnections(count)
	}
}

// Stop closes every connection and ends Run
func (h *WebSocketHub) Stop() {
	h.stopOnce.Do(func() { close(h.stopChan) })
}

// Broadcast queues an event for every client. Full queues drop the message.
func (h *WebSocketHub) Broadcast(event string, data interface{}) {
	b, err := json.Marshal(wsMessage{Event: event, Data: data})
	if err != nil {
		return
	}
	select {
	case h.broadcast <- b:
	default:
	}
}

// ClientCount returns the number of connected clients
func (h *WebSocketHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// StartBroadcastLoop pushes the latest snapshot every BroadcastInterval
// while anyone is watching.
func (h *WebSocketHub) StartBroadcastLoop(match MatchInterface) {
	go func() {
		ticker := time.NewTicker(BroadcastInterval)
		defer ticker.Stop()
		var lastSeq uint64
		for {
			select {
			case <-h.stopChan:
				return
			case <-ticker.C:
			}
			if h.ClientCount() == 0 {
				continue
			}
			snap := match.GetSnapshot()
			if snap == nil || snap.Sequence == lastSeq {
				continue
			}
			lastSeq = snap.Sequence
			h.Broadcast("match:snapshot", snap)
		}
	}()
}

// BroadcastHit forwards a resolved hit to spectators
func (h *WebSocketHub) BroadcastHit(rep game.HitReport) {
	h.Broadcast("match:hit", map[string]interface{}{
		"tick":     rep.Tick,
		"attacker": rep.Attacker,
		"defender": rep.Defender,
		"move":     rep.Move,
		"result":   rep.Outcome.Result.String(),
		"damage":   rep.Outcome.Damage,
		"combo":    rep.Combo.Hits,
	})
}

// HandleWebSocket upgrades a spectator connection. Clients only listen;
// anything they send is discarded.
func (h *WebSocketHub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	ip := GetClientIP(r)

	if h.ClientCount() >= MaxWSConnectionsTotal {
		RecordConnectionRejected("ws_total_limit")
		writeError(w, "too many connections", http.StatusServiceUnavailable)
		return
	}
	if !h.limiter.acquire(ip) {
		RecordConnectionRejected("ws_ip_limit")
		writeError(w, "too many connections from your address", http.StatusTooManyRequests)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("⚠️ WebSocket upgrade: %v", err)
		h.limiter.release(ip)
		return
	}

	select {
	case h.register <- &wsClient{conn: conn, ip: ip}:
	case <-h.stopChan:
		h.limiter.release(ip)
		conn.Close()
		return
	}

	go func() {
		defer func() {
			select {
			case h.unregister <- conn:
			case <-h.stopChan:
			}
		}()
		conn.SetReadLimit(512)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}
