package stream

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const writeWait = 5 * time.Second

// Conn is the part of a websocket connection the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

type subscriber struct {
	conn Conn
	mu   sync.Mutex
}

func (s *subscriber) write(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeLocked(data)
}

// writeLocked sends data; the caller holds s.mu.
func (s *subscriber) writeLocked(data []byte) error {
	s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return s.conn.WriteMessage(websocket.TextMessage, data)
}

// Hub owns the set of subscribers and the most recent frame.
type Hub struct {
	mu          sync.Mutex
	subscribers map[uint64]*subscriber
	nextID      atomic.Uint64
	latest      []byte
	logger      *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		subscribers: make(map[uint64]*subscriber),
		logger:      logger,
	}
}

// Subscribe registers conn and sends it the latest frame, if any. The
// catch-up frame is written before any frame published after it.
func (h *Hub) Subscribe(conn Conn) (uint64, error) {
	id := h.nextID.Add(1)
	sub := &subscriber{conn: conn}

	// Publish snapshots subscribers under h.mu and then waits on sub.mu, so
	// holding sub.mu across the join keeps newer frames behind this one.
	sub.mu.Lock()
	h.mu.Lock()
	h.subscribers[id] = sub
	latest := h.latest
	h.mu.Unlock()

	var err error
	if latest != nil {
		err = sub.writeLocked(latest)
	}
	sub.mu.Unlock()
	if err != nil {
		h.Disconnect(id)
		return 0, err
	}
	h.logger.Debug("subscriber joined", "id", id)
	return id, nil
}

// Disconnect removes a subscriber and closes its connection.
func (h *Hub) Disconnect(id uint64) {
	h.mu.Lock()
	sub, ok := h.subscribers[id]
	delete(h.subscribers, id)
	h.mu.Unlock()

	if ok {
		sub.conn.Close()
		h.logger.Debug("subscriber left", "id", id)
	}
}

// Len reports the number of connected subscribers.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Publish encodes f, keeps it for late joiners and sends it to every
// subscriber. Subscribers whose writes fail are dropped.
func (h *Hub) Publish(f Frame) {
	data, err := f.Marshal()
	if err != nil {
		h.logger.Error("failed to marshal frame", "generation", f.Generation, "err", err)
		return
	}

	h.mu.Lock()
	h.latest = data
	subs := make(map[uint64]*subscriber, len(h.subscribers))
	for id, sub := range h.subscribers {
		subs[id] = sub
	}
	h.mu.Unlock()

	for id, sub := range subs {
		if err := sub.write(data); err != nil {
			h.logger.Warn("failed to send frame", "id", id, "err", err)
			h.Disconnect(id)
		}
	}
}

// Close disconnects every subscriber.
func (h *Hub) Close() {
	h.mu.Lock()
	ids := make([]uint64, 0, len(h.subscribers))
	for id := range h.subscribers {
		ids = append(ids, id)
	}
	h.mu.Unlock()

	for _, id := range ids {
		h.Disconnect(id)
	}
}
