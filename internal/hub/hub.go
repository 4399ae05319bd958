// Package hub fans out state-change events to connected display sessions.
package hub

import (
	"encoding/json"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"spinwheel/internal/history"
	"spinwheel/internal/models"
	"spinwheel/internal/store"
)

// Session is one connected display's push channel. Send must be safe for use
// from the hub's goroutines; a failed Send marks the session dead.
type Session interface {
	ID() string
	Send(data []byte) error
	Close(reason string)
}

// Hub tracks live sessions and pushes every state change to all of them. It
// holds non-owning references only; a session that fails a send is dropped
// without affecting the rest.
type Hub struct {
	Store  *store.Store
	Log    *history.Log
	Logger *zap.Logger

	mu       sync.RWMutex
	sessions map[string]Session

	droppedSends uint64
}

func New(st *store.Store, log *history.Log, logger *zap.Logger) *Hub {
	return &Hub{
		Store:    st,
		Log:      log,
		Logger:   logger,
		sessions: map[string]Session{},
	}
}

// Register adds a session and immediately pushes the catch-up snapshot:
// current config, the most recent history entries, then current settings, in
// that order, so a display always starts consistent no matter when it joins.
func (h *Hub) Register(sess Session) {
	if h == nil || sess == nil {
		return
	}
	h.mu.Lock()
	h.sessions[sess.ID()] = sess
	h.mu.Unlock()

	snapshot := []models.Event{
		{Type: models.EventConfig, Payload: h.Store.ReadConfig()},
		{Type: models.EventHistory, Payload: h.Log.List(models.SnapshotHistoryLimit)},
		{Type: models.EventSettings, Payload: h.Store.ReadSettings()},
	}
	for _, evt := range snapshot {
		data, err := json.Marshal(evt)
		if err != nil {
			continue
		}
		if err := sess.Send(data); err != nil {
			h.drop(sess, "snapshot send failed")
			return
		}
	}
	if h.Logger != nil {
		h.Logger.Info("display session connected",
			zap.String("session", sess.ID()), zap.Int("sessions", h.Count()))
	}
}

// Unregister removes a session; safe to call for sessions already gone.
func (h *Hub) Unregister(id string) {
	h.mu.Lock()
	_, ok := h.sessions[id]
	delete(h.sessions, id)
	h.mu.Unlock()
	if ok && h.Logger != nil {
		h.Logger.Info("display session disconnected",
			zap.String("session", id), zap.Int("sessions", h.Count()))
	}
}

// Publish sends the event to every registered session. A broken session is
// dropped silently; it never fails the originating request, so Publish has no
// error return.
func (h *Hub) Publish(evt models.Event) {
	data, err := json.Marshal(evt)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("marshal broadcast event failed",
				zap.String("type", string(evt.Type)), zap.Error(err))
		}
		return
	}

	h.mu.RLock()
	targets := make([]Session, 0, len(h.sessions))
	for _, sess := range h.sessions {
		targets = append(targets, sess)
	}
	h.mu.RUnlock()

	for _, sess := range targets {
		if err := sess.Send(data); err != nil {
			h.drop(sess, "send failed")
		}
	}
}

func (h *Hub) drop(sess Session, reason string) {
	atomic.AddUint64(&h.droppedSends, 1)
	h.Unregister(sess.ID())
	sess.Close(reason)
}

// Count reports currently registered sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// DroppedSends reports sessions dropped after a failed send, for stats logs.
func (h *Hub) DroppedSends() uint64 {
	return atomic.LoadUint64(&h.droppedSends)
}

// CloseAll disconnects every session, used on shutdown.
func (h *Hub) CloseAll(reason string) {
	h.mu.Lock()
	sessions := make([]Session, 0, len(h.sessions))
	for _, sess := range h.sessions {
		sessions = append(sessions, sess)
	}
	h.sessions = map[string]Session{}
	h.mu.Unlock()
	for _, sess := range sessions {
		sess.Close(reason)
	}
}
