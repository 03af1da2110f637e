package app

import (
	"context"
	"sync"

	"github.com/dkeye/Poker/internal/core"
	"github.com/dkeye/Poker/internal/domain"
	"github.com/rs/zerolog/log"
)

// sessionEntry is what the transport knows about one live connection.
type sessionEntry struct {
	RoomID      domain.RoomID
	DeviceID    domain.DeviceID
	DisplayName string
	Signal      core.SignalConnection
	Cancel      context.CancelFunc
}

type Registry struct {
	mu       sync.RWMutex
	sessions map[domain.ConnID]*sessionEntry
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[domain.ConnID]*sessionEntry),
	}
}

func (r *Registry) Bind(conn domain.ConnID, sig core.SignalConnection, cancel context.CancelFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[conn] = &sessionEntry{Signal: sig, Cancel: cancel}
	log.Info().Str("module", "app.registry").Str("conn", string(conn)).Msg("bound signal")
}

// Attach records the room and device a connection joined with.
func (r *Registry) Attach(conn domain.ConnID, room domain.RoomID, device domain.DeviceID, name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	entry, ok := r.sessions[conn]
	if !ok {
		return false
	}
	entry.RoomID = room
	entry.DeviceID = device
	entry.DisplayName = name
	log.Info().Str("module", "app.registry").Str("conn", string(conn)).Str("room", string(room)).Str("device", string(device)).Msg("attached to room")
	return true
}

// Detach drops the room association but keeps the connection bound.
func (r *Registry) Detach(conn domain.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if entry, ok := r.sessions[conn]; ok {
		entry.RoomID = ""
		entry.DeviceID = ""
		log.Info().Str("module", "app.registry").Str("conn", string(conn)).Msg("removed room association")
	}
}

func (r *Registry) Unbind(conn domain.ConnID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, conn)
	log.Info().Str("module", "app.registry").Str("conn", string(conn)).Msg("unbind session")
}

func (r *Registry) RoomOf(conn domain.ConnID) (domain.RoomID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.sessions[conn]
	if !ok || entry.RoomID == "" {
		return "", false
	}
	return entry.RoomID, true
}

func (r *Registry) DeviceOf(conn domain.ConnID) (domain.DeviceID, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entry, ok := r.sessions[conn]
	if !ok || entry.DeviceID == "" {
		return "", false
	}
	return entry.DeviceID, true
}

func (r *Registry) Signal(conn domain.ConnID) (core.SignalConnection, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if entry, ok := r.sessions[conn]; ok {
		return entry.Signal, true
	}
	return nil, false
}

type regSnap struct {
	Conn   domain.ConnID
	Signal core.SignalConnection
}

func (r *Registry) ConnsOfRoom(room domain.RoomID) []regSnap {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]regSnap, 0, len(r.sessions))
	for conn, e := range r.sessions {
		if e.RoomID == room {
			out = append(out, regSnap{Conn: conn, Signal: e.Signal})
		}
	}
	return out
}

func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

func (r *Registry) Cancel(conn domain.ConnID) bool {
	r.mu.RLock()
	e, ok := r.sessions[conn]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if e.Cancel != nil {
		e.Cancel()
	}
	log.Info().Str("module", "app.registry").Str("conn", string(conn)).Msg("canceled session")
	return true
}
