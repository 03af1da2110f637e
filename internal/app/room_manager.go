package app

import (
	"sort"
	"sync"

	"github.com/dkeye/Poker/internal/core"
	"github.com/dkeye/Poker/internal/domain"
	"github.com/rs/zerolog/log"
)

type RoomManagerImpl struct {
	mu       sync.RWMutex
	rooms    map[domain.RoomID]core.RoomService
	defaults core.RoomOptions
}

// NewRoomManager uses defaults for any option a creator leaves empty.
func NewRoomManager(defaults core.RoomOptions) core.RoomManager {
	return &RoomManagerImpl{
		rooms:    make(map[domain.RoomID]core.RoomService),
		defaults: defaults,
	}
}

// GetOrCreate returns the existing room untouched; opts only apply on creation.
func (f *RoomManagerImpl) GetOrCreate(id domain.RoomID, opts core.RoomOptions) core.RoomService {
	f.mu.RLock()
	room, ok := f.rooms[id]
	f.mu.RUnlock()
	if ok {
		return room
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if room, ok = f.rooms[id]; ok {
		return room
	}
	if opts.Strategy == "" {
		opts.Strategy = f.defaults.Strategy
	}
	if opts.Disconnect == "" {
		opts.Disconnect = f.defaults.Disconnect
	}
	room = core.NewRoomService(&domain.Room{ID: id, Strategy: opts.Strategy, Disconnect: opts.Disconnect})
	f.rooms[id] = room
	log.Info().Str("module", "app.rooms").Str("room", string(id)).
		Str("strategy", string(room.Room().Strategy)).Str("disconnect", string(room.Room().Disconnect)).Msg("room created")
	return room
}

func (f *RoomManagerImpl) Get(id domain.RoomID) (core.RoomService, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	room, ok := f.rooms[id]
	return room, ok
}

func (f *RoomManagerImpl) List() []core.RoomInfo {
	f.mu.RLock()
	rooms := make([]core.RoomService, 0, len(f.rooms))
	for _, r := range f.rooms {
		rooms = append(rooms, r)
	}
	f.mu.RUnlock()

	out := make([]core.RoomInfo, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, core.RoomInfo{ID: r.Room().ID, Strategy: r.Room().Strategy, MemberCount: r.MemberCount()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
