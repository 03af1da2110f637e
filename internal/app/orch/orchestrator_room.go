package orch

import (
	"context"

	"github.com/dkeye/Poker/internal/core"
	"github.com/dkeye/Poker/internal/domain"
	"github.com/rs/zerolog/log"
)

// Connect registers a fresh transport connection. It has no room until it joins.
func (o *Orchestrator) Connect(conn domain.ConnID, sig core.SignalConnection, cancel context.CancelFunc) {
	o.Registry.Bind(conn, sig, cancel)
	o.Stats.ConnectionOpened()
}

// Join places conn into roomID. A connection already in another room leaves it first.
func (o *Orchestrator) Join(conn domain.ConnID, roomID domain.RoomID, id domain.Identity, opts core.RoomOptions) {
	if prev, ok := o.Registry.RoomOf(conn); ok && prev != roomID {
		o.leave(conn, prev)
		o.Registry.Detach(conn)
		log.Info().Str("module", "orch").Str("conn", string(conn)).Str("from_room", string(prev)).Msg("left previous room")
	}
	defer o.lockRoom(roomID)()
	if !o.Registry.Attach(conn, roomID, id.DeviceID, id.DisplayName) {
		log.Warn().Str("module", "orch").Str("conn", string(conn)).Msg("join from unbound connection ignored")
		return
	}
	room := o.Rooms.GetOrCreate(roomID, opts)
	res := room.Join(conn, id)
	o.Stats.Joined()
	o.deliver(roomID, res.Events)
}

// Disconnect is called by the transport when a connection is gone.
func (o *Orchestrator) Disconnect(conn domain.ConnID) {
	if roomID, ok := o.Registry.RoomOf(conn); ok {
		o.leave(conn, roomID)
	}
	o.Registry.Unbind(conn)
	o.Stats.ConnectionClosed()
}

func (o *Orchestrator) leave(conn domain.ConnID, roomID domain.RoomID) {
	room, ok := o.Rooms.Get(roomID)
	if !ok {
		return
	}
	defer o.lockRoom(roomID)()
	if ev, changed := room.Disconnect(conn); changed {
		o.deliver(roomID, []core.Event{ev})
	}
}
