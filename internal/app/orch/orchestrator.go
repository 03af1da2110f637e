package orch

import (
	"sync"

	"github.com/dkeye/Poker/internal/app"
	"github.com/dkeye/Poker/internal/core"
	"github.com/dkeye/Poker/internal/domain"
	"github.com/rs/zerolog/log"
)

// Encoder turns a room event into a wire frame. Owned by the transport adapter.
type Encoder interface {
	Encode(core.Event) (core.Frame, error)
}

// Orchestrator routes connection-level requests to rooms and fans out
// the resulting events. Delivery is fire-and-forget.
type Orchestrator struct {
	Registry *app.Registry
	Rooms    core.RoomManager
	Policy   app.Policy
	Stats    *app.Stats
	Codec    Encoder

	// roomLocks holds one *sync.Mutex per room id. A room op and the delivery
	// of its events run under it, so clients see events in op order.
	roomLocks sync.Map
}

// StatsSnapshot adds the registry's live connection count to the counters.
func (o *Orchestrator) StatsSnapshot() app.StatsSnapshot {
	snap := o.Stats.Snapshot()
	snap.BoundConnections = o.Registry.Count()
	return snap
}

func (o *Orchestrator) lockRoom(id domain.RoomID) func() {
	mu, _ := o.roomLocks.LoadOrStore(id, &sync.Mutex{})
	m := mu.(*sync.Mutex)
	m.Lock()
	return m.Unlock
}

func (o *Orchestrator) deliver(room domain.RoomID, events []core.Event) {
	for _, ev := range events {
		frame, err := o.Codec.Encode(ev)
		if err != nil {
			log.Error().Err(err).Str("module", "orch").Str("event", ev.Name).Msg("encode event")
			continue
		}
		switch ev.Audience {
		case core.AudienceConn:
			if sig, ok := o.Registry.Signal(ev.Target); ok {
				o.send(room, ev.Target, sig, frame)
			}
		default:
			for _, snap := range o.Registry.ConnsOfRoom(room) {
				o.send(room, snap.Conn, snap.Signal, frame)
			}
		}
	}
}

func (o *Orchestrator) send(room domain.RoomID, conn domain.ConnID, sig core.SignalConnection, frame core.Frame) {
	if sig == nil {
		return
	}
	if err := sig.TrySend(frame); err == nil {
		o.Stats.FrameSent()
		return
	}
	o.Stats.FrameDropped()
	if o.Policy == nil {
		return
	}
	switch o.Policy.OnBackPressure(room, conn) {
	case app.KickConnection:
		log.Warn().Str("module", "orch").Str("room", string(room)).Str("conn", string(conn)).Msg("kicking slow connection")
		o.Stats.Kicked()
		o.Registry.Cancel(conn)
	case app.DropFrame, app.NoAction:
	}
}
