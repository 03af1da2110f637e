package orch

import (
	"github.com/dkeye/Poker/internal/core"
	"github.com/dkeye/Poker/internal/domain"
	"github.com/rs/zerolog/log"
)

// roomOf resolves the room a connection joined. Unknown rooms and
// unidentified connections are silent no-ops for every caller.
func (o *Orchestrator) roomOf(conn domain.ConnID) (domain.RoomID, core.RoomService, bool) {
	roomID, ok := o.Registry.RoomOf(conn)
	if !ok {
		log.Debug().Str("module", "orch").Str("conn", string(conn)).Msg("no room for connection")
		return "", nil, false
	}
	room, ok := o.Rooms.Get(roomID)
	if !ok {
		log.Debug().Str("module", "orch").Str("room", string(roomID)).Msg("unknown room")
		return "", nil, false
	}
	return roomID, room, true
}

func (o *Orchestrator) Vote(conn domain.ConnID, vote domain.Vote) {
	roomID, room, ok := o.roomOf(conn)
	if !ok {
		return
	}
	device, ok := o.Registry.DeviceOf(conn)
	if !ok {
		log.Debug().Str("module", "orch").Str("conn", string(conn)).Msg("vote without device ignored")
		return
	}
	defer o.lockRoom(roomID)()
	res := room.SubmitVote(device, vote)
	if !res.Accepted {
		return
	}
	o.Stats.Voted()
	o.deliver(roomID, res.Events)
}

func (o *Orchestrator) Reset(conn domain.ConnID) {
	roomID, room, ok := o.roomOf(conn)
	if !ok {
		return
	}
	defer o.lockRoom(roomID)()
	res := room.Reset()
	o.Stats.RoundReset()
	o.deliver(roomID, res.Events)
}

func (o *Orchestrator) Reveal(conn domain.ConnID, show bool) {
	roomID, room, ok := o.roomOf(conn)
	if !ok {
		return
	}
	defer o.lockRoom(roomID)()
	o.deliver(roomID, []core.Event{room.SetReveal(show)})
}
