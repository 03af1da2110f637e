package core

import (
	"slices"
	"sync"

	"github.com/dkeye/Poker/internal/domain"
	"github.com/rs/zerolog/log"
)

// roomImpl is a threadsafe in-memory room.
// Participants are kept in join order so summaries are deterministic.
type roomImpl struct {
	room     *domain.Room
	mu       sync.Mutex
	order    []domain.ConnID
	members  map[domain.ConnID]*domain.Participant
	revealed bool
}

func NewRoomService(room *domain.Room) RoomService {
	if room.Strategy == "" {
		room.Strategy = domain.StrategyConsensus
	}
	if room.Disconnect == "" {
		room.Disconnect = domain.DisconnectSoft
	}
	return &roomImpl{
		room:    room,
		members: make(map[domain.ConnID]*domain.Participant),
	}
}

func (r *roomImpl) Room() *domain.Room { return r.room }

func (r *roomImpl) MemberCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.members)
}

func (r *roomImpl) Join(conn domain.ConnID, id domain.Identity) JoinResult {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec := Reconcile(r.order, r.members, id.DeviceID)
	for _, stale := range rec.Stale {
		r.remove(stale)
	}
	if rec.Matched() {
		r.remove(rec.Match)
	}
	// A rejoin on the same connection with another device replaces the old record.
	r.remove(conn)

	p := Merge(id, rec)
	r.insert(conn, p)

	logger := log.With().Str("module", "core.room").Str("room", string(r.room.ID)).
		Str("conn", string(conn)).Str("device", string(id.DeviceID)).Logger()
	if len(rec.Stale) > 0 {
		logger.Debug().Int("purged", len(rec.Stale)).Msg("purged participants without device")
	}
	if rec.Matched() {
		logger.Info().Str("previous_conn", string(rec.Match)).Bool("vote_recovered", p.Vote != nil).Msg("participant reconciled")
	} else {
		logger.Info().Msg("participant joined")
	}

	res := JoinResult{
		Participant: viewOf(conn, p),
		Reconciled:  rec.Matched(),
		Events:      []Event{roomUsersEvent(r.views())},
	}
	if rec.Matched() && p.Vote.HasEstimate() {
		res.Events = append(res.Events, Event{
			Name:     EventScoreUpdate,
			Audience: AudienceConn,
			Target:   conn,
			Payload: ScoreUpdate{
				Voter:     voterOf(p),
				Vote:      *p.Vote,
				Summary:   r.summary(),
				Recovered: true,
			},
		})
	}
	return res
}

func (r *roomImpl) SubmitVote(device domain.DeviceID, vote domain.Vote) VoteResult {
	if device == "" {
		return VoteResult{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	p := r.byDevice(device)
	if p == nil {
		log.Debug().Str("module", "core.room").Str("room", string(r.room.ID)).Str("device", string(device)).Msg("vote from unknown device ignored")
		return VoteResult{}
	}
	v := vote
	p.Vote = &v
	log.Info().Str("module", "core.room").Str("room", string(r.room.ID)).Str("device", string(device)).
		Str("choice", string(vote.ChoiceID)).Float64("value", vote.Value).Msg("vote recorded")

	return VoteResult{
		Accepted: true,
		Events: []Event{{
			Name:     EventScoreUpdate,
			Audience: AudienceRoom,
			Payload: ScoreUpdate{
				Voter:   voterOf(p),
				Vote:    vote,
				Summary: r.summary(),
			},
		}},
	}
}

func (r *roomImpl) Reset() ResetResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.members {
		p.Vote = nil
	}
	r.revealed = false
	log.Info().Str("module", "core.room").Str("room", string(r.room.ID)).Msg("votes reset")
	return ResetResult{Events: []Event{revealEvent(false), roomUsersEvent(r.views())}}
}

func (r *roomImpl) SetReveal(show bool) Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revealed = show
	return revealEvent(show)
}

func (r *roomImpl) Disconnect(conn domain.ConnID) (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.members[conn]
	if !ok {
		return Event{}, false
	}
	switch r.room.Disconnect {
	case domain.DisconnectHard:
		r.remove(conn)
		log.Info().Str("module", "core.room").Str("room", string(r.room.ID)).Str("conn", string(conn)).Msg("participant removed")
	default:
		if !MarkOffline(p) {
			return Event{}, false
		}
		log.Info().Str("module", "core.room").Str("room", string(r.room.ID)).Str("conn", string(conn)).Msg("participant offline")
	}
	return roomUsersEvent(r.views()), true
}

func (r *roomImpl) Snapshot() RoomSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RoomSnapshot{
		ID:           r.room.ID,
		Revealed:     r.revealed,
		Participants: r.views(),
		Summary:      r.summary(),
	}
}

// Helpers below expect r.mu to be held.

func (r *roomImpl) insert(conn domain.ConnID, p *domain.Participant) {
	r.members[conn] = p
	r.order = append(r.order, conn)
}

func (r *roomImpl) remove(conn domain.ConnID) {
	if _, ok := r.members[conn]; !ok {
		return
	}
	delete(r.members, conn)
	if i := slices.Index(r.order, conn); i >= 0 {
		r.order = slices.Delete(r.order, i, i+1)
	}
}

func (r *roomImpl) byDevice(device domain.DeviceID) *domain.Participant {
	for _, conn := range r.order {
		if p := r.members[conn]; p.DeviceID == device {
			return p
		}
	}
	return nil
}

func (r *roomImpl) participants() []domain.Participant {
	out := make([]domain.Participant, 0, len(r.order))
	for _, conn := range r.order {
		out = append(out, r.members[conn].Clone())
	}
	return out
}

func (r *roomImpl) summary() Summary {
	return Summarize(r.room.Strategy, r.participants())
}

func (r *roomImpl) views() RoomUsers {
	out := make(RoomUsers, 0, len(r.order))
	for _, conn := range r.order {
		out = append(out, viewOf(conn, r.members[conn]))
	}
	return out
}

func viewOf(conn domain.ConnID, p *domain.Participant) ParticipantView {
	c := p.Clone()
	return ParticipantView{
		ConnID:       conn,
		PersistentID: c.PersistentID,
		DeviceID:     c.DeviceID,
		DisplayName:  c.DisplayName,
		IsAdmin:      c.IsAdmin,
		IsOnline:     c.IsOnline,
		Presence:     PresenceOf(&c).String(),
		Vote:         c.Vote,
	}
}

func voterOf(p *domain.Participant) Voter {
	return Voter{DisplayName: p.DisplayName, DeviceID: p.DeviceID, PersistentID: p.PersistentID}
}
