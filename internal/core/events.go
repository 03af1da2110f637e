package core

import "github.com/dkeye/Poker/internal/domain"

// Outbound event names.
const (
	EventRoomUsers     = "room-users"
	EventScoreUpdate   = "score-update"
	EventShowAllScores = "show-all-scores"
)

type Audience int

const (
	// AudienceRoom delivers to every connection joined to the room.
	AudienceRoom Audience = iota
	// AudienceConn delivers to Event.Target only.
	AudienceConn
)

// Event is produced by a room operation and delivered by the transport adapter.
// Payload is one of RoomUsers, ScoreUpdate or RevealFlag.
type Event struct {
	Name     string
	Audience Audience
	Target   domain.ConnID
	Payload  any
}

type RoomUsers []ParticipantView

type Voter struct {
	DisplayName  string              `json:"name"`
	DeviceID     domain.DeviceID     `json:"deviceId"`
	PersistentID domain.PersistentID `json:"persistentId,omitempty"`
}

type ScoreUpdate struct {
	Voter   Voter       `json:"voter"`
	Vote    domain.Vote `json:"vote"`
	Summary Summary     `json:"summary"`
	// Recovered is set on the private update sent to a reconnecting device.
	Recovered bool `json:"recovered,omitempty"`
}

type RevealFlag bool

func roomUsersEvent(users RoomUsers) Event {
	return Event{Name: EventRoomUsers, Audience: AudienceRoom, Payload: users}
}

func revealEvent(show bool) Event {
	return Event{Name: EventShowAllScores, Audience: AudienceRoom, Payload: RevealFlag(show)}
}
