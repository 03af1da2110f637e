package core

import "github.com/dkeye/Poker/internal/domain"

// Frame is a raw encoded payload ready for the wire.
type Frame []byte

// SignalConnection abstracts for a system messaging transport
// Owned by the adapter; the adapter must Close() it.
type SignalConnection interface {
	TrySend(Frame) error
	Close()
}

// ParticipantView is a read-only view for broadcasts and APIs (no transport fields).
type ParticipantView struct {
	ConnID       domain.ConnID       `json:"id"`
	PersistentID domain.PersistentID `json:"persistentId,omitempty"`
	DeviceID     domain.DeviceID     `json:"deviceId"`
	DisplayName  string              `json:"name"`
	IsAdmin      bool                `json:"isAdmin"`
	IsOnline     bool                `json:"isOnline"`
	Presence     string              `json:"presence"`
	Vote         *domain.Vote        `json:"vote,omitempty"`
}

type JoinResult struct {
	Participant ParticipantView
	Reconciled  bool
	Events      []Event
}

type VoteResult struct {
	Accepted bool
	Events   []Event
}

type ResetResult struct {
	Events []Event
}

type RoomSnapshot struct {
	ID           domain.RoomID     `json:"id"`
	Revealed     bool              `json:"revealed"`
	Participants []ParticipantView `json:"participants"`
	Summary      Summary           `json:"summary"`
}

// RoomService is the core-facing API of a room.
// It owns the participant set but never touches transport resources.
// Every method is atomic with respect to the others on the same room.
type RoomService interface {
	Room() *domain.Room
	MemberCount() int
	Snapshot() RoomSnapshot

	Join(conn domain.ConnID, id domain.Identity) JoinResult
	SubmitVote(device domain.DeviceID, vote domain.Vote) VoteResult
	Reset() ResetResult
	SetReveal(show bool) Event
	Disconnect(conn domain.ConnID) (Event, bool)
}

type RoomInfo struct {
	ID          domain.RoomID   `json:"id"`
	Strategy    domain.Strategy `json:"strategy"`
	MemberCount int             `json:"member_count"`
}

// RoomOptions configure a room at creation time.
type RoomOptions struct {
	Strategy   domain.Strategy
	Disconnect domain.DisconnectPolicy
}

type RoomManager interface {
	GetOrCreate(id domain.RoomID, opts RoomOptions) RoomService
	Get(id domain.RoomID) (RoomService, bool)
	List() []RoomInfo
}
