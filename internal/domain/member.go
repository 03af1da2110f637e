package domain

import "math"

type ChoiceID string

// MaxVoteValue bounds the magnitude of an estimate.
const MaxVoteValue = 1e9

// Vote is a participant's estimate for the current round.
type Vote struct {
	ChoiceID ChoiceID `json:"choiceId"`
	Value    float64  `json:"value"`
}

// HasEstimate reports whether the vote counts towards the tally.
// A zero value means "no estimate".
func (v *Vote) HasEstimate() bool {
	return v != nil && v.Value != 0
}

// Malformed reports a value that cannot take part in aggregation.
func (v *Vote) Malformed() bool {
	return v != nil && (math.IsNaN(v.Value) || math.Abs(v.Value) > MaxVoteValue)
}

// Participant represents one member of a room.
// The connection id is the room's map key and is not stored here.
type Participant struct {
	PersistentID PersistentID
	DeviceID     DeviceID
	DisplayName  string
	IsAdmin      bool
	Vote         *Vote
	IsOnline     bool
}

// NewParticipant builds a fresh, online participant without a vote.
func NewParticipant(id Identity) *Participant {
	return &Participant{
		PersistentID: id.PersistentID,
		DeviceID:     id.DeviceID,
		DisplayName:  id.DisplayName,
		IsAdmin:      id.IsAdmin,
		IsOnline:     true,
	}
}

// Clone returns a deep copy so snapshots never alias room state.
func (p *Participant) Clone() Participant {
	c := *p
	if p.Vote != nil {
		v := *p.Vote
		c.Vote = &v
	}
	return c
}
