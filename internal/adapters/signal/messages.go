package signal

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dkeye/Poker/internal/domain"
)

// Inbound event names.
const (
	EventJoinRoom      = "join-room"
	EventSendScore     = "send-score"
	EventResetScores   = "reset-scores"
	EventShowAllScores = "show-all-scores"
	EventPing          = "ping"
)

var (
	ErrBadPayload   = errors.New("bad payload")
	ErrMissingField = errors.New("missing required field")
	ErrBadNumber    = errors.New("not a finite number")
)

type envelope struct {
	Type string `json:"type"`
}

// flexString accepts a JSON string or number; legacy clients send numeric choice ids.
type flexString struct {
	s   string
	set bool
}

func (f *flexString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		f.s, f.set = s, true
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("%w: expected string or number", ErrBadPayload)
	}
	f.s, f.set = n.String(), true
	return nil
}

// flexNumber accepts a JSON number or a numeric string.
type flexNumber struct {
	v   float64
	set bool
}

func (f *flexNumber) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err == nil {
		f.v, f.set = v, true
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return ErrBadNumber
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return ErrBadNumber
	}
	f.v, f.set = v, true
	return nil
}

// JoinRoomRequest is the validated form of a join-room event.
type JoinRoomRequest struct {
	RoomID   domain.RoomID
	Identity domain.Identity
	Strategy domain.Strategy
}

type joinRoomWire struct {
	RoomID       string `json:"roomId"`
	Room         string `json:"room"`
	DisplayName  string `json:"displayName"`
	Name         string `json:"name"`
	IsAdmin      bool   `json:"isAdmin"`
	DeviceID     string `json:"deviceId"`
	PersistentID string `json:"persistentId"`
	Strategy     string `json:"strategy"`
}

// DecodeJoinRoom validates a join-room payload. Legacy clients send room and name.
func DecodeJoinRoom(data []byte) (JoinRoomRequest, error) {
	var w joinRoomWire
	if err := json.Unmarshal(data, &w); err != nil {
		return JoinRoomRequest{}, fmt.Errorf("%w: %w", ErrBadPayload, err)
	}
	raw := w.RoomID
	if raw == "" {
		raw = w.Room
	}
	roomID, err := domain.ParseRoomID(raw)
	if err != nil {
		return JoinRoomRequest{}, fmt.Errorf("roomId: %w", err)
	}
	name := w.DisplayName
	if name == "" {
		name = w.Name
	}
	id, err := domain.NewIdentity(w.PersistentID, w.DeviceID, name, w.IsAdmin)
	if err != nil {
		return JoinRoomRequest{}, err
	}
	var strategy domain.Strategy
	if w.Strategy != "" {
		if strategy, err = domain.ParseStrategy(w.Strategy); err != nil {
			return JoinRoomRequest{}, err
		}
	}
	return JoinRoomRequest{RoomID: roomID, Identity: id, Strategy: strategy}, nil
}

type sendScoreWire struct {
	ChoiceID flexString `json:"choiceId"`
	ScoreID  flexString `json:"scoreId"`
	Value    flexNumber `json:"value"`
	Score    flexNumber `json:"score"`
}

// DecodeSendScore validates a send-score payload. Legacy clients send scoreId and score.
func DecodeSendScore(data []byte) (domain.Vote, error) {
	var w sendScoreWire
	if err := json.Unmarshal(data, &w); err != nil {
		if errors.Is(err, ErrBadNumber) {
			return domain.Vote{}, err
		}
		return domain.Vote{}, fmt.Errorf("%w: %w", ErrBadPayload, err)
	}
	choice := w.ChoiceID
	if !choice.set {
		choice = w.ScoreID
	}
	value := w.Value
	if !value.set {
		value = w.Score
	}
	if !choice.set {
		return domain.Vote{}, fmt.Errorf("%w: choiceId", ErrMissingField)
	}
	if !value.set {
		return domain.Vote{}, fmt.Errorf("%w: value", ErrMissingField)
	}
	if len(choice.s) > domain.MaxIDLen {
		return domain.Vote{}, domain.ErrIDTooLong
	}
	vote := domain.Vote{ChoiceID: domain.ChoiceID(choice.s), Value: value.v}
	if vote.Malformed() {
		return domain.Vote{}, fmt.Errorf("%w: value out of range", ErrBadNumber)
	}
	return vote, nil
}

// DecodeShowAllScores validates a show-all-scores payload.
func DecodeShowAllScores(data []byte) (bool, error) {
	var w struct {
		Show *bool `json:"show"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return false, fmt.Errorf("%w: %w", ErrBadPayload, err)
	}
	if w.Show == nil {
		return false, fmt.Errorf("%w: show", ErrMissingField)
	}
	return *w.Show, nil
}
