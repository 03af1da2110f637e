package domain

import (
	"errors"
	"fmt"
)

const MaxRoomIDLen = 64

var (
	ErrRoomIDEmpty             = errors.New("room id empty")
	ErrRoomIDTooLong           = errors.New("room id too long")
	ErrUnknownStrategy         = errors.New("unknown aggregation strategy")
	ErrUnknownDisconnectPolicy = errors.New("unknown disconnect policy")
)

// RoomID is opaque and case-sensitive.
type RoomID string

func ParseRoomID(raw string) (RoomID, error) {
	if raw == "" {
		return "", ErrRoomIDEmpty
	}
	if len(raw) > MaxRoomIDLen {
		return "", ErrRoomIDTooLong
	}
	return RoomID(raw), nil
}

// Strategy selects which summary a room broadcasts.
type Strategy string

const (
	StrategyConsensus Strategy = "consensus"
	StrategyMode      Strategy = "mode"
	StrategyBoth      Strategy = "both"
)

func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(s) {
	case StrategyConsensus, StrategyMode, StrategyBoth:
		return Strategy(s), nil
	case "":
		return StrategyConsensus, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, s)
}

// DisconnectPolicy decides what happens to a participant whose connection drops.
type DisconnectPolicy string

const (
	// DisconnectSoft marks the participant offline and keeps its vote for a later reconnect.
	DisconnectSoft DisconnectPolicy = "soft"
	// DisconnectHard removes the participant record.
	DisconnectHard DisconnectPolicy = "hard"
)

func ParseDisconnectPolicy(s string) (DisconnectPolicy, error) {
	switch DisconnectPolicy(s) {
	case DisconnectSoft, DisconnectHard:
		return DisconnectPolicy(s), nil
	case "":
		return DisconnectSoft, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDisconnectPolicy, s)
}

type Room struct {
	ID         RoomID
	Strategy   Strategy
	Disconnect DisconnectPolicy
}
