package app

import (
	"fmt"

	"github.com/dkeye/Poker/internal/domain"
)

type BackpressureAction int

const (
	NoAction BackpressureAction = iota
	KickConnection
	DropFrame
)

// Policy decides what to do with a connection whose send buffer is full.
type Policy interface {
	OnBackPressure(room domain.RoomID, conn domain.ConnID) BackpressureAction
}

// SimplePolicy kicks slow connections; the client reconnects and recovers its vote.
type SimplePolicy struct{}

func (SimplePolicy) OnBackPressure(domain.RoomID, domain.ConnID) BackpressureAction {
	return KickConnection
}

// DropPolicy keeps slow connections and discards the frame.
type DropPolicy struct{}

func (DropPolicy) OnBackPressure(domain.RoomID, domain.ConnID) BackpressureAction {
	return DropFrame
}

func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "", "kick":
		return SimplePolicy{}, nil
	case "drop":
		return DropPolicy{}, nil
	}
	return nil, fmt.Errorf("unknown backpressure policy %q", name)
}
