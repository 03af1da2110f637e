package core

import "github.com/dkeye/Poker/internal/domain"

type Presence int

const (
	Offline Presence = iota
	Online
)

func (p Presence) String() string {
	if p == Online {
		return "online"
	}
	return "offline"
}

func PresenceOf(p *domain.Participant) Presence {
	if p.IsOnline {
		return Online
	}
	return Offline
}

// MarkOnline reports whether the participant changed state.
func MarkOnline(p *domain.Participant) bool {
	changed := !p.IsOnline
	p.IsOnline = true
	return changed
}

// MarkOffline reports whether the participant changed state.
func MarkOffline(p *domain.Participant) bool {
	changed := p.IsOnline
	p.IsOnline = false
	return changed
}
