package app

import (
	"sync/atomic"
	"time"
)

// Stats tracks server activity counters.
type Stats struct {
	activeConnections atomic.Int64
	totalConnections  atomic.Int64
	joins             atomic.Int64
	votes             atomic.Int64
	resets            atomic.Int64
	framesSent        atomic.Int64
	framesDropped     atomic.Int64
	kicks             atomic.Int64

	startTime time.Time
}

func NewStats() *Stats {
	return &Stats{startTime: time.Now()}
}

// Counter methods are no-ops on a nil *Stats.

func (s *Stats) ConnectionOpened() {
	if s == nil {
		return
	}
	s.activeConnections.Add(1)
	s.totalConnections.Add(1)
}

func (s *Stats) ConnectionClosed() {
	if s != nil {
		s.activeConnections.Add(-1)
	}
}

func (s *Stats) Joined() {
	if s != nil {
		s.joins.Add(1)
	}
}

func (s *Stats) Voted() {
	if s != nil {
		s.votes.Add(1)
	}
}

func (s *Stats) RoundReset() {
	if s != nil {
		s.resets.Add(1)
	}
}

func (s *Stats) FrameSent() {
	if s != nil {
		s.framesSent.Add(1)
	}
}

func (s *Stats) FrameDropped() {
	if s != nil {
		s.framesDropped.Add(1)
	}
}

func (s *Stats) Kicked() {
	if s != nil {
		s.kicks.Add(1)
	}
}

type StatsSnapshot struct {
	ActiveConnections int64  `json:"active_connections"`
	TotalConnections  int64  `json:"total_connections"`
	Joins             int64  `json:"joins"`
	Votes             int64  `json:"votes"`
	Resets            int64  `json:"resets"`
	FramesSent        int64  `json:"frames_sent"`
	FramesDropped     int64  `json:"frames_dropped"`
	Kicks             int64  `json:"kicks"`
	BoundConnections  int    `json:"bound_connections"`
	Uptime            string `json:"uptime"`
}

func (s *Stats) Snapshot() StatsSnapshot {
	return StatsSnapshot{
		ActiveConnections: s.activeConnections.Load(),
		TotalConnections:  s.totalConnections.Load(),
		Joins:             s.joins.Load(),
		Votes:             s.votes.Load(),
		Resets:            s.resets.Load(),
		FramesSent:        s.framesSent.Load(),
		FramesDropped:     s.framesDropped.Load(),
		Kicks:             s.kicks.Load(),
		Uptime:            time.Since(s.startTime).Round(time.Second).String(),
	}
}
