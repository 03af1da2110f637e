package core

import (
	"math"
	"sort"

	"github.com/dkeye/Poker/internal/domain"
	"github.com/rs/zerolog/log"
)

type DistributionEntry struct {
	Value      float64 `json:"value"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentageOfVotesCast"`
}

type ModeEntry struct {
	ChoiceID      domain.ChoiceID `json:"choiceId"`
	Value         float64         `json:"value"`
	Count         int             `json:"count"`
	IsWinningMode bool            `json:"isWinningMode"`
}

// Summary is derived from the live participant set and never stored.
type Summary struct {
	Strategy          domain.Strategy     `json:"strategy"`
	TotalVotes        int                 `json:"totalVotes"`
	Distribution      []DistributionEntry `json:"distribution"`
	ConsensusEstimate float64             `json:"consensusEstimate"`
	ModeEntries       []ModeEntry         `json:"modeEntries"`
}

// Summarize computes the room summary for the given strategy.
// Participants are expected in a stable order; the mode summary depends on it.
func Summarize(strategy domain.Strategy, participants []domain.Participant) Summary {
	votes := countableVotes(participants)
	s := Summary{
		Strategy:     strategy,
		TotalVotes:   len(votes),
		Distribution: []DistributionEntry{},
		ModeEntries:  []ModeEntry{},
	}
	switch strategy {
	case domain.StrategyMode:
		s.ModeEntries = modeOf(votes)
	case domain.StrategyBoth:
		s.Distribution, s.ConsensusEstimate = consensusOf(votes)
		s.ModeEntries = modeOf(votes)
	default:
		s.Strategy = domain.StrategyConsensus
		s.Distribution, s.ConsensusEstimate = consensusOf(votes)
	}
	return s
}

func countableVotes(participants []domain.Participant) []domain.Vote {
	out := make([]domain.Vote, 0, len(participants))
	for _, p := range participants {
		if !p.Vote.HasEstimate() {
			continue
		}
		if p.Vote.Malformed() {
			log.Debug().Str("module", "core.aggregate").Str("device", string(p.DeviceID)).Msg("skipping malformed vote")
			continue
		}
		out = append(out, *p.Vote)
	}
	return out
}

// consensusOf groups votes by raw value and snaps the weighted average to Fibonacci.
func consensusOf(votes []domain.Vote) ([]DistributionEntry, float64) {
	if len(votes) == 0 {
		return []DistributionEntry{}, 0
	}
	counts := make(map[float64]int)
	var mean float64
	for i, v := range votes {
		counts[v.Value]++
		mean += (v.Value - mean) / float64(i+1)
	}
	total := float64(len(votes))
	dist := make([]DistributionEntry, 0, len(counts))
	for value, n := range counts {
		dist = append(dist, DistributionEntry{
			Value:      value,
			Count:      n,
			Percentage: 100 * float64(n) / total,
		})
	}
	sort.Slice(dist, func(i, j int) bool { return dist[i].Value < dist[j].Value })
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		log.Debug().Str("module", "core.aggregate").Msg("average out of range, estimate dropped")
		return dist, 0
	}
	return dist, ClosestFibonacci(mean)
}

type modeKey struct {
	choice domain.ChoiceID
	value  float64
}

// modeOf scans (choiceId, value) groups in first-seen order. A group above the
// running maximum replaces the result list, an equal group is appended as a
// winner, a lower group is appended as a non-winner.
func modeOf(votes []domain.Vote) []ModeEntry {
	counts := make(map[modeKey]int)
	order := make([]modeKey, 0)
	for _, v := range votes {
		k := modeKey{choice: v.ChoiceID, value: v.Value}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	out := []ModeEntry{}
	maxCount := 0
	for _, k := range order {
		n := counts[k]
		e := ModeEntry{ChoiceID: k.choice, Value: k.value, Count: n}
		switch {
		case n > maxCount:
			maxCount = n
			e.IsWinningMode = true
			out = []ModeEntry{e}
		case n == maxCount:
			e.IsWinningMode = true
			out = append(out, e)
		default:
			out = append(out, e)
		}
	}
	return out
}

// ClosestFibonacci returns the Fibonacci term nearest to target.
// Ties go to the larger term; non-positive and non-finite targets yield 0.
func ClosestFibonacci(target float64) float64 {
	if math.IsNaN(target) || math.IsInf(target, 0) || target <= 0 {
		return 0
	}
	a, b := 0.0, 1.0
	for b < target {
		a, b = b, a+b
	}
	if target-a < b-target {
		return a
	}
	return b
}
