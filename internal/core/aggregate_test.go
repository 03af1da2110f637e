package core_test

import (
	"math"
	"testing"

	"github.com/dkeye/Poker/internal/core"
	"github.com/dkeye/Poker/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func voter(device string, choice string, value float64) domain.Participant {
	return domain.Participant{
		DeviceID: domain.DeviceID(device),
		Vote:     &domain.Vote{ChoiceID: domain.ChoiceID(choice), Value: value},
		IsOnline: true,
	}
}

func TestClosestFibonacci(t *testing.T) {
	tests := []struct {
		name   string
		target float64
		want   float64
	}{
		{"zero", 0, 0},
		{"negative", -4, 0},
		{"one", 1, 1},
		{"tie goes to larger", 1.5, 2},
		{"below midpoint", 3.667, 3},
		{"above midpoint", 4.2, 5},
		{"tie between 5 and 8", 6.5, 8},
		{"exact 13", 13, 13},
		{"exact 21", 21, 21},
		{"small fraction", 0.4, 0},
		{"half", 0.5, 1},
		{"large", 100, 89},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, core.ClosestFibonacci(tt.target))
		})
	}

	t.Run("fixed points", func(t *testing.T) {
		a, b := 0.0, 1.0
		for i := 0; i < 30; i++ {
			assert.Equal(t, a, core.ClosestFibonacci(a))
			a, b = b, a+b
		}
	})

	t.Run("monotonic", func(t *testing.T) {
		prev := core.ClosestFibonacci(0)
		for x := 0.0; x < 200; x += 0.05 {
			got := core.ClosestFibonacci(x)
			assert.GreaterOrEqual(t, got, prev, "x=%v", x)
			prev = got
		}
	})

	t.Run("NaN", func(t *testing.T) {
		assert.Equal(t, 0.0, core.ClosestFibonacci(math.NaN()))
	})

	t.Run("infinity", func(t *testing.T) {
		assert.Equal(t, 0.0, core.ClosestFibonacci(math.Inf(1)))
		assert.Equal(t, 0.0, core.ClosestFibonacci(math.Inf(-1)))
	})
}

func TestSummarize_Consensus(t *testing.T) {
	t.Run("three and five scenario", func(t *testing.T) {
		s := core.Summarize(domain.StrategyConsensus, []domain.Participant{
			voter("a", "3", 3),
			voter("b", "3", 3),
			voter("c", "5", 5),
		})

		require.Len(t, s.Distribution, 2)
		assert.Equal(t, 3.0, s.Distribution[0].Value)
		assert.Equal(t, 2, s.Distribution[0].Count)
		assert.InDelta(t, 66.67, s.Distribution[0].Percentage, 0.01)
		assert.Equal(t, 5.0, s.Distribution[1].Value)
		assert.Equal(t, 1, s.Distribution[1].Count)
		assert.InDelta(t, 33.33, s.Distribution[1].Percentage, 0.01)
		assert.Equal(t, 3.0, s.ConsensusEstimate)
		assert.Equal(t, 3, s.TotalVotes)
		assert.Empty(t, s.ModeEntries)
	})

	t.Run("no votes", func(t *testing.T) {
		s := core.Summarize(domain.StrategyConsensus, []domain.Participant{
			{DeviceID: "a"},
			voter("b", "0", 0),
		})
		assert.Empty(t, s.Distribution)
		assert.NotNil(t, s.Distribution)
		assert.Equal(t, 0.0, s.ConsensusEstimate)
		assert.Equal(t, 0, s.TotalVotes)
	})

	t.Run("percentages sum to 100", func(t *testing.T) {
		ps := []domain.Participant{}
		values := []float64{1, 2, 2, 3, 5, 5, 5, 8, 13, 13, 21}
		for i, v := range values {
			ps = append(ps, voter(string(rune('a'+i)), "x", v))
		}
		s := core.Summarize(domain.StrategyConsensus, ps)
		var sum float64
		for _, e := range s.Distribution {
			sum += e.Percentage
		}
		assert.InDelta(t, 100, sum, 1e-9)
	})

	t.Run("malformed votes are skipped", func(t *testing.T) {
		s := core.Summarize(domain.StrategyConsensus, []domain.Participant{
			voter("a", "x", math.NaN()),
			voter("b", "x", math.Inf(1)),
			voter("c", "8", 8),
		})
		require.Len(t, s.Distribution, 1)
		assert.Equal(t, 8.0, s.ConsensusEstimate)
		assert.Equal(t, 100.0, s.Distribution[0].Percentage)
	})

	t.Run("huge votes do not poison the estimate", func(t *testing.T) {
		s := core.Summarize(domain.StrategyBoth, []domain.Participant{
			voter("a", "x", 1e308),
			voter("b", "x", 1e308),
			voter("c", "3", 3),
		})
		assert.Equal(t, 1, s.TotalVotes)
		assert.Equal(t, 3.0, s.ConsensusEstimate)
		require.Len(t, s.ModeEntries, 1)
	})

	t.Run("largest allowed votes keep a finite average", func(t *testing.T) {
		s := core.Summarize(domain.StrategyConsensus, []domain.Participant{
			voter("a", "max", domain.MaxVoteValue),
			voter("b", "max", domain.MaxVoteValue),
		})
		assert.False(t, math.IsInf(s.ConsensusEstimate, 0))
		assert.Greater(t, s.ConsensusEstimate, 0.0)
	})

	t.Run("unknown strategy falls back to consensus", func(t *testing.T) {
		s := core.Summarize("", []domain.Participant{voter("a", "2", 2)})
		assert.Equal(t, domain.StrategyConsensus, s.Strategy)
		assert.Equal(t, 2.0, s.ConsensusEstimate)
	})
}

func TestSummarize_Mode(t *testing.T) {
	t.Run("single winner", func(t *testing.T) {
		s := core.Summarize(domain.StrategyMode, []domain.Participant{
			voter("a", "3", 3),
			voter("b", "5", 5),
			voter("c", "3", 3),
		})
		require.Len(t, s.ModeEntries, 2)
		assert.Equal(t, core.ModeEntry{ChoiceID: "3", Value: 3, Count: 2, IsWinningMode: true}, s.ModeEntries[0])
		assert.Equal(t, core.ModeEntry{ChoiceID: "5", Value: 5, Count: 1, IsWinningMode: false}, s.ModeEntries[1])
		assert.Empty(t, s.Distribution)
	})

	t.Run("ties are all winners", func(t *testing.T) {
		s := core.Summarize(domain.StrategyMode, []domain.Participant{
			voter("a", "3", 3),
			voter("b", "5", 5),
		})
		require.Len(t, s.ModeEntries, 2)
		assert.True(t, s.ModeEntries[0].IsWinningMode)
		assert.True(t, s.ModeEntries[1].IsWinningMode)
	})

	t.Run("larger group replaces earlier entries", func(t *testing.T) {
		s := core.Summarize(domain.StrategyMode, []domain.Participant{
			voter("a", "1", 1),
			voter("b", "8", 8),
			voter("c", "8", 8),
			voter("d", "2", 2),
		})
		require.Len(t, s.ModeEntries, 2)
		assert.Equal(t, domain.ChoiceID("8"), s.ModeEntries[0].ChoiceID)
		assert.True(t, s.ModeEntries[0].IsWinningMode)
		assert.Equal(t, domain.ChoiceID("2"), s.ModeEntries[1].ChoiceID)
		assert.False(t, s.ModeEntries[1].IsWinningMode)
	})

	t.Run("same value under different choices are separate groups", func(t *testing.T) {
		s := core.Summarize(domain.StrategyMode, []domain.Participant{
			voter("a", "small", 3),
			voter("b", "medium", 3),
		})
		assert.Len(t, s.ModeEntries, 2)
	})

	t.Run("zero votes excluded", func(t *testing.T) {
		s := core.Summarize(domain.StrategyMode, []domain.Participant{
			voter("a", "?", 0),
			voter("b", "?", 0),
			voter("c", "5", 5),
		})
		require.Len(t, s.ModeEntries, 1)
		assert.Equal(t, 5.0, s.ModeEntries[0].Value)
	})
}

func TestSummarize_Both(t *testing.T) {
	s := core.Summarize(domain.StrategyBoth, []domain.Participant{
		voter("a", "3", 3),
		voter("b", "3", 3),
		voter("c", "5", 5),
	})
	assert.Equal(t, domain.StrategyBoth, s.Strategy)
	assert.Len(t, s.Distribution, 2)
	assert.Equal(t, 3.0, s.ConsensusEstimate)
	assert.Len(t, s.ModeEntries, 2)
}
