package signal

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/dkeye/Poker/internal/core"
	"github.com/dkeye/Poker/internal/domain"
)

type outEnvelope struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// legacyParticipant adds the flat score fields older clients read.
type legacyParticipant struct {
	core.ParticipantView
	Score   *float64        `json:"score,omitempty"`
	ScoreID domain.ChoiceID `json:"scoreId,omitempty"`
}

type chartEntry struct {
	ID    int     `json:"id"`
	Value float64 `json:"value"`
	Label string  `json:"label"`
	Count int     `json:"count"`
}

type calculatedScore struct {
	Chart       []chartEntry `json:"chart"`
	WinnerScore float64      `json:"winnerScore"`
}

type scoreUpdateWire struct {
	core.ScoreUpdate
	Username       string          `json:"username"`
	Score          float64         `json:"score"`
	ScoreID        domain.ChoiceID `json:"scoreId"`
	CalculateScore calculatedScore `json:"calculateScore"`
}

// Codec encodes room events for the websocket wire. It implements orch.Encoder.
type Codec struct{}

func (Codec) Encode(ev core.Event) (core.Frame, error) {
	var data any
	switch p := ev.Payload.(type) {
	case core.RoomUsers:
		data = legacyUsers(p)
	case core.ScoreUpdate:
		data = legacyScoreUpdate(p)
	case core.RevealFlag:
		data = bool(p)
	default:
		return nil, fmt.Errorf("unsupported payload %T for %s", ev.Payload, ev.Name)
	}
	return json.Marshal(outEnvelope{Type: ev.Name, Data: data})
}

func legacyUsers(users core.RoomUsers) []legacyParticipant {
	out := make([]legacyParticipant, 0, len(users))
	for _, u := range users {
		lp := legacyParticipant{ParticipantView: u}
		if u.Vote != nil {
			v := u.Vote.Value
			lp.Score = &v
			lp.ScoreID = u.Vote.ChoiceID
		}
		out = append(out, lp)
	}
	return out
}

func legacyScoreUpdate(u core.ScoreUpdate) scoreUpdateWire {
	chart := make([]chartEntry, 0, len(u.Summary.Distribution))
	for i, d := range u.Summary.Distribution {
		chart = append(chart, chartEntry{
			ID:    i,
			Value: d.Percentage,
			Label: strconv.FormatFloat(d.Value, 'f', -1, 64),
			Count: d.Count,
		})
	}
	return scoreUpdateWire{
		ScoreUpdate: u,
		Username:    u.Voter.DisplayName,
		Score:       u.Vote.Value,
		ScoreID:     u.Vote.ChoiceID,
		CalculateScore: calculatedScore{
			Chart:       chart,
			WinnerScore: u.Summary.ConsensusEstimate,
		},
	}
}
