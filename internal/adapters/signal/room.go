package signal

import (
	"github.com/dkeye/Poker/internal/core"
	"github.com/dkeye/Poker/internal/domain"
	"github.com/rs/zerolog/log"
)

func (ctl *SignalWSController) handleJoin(c *WsSignalConn, data []byte) {
	req, err := DecodeJoinRoom(data)
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(c.id)).Msg("bad join payload")
		ctl.sendError(c, "bad_payload")
		return
	}
	if req.Identity.PersistentID == "" && c.clientToken != "" {
		req.Identity.PersistentID = domain.PersistentID(c.clientToken)
	}
	if req.Identity.DeviceID == "" {
		log.Warn().Str("module", "signal").Str("conn", string(c.id)).Str("room", string(req.RoomID)).Msg("join without deviceId; votes will be ignored")
	}

	log.Info().Str("module", "signal").Str("conn", string(c.id)).Str("room", string(req.RoomID)).Msg("join")
	ctl.Orch.Join(c.id, req.RoomID, req.Identity, core.RoomOptions{Strategy: req.Strategy})
}

func (ctl *SignalWSController) handleSendScore(c *WsSignalConn, data []byte) {
	vote, err := DecodeSendScore(data)
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(c.id)).Msg("bad score payload")
		ctl.sendError(c, "bad_payload")
		return
	}
	ctl.Orch.Vote(c.id, vote)
}

func (ctl *SignalWSController) handleResetScores(c *WsSignalConn) {
	ctl.Orch.Reset(c.id)
}

func (ctl *SignalWSController) handleShowAllScores(c *WsSignalConn, data []byte) {
	show, err := DecodeShowAllScores(data)
	if err != nil {
		log.Warn().Err(err).Str("module", "signal").Str("conn", string(c.id)).Msg("bad show payload")
		ctl.sendError(c, "bad_payload")
		return
	}
	ctl.Orch.Reveal(c.id, show)
}

func (ctl *SignalWSController) handlePing(c *WsSignalConn) {
	ctl.sendJSON(c, struct {
		Type string `json:"type"`
	}{
		Type: "pong",
	})
}
