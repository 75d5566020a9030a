// Package types defines the wire envelopes shared with the admin, tablet and
// stream-overlay clients.
package types

import "github.com/Gabrielb-Webdev/smash-ban-server/internal/engine"

// ClientMessage is one inbound realtime frame. Type selects the action;
// every action frame names its target session explicitly.
//
//	createSession:        sessionId? player1 player2 format
//	joinSession:          sessionId
//	reportCoinTossWinner: sessionId winner
//	banStage:             sessionId stageId player
//	selectStage:          sessionId stageId player?      (empty player = admin)
//	selectCharacter:      sessionId characterId player
//	reportGameWinner:     sessionId winner tier? reporter?
//	resetSeries:          sessionId
//	endMatchEarly:        sessionId winner
//	updatePlayers:        sessionId player1? player2? format?
type ClientMessage struct {
	Type        string `json:"type"`
	SessionID   string `json:"sessionId,omitempty"`
	Player1     string `json:"player1,omitempty"`
	Player2     string `json:"player2,omitempty"`
	Format      string `json:"format,omitempty"`
	Winner      string `json:"winner,omitempty"`
	Player      string `json:"player,omitempty"`
	StageID     string `json:"stageId,omitempty"`
	CharacterID string `json:"characterId,omitempty"`
	Tier        string `json:"tier,omitempty"`
	Reporter    string `json:"reporter,omitempty"`
}

// ServerMessage is one outbound frame:
// "sessionCreated" | "sessionJoined" | "sessionUpdated" | "seriesFinished" |
// "sessionError". Error frames go only to the offending connection.
type ServerMessage struct {
	Type    string          `json:"type"`
	Version int             `json:"version,omitempty"`
	Session *engine.Session `json:"session,omitempty"`
	Winner  string          `json:"winner,omitempty"`
	Error   string          `json:"error,omitempty"`
}
