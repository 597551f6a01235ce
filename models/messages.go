package models

import "encoding/json"

// Outbound records (client -> server). One struct per record kind, the
// literal "type" value set by the sender.

type ConnectMsg struct {
	Type      string `json:"type"`
	SessionID string `json:"sessionId"`
	Timestamp int64  `json:"timestamp"`
}

type PlayerInfoMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Stake    int    `json:"stake"`
	BoardID  int    `json:"boardId"`
	GameType string `json:"gameType"`
}

type PlayerReadyMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
	Status   string `json:"status"`
}

type PlayerLeaveMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
}

type ClaimBingoMsg struct {
	Type          string `json:"type"`
	PlayerID      string `json:"playerId"`
	Pattern       string `json:"pattern"`
	MarkedNumbers []int  `json:"markedNumbers"`
}

type ChatSendMsg struct {
	Type     string `json:"type"`
	PlayerID string `json:"playerId"`
	Message  string `json:"message"`
}

type GetGameStateMsg struct {
	Type string `json:"type"`
}

type PingMsg struct {
	Type string `json:"type"`
}

type PongMsg struct {
	Type string `json:"type"`
}

// Inbound is the envelope for every server -> client record. Only the
// fields relevant to a given Type are populated; Message stays raw because
// chat carries an object where error and announcement carry a string.
type Inbound struct {
	Type          string          `json:"type"`
	PlayerID      string          `json:"playerId,omitempty"`
	State         *GameStateDelta `json:"state,omitempty"`
	Players       []Player        `json:"players,omitempty"`
	PlayerName    string          `json:"playerName,omitempty"`
	Game          *GameState      `json:"game,omitempty"`
	Number        int             `json:"number,omitempty"`
	DisplayNumber string          `json:"displayNumber,omitempty"`
	Winner        *Winner         `json:"winner,omitempty"`
	Message       json.RawMessage `json:"message,omitempty"`
}
