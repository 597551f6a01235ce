package models

import (
	"errors"
	"time"
)

// PlayerInfo is this session's player, mutated by user actions and server
// confirmations. Marked is cleared whenever a game ends or is left.
type PlayerInfo struct {
	Name     string
	Phone    string
	Stake    int
	BoardID  int
	GameType string
	Status   string
	Balance  int
	Marked   map[int]bool
	AutoMark bool
}

var (
	ErrNameRequired  = errors.New("name is required")
	ErrPhoneTooShort = errors.New("phone must be at least 10 digits")
	ErrInvalidStake  = errors.New("stake must be a positive amount")
)

// ValidateJoin checks the identity fields before any player_info is sent.
func (p *PlayerInfo) ValidateJoin() error {
	if p.Name == "" {
		return ErrNameRequired
	}
	if len(p.Phone) < 10 {
		return ErrPhoneTooShort
	}
	if p.Stake <= 0 {
		return ErrInvalidStake
	}
	return nil
}

// MarkedNumbers returns the marked set as a slice for claim payloads.
func (p *PlayerInfo) MarkedNumbers() []int {
	out := make([]int, 0, len(p.Marked))
	for n := range p.Marked {
		out = append(out, n)
	}
	return out
}

// Profile is the persisted slice of PlayerInfo, cached locally so a new
// session can prefill identity and reattach via the same sessionId.
type Profile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID string    `json:"session_id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Stake     int       `json:"stake"`
	AutoMark  bool      `json:"auto_mark"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ChatMessage struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp int64  `json:"timestamp"`
}
