package models

// Game status values mirrored from the server.
const (
	GameWaiting  = "waiting"
	GameRunning  = "running"
	GameFinished = "finished"
)

// Player status values.
const (
	PlayerWaiting = "waiting"
	PlayerReady   = "ready"
	PlayerPlaying = "playing"
	PlayerWon     = "won"
	PlayerLost    = "lost"
)

// Player is one entry of the server's player list, ordered by arrival.
type Player struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Stake   int    `json:"stake"`
	Status  string `json:"status"`
	Balance int    `json:"balance"`
}

type Winner struct {
	PlayerID   string `json:"playerId"`
	PlayerName string `json:"playerName"`
	Pattern    string `json:"pattern"`
	Amount     int    `json:"amount"`
}

// GameState is a read-only mirror of server truth, never authoritative.
type GameState struct {
	ID            string   `json:"id"`
	Type          string   `json:"type"`
	Status        string   `json:"status"`
	Stake         int      `json:"stake"`
	Players       []Player `json:"players"`
	CalledNumbers []int    `json:"calledNumbers"`
	CurrentNumber int      `json:"currentNumber"`
	Winners       []Winner `json:"winners"`
	Pattern       string   `json:"pattern,omitempty"`
}

// FindPlayer returns the list entry for the given id, or nil.
func (g *GameState) FindPlayer(id string) *Player {
	for i := range g.Players {
		if g.Players[i].ID == id {
			return &g.Players[i]
		}
	}
	return nil
}

// GameStateDelta is a partial game_state update. Pointer fields distinguish
// absent from zero, so Apply performs the shallow merge the server expects:
// fields the update does not carry keep their prior values.
type GameStateDelta struct {
	ID            *string   `json:"id"`
	Type          *string   `json:"type"`
	Status        *string   `json:"status"`
	Stake         *int      `json:"stake"`
	Players       *[]Player `json:"players"`
	CalledNumbers *[]int    `json:"calledNumbers"`
	CurrentNumber *int      `json:"currentNumber"`
	Winners       *[]Winner `json:"winners"`
	Pattern       *string   `json:"pattern"`
}

func (d *GameStateDelta) Apply(g *GameState) {
	if d.ID != nil {
		g.ID = *d.ID
	}
	if d.Type != nil {
		g.Type = *d.Type
	}
	if d.Status != nil {
		g.Status = *d.Status
	}
	if d.Stake != nil {
		g.Stake = *d.Stake
	}
	if d.Players != nil {
		g.Players = *d.Players
	}
	if d.CalledNumbers != nil {
		g.CalledNumbers = *d.CalledNumbers
	}
	if d.CurrentNumber != nil {
		g.CurrentNumber = *d.CurrentNumber
	}
	if d.Winners != nil {
		g.Winners = *d.Winners
	}
	if d.Pattern != nil {
		g.Pattern = *d.Pattern
	}
}
