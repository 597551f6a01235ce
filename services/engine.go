package services

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/bellapacxx/bingo-client/game"
	"github.com/bellapacxx/bingo-client/models"
	"github.com/bellapacxx/bingo-client/utils/logger"
	"github.com/google/uuid"
)

const (
	claimRetryDelay = 5 * time.Second
	chatHistoryMax  = 100
	prizeShare      = 80 // percent of the pot paid out
)

var (
	ErrNotIdentified = errors.New("not identified by the server yet")
	ErrNotPlaying    = errors.New("no game in progress")
	ErrNoPattern     = errors.New("no winning pattern completed")
	ErrClaimPending  = errors.New("claim already submitted, wait for the server")
	ErrNotOnBoard    = errors.New("number is not on your board")
	ErrEmptyMessage  = errors.New("message is empty")
)

// ProfileStore is the persisted key-value cache boundary.
type ProfileStore interface {
	Load() models.Profile
	Save(models.Profile)
}

// Engine owns the session, the player and the mirrored game state. All
// mutation happens under one mutex; the server stays the source of truth
// and every reconnect resynchronizes from a fresh snapshot.
type Engine struct {
	mu sync.Mutex

	sessionID string
	playerID  string
	connected bool
	terminal  bool

	player      models.PlayerInfo
	game        models.GameState
	board       *game.Board
	boardGameID string

	claimBlocked bool
	claimTimer   *time.Timer

	chat []models.ChatMessage

	conn  Transport
	store ProfileStore
	sink  EventSink
	rng   *rand.Rand
}

func NewEngine(conn Transport, store ProfileStore, sink EventSink) *Engine {
	e := &Engine{
		conn:  conn,
		store: store,
		sink:  sink,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		player: models.PlayerInfo{
			Status:   models.PlayerWaiting,
			Marked:   make(map[int]bool),
			AutoMark: true,
		},
		game: models.GameState{
			Type:   string(game.Variant75),
			Status: models.GameWaiting,
		},
	}

	prof := store.Load()
	if prof.SessionID == "" {
		prof.SessionID = uuid.NewString()
		store.Save(prof)
	}
	e.sessionID = prof.SessionID
	e.player.Name = prof.Name
	e.player.Phone = prof.Phone
	if prof.Stake > 0 {
		e.player.Stake = prof.Stake
		e.player.AutoMark = prof.AutoMark
	}
	return e
}

// -------------------- transport lifecycle --------------------

// TransportOpened replays this session's identity so the server can
// reattach state, then asks for a fresh snapshot. Player info is replayed
// once the server has assigned an id (HandleConnected).
func (e *Engine) TransportOpened() {
	e.mu.Lock()
	e.connected = true
	e.terminal = false
	e.mu.Unlock()

	e.conn.Send(models.ConnectMsg{
		Type:      "connect",
		SessionID: e.sessionID,
		Timestamp: time.Now().UnixMilli(),
	})
	e.conn.Send(models.GetGameStateMsg{Type: "get_game_state"})
}

func (e *Engine) TransportClosed() {
	e.mu.Lock()
	e.connected = false
	e.mu.Unlock()
}

// TransportFailed is the terminal connectivity failure: reconnects are
// exhausted and only an explicit retry from the user restarts the loop.
func (e *Engine) TransportFailed() {
	e.mu.Lock()
	e.connected = false
	e.terminal = true
	e.mu.Unlock()
	e.sink.Notify("connection lost, retry when ready", true)
}

// -------------------- user actions --------------------

// Join validates and stores identity, persists it to the cache and, once
// the server has identified us, sends player_info upstream.
func (e *Engine) Join(name, phone string, stake, boardID int, gameType string) error {
	candidate := models.PlayerInfo{Name: name, Phone: phone, Stake: stake}
	if err := candidate.ValidateJoin(); err != nil {
		return err
	}
	if gameType == "" {
		gameType = string(game.Variant75)
	}
	if !game.Variant(gameType).Valid() {
		return fmt.Errorf("unknown game type %q", gameType)
	}

	e.mu.Lock()
	e.player.Name = name
	e.player.Phone = phone
	e.player.Stake = stake
	e.player.BoardID = boardID
	e.player.GameType = gameType
	e.player.Status = models.PlayerWaiting
	identified := e.playerID != ""
	e.mu.Unlock()

	e.persistProfile()
	if identified {
		e.sendPlayerInfo()
	}
	return nil
}

// ToggleReady flips between waiting and ready. The flip is optimistic for
// the UI only; participation in a started game follows the server's
// player list, not this flag.
func (e *Engine) ToggleReady() (string, error) {
	e.mu.Lock()
	if e.playerID == "" {
		e.mu.Unlock()
		return "", ErrNotIdentified
	}
	if e.player.Status != models.PlayerWaiting && e.player.Status != models.PlayerReady {
		status := e.player.Status
		e.mu.Unlock()
		return "", fmt.Errorf("cannot toggle ready while %s", status)
	}
	next := models.PlayerReady
	if e.player.Status == models.PlayerReady {
		next = models.PlayerWaiting
	}
	e.player.Status = next
	playerID := e.playerID
	e.mu.Unlock()

	e.conn.Send(models.PlayerReadyMsg{Type: "player_ready", PlayerID: playerID, Status: next})
	return next, nil
}

// Leave tells the server we are gone, clears game-scoped state, resets
// the session identity and cancels any pending reconnect.
func (e *Engine) Leave() {
	e.mu.Lock()
	playerID := e.playerID
	e.resetToWaitingLocked()
	e.playerID = ""
	e.sessionID = uuid.NewString()
	e.mu.Unlock()

	if playerID != "" {
		e.conn.Send(models.PlayerLeaveMsg{Type: "player_leave", PlayerID: playerID})
	}
	e.persistProfile()
	e.conn.Close()
	logger.Infof("[engine] left the game")
}

// ToggleMark flips one number on the current board.
func (e *Engine) ToggleMark(n int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.player.Status != models.PlayerPlaying || e.board == nil {
		return ErrNotPlaying
	}
	if !e.board.Contains(n) {
		return ErrNotOnBoard
	}
	if e.player.Marked[n] {
		delete(e.player.Marked, n)
	} else {
		e.player.Marked[n] = true
	}
	return nil
}

// Claim submits a bingo claim, but only when the verifier confirms a
// complete pattern locally. The claim is advisory; the win itself arrives
// as a server winner record.
func (e *Engine) Claim() error {
	e.mu.Lock()
	if e.playerID == "" {
		e.mu.Unlock()
		return ErrNotIdentified
	}
	if e.player.Status != models.PlayerPlaying || e.board == nil {
		e.mu.Unlock()
		return ErrNotPlaying
	}
	if e.claimBlocked {
		e.mu.Unlock()
		return ErrClaimPending
	}
	pattern := game.Verify(e.board, e.player.Marked, e.game.Pattern)
	if pattern == game.PatternNone {
		e.mu.Unlock()
		return ErrNoPattern
	}
	msg := models.ClaimBingoMsg{
		Type:          "claim_bingo",
		PlayerID:      e.playerID,
		Pattern:       string(pattern),
		MarkedNumbers: e.player.MarkedNumbers(),
	}
	e.claimBlocked = true
	e.scheduleClaimRetryLocked()
	e.mu.Unlock()

	e.conn.Send(msg)
	return nil
}

func (e *Engine) SendChat(text string) error {
	if text == "" {
		return ErrEmptyMessage
	}
	e.mu.Lock()
	playerID := e.playerID
	e.mu.Unlock()
	if playerID == "" {
		return ErrNotIdentified
	}
	e.conn.Send(models.ChatSendMsg{Type: "chat_message", PlayerID: playerID, Message: text})
	return nil
}

func (e *Engine) SetAutoMark(on bool) {
	e.mu.Lock()
	e.player.AutoMark = on
	e.mu.Unlock()
	e.persistProfile()
}

// Reconnect restarts the dial loop after a terminal failure or a leave.
func (e *Engine) Reconnect() {
	e.mu.Lock()
	e.terminal = false
	e.mu.Unlock()
	e.conn.Connect()
}

// -------------------- inbound handlers --------------------

func (e *Engine) HandleConnected(playerID string) {
	e.mu.Lock()
	e.playerID = playerID
	hasIdentity := e.player.Name != ""
	e.mu.Unlock()

	logger.Infof("[engine] identified as %s", playerID)
	if hasIdentity {
		e.sendPlayerInfo()
	}
}

// HandleGameState applies a snapshot or delta, then re-derives the
// player's phase from the merged state. This is the sole recovery path
// after a reconnect: nothing from before the drop is trusted.
func (e *Engine) HandleGameState(d *models.GameStateDelta) {
	e.mu.Lock()
	d.Apply(&e.game)
	e.reconcileLocked()
	e.mu.Unlock()
}

func (e *Engine) HandlePlayerList(players []models.Player) {
	e.mu.Lock()
	e.game.Players = players
	e.adoptListStatusLocked()
	e.mu.Unlock()
}

// HandleGameStarted replaces the game mirror wholesale and moves this
// player to playing if the server's list says we were ready. The board is
// generated exactly once per game; a repeated start record for the same
// game keeps the existing layout and marks.
func (e *Engine) HandleGameStarted(g *models.GameState) {
	e.mu.Lock()
	e.game = *g
	entry := e.game.FindPlayer(e.playerID)
	if entry != nil && (entry.Status == models.PlayerReady || entry.Status == models.PlayerPlaying) {
		if e.board == nil || e.boardGameID != e.game.ID {
			e.enterPlayingLocked()
		}
	}
	gameStatus := e.game.Status
	playerStatus := e.player.Status
	e.mu.Unlock()

	e.sink.Notify("game started", false)
	e.sink.PhaseChanged(playerStatus, gameStatus)
}

// HandleGameStopped forces playing/won/lost back to waiting and clears
// marks, regardless of local belief about pattern completion.
func (e *Engine) HandleGameStopped() {
	e.mu.Lock()
	e.game.Status = models.GameFinished
	if e.player.Status != models.PlayerWaiting && e.player.Status != models.PlayerReady {
		e.resetToWaitingLocked()
	}
	e.mu.Unlock()
	e.sink.Notify("game over", false)
}

func (e *Engine) HandleNumberCalled(n int, display string) {
	e.mu.Lock()
	e.game.CalledNumbers = append(e.game.CalledNumbers, n)
	e.game.CurrentNumber = n
	if e.player.Status == models.PlayerPlaying && e.player.AutoMark &&
		e.board != nil && e.board.Contains(n) {
		e.player.Marked[n] = true
	}
	e.mu.Unlock()

	e.sink.PlaySound(SoundCall)
	if display != "" {
		logger.Debugf("[engine] number called: %s", display)
	}
}

// HandleWinner is the only path into the won state: a server-issued
// winner record naming this player. Balance is credited here and nowhere
// else.
func (e *Engine) HandleWinner(w models.Winner) {
	e.mu.Lock()
	e.game.Winners = append(e.game.Winners, w)
	mine := w.PlayerID == e.playerID && e.playerID != ""
	if mine {
		e.cancelClaimTimerLocked()
		e.claimBlocked = false
		e.player.Status = models.PlayerWon
		e.player.Balance += w.Amount
	}
	e.mu.Unlock()

	if mine {
		e.sink.PlaySound(SoundWin)
		e.sink.WinnerAnnounced("you", w.Pattern, w.Amount)
	} else {
		e.sink.Notify(fmt.Sprintf("%s wins with %s", w.PlayerName, w.Pattern), false)
	}
}

func (e *Engine) HandleChat(m models.ChatMessage) {
	e.mu.Lock()
	e.chat = append(e.chat, m)
	if len(e.chat) > chatHistoryMax {
		e.chat = e.chat[len(e.chat)-chatHistoryMax:]
	}
	e.mu.Unlock()
}

// HandleServerError surfaces a generic server error. A rejected claim
// lands here too: the claim action re-enables after a delay, and any
// newer timer supersedes the old one.
func (e *Engine) HandleServerError(msg string) {
	e.mu.Lock()
	if e.claimBlocked {
		e.scheduleClaimRetryLocked()
	}
	e.mu.Unlock()
	e.sink.Notify(msg, true)
}

// -------------------- state transitions --------------------

// reconcileLocked re-derives playing vs waiting from the merged game
// state plus our identity. A kept board must belong to the same game id;
// anything else is invalidated.
func (e *Engine) reconcileLocked() {
	if e.playerID == "" {
		return
	}
	entry := e.game.FindPlayer(e.playerID)
	if entry != nil {
		e.player.Balance = entry.Balance
	}

	switch e.game.Status {
	case models.GameRunning:
		if entry != nil && (entry.Status == models.PlayerReady || entry.Status == models.PlayerPlaying) {
			if e.board == nil || e.boardGameID != e.game.ID {
				e.enterPlayingLocked()
			}
		}
	case models.GameWaiting, models.GameFinished:
		switch e.player.Status {
		case models.PlayerPlaying, models.PlayerWon, models.PlayerLost:
			e.resetToWaitingLocked()
		default:
			e.adoptListStatusLocked()
		}
	}
}

// adoptListStatusLocked syncs waiting/ready from the authoritative player
// list. Playing and won are never driven from the list alone, except that
// the server may adjudicate a playing player as lost.
func (e *Engine) adoptListStatusLocked() {
	entry := e.game.FindPlayer(e.playerID)
	if entry == nil {
		return
	}
	e.player.Balance = entry.Balance
	if e.player.Status == models.PlayerPlaying {
		if entry.Status == models.PlayerLost {
			e.player.Status = models.PlayerLost
		}
		return
	}
	if e.player.Status == models.PlayerWon || e.player.Status == models.PlayerLost {
		return
	}
	if entry.Status == models.PlayerWaiting || entry.Status == models.PlayerReady {
		e.player.Status = entry.Status
	}
}

func (e *Engine) enterPlayingLocked() {
	variant := game.Variant(e.game.Type)
	board, err := game.Generate(variant, e.rng)
	if err != nil {
		logger.Errorf("[engine] cannot generate board: %v", err)
		return
	}
	e.board = board
	e.boardGameID = e.game.ID
	e.player.Marked = make(map[int]bool)
	e.player.Status = models.PlayerPlaying
	e.claimBlocked = false
	e.cancelClaimTimerLocked()
	logger.Infof("[engine] playing %s, board with %d numbers", variant, board.PlayableCount())
}

func (e *Engine) resetToWaitingLocked() {
	e.player.Status = models.PlayerWaiting
	e.player.Marked = make(map[int]bool)
	e.board = nil
	e.boardGameID = ""
	e.claimBlocked = false
	e.cancelClaimTimerLocked()
}

func (e *Engine) scheduleClaimRetryLocked() {
	if e.claimTimer != nil {
		e.claimTimer.Stop()
	}
	e.claimTimer = time.AfterFunc(claimRetryDelay, func() {
		e.mu.Lock()
		e.claimBlocked = false
		e.claimTimer = nil
		e.mu.Unlock()
	})
}

func (e *Engine) cancelClaimTimerLocked() {
	if e.claimTimer != nil {
		e.claimTimer.Stop()
		e.claimTimer = nil
	}
}

// -------------------- helpers & snapshots --------------------

func (e *Engine) sendPlayerInfo() {
	e.mu.Lock()
	msg := models.PlayerInfoMsg{
		Type:     "player_info",
		PlayerID: e.playerID,
		Name:     e.player.Name,
		Phone:    e.player.Phone,
		Stake:    e.player.Stake,
		BoardID:  e.player.BoardID,
		GameType: e.player.GameType,
	}
	e.mu.Unlock()
	e.conn.Send(msg)
}

func (e *Engine) persistProfile() {
	e.mu.Lock()
	prof := models.Profile{
		SessionID: e.sessionID,
		Name:      e.player.Name,
		Phone:     e.player.Phone,
		Stake:     e.player.Stake,
		AutoMark:  e.player.AutoMark,
	}
	e.mu.Unlock()
	e.store.Save(prof)
}

// PlayerView is the UI-facing copy of PlayerInfo.
type PlayerView struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Stake    int    `json:"stake"`
	BoardID  int    `json:"boardId"`
	GameType string `json:"gameType"`
	Status   string `json:"status"`
	Balance  int    `json:"balance"`
	Marked   []int  `json:"marked"`
	AutoMark bool   `json:"autoMark"`
}

// StatusSnapshot is one consistent read of the whole engine for the UI.
type StatusSnapshot struct {
	Connected      bool                 `json:"connected"`
	Terminal       bool                 `json:"terminal"`
	PlayerID       string               `json:"playerId"`
	Player         PlayerView           `json:"player"`
	Game           models.GameState     `json:"game"`
	PotentialPrize int                  `json:"potentialPrize"`
	ClaimReady     bool                 `json:"claimReady"`
	Chat           []models.ChatMessage `json:"chat"`
}

func (e *Engine) Status() StatusSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	g := e.game
	g.Players = append([]models.Player(nil), e.game.Players...)
	g.CalledNumbers = append([]int(nil), e.game.CalledNumbers...)
	g.Winners = append([]models.Winner(nil), e.game.Winners...)

	claimReady := false
	if e.player.Status == models.PlayerPlaying && !e.claimBlocked {
		claimReady = game.Verify(e.board, e.player.Marked, e.game.Pattern) != game.PatternNone
	}

	return StatusSnapshot{
		Connected: e.connected,
		Terminal:  e.terminal,
		PlayerID:  e.playerID,
		Player: PlayerView{
			Name:     e.player.Name,
			Phone:    e.player.Phone,
			Stake:    e.player.Stake,
			BoardID:  e.player.BoardID,
			GameType: e.player.GameType,
			Status:   e.player.Status,
			Balance:  e.player.Balance,
			Marked:   e.player.MarkedNumbers(),
			AutoMark: e.player.AutoMark,
		},
		Game:           g,
		PotentialPrize: len(g.Players) * g.Stake * prizeShare / 100,
		ClaimReady:     claimReady,
		Chat:           append([]models.ChatMessage(nil), e.chat...),
	}
}

// Board returns the current layout, or nil outside a game. The layout is
// immutable for the game's duration, so sharing it is safe.
func (e *Engine) Board() *game.Board {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.board
}
