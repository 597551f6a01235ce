package services

import (
	"encoding/json"
	"fmt"

	"github.com/bellapacxx/bingo-client/models"
	"github.com/bellapacxx/bingo-client/utils/logger"
)

// Router dispatches inbound records by their type discriminant. Unknown
// types and unparseable frames are dropped with a diagnostic, never fatal.
type Router struct {
	engine *Engine
	sink   EventSink
}

func NewRouter(engine *Engine, sink EventSink) *Router {
	return &Router{engine: engine, sink: sink}
}

// Handle processes one raw inbound frame.
func (r *Router) Handle(raw []byte) {
	var msg models.Inbound
	if err := json.Unmarshal(raw, &msg); err != nil {
		logger.Warnf("[router] invalid message: %v", err)
		return
	}

	switch msg.Type {
	case "connected":
		r.engine.HandleConnected(msg.PlayerID)

	case "game_state":
		if msg.State != nil {
			r.engine.HandleGameState(msg.State)
		}

	case "player_list":
		r.engine.HandlePlayerList(msg.Players)

	case "player_joined":
		r.sink.Notify(fmt.Sprintf("%s joined", msg.PlayerName), false)
		r.engine.HandlePlayerList(msg.Players)

	case "player_left":
		r.sink.Notify(fmt.Sprintf("%s left", msg.PlayerName), false)
		r.engine.HandlePlayerList(msg.Players)

	case "player_ready":
		r.sink.Notify(fmt.Sprintf("%s is ready", msg.PlayerName), false)
		r.engine.HandlePlayerList(msg.Players)

	case "game_started":
		if msg.Game != nil {
			r.engine.HandleGameStarted(msg.Game)
		}

	case "game_stopped":
		r.engine.HandleGameStopped()

	case "number_called":
		r.engine.HandleNumberCalled(msg.Number, msg.DisplayNumber)

	case "winner":
		if msg.Winner != nil {
			r.engine.HandleWinner(*msg.Winner)
		}

	case "chat_message":
		var chat models.ChatMessage
		if err := json.Unmarshal(msg.Message, &chat); err != nil {
			logger.Warnf("[router] invalid chat payload: %v", err)
			return
		}
		r.engine.HandleChat(chat)

	case "announcement":
		r.sink.Announce(decodeText(msg.Message))

	case "error":
		r.engine.HandleServerError(decodeText(msg.Message))

	case "ping":
		r.engine.conn.Send(models.PongMsg{Type: "pong"})

	case "pong":
		// liveness reply, no state change

	default:
		logger.Debugf("[router] ignoring unknown message type %q", msg.Type)
	}
}

func decodeText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return string(raw)
	}
	return s
}
