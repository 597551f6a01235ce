package services

import "github.com/bellapacxx/bingo-client/utils/logger"

// SoundKind names a fire-and-forget audio cue.
type SoundKind string

const (
	SoundCall SoundKind = "call"
	SoundWin  SoundKind = "win"
)

// EventSink is the boundary toward the UI and audio layers. Every call is
// advisory; the engine never depends on a sink for correctness.
type EventSink interface {
	Notify(message string, isError bool)
	Announce(message string)
	WinnerAnnounced(name, pattern string, amount int)
	PhaseChanged(playerStatus, gameStatus string)
	PlaySound(kind SoundKind)
}

// LogSink is the default sink: events go to the log and nowhere else.
type LogSink struct{}

func (LogSink) Notify(message string, isError bool) {
	if isError {
		logger.Warnf("[notify] %s", message)
		return
	}
	logger.Infof("[notify] %s", message)
}

func (LogSink) Announce(message string) {
	logger.Infof("[announcement] %s", message)
}

func (LogSink) WinnerAnnounced(name, pattern string, amount int) {
	logger.Infof("[winner] %s won with %s for %d", name, pattern, amount)
}

func (LogSink) PhaseChanged(playerStatus, gameStatus string) {
	logger.Debugf("[phase] player=%s game=%s", playerStatus, gameStatus)
}

func (LogSink) PlaySound(kind SoundKind) {
	logger.Debugf("[sound] %s", kind)
}
