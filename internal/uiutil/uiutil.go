// Package uiutil turns status reports into bubbletea commands for the
// picklist status line.
package uiutil

import (
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
)

// DefaultTTL is how long a status message stays up when none is given.
const DefaultTTL = 3 * time.Second

// Level orders status messages by severity.
type Level int

const (
	LevelInfo Level = iota
	LevelWarn
	LevelError
)

// StatusMsg asks the model to show Text until TTL elapses.
type StatusMsg struct {
	Level Level
	Text  string
	TTL   time.Duration
}

// Alert reports whether the message should be highlighted.
func (m StatusMsg) Alert() bool {
	return m.Level > LevelInfo
}

// ClearStatusMsg removes the current status message.
type ClearStatusMsg struct{}

// Report returns a command emitting a status message at level.
func Report(level Level, text string) tea.Cmd {
	msg := StatusMsg{Level: level, Text: text}
	return func() tea.Msg {
		return msg
	}
}

func ReportInfo(text string) tea.Cmd { return Report(LevelInfo, text) }

func ReportWarn(text string) tea.Cmd { return Report(LevelWarn, text) }

// ReportError logs err and reports it on the status line.
func ReportError(err error) tea.Cmd {
	slog.Error("Error reported", "error", err)
	return Report(LevelError, err.Error())
}

// ClearAfter returns a command that emits [ClearStatusMsg] once msg's TTL
// elapses.
func ClearAfter(msg StatusMsg) tea.Cmd {
	return tea.Tick(ttlOrDefault(msg.TTL), func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}

func ttlOrDefault(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return DefaultTTL
	}
	return ttl
}
