package uiutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReport(t *testing.T) {
	t.Parallel()

	msg := ReportError(errors.New("boom"))()
	require.Equal(t, StatusMsg{Level: LevelError, Text: "boom"}, msg)
	require.True(t, msg.(StatusMsg).Alert())

	msg = ReportInfo("sorted")()
	require.Equal(t, StatusMsg{Level: LevelInfo, Text: "sorted"}, msg)
	require.False(t, msg.(StatusMsg).Alert())

	require.True(t, ReportWarn("careful")().(StatusMsg).Alert())
}

func TestClearAfter(t *testing.T) {
	t.Parallel()

	require.Equal(t, DefaultTTL, ttlOrDefault(0))
	require.Equal(t, ClearStatusMsg{}, ClearAfter(StatusMsg{Text: "x", TTL: 1})())
}
