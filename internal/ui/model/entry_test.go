package model

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateEntriesDeterministic(t *testing.T) {
	t.Parallel()

	a := GenerateEntries(20, 42)
	b := GenerateEntries(20, 42)
	require.Len(t, a, 20)
	for i := range a {
		require.Equal(t, a[i].Name, b[i].Name)
		require.Equal(t, a[i].Size, b[i].Size)
		require.Equal(t, a[i].Locked, b[i].Locked)
	}
}

func TestFilterEntries(t *testing.T) {
	t.Parallel()

	entries := []*Entry{
		{Name: "amber-cache-0000.db"},
		{Name: "cobalt-ledger-0001.csv"},
		{Name: "lunar-cache-0002.zip"},
	}
	require.Equal(t, entries, FilterEntries(entries, ""))

	filtered := FilterEntries(entries, "cache")
	require.Len(t, filtered, 2)
	for _, e := range filtered {
		require.True(t, strings.Contains(e.Name, "cache"))
	}
	require.Empty(t, FilterEntries(entries, "zzzz"))
}

func TestBySize(t *testing.T) {
	t.Parallel()

	big := &Entry{Name: "b", Size: 10}
	small := &Entry{Name: "a", Size: 1}
	tie := &Entry{Name: "c", Size: 10}
	require.Negative(t, BySize(big, small))
	require.Positive(t, BySize(small, big))
	require.Negative(t, BySize(big, tie))
}

func TestDirtyEntry(t *testing.T) {
	t.Parallel()

	require.True(t, (&Entry{Locked: true}).IsDirty())
	require.False(t, (&Entry{}).IsDirty())
}
