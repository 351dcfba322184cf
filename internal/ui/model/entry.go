package model

import (
	"cmp"
	"fmt"
	"math/rand/v2"

	"github.com/sahilm/fuzzy"
	"github.com/taigrr/picklist/internal/ui/picklist"
)

var (
	adjectives = []string{"amber", "brisk", "cobalt", "dusty", "eager", "feral", "gilded", "hollow", "ivory", "jolly", "keen", "lunar"}
	nouns      = []string{"archive", "backup", "cache", "dump", "export", "fixture", "index", "journal", "ledger", "manifest", "snapshot", "trace"}
	extensions = []string{".tar.gz", ".json", ".log", ".db", ".zip", ".csv"}
)

// Entry is one demo dataset entry.
type Entry struct {
	picklist.BaseData

	Name string
	Size uint64
	// Locked entries refuse to be picked.
	Locked bool
}

// IsDirty implements [picklist.Data].
func (e *Entry) IsDirty() bool { return e.Locked }

// GenerateEntries returns n entries derived from seed. The same seed always
// yields the same entries.
func GenerateEntries(n int, seed int64) []*Entry {
	r := rand.New(rand.NewPCG(uint64(seed), 0x9e3779b97f4a7c15))
	entries := make([]*Entry, n)
	for i := range entries {
		name := fmt.Sprintf("%s-%s-%04d%s",
			adjectives[r.IntN(len(adjectives))],
			nouns[r.IntN(len(nouns))],
			i,
			extensions[r.IntN(len(extensions))],
		)
		entries[i] = &Entry{
			Name:   name,
			Size:   uint64(r.Int64N(1 << 34)),
			Locked: r.IntN(23) == 0,
		}
	}
	return entries
}

type entrySource []*Entry

func (s entrySource) String(i int) string { return s[i].Name }
func (s entrySource) Len() int            { return len(s) }

// FilterEntries returns the entries whose name fuzzy matches query, best
// match first. An empty query returns entries unchanged.
func FilterEntries(entries []*Entry, query string) []*Entry {
	if query == "" {
		return entries
	}
	matches := fuzzy.FindFrom(query, entrySource(entries))
	filtered := make([]*Entry, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, entries[m.Index])
	}
	return filtered
}

// DataSet converts entries for [picklist.PickList.SetDataSet].
func DataSet(entries []*Entry) []picklist.Data {
	data := make([]picklist.Data, len(entries))
	for i, e := range entries {
		data[i] = e
	}
	return data
}

// BySize orders entries largest first, then by name.
func BySize(a, b picklist.Data) int {
	ea, eb := a.(*Entry), b.(*Entry)
	return cmp.Or(cmp.Compare(eb.Size, ea.Size), cmp.Compare(ea.Name, eb.Name))
}
