package search

import (
	"github.com/sahilm/fuzzy"

	"github.com/LFroesch/quill/internal/fileops"
)

// MatchResult contains fuzzy match information for one filtered entry.
// Index points into the unfiltered entry list.
type MatchResult struct {
	Index          int
	MatchedIndexes []int
	Score          int
}

// names adapts an entry list to fuzzy.Source so only names are scored
type names []fileops.Entry

func (n names) String(i int) string { return n[i].Name }
func (n names) Len() int            { return len(n) }

// Filter scores each entry's name against query and returns the matching
// entries, best score first, along with their matched character positions.
// An empty query returns every entry in its original order with no matches.
func Filter(query string, entries []fileops.Entry) ([]fileops.Entry, []MatchResult) {
	if query == "" {
		all := make([]fileops.Entry, len(entries))
		copy(all, entries)
		return all, nil
	}

	matches := fuzzy.FindFrom(query, names(entries))

	filtered := make([]fileops.Entry, 0, len(matches))
	results := make([]MatchResult, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, entries[m.Index])
		results = append(results, MatchResult{
			Index:          m.Index,
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		})
	}

	return filtered, results
}
