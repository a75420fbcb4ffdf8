// Package search provides a local fuzzy index over loaded catalog
// entries for the quick-jump prompt.
package search

import (
	"log/slog"
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"
	sahilm "github.com/sahilm/fuzzy"
)

// Doc is one indexed entry. Ref carries the caller's value back out in
// results.
type Doc struct {
	Key   string
	Title string
	Ref   interface{}
}

// Result is a ranked match with the character positions that matched,
// for highlighting.
type Result struct {
	Doc
	Score          int
	MatchedIndexes []int
}

// Index is a rebuildable in-memory search index.
type Index struct {
	docs   []Doc
	logger *slog.Logger
}

// NewIndex creates an empty index.
func NewIndex(logger *slog.Logger) *Index {
	if logger == nil {
		logger = slog.Default()
	}
	return &Index{logger: logger}
}

// Rebuild replaces the indexed docs.
func (idx *Index) Rebuild(docs []Doc) {
	idx.docs = docs
	idx.logger.Debug("rebuilt search index", "docs", len(docs))
}

// Len implements fuzzy.Source.
func (idx *Index) Len() int { return len(idx.docs) }

// String implements fuzzy.Source.
func (idx *Index) String(i int) string { return idx.docs[i].Title }

// Search returns docs matching query, best first. Subsequence matching
// runs first; when it finds nothing, a case-folding rank pass takes
// over and orders matches by edit distance.
func (idx *Index) Search(query string) []Result {
	if query == "" || len(idx.docs) == 0 {
		return nil
	}

	matches := sahilm.FindFrom(query, idx)
	if len(matches) > 0 {
		results := make([]Result, len(matches))
		for i, m := range matches {
			results[i] = Result{
				Doc:            idx.docs[m.Index],
				Score:          m.Score,
				MatchedIndexes: m.MatchedIndexes,
			}
		}
		return results
	}

	return idx.rankFallback(query)
}

// rankFallback matches with Unicode case folding and ranks by
// Levenshtein distance.
func (idx *Index) rankFallback(query string) []Result {
	titles := make([]string, len(idx.docs))
	for i, d := range idx.docs {
		titles[i] = d.Title
	}

	ranks := fuzzy.RankFindFold(query, titles)
	if len(ranks) == 0 {
		return nil
	}
	sort.Sort(ranks)

	results := make([]Result, len(ranks))
	for i, r := range ranks {
		results[i] = Result{
			Doc:   idx.docs[r.OriginalIndex],
			Score: -r.Distance,
		}
	}
	return results
}
