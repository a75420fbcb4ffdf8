package search

import "testing"

func testDocs() []Doc {
	return []Doc{
		{Key: "1", Title: "Abbey Road", Ref: 1},
		{Key: "2", Title: "The Dark Side of the Moon", Ref: 2},
		{Key: "3", Title: "Unknown Pleasures", Ref: 3},
		{Key: "4", Title: "Kind of Blue", Ref: 4},
	}
}

func TestIndexSearch(t *testing.T) {
	idx := NewIndex(nil)
	idx.Rebuild(testDocs())

	t.Run("matches a substring", func(t *testing.T) {
		results := idx.Search("abbey")
		if len(results) == 0 {
			t.Fatal("no results for abbey")
		}
		if results[0].Key != "1" {
			t.Errorf("best match = %s, want Abbey Road", results[0].Title)
		}
	})

	t.Run("matches subsequences", func(t *testing.T) {
		results := idx.Search("dkmoon")
		if len(results) == 0 {
			t.Fatal("no results for dkmoon")
		}
		if results[0].Key != "2" {
			t.Errorf("best match = %s, want The Dark Side of the Moon", results[0].Title)
		}
	})

	t.Run("carries the ref through", func(t *testing.T) {
		results := idx.Search("kind")
		if len(results) == 0 {
			t.Fatal("no results for kind")
		}
		if got := results[0].Ref.(int); got != 4 {
			t.Errorf("ref = %d, want 4", got)
		}
	})

	t.Run("no match returns nil", func(t *testing.T) {
		if results := idx.Search("zzzzzz"); results != nil {
			t.Errorf("results = %v, want nil", results)
		}
	})

	t.Run("empty query returns nil", func(t *testing.T) {
		if results := idx.Search(""); results != nil {
			t.Errorf("results = %v, want nil", results)
		}
	})
}

func TestIndexRebuild(t *testing.T) {
	idx := NewIndex(nil)
	idx.Rebuild(testDocs())
	idx.Rebuild([]Doc{{Key: "9", Title: "Blue Train", Ref: 9}})

	if results := idx.Search("abbey"); len(results) != 0 {
		t.Errorf("stale doc survived rebuild: %v", results)
	}
	if results := idx.Search("blue"); len(results) != 1 {
		t.Errorf("rebuilt index returned %v", results)
	}
}
