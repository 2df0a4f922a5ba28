package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func row(id int64, title string, created time.Time, likes int, tags ...string) Row {
	return Row{
		Article: Article{ID: id, Title: title, CreatedAt: created, Tags: tags},
		Likes:   likes,
	}
}

func TestParseSortKey(t *testing.T) {
	assert.Equal(t, SortNewest, ParseSortKey("newest"))
	assert.Equal(t, SortOldest, ParseSortKey("oldest"))
	assert.Equal(t, SortMostLiked, ParseSortKey("most-liked"))
	// Unknown key is identity, not an error
	assert.Equal(t, SortNone, ParseSortKey("trending"))
	assert.Equal(t, SortNone, ParseSortKey(""))
}

func TestProjectIdentity(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	rows := []Row{
		row(1, "Go generics", day(1), 2, "go"),
		row(2, "Web things", day(3), 5, "web"),
		row(3, "More Go", day(2), 5, "go", "web"),
	}

	out := Project(rows, Criteria{})
	assert.Equal(t, rows, out)

	// Pure: input untouched
	assert.Equal(t, int64(1), rows[0].ID)
}

func TestProjectSearch(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	rows := []Row{
		row(1, "Go generics", day(1), 0, "go"),
		row(2, "Web things", day(2), 0, "web"),
		row(3, "Databases", day(3), 0, "postgres"),
	}
	rows[2].Excerpt = "tuning go queries"

	// Case-insensitive, matches title, excerpt and tags
	out := Project(rows, Criteria{Search: "GO"})
	ids := rowIDs(out)
	assert.Equal(t, []int64{1, 3}, ids)

	out = Project(rows, Criteria{Search: "web"})
	assert.Equal(t, []int64{2}, rowIDs(out))

	out = Project(rows, Criteria{Search: "nothing matches"})
	assert.Empty(t, out)
}

func TestProjectTagFilter(t *testing.T) {
	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	rows := []Row{
		row(1, "one", day, 0, "a", "b"),
		row(2, "two", day, 0, "b"),
		row(3, "three", day, 0, "c"),
	}

	out := Project(rows, Criteria{Tag: "b"})
	assert.Equal(t, []int64{1, 2}, rowIDs(out))

	// Exact match only - no substring
	out = Project(rows, Criteria{Tag: "B"})
	assert.Empty(t, out)
}

func TestProjectSort(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	rows := []Row{
		row(1, "old", day(1), 3),
		row(2, "new", day(5), 1),
		row(3, "mid", day(3), 3),
	}

	assert.Equal(t, []int64{2, 3, 1}, rowIDs(Project(rows, Criteria{Sort: SortNewest})))
	assert.Equal(t, []int64{1, 3, 2}, rowIDs(Project(rows, Criteria{Sort: SortOldest})))
	// Ties keep input order (stable): 1 before 3
	assert.Equal(t, []int64{1, 3, 2}, rowIDs(Project(rows, Criteria{Sort: SortMostLiked})))
}

// Projecting twice with the same criteria yields the same result.
func TestProjectIdempotent(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }
	rows := []Row{
		row(1, "alpha", day(2), 4, "go"),
		row(2, "beta", day(1), 9, "go"),
		row(3, "gamma", day(3), 1, "web"),
	}

	criteria := Criteria{Tag: "go", Sort: SortMostLiked}
	first := Project(rows, criteria)
	second := Project(rows, criteria)
	assert.Equal(t, first, second)

	// Projecting an already-projected set is stable too
	assert.Equal(t, first, Project(first, criteria))
}

func rowIDs(rows []Row) []int64 {
	ids := make([]int64, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return ids
}
