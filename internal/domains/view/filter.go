package view

import (
	"sort"
	"strings"
)

// Sort keys cho article views
type SortKey string

const (
	SortNone      SortKey = ""           // giữ input order
	SortNewest    SortKey = "newest"     // createdAt desc
	SortOldest    SortKey = "oldest"     // createdAt asc
	SortMostLiked SortKey = "most-liked" // likes desc
)

// ParseSortKey - unknown key coerce về SortNone (identity)
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortNewest, SortOldest, SortMostLiked:
		return SortKey(s)
	}
	return SortNone
}

// Criteria là user-controlled projection criteria
// Zero value = identity projection (mọi rows, input order)
type Criteria struct {
	Search string  // free-text, case-insensitive, match title/excerpt/tags
	Tag    string  // exact tag name, AND với Search
	Sort   SortKey // stable sort
}

// Project derive filtered/sorted subset từ rows - pure, không mutate input
// Recompute mỗi khi criteria hoặc source thay đổi.
func Project(rows []Row, criteria Criteria) []Row {
	out := make([]Row, 0, len(rows))
	search := strings.ToLower(strings.TrimSpace(criteria.Search))

	for _, row := range rows {
		if search != "" && !matchesSearch(row, search) {
			continue
		}
		if criteria.Tag != "" && !hasTag(row.Tags, criteria.Tag) {
			continue
		}
		out = append(out, row)
	}

	// Stable sort: ties giữ relative input order
	switch criteria.Sort {
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		})
	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		})
	case SortMostLiked:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Likes > out[j].Likes
		})
	}

	return out
}

func matchesSearch(row Row, search string) bool {
	if strings.Contains(strings.ToLower(row.Title), search) {
		return true
	}
	if strings.Contains(strings.ToLower(row.Excerpt), search) {
		return true
	}
	for _, tag := range row.Tags {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

func hasTag(tags []string, want string) bool {
	for _, tag := range tags {
		if tag == want {
			return true
		}
	}
	return false
}
