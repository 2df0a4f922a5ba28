package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCenterAutoDismiss(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	center := NewCenter(3 * time.Second).WithClock(func() time.Time { return now })

	center.Add(LevelSuccess, "Article deleted")
	center.Add(LevelDanger, "Failed to delete article")

	active := center.Active()
	assert.Len(t, active, 2)

	// Just before dismiss deadline the notice is still live
	now = now.Add(2900 * time.Millisecond)
	assert.Len(t, center.Active(), 2)

	// Past the deadline both are purged
	now = now.Add(200 * time.Millisecond)
	assert.Empty(t, center.Active())
}

func TestCenterPurgesOnlyExpired(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	center := NewCenter(3 * time.Second).WithClock(func() time.Time { return now })

	center.Add(LevelSuccess, "first")
	now = now.Add(2 * time.Second)
	center.Add(LevelInfo, "second")

	now = now.Add(2 * time.Second) // first is 4s old, second 2s old
	active := center.Active()
	assert.Len(t, active, 1)
	assert.Equal(t, "second", active[0].Message)
}

func TestCenterDefaultDismiss(t *testing.T) {
	center := NewCenter(0)
	assert.Equal(t, DefaultDismissAfter, center.dismissAfter)
}
