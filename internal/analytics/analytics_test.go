package analytics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/optionshub/mediavault-server/internal/domain"
)

func TestComputeTotals(t *testing.T) {
	items := []domain.MediaItem{
		{ID: "a", Views: 100, Downloads: 25},
		{ID: "b", Views: 50, Downloads: 5},
	}

	totals := ComputeTotals(items)
	assert.Equal(t, int64(150), totals.Views)
	assert.Equal(t, int64(30), totals.Downloads)
	assert.InDelta(t, 20.0, totals.Conversion, 0.001)
}

func TestComputeTotals_ZeroViews(t *testing.T) {
	totals := ComputeTotals([]domain.MediaItem{{ID: "a", Downloads: 10}})
	assert.Equal(t, float64(0), totals.Conversion)
}

func TestTopByViews_StableTies(t *testing.T) {
	items := []domain.MediaItem{
		{ID: "a", Views: 10},
		{ID: "b", Views: 50},
		{ID: "c", Views: 10},
		{ID: "d", Views: 99},
	}

	top := TopByViews(items, 3)
	assert.Equal(t, "d", top[0].ID)
	assert.Equal(t, "b", top[1].ID)
	// Tie between a and c keeps storage order.
	assert.Equal(t, "a", top[2].ID)

	// Input slice untouched.
	assert.Equal(t, "a", items[0].ID)
}

func TestTopByDownloads(t *testing.T) {
	items := []domain.MediaItem{
		{ID: "a", Downloads: 1},
		{ID: "b", Downloads: 9},
	}

	top := TopByDownloads(items, 5)
	assert.Equal(t, []string{"b", "a"}, []string{top[0].ID, top[1].ID})
}

func TestLeaderboard(t *testing.T) {
	users := []domain.UserAnalytics{
		{Username: "alice", Views: 5, Downloads: 5},
		{Username: "bob", Views: 20, Downloads: 1},
		{Username: "carol", Views: 9, Downloads: 1},
	}

	rows := Leaderboard(users)
	assert.Equal(t, "bob", rows[0].Username)
	assert.Equal(t, "alice", rows[1].Username)
	assert.Equal(t, "carol", rows[2].Username)
}

func TestTraffic(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	visit := func(ago time.Duration, username, ip string) domain.VisitLog {
		return domain.VisitLog{
			Timestamp: now.Add(-ago).Format(time.RFC3339),
			Username:  username,
			IP:        ip,
		}
	}

	visits := []domain.VisitLog{
		visit(time.Hour, "alice", "10.0.0.1"),
		visit(2*time.Hour, "alice", "10.0.0.2"), // same visitor, different IP
		visit(3*24*time.Hour, "bob", "10.0.0.3"),
		visit(20*24*time.Hour, domain.GuestID, "10.0.0.4"),  // guest keyed by IP
		visit(200*24*time.Hour, "", "10.0.0.4"),             // same IP, outside month
		visit(400*24*time.Hour, "ancient", "10.0.0.5"),      // outside every window
	}

	buckets := Traffic(visits, now)
	byWindow := make(map[string]TrafficBucket, len(buckets))
	for _, b := range buckets {
		byWindow[b.Window] = b
	}

	assert.Equal(t, 2, byWindow["day"].Visits)
	assert.Equal(t, 1, byWindow["day"].DistinctVisitors)

	assert.Equal(t, 3, byWindow["week"].Visits)
	assert.Equal(t, 2, byWindow["week"].DistinctVisitors)

	assert.Equal(t, 4, byWindow["month"].Visits)
	assert.Equal(t, 3, byWindow["month"].DistinctVisitors)

	assert.Equal(t, 5, byWindow["year"].Visits)
	assert.Equal(t, 3, byWindow["year"].DistinctVisitors)
}

func TestDailyTimeline(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	visits := []domain.VisitLog{
		{Timestamp: "2025-06-15T08:00:00Z"},
		{Timestamp: "2025-06-15T09:00:00Z"},
		{Timestamp: "2025-06-14T23:00:00Z"},
		{Timestamp: "2025-06-01T10:00:00Z"}, // outside a 7-day window
		{Timestamp: "not-a-timestamp"},
	}

	timeline := DailyTimeline(visits, now, 7)
	assert.Len(t, timeline, 7)
	assert.Equal(t, "2025-06-09", timeline[0].Date)
	assert.Equal(t, 0, timeline[0].Visits)
	assert.Equal(t, DailyTraffic{Date: "2025-06-14", Visits: 1}, timeline[5])
	assert.Equal(t, DailyTraffic{Date: "2025-06-15", Visits: 2}, timeline[6])
}
