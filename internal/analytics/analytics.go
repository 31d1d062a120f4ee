// Package analytics computes read-side aggregates over item counters and
// the visit log. Every function recomputes from scratch; there is no
// cached or incremental state.
package analytics

import (
	"sort"
	"time"

	"github.com/optionshub/mediavault-server/internal/domain"
)

// Totals summarizes library-wide engagement.
type Totals struct {
	Views     int64 `json:"views"`
	Downloads int64 `json:"downloads"`
	// Conversion is downloads over views as a percentage, 0 when there
	// are no views.
	Conversion float64 `json:"conversion"`
}

// TrafficBucket is visit volume within one trailing window.
type TrafficBucket struct {
	Window           string `json:"window"`
	Visits           int    `json:"visits"`
	DistinctVisitors int    `json:"distinctVisitors"`
}

// UserEngagement is one row of the per-user leaderboard.
type UserEngagement struct {
	Username   string `json:"username"`
	Views      int64  `json:"views"`
	Downloads  int64  `json:"downloads"`
	LastActive string `json:"lastActive"`
}

// DailyTraffic is one day's visit count for the timeline chart.
type DailyTraffic struct {
	Date   string `json:"date"` // YYYY-MM-DD
	Visits int    `json:"visits"`
}

// ComputeTotals sums views and downloads across all items.
func ComputeTotals(items []domain.MediaItem) Totals {
	var t Totals
	for i := range items {
		t.Views += items[i].Views
		t.Downloads += items[i].Downloads
	}
	if t.Views > 0 {
		t.Conversion = float64(t.Downloads) / float64(t.Views) * 100
	}
	return t
}

// TopByViews returns up to n items sorted descending by views. The sort
// is stable so ties keep their storage order.
func TopByViews(items []domain.MediaItem, n int) []domain.MediaItem {
	return topBy(items, n, func(m *domain.MediaItem) int64 { return m.Views })
}

// TopByDownloads returns up to n items sorted descending by downloads.
func TopByDownloads(items []domain.MediaItem, n int) []domain.MediaItem {
	return topBy(items, n, func(m *domain.MediaItem) int64 { return m.Downloads })
}

func topBy(items []domain.MediaItem, n int, key func(*domain.MediaItem) int64) []domain.MediaItem {
	sorted := make([]domain.MediaItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return key(&sorted[i]) > key(&sorted[j])
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Leaderboard sorts per-user engagement rows descending by combined
// views and downloads, ties stable.
func Leaderboard(users []domain.UserAnalytics) []UserEngagement {
	rows := make([]UserEngagement, len(users))
	for i, u := range users {
		rows[i] = UserEngagement{
			Username:   u.Username,
			Views:      u.Views,
			Downloads:  u.Downloads,
			LastActive: u.LastActive,
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Views+rows[i].Downloads > rows[j].Views+rows[j].Downloads
	})
	return rows
}

// trafficWindows are the trailing windows reported by Traffic, in
// display order.
var trafficWindows = []struct {
	name string
	span time.Duration
}{
	{"day", 24 * time.Hour},
	{"week", 7 * 24 * time.Hour},
	{"month", 30 * 24 * time.Hour},
	{"year", 365 * 24 * time.Hour},
}

// Traffic buckets the visit log into trailing 24h/7d/30d/365d windows
// measured from now. A distinct visitor is identified by handle when
// present and not the guest sentinel, otherwise by IP.
func Traffic(visits []domain.VisitLog, now time.Time) []TrafficBucket {
	buckets := make([]TrafficBucket, len(trafficWindows))
	seen := make([]map[string]struct{}, len(trafficWindows))
	for i, w := range trafficWindows {
		buckets[i] = TrafficBucket{Window: w.name}
		seen[i] = make(map[string]struct{})
	}

	for _, v := range visits {
		ts, err := time.Parse(time.RFC3339, v.Timestamp)
		if err != nil {
			continue
		}
		key := visitorKey(v)
		for i, w := range trafficWindows {
			if ts.After(now.Add(-w.span)) && !ts.After(now) {
				buckets[i].Visits++
				seen[i][key] = struct{}{}
			}
		}
	}

	for i := range buckets {
		buckets[i].DistinctVisitors = len(seen[i])
	}
	return buckets
}

// DailyTimeline counts visits per calendar day (UTC) over the trailing
// days-day window, oldest first, including zero-visit days.
func DailyTimeline(visits []domain.VisitLog, now time.Time, days int) []DailyTraffic {
	if days <= 0 {
		return nil
	}
	counts := make(map[string]int, days)
	start := now.UTC().AddDate(0, 0, -(days - 1)).Truncate(24 * time.Hour)
	for _, v := range visits {
		ts, err := time.Parse(time.RFC3339, v.Timestamp)
		if err != nil {
			continue
		}
		ts = ts.UTC()
		if ts.Before(start) || ts.After(now) {
			continue
		}
		counts[ts.Format("2006-01-02")]++
	}

	timeline := make([]DailyTraffic, 0, days)
	for d := 0; d < days; d++ {
		date := start.AddDate(0, 0, d).Format("2006-01-02")
		timeline = append(timeline, DailyTraffic{Date: date, Visits: counts[date]})
	}
	return timeline
}

func visitorKey(v domain.VisitLog) string {
	if v.Username != "" && v.Username != domain.GuestID {
		return "u:" + v.Username
	}
	return "ip:" + v.IP
}
