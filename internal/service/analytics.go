package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/optionshub/mediavault-server/internal/analytics"
	"github.com/optionshub/mediavault-server/internal/domain"
	"github.com/optionshub/mediavault-server/internal/store"
)

// timelineDays is the span of the daily traffic chart.
const timelineDays = 30

// AnalyticsService assembles the operator dashboard. All numbers are
// recomputed from the document on every call.
type AnalyticsService struct {
	store  *store.Store
	logger *slog.Logger
	now    func() time.Time
}

// NewAnalyticsService creates a new analytics service.
func NewAnalyticsService(st *store.Store, logger *slog.Logger) *AnalyticsService {
	return &AnalyticsService{store: st, logger: logger, now: time.Now}
}

// Dashboard is everything the operator analytics page renders.
type Dashboard struct {
	Totals         analytics.Totals           `json:"totals"`
	TopByViews     []RankedItem               `json:"topByViews"`
	TopByDownloads []RankedItem               `json:"topByDownloads"`
	Leaderboard    []analytics.UserEngagement `json:"leaderboard"`
	Traffic        []analytics.TrafficBucket  `json:"traffic"`
	DailyTraffic   []analytics.DailyTraffic   `json:"dailyTraffic"`
	Stats          []domain.StatPoint         `json:"stats"`
}

// RankedItem is one row of a top-N ranking.
type RankedItem struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Type      string  `json:"type"`
	Views     int64   `json:"views"`
	Downloads int64   `json:"downloads"`
	Rating    float64 `json:"rating"`
}

// Dashboard computes the full dashboard with up to topN entries per
// ranking.
func (s *AnalyticsService) Dashboard(ctx context.Context, topN int) (*Dashboard, error) {
	lib, err := s.store.Library(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()

	return &Dashboard{
		Totals:         analytics.ComputeTotals(lib.Items),
		TopByViews:     rankedItems(lib, analytics.TopByViews(lib.Items, topN)),
		TopByDownloads: rankedItems(lib, analytics.TopByDownloads(lib.Items, topN)),
		Leaderboard:    analytics.Leaderboard(lib.UserAnalytics),
		Traffic:        analytics.Traffic(lib.VisitLogs, now),
		DailyTraffic:   analytics.DailyTimeline(lib.VisitLogs, now, timelineDays),
		Stats:          lib.Stats,
	}, nil
}

func rankedItems(lib *domain.Library, items []domain.MediaItem) []RankedItem {
	out := make([]RankedItem, 0, len(items))
	for i := range items {
		item := &items[i]
		out = append(out, RankedItem{
			ID:        item.ID,
			Title:     item.Title.Get(lib.DefaultLanguage),
			Type:      item.Type,
			Views:     item.Views,
			Downloads: item.Downloads,
			Rating:    lib.AverageRating(item.ID),
		})
	}
	return out
}
