package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/optionshub/mediavault-server/internal/domain"
)

func (s *Server) registerEngagementRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "toggleFavorite",
		Method:      http.MethodPost,
		Path:        "/api/v1/items/{id}/favorite",
		Summary:     "Toggle favorite",
		Description: "Flips the viewer's favorite for an item and returns the new state",
		Tags:        []string{"Engagement"},
	}, s.handleToggleFavorite)

	huma.Register(s.api, huma.Operation{
		OperationID: "rateItem",
		Method:      http.MethodPut,
		Path:        "/api/v1/items/{id}/rating",
		Summary:     "Rate item",
		Description: "Records the viewer's 1-5 rating and returns the new average",
		Tags:        []string{"Engagement"},
	}, s.handleRateItem)

	huma.Register(s.api, huma.Operation{
		OperationID: "trackActivity",
		Method:      http.MethodPost,
		Path:        "/api/v1/items/{id}/track",
		Summary:     "Track activity",
		Description: "Counts one view or download against an item. Rate limited per client IP.",
		Tags:        []string{"Engagement"},
	}, s.handleTrackActivity)
}

// === DTOs ===

// ToggleFavoriteInput identifies the item to toggle.
type ToggleFavoriteInput struct {
	ID string `path:"id" doc:"Item ID"`
}

// ToggleFavoriteOutput carries the new favorite state.
type ToggleFavoriteOutput struct {
	Body struct {
		IsFavorite bool `json:"isFavorite"`
	}
}

// RateItemInput carries the viewer's rating.
type RateItemInput struct {
	ID   string `path:"id" doc:"Item ID"`
	Body struct {
		Value int `json:"value" validate:"required,gte=1,lte=5" doc:"Rating from 1 to 5"`
	}
}

// RateItemOutput carries the recalculated average.
type RateItemOutput struct {
	Body struct {
		AverageRating float64 `json:"averageRating"`
	}
}

// TrackActivityInput names the activity being counted.
type TrackActivityInput struct {
	ID   string `path:"id" doc:"Item ID"`
	Body struct {
		Kind string `json:"kind" validate:"required,oneof=view download" doc:"Activity kind: view or download"`
	}
}

// TrackActivityOutput confirms the event was counted.
type TrackActivityOutput struct {
	Body struct {
		Recorded bool `json:"recorded"`
	}
}

// === Handlers ===

func (s *Server) handleToggleFavorite(ctx context.Context, input *ToggleFavoriteInput) (*ToggleFavoriteOutput, error) {
	on, err := s.services.Engagement.ToggleFavorite(ctx, ViewerFrom(ctx), input.ID)
	if err != nil {
		return nil, err
	}

	out := &ToggleFavoriteOutput{}
	out.Body.IsFavorite = on
	return out, nil
}

func (s *Server) handleRateItem(ctx context.Context, input *RateItemInput) (*RateItemOutput, error) {
	avg, err := s.services.Engagement.Rate(ctx, ViewerFrom(ctx), input.ID, input.Body.Value)
	if err != nil {
		return nil, err
	}

	out := &RateItemOutput{}
	out.Body.AverageRating = avg
	return out, nil
}

func (s *Server) handleTrackActivity(ctx context.Context, input *TrackActivityInput) (*TrackActivityOutput, error) {
	if !s.trackLimiter.Allow(ClientIP(ctx)) {
		return nil, huma.Error429TooManyRequests("Too many tracking requests")
	}

	kind := domain.ActivityKind(input.Body.Kind)
	if err := s.services.Engagement.Track(ctx, ViewerFrom(ctx), kind, input.ID); err != nil {
		return nil, err
	}

	out := &TrackActivityOutput{}
	out.Body.Recorded = true
	return out, nil
}
