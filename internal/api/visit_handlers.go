package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerVisitRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "registerVisit",
		Method:      http.MethodPost,
		Path:        "/api/v1/visits",
		Summary:     "Register a visit",
		Description: "Runs the security gate and records the visit. Blocked visitors receive 403.",
		Tags:        []string{"Visits"},
	}, s.handleRegisterVisit)
}

// RegisterVisitInput describes the visiting client.
type RegisterVisitInput struct {
	Body struct {
		Platform string `json:"platform" validate:"omitempty,max=50" doc:"Client platform label (e.g. ios, android, web)"`
	}
}

// RegisterVisitOutput confirms the visit was admitted.
type RegisterVisitOutput struct {
	Body struct {
		Admitted bool `json:"admitted"`
	}
}

func (s *Server) handleRegisterVisit(ctx context.Context, input *RegisterVisitInput) (*RegisterVisitOutput, error) {
	err := s.services.Visit.Register(ctx, ViewerFrom(ctx), ClientIP(ctx), input.Body.Platform)
	if err != nil {
		return nil, err
	}

	out := &RegisterVisitOutput{}
	out.Body.Admitted = true
	return out, nil
}
