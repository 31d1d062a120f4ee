package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
)

func (s *Server) registerSessionRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "createOperatorSession",
		Method:      http.MethodPost,
		Path:        "/api/v1/admin/session",
		Summary:     "Create operator session",
		Description: "Exchanges the operator secret for a short-lived session token",
		Tags:        []string{"Admin"},
	}, s.handleCreateSession)
}

// CreateSessionInput carries the operator secret.
type CreateSessionInput struct {
	Body struct {
		Secret string `json:"secret" validate:"required,min=1,max=1024" doc:"Shared operator secret"`
	}
}

// CreateSessionOutput carries the minted session token.
type CreateSessionOutput struct {
	Body struct {
		Token     string    `json:"token" doc:"PASETO session token for the Authorization header"`
		ExpiresAt time.Time `json:"expiresAt" doc:"Token expiry"`
	}
}

func (s *Server) handleCreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	token, expiresAt, err := s.sessions.IssueSession(input.Body.Secret)
	if err != nil {
		s.logger.Warn("Operator session rejected", "ip", ClientIP(ctx))
		return nil, err
	}

	s.logger.Info("Operator session issued", "ip", ClientIP(ctx), "expiresAt", expiresAt)

	out := &CreateSessionOutput{}
	out.Body.Token = token
	out.Body.ExpiresAt = expiresAt
	return out, nil
}
