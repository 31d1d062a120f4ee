package service

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/optionshub/mediavault-server/internal/access"
	"github.com/optionshub/mediavault-server/internal/domain"
	apperrors "github.com/optionshub/mediavault-server/internal/errors"
	"github.com/optionshub/mediavault-server/internal/id"
	"github.com/optionshub/mediavault-server/internal/ipinfo"
	"github.com/optionshub/mediavault-server/internal/store"
)

// VisitService runs the security gate and records visit logs.
type VisitService struct {
	store  *store.Store
	ipinfo *ipinfo.Client
	logger *slog.Logger
}

// NewVisitService creates a new visit service.
func NewVisitService(st *store.Store, ip *ipinfo.Client, logger *slog.Logger) *VisitService {
	return &VisitService{
		store:  st,
		ipinfo: ip,
		logger: logger,
	}
}

// Register gates a visit and, when admitted, appends a visit log entry.
// Operators bypass the gate entirely. Blocked visitors get ErrBlocked
// and no log entry.
//
// The remote IP comes from the connection; when it is missing or not a
// public address, a timeboxed external lookup fills it in, degrading to
// "unknown" on failure.
func (s *VisitService) Register(ctx context.Context, v domain.Viewer, remoteIP, platform string) error {
	resolvedIP := s.resolveIP(ctx, remoteIP)

	if !v.IsOperator() {
		lib, err := s.store.Library(ctx)
		if err != nil {
			return err
		}
		if access.Blocked(lib.Access(), v.Handle, resolvedIP) {
			return apperrors.ErrBlocked
		}
	}

	visitID, err := id.Generate("visit")
	if err != nil {
		return apperrors.Internal("generate visit id", err)
	}

	username := v.Handle
	if username == "" {
		username = v.Key()
	}

	visit := domain.VisitLog{
		ID:        visitID,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Username:  username,
		IP:        resolvedIP,
		Platform:  platform,
	}
	if err := s.store.AppendVisit(ctx, visit); err != nil {
		return err
	}

	s.logger.Debug("Visit recorded", "username", visit.Username, "ip", visit.IP, "platform", platform)
	return nil
}

// resolveIP prefers the public connection address; private or missing
// addresses fall back to the external lookup.
func (s *VisitService) resolveIP(ctx context.Context, remoteIP string) string {
	if ip := net.ParseIP(remoteIP); ip != nil && !ip.IsPrivate() && !ip.IsLoopback() && !ip.IsUnspecified() {
		return remoteIP
	}
	return s.ipinfo.LookupOrUnknown(ctx)
}
