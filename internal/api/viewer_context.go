package api

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/optionshub/mediavault-server/internal/auth"
	"github.com/optionshub/mediavault-server/internal/domain"
)

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

const (
	viewerKey   ctxKey = "viewer"
	clientIPKey ctxKey = "clientIP"
)

// Identity headers forwarded by the mini-app webview. The numeric id and
// handle come from the host platform's user object; absent headers mean
// a guest.
const (
	headerViewerID     = "X-Viewer-Id"
	headerViewerHandle = "X-Viewer-Username"
)

// ViewerFrom returns the viewer attached to the request context. Requests
// that never passed the viewer middleware count as guests.
func ViewerFrom(ctx context.Context) domain.Viewer {
	if v, ok := ctx.Value(viewerKey).(domain.Viewer); ok {
		return v
	}
	return domain.Guest()
}

// ClientIP returns the connection address recorded by the middleware,
// or the empty string.
func ClientIP(ctx context.Context) string {
	if ip, ok := ctx.Value(clientIPKey).(string); ok {
		return ip
	}
	return ""
}

// viewerMiddleware resolves the request's viewer identity and client IP
// into the context. A valid operator session token wins over platform
// identity headers; an invalid token downgrades to whatever the headers
// say rather than failing the request.
func viewerMiddleware(sessions *auth.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), clientIPKey, remoteIP(r))
			ctx = context.WithValue(ctx, viewerKey, resolveViewer(r, sessions))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func resolveViewer(r *http.Request, sessions *auth.SessionService) domain.Viewer {
	if token, ok := bearerToken(r); ok {
		if err := sessions.VerifySession(token); err == nil {
			return domain.Operator()
		}
	}

	handle := strings.TrimSpace(r.Header.Get(headerViewerHandle))
	idStr := strings.TrimSpace(r.Header.Get(headerViewerID))
	if idStr == "" && handle == "" {
		return domain.Guest()
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id == 0 {
		return domain.Guest()
	}
	return domain.Viewer{Role: domain.RoleUser, ID: id, Handle: handle}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		return "", false
	}
	return h[len("Bearer "):], true
}

// remoteIP strips the port from the connection address. The RealIP
// middleware has already substituted proxy headers where present.
func remoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RequireOperator validates that the request carries an operator session.
func RequireOperator(ctx context.Context) error {
	if !ViewerFrom(ctx).IsOperator() {
		return huma.Error401Unauthorized("Operator session required")
	}
	return nil
}
