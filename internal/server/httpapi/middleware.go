package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/campkeeper/campkeeper/internal/common"
	"github.com/campkeeper/campkeeper/internal/server/models"
	"github.com/google/uuid"
)

type ctxKey string

const (
	currentUserKey ctxKey = "currentUser"
	requestIDKey   ctxKey = "requestID"
)

// currentUser returns the identity resolved by requireRoles for this
// request.
func currentUser(r *http.Request) *models.User {
	u, _ := r.Context().Value(currentUserKey).(*models.User)
	return u
}

// bearerToken extracts the session token from the Authorization header,
// stripping the "Bearer " scheme prefix when present. The token stays an
// opaque string from here on.
func bearerToken(r *http.Request) string {
	value := r.Header.Get(common.AuthorizationHeaderName)
	return strings.TrimPrefix(value, common.BearerSchemePrefix)
}

// requireRoles wraps a handler with one authentication check parameterized
// by the required-role set. On success the resolved user is stored in the
// request context; every deny reason is translated by writeError.
func (s *Server) requireRoles(required []string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.auth.Authenticate(r.Context(), bearerToken(r), required)
		if err != nil {
			writeError(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), currentUserKey, user)
		next(w, r.WithContext(ctx))
	}
}

// withRequestID tags every request with a fresh id for log correlation.
func (s *Server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		ctx := context.WithValue(r.Context(), requestIDKey, id)

		s.logger.Debug(ctx, "request", "request_id", id, "method", r.Method, "path", r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
