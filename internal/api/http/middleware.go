package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"smartlab-backend/internal/domain"
	"smartlab-backend/internal/logger"
	"smartlab-backend/internal/repository"
	"smartlab-backend/internal/security"
)

type contextKey string

const sessionKey contextKey = "session"

// AuthMiddleware validates bearer tokens and injects the caller's session
// into the request context. The user record is re-read so deleted accounts
// lose access as soon as their token is next used.
type AuthMiddleware struct {
	tokens   security.TokenManager
	userRepo repository.UserRepository
}

func NewAuthMiddleware(tokens security.TokenManager, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{tokens: tokens, userRepo: userRepo}
}

func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			writeError(w, security.ErrInvalidToken)
			return
		}
		claims, err := m.tokens.ValidateToken(token)
		if err != nil {
			writeError(w, err)
			return
		}
		if claims.Type != security.TokenTypeAccess {
			writeError(w, security.ErrWrongTokenType)
			return
		}
		user, err := m.userRepo.GetByID(r.Context(), claims.UserID)
		if err != nil {
			writeError(w, security.ErrInvalidToken)
			return
		}
		sess := domain.Session{UserID: user.ID, Name: user.Name, Role: user.Role}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey, sess)))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return header[7:], true
	}
	return "", false
}

// sessionFrom returns the session stored by AuthMiddleware. Handlers behind
// Require can rely on it being present.
func sessionFrom(ctx context.Context) domain.Session {
	sess, _ := ctx.Value(sessionKey).(domain.Session)
	return sess
}

// LoggingMiddleware records method, path, status and latency per request.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
