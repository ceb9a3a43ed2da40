package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/NoobYoup/amis-nextjs-sub001/internal/admintoken"
	"github.com/NoobYoup/amis-nextjs-sub001/internal/app"
	"github.com/NoobYoup/amis-nextjs-sub001/internal/ratelimit"
	"github.com/NoobYoup/amis-nextjs-sub001/internal/util"
)

// Config wires required dependencies for the HTTP server.
type Config struct {
	App            *app.App
	TokenVerifier  *admintoken.Verifier
	AdminLimiter   *ratelimit.FixedWindowLimiter
	TrustedProxies *util.TrustedProxies
	MaxUploadBytes int64
	RequestTimeout time.Duration
}

// Server exposes the public listing and admin content endpoints.
type Server struct {
	app            *app.App
	tokenVerifier  *admintoken.Verifier
	adminLimiter   *ratelimit.FixedWindowLimiter
	trustedProxies *util.TrustedProxies
	mux            *http.ServeMux
	maxUploadBytes int64
	requestTimeout time.Duration
}

// New constructs the server with routes configured.
func New(cfg Config) *Server {
	maxUploadBytes := cfg.MaxUploadBytes
	if maxUploadBytes <= 0 {
		maxUploadBytes = 50 * 1024 * 1024
	}
	requestTimeout := cfg.RequestTimeout
	if requestTimeout <= 0 {
		requestTimeout = 30 * time.Second
	}
	s := &Server{
		app:            cfg.App,
		tokenVerifier:  cfg.TokenVerifier,
		adminLimiter:   cfg.AdminLimiter,
		trustedProxies: cfg.TrustedProxies,
		mux:            http.NewServeMux(),
		maxUploadBytes: maxUploadBytes,
		requestTimeout: requestTimeout,
	}
	s.routes()
	return s
}

// Router returns the configured handler.
func (s *Server) Router() http.Handler {
	return util.WithRequestID(util.WithRequestLog("school", util.WithSecurityHeaders(util.WithCORS(s.mux))))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/healthz", s.handleHealth)

	s.mux.Handle("/api/activities", s.withTimeout(s.handleActivities))
	s.mux.Handle("/api/activities/", s.withTimeout(s.handleActivityByID))
	s.mux.Handle("/api/documents", s.withTimeout(s.handleDocuments))
	s.mux.Handle("/api/documents/", s.withTimeout(s.handleDocumentByID))
	s.mux.Handle("/api/news", s.withTimeout(s.handleNews))
	s.mux.Handle("/api/news/", s.withTimeout(s.handleNewsByID))
	s.mux.Handle("/api/reforms", s.withTimeout(s.handleReforms))
	s.mux.Handle("/api/reforms/", s.withTimeout(s.handleReformByID))
	s.mux.Handle("/api/procedures", s.withTimeout(s.handleProcedures))
	s.mux.Handle("/api/procedures/", s.withTimeout(s.handleProcedureByID))
	s.mux.Handle("/api/tuition", s.withTimeout(s.handleTuition))
	s.mux.Handle("/api/tuition/", s.withTimeout(s.handleTuitionByID))
	s.mux.Handle("/api/categories", s.withTimeout(s.handleCategories))
	s.mux.Handle("/api/categories/", s.withTimeout(s.handleCategoryByID))
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// withTimeout bounds every request so slow uploads or queries fail with a
// timeout instead of holding the connection open.
func (s *Server) withTimeout(next http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), s.requestTimeout)
		defer cancel()
		next(w, r.WithContext(ctx))
	})
}

// requireAdmin guards mutating endpoints: rate limit by client IP first,
// then verify the bearer token carries the admin role. Writes the error
// response itself and reports whether the request may proceed.
func (s *Server) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	if s.adminLimiter != nil {
		key := r.URL.Path + "|" + util.ClientIP(r, s.trustedProxies)
		if !s.adminLimiter.Allow(key) {
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "RATE_LIMITED", "too many requests")
			return false
		}
	}
	if s.tokenVerifier == nil {
		writeError(w, http.StatusInternalServerError, "SYSTEM_INTERNAL_ERROR", "auth not configured")
		return false
	}
	token, ok := admintoken.BearerToken(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "AUTH_INVALID_TOKEN", "unauthorized")
		return false
	}
	if _, err := s.tokenVerifier.VerifyAdmin(token); err != nil {
		writeError(w, http.StatusUnauthorized, "AUTH_INVALID_TOKEN", "unauthorized")
		return false
	}
	return true
}

// itemID extracts the trailing id of an /api/{resource}/{id} path.
func itemID(r *http.Request, prefix string) (string, bool) {
	id := strings.TrimPrefix(r.URL.Path, prefix)
	if id == "" || strings.Contains(id, "/") {
		return "", false
	}
	return id, true
}

// maxPageSize caps the limit query parameter so a single request cannot
// page through the whole table.
const maxPageSize = 100

// queryPaging reads page and limit query parameters. Values below 1 fall
// back to the store defaults; limit is capped at maxPageSize.
func queryPaging(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

func queryYear(r *http.Request) int {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))
	if year < 0 {
		return 0
	}
	return year
}
