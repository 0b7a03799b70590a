package web

import (
	"context"
	"crypto/subtle"
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vbonduro/paani/internal/metrics"
	"github.com/vbonduro/paani/internal/pricing"
	"github.com/vbonduro/paani/internal/service"
	"github.com/vbonduro/paani/internal/site"
)

// Options carries the deployment-dependent behaviour of the API.
type Options struct {
	// AdminPassword guards write endpoints when non-empty.
	AdminPassword string
	// ShowErrorDetails adds the underlying error text to JSON error bodies.
	// Enabled outside production.
	ShowErrorDetails bool
	Metrics          *metrics.Metrics
}

type Server struct {
	service   *service.PortfolioService
	catalogue *pricing.Catalogue
	renderer  *site.Renderer
	templates embed.FS
	mux       *http.ServeMux
	tmplFuncs template.FuncMap
	opts      Options
	logger    *slog.Logger
}

func NewServer(
	svc *service.PortfolioService,
	catalogue *pricing.Catalogue,
	renderer *site.Renderer,
	tmpl embed.FS,
	logger *slog.Logger,
	opts Options,
) *Server {
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	s := &Server{
		service:   svc,
		catalogue: catalogue,
		renderer:  renderer,
		templates: tmpl,
		mux:       http.NewServeMux(),
		opts:      opts,
		logger:    logger,
		tmplFuncs: template.FuncMap{
			"inc": func(i int) int { return i + 1 },
		},
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", s.handleHome)
	s.mux.HandleFunc("GET /healthz", s.handleHealth)
	s.mux.Handle("GET /metrics", s.opts.Metrics.Handler())

	s.mux.HandleFunc("GET /api/portfolio", s.handleGetPortfolio)
	s.mux.HandleFunc("POST /api/portfolio", s.requireAdmin(s.handleSavePortfolio))
	s.mux.HandleFunc("POST /api/upload", s.requireAdmin(s.handleUpload))
	s.mux.HandleFunc("GET /uploads/{name}", s.handleGetAsset)
	s.mux.HandleFunc("POST /api/chat", s.handleChat)
	s.mux.HandleFunc("POST /api/admin/login", s.handleAdminLogin)

	s.mux.HandleFunc("GET /api/pricing", s.handleListPricing)
	s.mux.HandleFunc("GET /api/pricing/{category}", s.handleGetPricingCategory)
	s.mux.HandleFunc("GET /api/pricing/{category}/{plan}", s.handleGetPricingPlan)
}

// adminHeader carries the shared admin password on write requests.
const adminHeader = "X-Admin-Password"

func (s *Server) checkPassword(given string) bool {
	if s.opts.AdminPassword == "" {
		return true
	}
	return subtle.ConstantTimeCompare([]byte(given), []byte(s.opts.AdminPassword)) == 1
}

// requireAdmin rejects requests without the configured admin password.
func (s *Server) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.checkPassword(r.Header.Get(adminHeader)) {
			s.writeError(w, http.StatusUnauthorized, "Unauthorized", nil)
			return
		}
		next(w, r)
	}
}

// securityHeaders adds defensive HTTP response headers to every response.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy",
			"default-src 'self'; "+
				"style-src 'self' 'unsafe-inline' https://fonts.googleapis.com; "+
				"font-src https://fonts.gstatic.com; "+
				"img-src 'self' data: https:; "+
				"frame-src https://www.youtube.com; "+
				"connect-src 'self'")
		next.ServeHTTP(w, r)
	})
}

type requestIDKey struct{}

const requestIDHeader = "X-Request-ID"

// requestID tags each request with an id, reusing one supplied by a proxy.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// requestLogger logs and records metrics for each request. It must wrap the
// mux directly (no request cloning in between) so r.Pattern is visible after
// the mux has routed.
func requestLogger(logger *slog.Logger, m *metrics.Metrics, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		elapsed := time.Since(start)
		m.ObserveRequest(r.Pattern, r.Method, rec.status, elapsed)
		logger.Info("request",
			"request_id", requestIDFrom(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", elapsed.Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID(requestLogger(s.logger, s.opts.Metrics, securityHeaders(s.mux))).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}

// renderPage parses and executes a full-page template set.
func (s *Server) renderPage(w http.ResponseWriter, data any, files ...string) error {
	tmpl, err := template.New("").Funcs(s.tmplFuncs).ParseFS(s.templates, files...)
	if err != nil {
		http.Error(w, "template error", http.StatusInternalServerError)
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return tmpl.ExecuteTemplate(w, "base", data)
}
