package handler

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/efreitasn/despensa/internal/domain"
	"github.com/efreitasn/despensa/internal/engine"
	"github.com/efreitasn/despensa/internal/receipt"
	"github.com/efreitasn/despensa/internal/service"
	"github.com/efreitasn/despensa/internal/store"
)

// NewRouter creates a chi router with all routes registered, request logging,
// and Content-Type validation middleware on the JSON API.
func NewRouter(
	formSvc *service.FormService,
	calc *engine.Calculator,
	sessions *store.SessionStore,
	fmtr *domain.Formatter,
	receipts receipt.Generator,
	logger *slog.Logger,
) chi.Router {
	r := chi.NewRouter()

	// Global middleware.
	r.Use(middleware.Recoverer)
	r.Use(requestLogging(logger))

	forms := &formSessions{svc: formSvc, store: sessions, logger: logger}
	pageH := NewPageHandler(forms, calc.Schedule(), fmtr, receipts)
	apiH := NewAPIHandler(forms, calc, fmtr)

	// Health check.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Page routes.
	r.Get("/", pageH.Show)
	r.Post("/calculate", pageH.Calculate)
	r.Post("/clear", pageH.Clear)
	r.Post("/alert/dismiss", pageH.DismissAlert)
	r.Get("/receipt.pdf", pageH.Receipt)

	// JSON API routes.
	r.Route("/api", func(r chi.Router) {
		r.Use(contentTypeJSON)
		r.Post("/calculate", apiH.Calculate)
		r.Get("/tiers", apiH.Tiers)
		r.Get("/form", apiH.GetForm)
		r.Post("/form/events", apiH.ApplyEvent)
	})

	return r
}

// requestLogging returns middleware that logs each request's method, path,
// status code, and duration using slog.
func requestLogging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(ww, r)
			logger.Info("request",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

// contentTypeJSON is middleware that validates Content-Type for POST, PUT, and
// PATCH requests. If the Content-Type header doesn't start with
// "application/json", it returns 400 Bad Request before the handler runs.
func contentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct == "" || !strings.HasPrefix(ct, "application/json") {
				WriteError(w, http.StatusBadRequest, "invalid_request",
					"Content-Type must be application/json")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

// formSessions loads and saves the visitor's form around a handler.
type formSessions struct {
	svc    *service.FormService
	store  *store.SessionStore
	logger *slog.Logger
}

// load returns the session's form, or a fresh one.
func (s *formSessions) load(r *http.Request) *domain.Form {
	if f, ok := s.store.Load(r); ok {
		return f
	}
	return s.svc.NewForm()
}

// save writes f back to the session. It reports false after writing a
// 500 response when the cookie could not be encoded.
func (s *formSessions) save(w http.ResponseWriter, r *http.Request, f *domain.Form) bool {
	if err := s.store.Save(w, r, f); err != nil {
		s.logger.Error("session save failed",
			slog.String("form_id", f.ID),
			slog.String("error", err.Error()),
		)
		WriteError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
		return false
	}
	return true
}
