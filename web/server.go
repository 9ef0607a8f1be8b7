// ABOUTME: Web UI server with embedded templates
// ABOUTME: Serves the dashboard, companies and notifications pages plus the add/log/plan forms
package web

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/harperreed/touchbase/db"
	"github.com/harperreed/touchbase/followups"
	"github.com/harperreed/touchbase/handlers"
	"github.com/harperreed/touchbase/models"
	"github.com/harperreed/touchbase/viz"
)

//go:embed templates/*
var templatesFS embed.FS

// Options tune the presentation; zero values fall back to defaults.
type Options struct {
	RecentLimit        int
	DefaultPeriodicity int
}

type Server struct {
	store      *db.Store
	classifier *followups.Classifier
	companies  *handlers.CompanyHandlers
	comms      *handlers.CommunicationHandlers
	templates  *template.Template
	metrics    *Metrics
	registry   *prometheus.Registry
	recent     int

	detachMetrics func()
}

func NewServer(store *db.Store, classifier *followups.Classifier, opts Options) (*Server, error) {
	if opts.RecentLimit <= 0 {
		opts.RecentLimit = 5
	}
	if opts.DefaultPeriodicity <= 0 {
		opts.DefaultPeriodicity = models.DefaultPeriodicity
	}

	funcMap := template.FuncMap{
		"date": func(t time.Time) string {
			return t.Format(viz.DateLayout)
		},
		"statusClass": func(s models.Status) string {
			return string(s)
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	registry := prometheus.NewRegistry()
	metrics := NewMetrics(registry, store, classifier)

	return &Server{
		store:         store,
		classifier:    classifier,
		companies:     handlers.NewCompanyHandlers(store, opts.DefaultPeriodicity),
		comms:         handlers.NewCommunicationHandlers(store, classifier),
		templates:     tmpl,
		metrics:       metrics,
		registry:      registry,
		recent:        opts.RecentLimit,
		detachMetrics: metrics.Attach(store),
	}, nil
}

// Close stops counting store mutations. The store itself stays open.
func (s *Server) Close() {
	s.detachMetrics()
}

// Handler builds the router. Call it once per server.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	// Global middlewares
	router.Use(recoveryMiddleware)
	router.Use(requestLogger)

	router.HandleFunc("/", s.handleDashboard).Methods(http.MethodGet)
	router.HandleFunc("/companies", s.handleCompanies).Methods(http.MethodGet)
	router.HandleFunc("/companies", s.handleAddCompany).Methods(http.MethodPost)
	router.HandleFunc("/notifications", s.handleNotifications).Methods(http.MethodGet)
	router.HandleFunc("/companies/{id}/communications", s.handleLogCommunication).Methods(http.MethodPost)
	router.HandleFunc("/companies/{id}/plans", s.handlePlanCommunication).Methods(http.MethodPost)

	router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	return router
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(_ net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msgf("Starting web server at http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("Shutting down web server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("web server forced to shutdown: %w", err)
		}
		return nil
	case err, ok := <-errCh:
		if !ok {
			return nil
		}
		return fmt.Errorf("web server failed: %w", err)
	}
}

// page is the data every template receives.
type page struct {
	Title           string
	Active          string
	ContentTemplate string
	Badge           string
	Error           string

	Dashboard     *viz.Dashboard
	Companies     []viz.CompanyRow
	Notifications []viz.NotificationRow
	Methods       []models.CommunicationMethod
	Today         string

	// CompanyForm echoes a rejected add-company submission.
	CompanyForm handlers.AddCompanyInput
	// FormCompanyID marks which dashboard row a rejected log/plan form belongs to.
	FormCompanyID string
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.renderDashboard(w, r, http.StatusOK, "", "")
}

func (s *Server) renderDashboard(w http.ResponseWriter, r *http.Request, status int, errMsg, companyID string) {
	dash, err := viz.BuildDashboard(r.Context(), s.store, s.classifier, s.recent)
	if err != nil {
		s.serverError(w, err)
		return
	}
	methods, err := s.store.CommunicationMethods(r.Context())
	if err != nil {
		s.serverError(w, err)
		return
	}

	s.render(w, r, status, &page{
		Title:           "Communication Dashboard",
		Active:          "dashboard",
		ContentTemplate: "dashboard-content",
		Error:           errMsg,
		Dashboard:       dash,
		Methods:         methods,
		Today:           s.classifier.Today().Format("2006-01-02"),
		FormCompanyID:   companyID,
	})
}

func (s *Server) handleCompanies(w http.ResponseWriter, r *http.Request) {
	s.renderCompanies(w, r, http.StatusOK, "", handlers.AddCompanyInput{})
}

func (s *Server) renderCompanies(w http.ResponseWriter, r *http.Request, status int, errMsg string, form handlers.AddCompanyInput) {
	rows, err := viz.BuildCompanies(r.Context(), s.store)
	if err != nil {
		s.serverError(w, err)
		return
	}

	s.render(w, r, status, &page{
		Title:           "Companies",
		Active:          "companies",
		ContentTemplate: "companies-content",
		Error:           errMsg,
		Companies:       rows,
		CompanyForm:     form,
	})
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	rows, err := viz.BuildNotifications(r.Context(), s.store, s.classifier)
	if err != nil {
		s.serverError(w, err)
		return
	}

	s.render(w, r, http.StatusOK, &page{
		Title:           "Notifications",
		Active:          "notifications",
		ContentTemplate: "notifications-content",
		Notifications:   rows,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := s.store.CommunicationMethods(r.Context()); err != nil {
		http.Error(w, "store unavailable", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

// render executes layout.html with the badge filled in.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, data *page) {
	count, err := viz.NotificationCount(r.Context(), s.store, s.classifier)
	if err != nil {
		s.serverError(w, err)
		return
	}
	data.Badge = viz.Badge(count)

	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		s.serverError(w, fmt.Errorf("template error rendering %s: %w", data.ContentTemplate, err))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Warn().Err(err).Msg("error writing response")
	}
}

func (s *Server) serverError(w http.ResponseWriter, err error) {
	log.Error().Stack().Err(err).Msg("request failed")
	http.Error(w, "Internal Server Error", http.StatusInternalServerError)
}

// statusFor maps handler errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, handlers.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, handlers.ErrNotFound):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}
