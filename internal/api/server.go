// Package api exposes the tracker over HTTP: expense CRUD, summaries, the
// trend series, insights and the async report path.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/spendwise-app/spendwise/internal/clients/kafka"
	"github.com/spendwise-app/spendwise/internal/entity/expense"
	"github.com/spendwise-app/spendwise/internal/model/trend"
)

type expenseStorage interface {
	Create(ctx context.Context, fields expense.Fields) (expense.Record, error)
	Update(ctx context.Context, id string, fields expense.Fields) (expense.Record, error)
	Delete(ctx context.Context, id string) error
	All(ctx context.Context) ([]expense.Record, error)
}

type reportRequester interface {
	RequestReport(req kafka.ReportRequest) error
}

type reportCache interface {
	GetReport(period, category string) (string, error)
	InvalidateReports() error
}

type insighter interface {
	Ask(ctx context.Context, question string, records []expense.Record) string
}

type Server struct {
	storage   expenseStorage
	reports   reportRequester
	cache     reportCache
	insights  insighter
	trendDays int
	router    chi.Router
	now       func() time.Time
}

// Options carries the optional collaborators. A nil reports/cache pair turns
// the async report endpoints off; a nil insights service turns /api/insights
// off. The core endpoints only need the storage.
type Options struct {
	Reports  reportRequester
	Cache    reportCache
	Insights insighter

	// TrendDays overrides the default trend window; zero keeps it.
	TrendDays int
}

func NewServer(storage expenseStorage, opts Options) *Server {
	trendDays := opts.TrendDays
	if trendDays <= 0 {
		trendDays = trend.DefaultWindowDays
	}
	s := &Server{
		storage:   storage,
		reports:   opts.Reports,
		cache:     opts.Cache,
		insights:  opts.Insights,
		trendDays: trendDays,
		now:       time.Now,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(observe)

	r.Route("/api", func(r chi.Router) {
		r.Get("/expenses", s.handleListExpenses)
		r.Post("/expenses", s.handleCreateExpense)
		r.Put("/expenses/{id}", s.handleUpdateExpense)
		r.Delete("/expenses/{id}", s.handleDeleteExpense)

		r.Get("/summary", s.handleSummary)
		r.Get("/trend", s.handleTrend)

		if s.insights != nil {
			r.Post("/insights", s.handleInsights)
			r.Get("/insights/suggestions", s.handleSuggestions)
		}
		if s.reports != nil && s.cache != nil {
			r.Post("/reports", s.handleRequestReport)
			r.Get("/reports", s.handleGetReport)
		}
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe blocks until ctx is cancelled, then shuts the server down.
func (s *Server) ListenAndServe(ctx context.Context, port int) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
