package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/spendwise-app/spendwise/internal/clients/cache"
	"github.com/spendwise-app/spendwise/internal/clients/kafka"
	"github.com/spendwise-app/spendwise/internal/entity/expense"
	"github.com/spendwise-app/spendwise/internal/logger"
	"github.com/spendwise-app/spendwise/internal/model/filter"
	"github.com/spendwise-app/spendwise/internal/model/insights"
	"github.com/spendwise-app/spendwise/internal/model/reports"
	"github.com/spendwise-app/spendwise/internal/model/trend"
)

type expenseInput struct {
	Amount   string `json:"amount"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Notes    string `json:"notes"`
}

func (in expenseInput) fields() expense.Fields {
	return expense.Fields{
		Amount:   in.Amount,
		Category: in.Category,
		Date:     in.Date,
		Notes:    in.Notes,
	}
}

type expenseJSON struct {
	ID       string `json:"id"`
	Amount   string `json:"amount"`
	Category string `json:"category"`
	Date     string `json:"date"`
	Notes    string `json:"notes"`
}

func toExpenseJSON(rec expense.Record) expenseJSON {
	return expenseJSON{
		ID:       rec.ID,
		Amount:   rec.Amount.StringFixed(2),
		Category: string(rec.Category),
		Date:     rec.Date.Format(expense.DateLayout),
		Notes:    rec.Notes,
	}
}

func criteriaFromQuery(r *http.Request) filter.Criteria {
	criteria := filter.Criteria{
		Category: r.URL.Query().Get("category"),
		Range:    r.URL.Query().Get("range"),
		Search:   r.URL.Query().Get("q"),
	}
	if criteria.Category == "" {
		criteria.Category = filter.AllCategories
	}
	if criteria.Range == "" {
		criteria.Range = filter.AllTime
	}
	return criteria
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var in expenseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "malformed json body")
		return
	}

	rec, err := s.storage.Create(r.Context(), in.fields())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	s.invalidateReports()
	respond(w, http.StatusCreated, toExpenseJSON(rec))
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var in expenseInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "malformed json body")
		return
	}

	rec, err := s.storage.Update(r.Context(), chi.URLParam(r, "id"), in.fields())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	s.invalidateReports()
	respond(w, http.StatusOK, toExpenseJSON(rec))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := s.storage.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondStoreError(w, err)
		return
	}
	s.invalidateReports()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	all, err := s.storage.All(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}

	filtered := filter.Apply(all, criteriaFromQuery(r), s.now())
	sorted := expense.SortForView(filtered)

	list := make([]expenseJSON, 0, len(sorted))
	for _, rec := range sorted {
		list = append(list, toExpenseJSON(rec))
	}
	respond(w, http.StatusOK, map[string]interface{}{
		"expenses": list,
		"count":    len(list),
	})
}

type summaryJSON struct {
	CategoryTotals        map[string]string `json:"category_totals"`
	GrandTotal            string            `json:"grand_total"`
	Average               string            `json:"average"`
	Count                 int               `json:"count"`
	TopCategory           string            `json:"top_category,omitempty"`
	MonthToDateTotal      string            `json:"month_to_date_total"`
	PreviousMonthTotal    string            `json:"previous_month_total"`
	MonthOverMonthPercent *string           `json:"month_over_month_percent"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	all, err := s.storage.All(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}

	ref := s.now()
	filtered := filter.Apply(all, criteriaFromQuery(r), ref)
	result := reports.Aggregate(filtered, all, ref)

	out := summaryJSON{
		CategoryTotals:     make(map[string]string, len(result.CategoryTotals)),
		GrandTotal:         result.GrandTotal.StringFixed(2),
		Average:            result.Average.StringFixed(2),
		Count:              result.Count,
		TopCategory:        string(result.TopCategory),
		MonthToDateTotal:   result.MonthToDateTotal.StringFixed(2),
		PreviousMonthTotal: result.PreviousMonthTotal.StringFixed(2),
	}
	for cat, total := range result.CategoryTotals {
		out.CategoryTotals[string(cat)] = total.StringFixed(2)
	}
	// A missing baseline serializes as null, never as Inf or NaN.
	if result.MonthOverMonth.Defined {
		percent := result.MonthOverMonth.Percent.StringFixed(1)
		out.MonthOverMonthPercent = &percent
	}
	respond(w, http.StatusOK, out)
}

type trendPointJSON struct {
	Date   string `json:"date"`
	Amount string `json:"amount"`
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	days := s.trendDays
	if arg := r.URL.Query().Get("days"); arg != "" {
		parsed, err := parseDays(arg)
		if err != nil {
			respondError(w, http.StatusBadRequest, "days should be a positive integer")
			return
		}
		days = parsed
	}

	all, err := s.storage.All(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}

	points := trend.Daily(all, days, s.now())
	out := make([]trendPointJSON, 0, len(points))
	for _, p := range points {
		out = append(out, trendPointJSON{
			Date:   p.Date.Format(expense.DateLayout),
			Amount: p.Amount.StringFixed(2),
		})
	}
	respond(w, http.StatusOK, map[string]interface{}{"trend": out})
}

type insightInput struct {
	Question string `json:"question"`
	Category string `json:"category"`
	Range    string `json:"range"`
	Search   string `json:"q"`
}

func (s *Server) handleInsights(w http.ResponseWriter, r *http.Request) {
	var in insightInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "malformed json body")
		return
	}
	if in.Question == "" {
		respondError(w, http.StatusBadRequest, "question is required")
		return
	}
	if in.Category == "" {
		in.Category = filter.AllCategories
	}
	if in.Range == "" {
		in.Range = filter.AllTime
	}

	all, err := s.storage.All(r.Context())
	if err != nil {
		respondStoreError(w, err)
		return
	}
	filtered := filter.Apply(all, filter.Criteria{
		Category: in.Category,
		Range:    in.Range,
		Search:   in.Search,
	}, s.now())

	answer := s.insights.Ask(r.Context(), in.Question, filtered)
	respond(w, http.StatusOK, map[string]string{"answer": answer})
}

func (s *Server) handleSuggestions(w http.ResponseWriter, _ *http.Request) {
	respond(w, http.StatusOK, map[string]interface{}{
		"questions": insights.SuggestedQuestions,
	})
}

type reportInput struct {
	Period   string `json:"period"`
	Category string `json:"category"`
}

func (s *Server) handleRequestReport(w http.ResponseWriter, r *http.Request) {
	var in reportInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "malformed json body")
		return
	}
	if in.Period == "" {
		in.Period = filter.RangeMonth
	}
	if in.Category == "" {
		in.Category = filter.AllCategories
	}

	err := s.reports.RequestReport(kafka.ReportRequest{
		Period:    in.Period,
		Category:  in.Category,
		Requested: s.now(),
	})
	if err != nil {
		logger.Error("failed to queue report request", zap.Error(err))
		respondError(w, http.StatusInternalServerError, "cannot queue report request")
		return
	}
	respond(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	category := r.URL.Query().Get("category")
	if period == "" {
		period = filter.RangeMonth
	}
	if category == "" {
		category = filter.AllCategories
	}

	report, err := s.cache.GetReport(period, category)
	if err != nil {
		if !cache.NotCached(err) {
			logger.Error("failed to read cached report", zap.Error(err))
		}
		respondError(w, http.StatusNotFound, "report is not ready yet")
		return
	}
	respond(w, http.StatusOK, map[string]string{"report": report})
}

func (s *Server) invalidateReports() {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateReports(); err != nil {
		logger.Error("failed to invalidate cached reports", zap.Error(err))
	}
}
