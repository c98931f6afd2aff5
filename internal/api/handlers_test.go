package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendwise-app/spendwise/internal/clients/kafka"
	"github.com/spendwise-app/spendwise/internal/entity/expense"
	"github.com/spendwise-app/spendwise/internal/model/storage"
)

// Saturday, June 15th 2024.
var ref = time.Date(2024, 6, 15, 13, 45, 0, 0, time.UTC)

type stubInsighter struct {
	gotQuestion string
	gotRecords  []expense.Record
	answer      string
}

func (s *stubInsighter) Ask(_ context.Context, question string, records []expense.Record) string {
	s.gotQuestion = question
	s.gotRecords = records
	return s.answer
}

type stubRequester struct {
	requests []kafka.ReportRequest
	err      error
}

func (s *stubRequester) RequestReport(req kafka.ReportRequest) error {
	s.requests = append(s.requests, req)
	return s.err
}

type stubCache struct {
	reports     map[string]string
	invalidated int
}

func (s *stubCache) GetReport(period, category string) (string, error) {
	report, ok := s.reports[period+":"+category]
	if !ok {
		return "", errors.New("cache miss")
	}
	return report, nil
}

func (s *stubCache) InvalidateReports() error {
	s.invalidated++
	return nil
}

func newTestServer(opts Options) (*Server, *storage.InMemStore) {
	store := storage.NewInMemStore()
	server := NewServer(store, opts)
	server.now = func() time.Time { return ref }
	return server, store
}

func doJSON(t *testing.T, server *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	server.ServeHTTP(rec, req)
	return rec
}

func mustCreate(t *testing.T, server *Server, amount, category, date, notes string) string {
	t.Helper()
	body, err := json.Marshal(expenseInput{Amount: amount, Category: category, Date: date, Notes: notes})
	require.NoError(t, err)
	rec := doJSON(t, server, http.MethodPost, "/api/expenses", string(body))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var out expenseJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out.ID
}

func Test_OnCreateExpense_ShouldReturnStoredRecord(t *testing.T) {
	server, _ := newTestServer(Options{})

	rec := doJSON(t, server, http.MethodPost, "/api/expenses",
		`{"amount": "45", "category": "Food", "date": "2024-06-01", "notes": "Dinner"}`)

	require.Equal(t, http.StatusCreated, rec.Code)
	var out expenseJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.NotEmpty(t, out.ID)
	assert.Equal(t, "45.00", out.Amount)
	assert.Equal(t, "Food", out.Category)
}

func Test_OnCreateWithUnknownCategory_ShouldReturn400AndStoreNothing(t *testing.T) {
	server, store := newTestServer(Options{})

	rec := doJSON(t, server, http.MethodPost, "/api/expenses",
		`{"amount": "45", "category": "Groceries", "date": "2024-06-01"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	all, err := store.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func Test_OnUpdateUnknownExpense_ShouldReturn404(t *testing.T) {
	server, _ := newTestServer(Options{})

	rec := doJSON(t, server, http.MethodPut, "/api/expenses/missing",
		`{"amount": "45", "category": "Food", "date": "2024-06-01"}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_OnDeleteUnknownExpense_ShouldReturn404(t *testing.T) {
	server, _ := newTestServer(Options{})

	rec := doJSON(t, server, http.MethodDelete, "/api/expenses/missing", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_OnDeleteExpense_ShouldReturn204(t *testing.T) {
	server, store := newTestServer(Options{})
	id := mustCreate(t, server, "45", "Food", "2024-06-01", "")

	rec := doJSON(t, server, http.MethodDelete, "/api/expenses/"+id, "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	all, err := store.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func Test_OnListExpenses_ShouldFilterAndSortForView(t *testing.T) {
	server, _ := newTestServer(Options{})
	mustCreate(t, server, "45", "Food", "2024-06-01", "Dinner")
	mustCreate(t, server, "85", "Transport", "2024-06-02", "Gas")
	mustCreate(t, server, "30", "Food", "2024-05-01", "Old groceries")

	rec := doJSON(t, server, http.MethodGet, "/api/expenses?category=Food&range=month", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Expenses []expenseJSON `json:"expenses"`
		Count    int           `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Equal(t, 1, out.Count)
	assert.Equal(t, "Dinner", out.Expenses[0].Notes)
}

func Test_OnListWithoutParams_ShouldReturnEverything(t *testing.T) {
	server, _ := newTestServer(Options{})
	mustCreate(t, server, "45", "Food", "2024-06-01", "")
	mustCreate(t, server, "85", "Transport", "2023-06-02", "")

	rec := doJSON(t, server, http.MethodGet, "/api/expenses", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Count int `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 2, out.Count)
}

func Test_OnListWithEqualDates_ShouldPutNewestInsertionFirst(t *testing.T) {
	server, _ := newTestServer(Options{})
	mustCreate(t, server, "1", "Food", "2024-06-01", "first")
	mustCreate(t, server, "2", "Food", "2024-06-01", "second")

	rec := doJSON(t, server, http.MethodGet, "/api/expenses", "")

	var out struct {
		Expenses []expenseJSON `json:"expenses"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Expenses, 2)
	assert.Equal(t, "second", out.Expenses[0].Notes)
	assert.Equal(t, "first", out.Expenses[1].Notes)
}

func Test_OnSummary_ShouldAggregateFilteredRecords(t *testing.T) {
	server, _ := newTestServer(Options{})
	mustCreate(t, server, "45", "Food", "2024-06-01", "")
	mustCreate(t, server, "85", "Transport", "2024-06-02", "")

	rec := doJSON(t, server, http.MethodGet, "/api/summary", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var out summaryJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "130.00", out.GrandTotal)
	assert.Equal(t, "65.00", out.Average)
	assert.Equal(t, "Transport", out.TopCategory)
	assert.Equal(t, "45.00", out.CategoryTotals["Food"])
	assert.Equal(t, "85.00", out.CategoryTotals["Transport"])
	assert.Equal(t, 2, out.Count)
}

func Test_OnSummaryWithoutBaseline_ShouldSerializeNullPercent(t *testing.T) {
	server, _ := newTestServer(Options{})
	mustCreate(t, server, "50", "Food", "2024-06-10", "")

	rec := doJSON(t, server, http.MethodGet, "/api/summary", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"month_over_month_percent":null`)
}

func Test_OnTrend_ShouldReturnRequestedWindow(t *testing.T) {
	server, _ := newTestServer(Options{})
	mustCreate(t, server, "45", "Food", "2024-06-15", "")

	rec := doJSON(t, server, http.MethodGet, "/api/trend?days=7", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Trend []trendPointJSON `json:"trend"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Trend, 7)
	assert.Equal(t, "2024-06-09", out.Trend[0].Date)
	assert.Equal(t, "45.00", out.Trend[6].Amount)
}

func Test_OnTrendWithoutDays_ShouldUseConfiguredWindow(t *testing.T) {
	server, _ := newTestServer(Options{TrendDays: 14})

	rec := doJSON(t, server, http.MethodGet, "/api/trend", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var out struct {
		Trend []trendPointJSON `json:"trend"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Len(t, out.Trend, 14)
}

func Test_OnTrendWithBadDays_ShouldReturn400(t *testing.T) {
	server, _ := newTestServer(Options{})

	rec := doJSON(t, server, http.MethodGet, "/api/trend?days=-3", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_OnInsights_ShouldSendFilteredRecordsToAgent(t *testing.T) {
	insighter := &stubInsighter{answer: "Mostly transport."}
	server, _ := newTestServer(Options{Insights: insighter})
	mustCreate(t, server, "45", "Food", "2024-06-01", "")
	mustCreate(t, server, "85", "Transport", "2024-06-02", "")

	rec := doJSON(t, server, http.MethodPost, "/api/insights",
		`{"question": "top category?", "category": "Transport"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Mostly transport.")
	assert.Equal(t, "top category?", insighter.gotQuestion)
	require.Len(t, insighter.gotRecords, 1)
	assert.Equal(t, expense.Transport, insighter.gotRecords[0].Category)
}

func Test_OnInsightsWithoutQuestion_ShouldReturn400(t *testing.T) {
	server, _ := newTestServer(Options{Insights: &stubInsighter{}})

	rec := doJSON(t, server, http.MethodPost, "/api/insights", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func Test_OnRequestReport_ShouldQueueWithReferenceInstant(t *testing.T) {
	requester := &stubRequester{}
	cache := &stubCache{reports: map[string]string{}}
	server, _ := newTestServer(Options{Reports: requester, Cache: cache})

	rec := doJSON(t, server, http.MethodPost, "/api/reports", `{"period": "week"}`)

	require.Equal(t, http.StatusAccepted, rec.Code)
	require.Len(t, requester.requests, 1)
	assert.Equal(t, "week", requester.requests[0].Period)
	assert.Equal(t, "all", requester.requests[0].Category)
	assert.Equal(t, ref, requester.requests[0].Requested)
}

func Test_OnGetReportBeforeItIsReady_ShouldReturn404(t *testing.T) {
	server, _ := newTestServer(Options{Reports: &stubRequester{}, Cache: &stubCache{reports: map[string]string{}}})

	rec := doJSON(t, server, http.MethodGet, "/api/reports?period=week", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func Test_OnGetReport_ShouldReturnCachedText(t *testing.T) {
	cache := &stubCache{reports: map[string]string{"month:all": "Total: 130.00"}}
	server, _ := newTestServer(Options{Reports: &stubRequester{}, Cache: cache})

	rec := doJSON(t, server, http.MethodGet, "/api/reports", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Total: 130.00")
}

func Test_OnMutation_ShouldInvalidateCachedReports(t *testing.T) {
	cache := &stubCache{reports: map[string]string{}}
	server, _ := newTestServer(Options{Reports: &stubRequester{}, Cache: cache})

	id := mustCreate(t, server, "45", "Food", "2024-06-01", "")
	doJSON(t, server, http.MethodDelete, "/api/expenses/"+id, "")

	assert.Equal(t, 2, cache.invalidated)
}
