// Package filter narrows a record set down to the subset matching the view
// criteria: category, date window, free-text search. All three predicates must
// hold; output keeps input order.
package filter

import (
	"strings"
	"time"

	"github.com/jinzhu/now"

	"github.com/spendwise-app/spendwise/internal/entity/expense"
)

const (
	// AllCategories and AllTime are the "no constraint" sentinels.
	AllCategories = "all"
	AllTime       = "all"

	RangeWeek  = "week"
	RangeMonth = "month"
)

type Criteria struct {
	Category string // "all" or a category name
	Range    string // "all", "week" or "month"
	Search   string
}

// Apply returns the records matching every criterion. The reference instant is
// passed in rather than read from the wall clock, so the same call with the
// same ref always resolves the same window.
func Apply(records []expense.Record, criteria Criteria, ref time.Time) []expense.Record {
	start, end := window(criteria.Range, ref)
	search := strings.ToLower(criteria.Search)

	res := make([]expense.Record, 0, len(records))
	for _, rec := range records {
		if !matchesCategory(rec, criteria.Category) {
			continue
		}
		if !matchesWindow(rec, start, end) {
			continue
		}
		if !matchesSearch(rec, search) {
			continue
		}
		res = append(res, rec)
	}
	return res
}

// window resolves the date range to inclusive day bounds. A zero start means
// unbounded. Anything that is not "week" or "month" falls back to all time.
func window(dateRange string, ref time.Time) (start, end time.Time) {
	end = expense.Day(ref)
	switch dateRange {
	case RangeWeek:
		// Most recent Sunday; jinzhu/now weeks start on Sunday by default.
		start = expense.Day(now.New(ref).BeginningOfWeek())
	case RangeMonth:
		start = expense.Day(now.New(ref).BeginningOfMonth())
	}
	return start, end
}

func matchesCategory(rec expense.Record, category string) bool {
	return category == AllCategories || string(rec.Category) == category
}

func matchesWindow(rec expense.Record, start, end time.Time) bool {
	if start.IsZero() {
		return true
	}
	return !rec.Date.Before(start) && !rec.Date.After(end)
}

func matchesSearch(rec expense.Record, search string) bool {
	if search == "" {
		return true
	}
	return strings.Contains(strings.ToLower(rec.Notes), search) ||
		strings.Contains(strings.ToLower(string(rec.Category)), search)
}
