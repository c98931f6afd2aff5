// Package reports turns record subsets into the numbers the dashboard and the
// bot show: per-category totals, averages and the month-over-month comparison.
package reports

import (
	"time"

	"github.com/jinzhu/now"
	"github.com/shopspring/decimal"

	"github.com/spendwise-app/spendwise/internal/entity/expense"
)

var hundred = decimal.NewFromInt(100)

// Comparison is a signed percent change against the previous month. Defined is
// false when the previous month has no spend: there is no baseline to compare
// against and the percent must not be reported as infinity.
type Comparison struct {
	Percent decimal.Decimal
	Defined bool
}

type Result struct {
	CategoryTotals map[expense.Category]decimal.Decimal
	GrandTotal     decimal.Decimal
	Average        decimal.Decimal
	Count          int

	// TopCategory is empty when no records matched.
	TopCategory expense.Category

	MonthToDateTotal   decimal.Decimal
	PreviousMonthTotal decimal.Decimal
	MonthOverMonth     Comparison
}

// Aggregate summarizes the filtered subset. The month-to-date and
// previous-month totals always come from the full record set, not the filtered
// one, so the comparison stays meaningful whatever the active filters are.
func Aggregate(filtered, all []expense.Record, ref time.Time) Result {
	res := Result{
		CategoryTotals: make(map[expense.Category]decimal.Decimal),
		GrandTotal:     decimal.Zero,
		Average:        decimal.Zero,
		Count:          len(filtered),
	}

	for _, rec := range filtered {
		res.CategoryTotals[rec.Category] = totalOf(res.CategoryTotals, rec.Category).Add(rec.Amount)
		res.GrandTotal = res.GrandTotal.Add(rec.Amount)
	}
	if res.Count > 0 {
		res.Average = res.GrandTotal.Div(decimal.NewFromInt(int64(res.Count))).Round(2)
	}
	res.TopCategory = topCategory(res.CategoryTotals)

	res.MonthToDateTotal, res.PreviousMonthTotal = monthTotals(all, ref)
	res.MonthOverMonth = compareMonths(res.MonthToDateTotal, res.PreviousMonthTotal)

	return res
}

func totalOf(totals map[expense.Category]decimal.Decimal, c expense.Category) decimal.Decimal {
	if t, ok := totals[c]; ok {
		return t
	}
	return decimal.Zero
}

// topCategory walks the enumeration in declared order so that ties resolve the
// same way on every call, whatever the map iteration order is.
func topCategory(totals map[expense.Category]decimal.Decimal) expense.Category {
	var top expense.Category
	var best decimal.Decimal
	for _, c := range expense.Categories() {
		t, ok := totals[c]
		if !ok {
			continue
		}
		if top == "" || t.GreaterThan(best) {
			top, best = c, t
		}
	}
	return top
}

func monthTotals(all []expense.Record, ref time.Time) (current, previous decimal.Decimal) {
	current, previous = decimal.Zero, decimal.Zero

	monthStart := expense.Day(now.New(ref).BeginningOfMonth())
	today := expense.Day(ref)
	prevEnd := monthStart.AddDate(0, 0, -1)
	prevStart := expense.Day(now.New(prevEnd).BeginningOfMonth())

	for _, rec := range all {
		switch {
		case !rec.Date.Before(monthStart) && !rec.Date.After(today):
			current = current.Add(rec.Amount)
		case !rec.Date.Before(prevStart) && !rec.Date.After(prevEnd):
			previous = previous.Add(rec.Amount)
		}
	}
	return current, previous
}

func compareMonths(current, previous decimal.Decimal) Comparison {
	if previous.IsZero() {
		return Comparison{}
	}
	percent := current.Sub(previous).Div(previous).Mul(hundred).Round(1)
	return Comparison{Percent: percent, Defined: true}
}
