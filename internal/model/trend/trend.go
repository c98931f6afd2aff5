// Package trend builds the rolling daily spend series behind the dashboard's
// line chart.
package trend

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendwise-app/spendwise/internal/entity/expense"
)

// DefaultWindowDays is the window the dashboard asks for.
const DefaultWindowDays = 30

type Point struct {
	Date   time.Time
	Amount decimal.Decimal
}

// Daily returns one point per calendar day for the windowDays days ending at
// ref inclusive, oldest first. Days with no spend are present with a zero
// amount: the series feeds a continuous line and a gap would read as missing
// data rather than a zero-spend day. Amounts are rounded to two places.
func Daily(records []expense.Record, windowDays int, ref time.Time) []Point {
	if windowDays <= 0 {
		windowDays = DefaultWindowDays
	}

	byDay := make(map[time.Time]decimal.Decimal, len(records))
	for _, rec := range records {
		day := expense.Day(rec.Date)
		if total, ok := byDay[day]; ok {
			byDay[day] = total.Add(rec.Amount)
		} else {
			byDay[day] = rec.Amount
		}
	}

	end := expense.Day(ref)
	res := make([]Point, 0, windowDays)
	for i := windowDays - 1; i >= 0; i-- {
		day := end.AddDate(0, 0, -i)
		amount := decimal.Zero
		if total, ok := byDay[day]; ok {
			amount = total.Round(2)
		}
		res = append(res, Point{Date: day, Amount: amount})
	}
	return res
}
