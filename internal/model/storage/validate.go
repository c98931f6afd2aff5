package storage

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendwise-app/spendwise/internal/entity/expense"
	"github.com/spendwise-app/spendwise/internal/model/customerr"
)

// parseFields validates caller input and returns the typed record parts.
// Nothing is written when an error comes back.
func parseFields(f expense.Fields) (decimal.Decimal, expense.Category, time.Time, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(f.Amount))
	if err != nil {
		return decimal.Decimal{}, "", time.Time{},
			&customerr.ValidationError{Field: "amount", Reason: "not a decimal number"}
	}
	if amount.IsNegative() {
		return decimal.Decimal{}, "", time.Time{},
			&customerr.ValidationError{Field: "amount", Reason: "must not be negative"}
	}

	category, ok := expense.ParseCategory(f.Category)
	if !ok {
		return decimal.Decimal{}, "", time.Time{},
			&customerr.ValidationError{Field: "category", Reason: "unknown category " + f.Category}
	}

	date, err := time.Parse(expense.DateLayout, f.Date)
	if err != nil {
		return decimal.Decimal{}, "", time.Time{},
			&customerr.ValidationError{Field: "date", Reason: "should be yyyy-mm-dd"}
	}

	return amount, category, expense.Day(date), nil
}
