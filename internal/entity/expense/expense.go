package expense

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date wire format. Dates carry no time of day.
const DateLayout = "2006-01-02"

type Category string

const (
	Food          Category = "Food"
	Transport     Category = "Transport"
	Shopping      Category = "Shopping"
	Bills         Category = "Bills"
	Entertainment Category = "Entertainment"
	Health        Category = "Health"
	Other         Category = "Other"
)

// categories is the closed set in its declared order. The order is load-bearing:
// top-category ties resolve to the category listed first.
var categories = []Category{
	Food,
	Transport,
	Shopping,
	Bills,
	Entertainment,
	Health,
	Other,
}

// Categories returns the closed enumeration in declared order.
func Categories() []Category {
	res := make([]Category, len(categories))
	copy(res, categories)
	return res
}

// ParseCategory validates s against the closed enumeration.
func ParseCategory(s string) (Category, bool) {
	for _, c := range categories {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Record is one stored expense entry.
type Record struct {
	ID       string
	Amount   decimal.Decimal
	Category Category
	Date     time.Time // UTC midnight, date-only semantics
	Notes    string

	// Seq is the insertion counter assigned by the store. Presentation sorts
	// by date descending with newer insertions first on equal dates.
	Seq uint64
}

// Fields is the caller-supplied part of a record, used by create and update.
type Fields struct {
	Amount   string
	Category string
	Date     string
	Notes    string
}

// Day truncates t to its calendar date.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SortForView orders records the way list views expect: date descending,
// equal dates newest-insertion-first. The input slice is not modified.
func SortForView(records []Record) []Record {
	res := make([]Record, len(records))
	copy(res, records)
	sort.Slice(res, func(i, j int) bool {
		if !res[i].Date.Equal(res[j].Date) {
			return res[i].Date.After(res[j].Date)
		}
		return res[i].Seq > res[j].Seq
	})
	return res
}
