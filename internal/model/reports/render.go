package reports

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/spendwise-app/spendwise/internal/entity/expense"
)

const noExpensesLine = "No expenses for this period"

// Render formats a result as the plain-text report the bot and the report
// worker hand out: category totals sorted by amount descending, then the
// grand total and the month comparison.
func Render(res Result) string {
	if res.Count == 0 {
		return noExpensesLine
	}

	type line struct {
		category expense.Category
		total    decimal.Decimal
	}
	records := make([]line, 0, len(res.CategoryTotals))
	for cat, total := range res.CategoryTotals {
		records = append(records, line{cat, total})
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].total.Equal(records[j].total) {
			return records[i].total.GreaterThan(records[j].total)
		}
		return records[i].category < records[j].category
	})

	lines := make([]string, 0, len(records)+4)
	for _, rec := range records {
		lines = append(lines, fmt.Sprintf("%s: %s", rec.category, rec.total.StringFixed(2)))
	}
	lines = append(lines, "", fmt.Sprintf("Total: %s", res.GrandTotal.StringFixed(2)))
	lines = append(lines, fmt.Sprintf("Average: %s", res.Average.StringFixed(2)))
	lines = append(lines, monthLine(res))
	return strings.Join(lines, "\n")
}

func monthLine(res Result) string {
	if !res.MonthOverMonth.Defined {
		return fmt.Sprintf("This month: %s (no previous month to compare)",
			res.MonthToDateTotal.StringFixed(2))
	}
	return fmt.Sprintf("This month: %s (%s%% vs last month)",
		res.MonthToDateTotal.StringFixed(2),
		res.MonthOverMonth.Percent.StringFixed(1))
}
