package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/spendwise-app/spendwise/internal/entity/expense"
	"github.com/spendwise-app/spendwise/internal/logger"
	"github.com/spendwise-app/spendwise/internal/model/filter"
)

var reportPeriods = map[string]struct{}{
	filter.AllTime:    {},
	filter.RangeWeek:  {},
	filter.RangeMonth: {},
}

type expensesStorage interface {
	All(ctx context.Context) ([]expense.Record, error)
}

// Generator produces rendered reports for the async report path. It owns no
// state beyond the storage handle; the reference instant comes from the caller.
type Generator struct {
	storage expensesStorage
}

func NewGenerator(storage expensesStorage) *Generator {
	return &Generator{storage: storage}
}

func (g *Generator) Generate(ctx context.Context, period, category string, ref time.Time) (string, error) {
	logger.Info("Generate report - start",
		zap.String("period", period), zap.String("category", category))
	defer logger.Info("Generate report - end")

	if _, ok := reportPeriods[period]; !ok {
		return "", errors.Wrap(
			fmt.Errorf("report period %s is not supported", period),
			"generate report",
		)
	}
	if category != filter.AllCategories {
		if _, ok := expense.ParseCategory(category); !ok {
			return "", errors.Wrap(
				fmt.Errorf("report category %s is not supported", category),
				"generate report",
			)
		}
	}

	all, err := g.storage.All(ctx)
	if err != nil {
		return "", errors.Wrap(err, "generate report")
	}

	filtered := filter.Apply(all, filter.Criteria{
		Category: category,
		Range:    period,
	}, ref)

	return Render(Aggregate(filtered, all, ref)), nil
}

// ReportPeriods lists the supported period arguments.
func ReportPeriods() []string {
	res := make([]string, 0, len(reportPeriods))
	for k := range reportPeriods {
		res = append(res, k)
	}
	return res
}
