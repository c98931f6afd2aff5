package messages

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/spendwise-app/spendwise/internal/entity/expense"
	"github.com/spendwise-app/spendwise/internal/model/filter"
	"github.com/spendwise-app/spendwise/internal/model/reports"
	"github.com/spendwise-app/spendwise/internal/model/trend"
)

const argDateLayout = "02.01.2006"

const (
	dontUnderstandMessage = "I don't understand you :("
	helloMessage          = "Hello! I am SpendWise bot 🤖"
	loveToTalkMessage     = "I would love to talk about it more!"
	okMessage             = "Gotcha!"

	incorrectUsageMessage    = "That is an incorrect command usage"
	incorrectCategoryMessage = "I don't know that category. Try one of: %s"
	incorrectExpenseMessage  = "Your expense amount is incorrect"
	incorrectDateMessage     = "The date is incorrect. Should be dd.mm.yyyy"
	incorrectPeriodMessage   = "The period should be week, month or all"
	cannotSaveExpenseMessage = "Can't save your expense atm. Try later"
	cannotGetReportMessage   = "Can't build your report atm. Try later"
)

const (
	startCommand   = "/start"
	expenseCommand = "/expense"
	reportCommand  = "/report"
	trendCommand   = "/trend"
)

type expenseStorage interface {
	Create(ctx context.Context, fields expense.Fields) (expense.Record, error)
	All(ctx context.Context) ([]expense.Record, error)
}

type handler func(ctx context.Context, arg string) (string, error)

type handlerMap map[string]handler

type HandlerService struct {
	handlersMap handlerMap
	storage     expenseStorage
	generator   *reports.Generator
	now         func() time.Time
}

func newHandler(storage expenseStorage) *HandlerService {
	res := &HandlerService{
		handlersMap: nil,
		storage:     storage,
		generator:   reports.NewGenerator(storage),
		now:         time.Now,
	}
	res.handlersMap = newMap(res)
	return res
}

func (s *HandlerService) HandleMessage(ctx context.Context, text string) (string, error) {
	cmd, arg := parseCommand(text)

	handler, ok := s.handlersMap[cmd]
	if ok {
		return handler(ctx, arg)
	}
	return dontUnderstandMessage, nil
}

func parseCommand(text string) (cmd, arg string) {
	text = strings.TrimSpace(text)
	split := strings.SplitN(text, " ", 2)

	if len(split) == 2 {
		return split[0], split[1]
	}
	if strings.HasPrefix(text, "/") {
		return text, ""
	}
	return "", text
}

func newMap(s *HandlerService) handlerMap {
	m := make(handlerMap)
	m[startCommand] = s.handleStart
	m[expenseCommand] = s.handleExpense
	m[reportCommand] = s.handleReport
	m[trendCommand] = s.handleTrend

	m[""] = s.handleNoCommand

	return m
}

func (s *HandlerService) handleStart(_ context.Context, _ string) (string, error) {
	return helloMessage, nil
}

// handleExpense records "/expense <category> <amount> [dd.mm.yyyy] [notes...]".
func (s *HandlerService) handleExpense(ctx context.Context, arg string) (string, error) {
	args := strings.Fields(arg)
	if len(args) < 2 {
		return incorrectUsageMessage, nil
	}

	category, ok := expense.ParseCategory(args[0])
	if !ok {
		return fmt.Sprintf(incorrectCategoryMessage, categoryList()), nil
	}

	date := expense.Day(s.now())
	notesFrom := 2
	if len(args) > 2 {
		if parsed, err := time.Parse(argDateLayout, args[2]); err == nil {
			date = expense.Day(parsed)
			notesFrom = 3
		}
	}

	fields := expense.Fields{
		Amount:   args[1],
		Category: string(category),
		Date:     date.Format(expense.DateLayout),
		Notes:    strings.Join(args[notesFrom:], " "),
	}

	_, err := s.storage.Create(ctx, fields)
	if err != nil {
		if isValidation(err) {
			return incorrectExpenseMessage, errors.Wrap(err, "handle expense")
		}
		return cannotSaveExpenseMessage, errors.Wrap(err, "handle expense")
	}
	return okMessage, nil
}

// handleReport renders "/report [week|month|all]"; month when no argument.
func (s *HandlerService) handleReport(ctx context.Context, arg string) (string, error) {
	period := strings.TrimSpace(arg)
	if period == "" {
		period = filter.RangeMonth
	}

	report, err := s.generator.Generate(ctx, period, filter.AllCategories, s.now())
	if err != nil {
		if strings.Contains(err.Error(), "is not supported") {
			return incorrectPeriodMessage, nil
		}
		return cannotGetReportMessage, errors.Wrap(err, "handle report")
	}
	return report, nil
}

// handleTrend prints the rolling daily series, one line per day.
func (s *HandlerService) handleTrend(ctx context.Context, arg string) (string, error) {
	days := trend.DefaultWindowDays
	if arg != "" {
		parsed, err := parsePositiveInt(arg)
		if err != nil {
			return incorrectUsageMessage, nil
		}
		days = parsed
	}

	all, err := s.storage.All(ctx)
	if err != nil {
		return cannotGetReportMessage, errors.Wrap(err, "handle trend")
	}

	points := trend.Daily(all, days, s.now())
	lines := make([]string, 0, len(points))
	for _, p := range points {
		lines = append(lines, fmt.Sprintf("%s: %s", p.Date.Format("Jan 2"), p.Amount.StringFixed(2)))
	}
	return strings.Join(lines, "\n"), nil
}

func (s *HandlerService) handleNoCommand(_ context.Context, _ string) (string, error) {
	return loveToTalkMessage, nil
}

func categoryList() string {
	cats := expense.Categories()
	names := make([]string, 0, len(cats))
	for _, c := range cats {
		names = append(names, string(c))
	}
	return strings.Join(names, ", ")
}
