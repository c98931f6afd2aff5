// Package insights pairs a user question with the currently filtered records
// and asks the external analysis service about it.
package insights

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/spendwise-app/spendwise/internal/entity/expense"
	"github.com/spendwise-app/spendwise/internal/logger"
)

// FallbackMessage replaces the answer whenever the analysis service fails.
// Insight failures are transient and never fatal to the rest of the app.
const FallbackMessage = "Sorry, I encountered an error analyzing your expenses. Please try again."

// SuggestedQuestions seeds an empty conversation.
var SuggestedQuestions = []string{
	"Show me this week's spending summary",
	"What did I spend the most on this month?",
	"How can I reduce my expenses?",
	"Give me budget recommendations",
	"Compare this month vs last month",
}

type asker interface {
	Ask(ctx context.Context, message string) (string, error)
}

type Service struct {
	client asker
}

func NewService(client asker) *Service {
	return &Service{client: client}
}

type recordPayload struct {
	Amount   json.Number `json:"amount"`
	Category string      `json:"category"`
	Date     string      `json:"date"`
	Notes    string      `json:"notes"`
}

// FormatMessage builds the outbound message: the literal question plus the
// JSON-encoded filtered records.
func FormatMessage(question string, records []expense.Record) (string, error) {
	payload := make([]recordPayload, 0, len(records))
	for _, rec := range records {
		payload = append(payload, recordPayload{
			Amount:   json.Number(rec.Amount.String()),
			Category: string(rec.Category),
			Date:     rec.Date.Format(expense.DateLayout),
			Notes:    rec.Notes,
		})
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(err, "marshalling expense data")
	}
	return fmt.Sprintf("User query: %q\n\nExpense data: %s", question, data), nil
}

// Ask returns the service's answer, or FallbackMessage when anything about the
// exchange went wrong. Each call is one independent request.
func (s *Service) Ask(ctx context.Context, question string, records []expense.Record) string {
	message, err := FormatMessage(question, records)
	if err != nil {
		logger.Error("failed to format insight request", zap.Error(err))
		return FallbackMessage
	}

	answer, err := s.client.Ask(ctx, message)
	if err != nil {
		logger.Error("insight request failed", zap.Error(err))
		return FallbackMessage
	}
	return answer
}
