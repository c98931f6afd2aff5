package storage

import (
	"context"
	"math/rand"
	"time"

	"github.com/pkg/errors"

	"github.com/spendwise-app/spendwise/internal/entity/expense"
)

type sampleEntry struct {
	amount   string
	category expense.Category
	notes    string
}

var sampleEntries = []sampleEntry{
	{"45", expense.Food, "Dinner with friends"},
	{"12.5", expense.Food, "Coffee and breakfast"},
	{"85", expense.Transport, "Gas"},
	{"120", expense.Shopping, "Winter jacket"},
	{"65", expense.Bills, "Internet subscription"},
	{"45", expense.Entertainment, "Movie tickets"},
	{"35", expense.Health, "Gym membership"},
	{"28", expense.Food, "Groceries"},
	{"15", expense.Transport, "Ride share"},
	{"55", expense.Shopping, "Electronics"},
	{"30", expense.Bills, "Phone bill"},
	{"25", expense.Entertainment, "Streaming subscription"},
	{"40", expense.Health, "Doctor visit"},
	{"50", expense.Food, "Restaurant lunch"},
	{"22", expense.Transport, "Public transit pass"},
	{"95", expense.Shopping, "Shoes"},
	{"18", expense.Food, "Delivery dinner"},
	{"60", expense.Bills, "Electricity"},
	{"35", expense.Entertainment, "Concert tickets"},
	{"48", expense.Health, "Pharmacy"},
}

// SeedSampleData fills an empty store with demo entries spread over the last
// 30 days, so a fresh session has something to chart.
func SeedSampleData(ctx context.Context, store Store) error {
	existing, err := store.All(ctx)
	if err != nil {
		return errors.Wrap(err, "seeding sample data")
	}
	if len(existing) > 0 {
		return nil
	}

	today := time.Now()
	for _, entry := range sampleEntries {
		daysAgo := rand.Intn(30)
		date := expense.Day(today.AddDate(0, 0, -daysAgo))

		_, err = store.Create(ctx, expense.Fields{
			Amount:   entry.amount,
			Category: string(entry.category),
			Date:     date.Format(expense.DateLayout),
			Notes:    entry.notes,
		})
		if err != nil {
			return errors.Wrap(err, "seeding sample data")
		}
	}
	return nil
}
