package kafka

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type generatorStub struct {
	gotPeriod   string
	gotCategory string
	gotRef      time.Time
	report      string
	err         error
}

func (g *generatorStub) Generate(_ context.Context, period, category string, ref time.Time) (string, error) {
	g.gotPeriod = period
	g.gotCategory = category
	g.gotRef = ref
	return g.report, g.err
}

type cacheStub struct {
	cached map[string]string
}

func (c *cacheStub) CacheReport(period, category, report string) error {
	c.cached[period+":"+category] = report
	return nil
}

func Test_OnReportRequest_ShouldGenerateAndCacheReport(t *testing.T) {
	requested := time.Date(2024, 6, 15, 13, 45, 0, 0, time.UTC)
	generator := &generatorStub{report: "Total: 130.00"}
	cache := &cacheStub{cached: map[string]string{}}
	consumer := &Consumer{generator: generator, cache: cache}

	consumer.processRequest(context.Background(), &ReportRequest{
		Period:    "week",
		Category:  "Food",
		Requested: requested,
	})

	assert.Equal(t, "week", generator.gotPeriod)
	assert.Equal(t, "Food", generator.gotCategory)
	assert.Equal(t, requested, generator.gotRef)
	require.Contains(t, cache.cached, "week:Food")
	assert.Equal(t, "Total: 130.00", cache.cached["week:Food"])
}

func Test_OnGenerationFailure_ShouldNotCacheAnything(t *testing.T) {
	generator := &generatorStub{err: errors.New("period year is not supported")}
	cache := &cacheStub{cached: map[string]string{}}
	consumer := &Consumer{generator: generator, cache: cache}

	consumer.processRequest(context.Background(), &ReportRequest{Period: "year", Category: "all"})

	assert.Empty(t, cache.cached)
}

func Test_OnRequestWithoutInstant_ShouldFallBackToWallClock(t *testing.T) {
	generator := &generatorStub{report: "ok"}
	cache := &cacheStub{cached: map[string]string{}}
	consumer := &Consumer{generator: generator, cache: cache}

	before := time.Now()
	consumer.processRequest(context.Background(), &ReportRequest{Period: "month", Category: "all"})

	assert.False(t, generator.gotRef.Before(before))
}
