package cache

import (
	"github.com/pkg/errors"

	"go.uber.org/zap"

	"github.com/bradfitz/gomemcache/memcache"

	"github.com/spendwise-app/spendwise/internal/entity/expense"
	"github.com/spendwise-app/spendwise/internal/logger"
	"github.com/spendwise-app/spendwise/internal/model/filter"
	"github.com/spendwise-app/spendwise/internal/model/reports"
)

type MemcacheClient struct {
	client *memcache.Client
}

type config interface {
	Hosts() []string
}

func NewMemcache(config config) (*MemcacheClient, error) {
	logger.Info("memcached hosts", zap.Strings("hosts", config.Hosts()))
	mc := memcache.New(config.Hosts()...)
	return &MemcacheClient{mc}, mc.Ping()
}

func formatKey(period, category string) string {
	return "report:" + period + ":" + category
}

func (mc *MemcacheClient) CacheReport(period, category, report string) error {
	logger.Info("cache report", zap.String("period", period), zap.String("category", category))
	return mc.client.Set(&memcache.Item{
		Key:   formatKey(period, category),
		Value: []byte(report)},
	)
}

func (mc *MemcacheClient) GetReport(period, category string) (string, error) {
	logger.Info("get report from cache", zap.String("period", period), zap.String("category", category))
	item, err := mc.client.Get(formatKey(period, category))
	if err != nil {
		return "", err
	}
	return string(item.Value), nil
}

// NotCached reports whether err means the report simply is not there yet.
func NotCached(err error) bool {
	return errors.Is(err, memcache.ErrCacheMiss)
}

// InvalidateReports drops every cached report. Called after any expense
// mutation: a stale report is worse than a regenerated one.
func (mc *MemcacheClient) InvalidateReports() error {
	logger.Info("invalidate cached reports")

	categories := []string{filter.AllCategories}
	for _, c := range expense.Categories() {
		categories = append(categories, string(c))
	}

	for _, period := range reports.ReportPeriods() {
		for _, category := range categories {
			err := mc.client.Delete(formatKey(period, category))
			if err != nil && !errors.Is(err, memcache.ErrCacheMiss) {
				return err
			}
		}
	}
	return nil
}
