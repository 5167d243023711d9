package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/wonny/drip/internal/contracts"
	"github.com/wonny/drip/pkg/config"
	"github.com/wonny/drip/pkg/logger"
	"github.com/wonny/drip/pkg/redis"
)

// Fetcher assembles indicator snapshots from the chart source, with the
// scrape fallback and a short-TTL cache in front.
// ⭐ SSOT: 스냅샷 조립은 여기서만
type Fetcher struct {
	chart   *ChartClient
	scraper *QuoteScraper
	cache   *redis.Cache
	ttl     time.Duration
	logger  *logger.Logger
	now     func() time.Time
}

// NewFetcher wires a fetcher from the configured sources
func NewFetcher(cfg *config.Config, redisClient *redis.Client, log *logger.Logger) *Fetcher {
	return &Fetcher{
		chart:   NewChartClient(cfg, log),
		scraper: NewQuoteScraper(cfg, log),
		cache:   redis.NewCache(redisClient, "drip:marketdata"),
		ttl:     cfg.MarketData.CacheTTL,
		logger:  log,
		now:     time.Now,
	}
}

// Snapshot returns the indicator snapshot for one symbol. The cache is
// consulted first; on a chart failure the scraper degrades the result to a
// price-only snapshot rather than failing.
func (f *Fetcher) Snapshot(ctx context.Context, code string) (*contracts.MarketSnapshot, error) {
	cacheKey := fmt.Sprintf("snapshot:%s", code)

	var cached contracts.MarketSnapshot
	if hit, err := f.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
		return &cached, nil
	}

	snapshot, err := f.build(ctx, code)
	if err != nil {
		return nil, err
	}

	if err := f.cache.Set(ctx, cacheKey, snapshot, f.ttl); err != nil {
		f.logger.WithError(err).WithField("code", code).Warn("Snapshot cache write failed")
	}

	return snapshot, nil
}

// SnapshotAll fetches snapshots for every code. A failed code is logged and
// omitted from the result; the map is usable as long as one code succeeded.
func (f *Fetcher) SnapshotAll(ctx context.Context, codes []string) map[string]*contracts.MarketSnapshot {
	out := make(map[string]*contracts.MarketSnapshot, len(codes))
	for _, code := range codes {
		snapshot, err := f.Snapshot(ctx, code)
		if err != nil {
			f.logger.WithError(err).WithField("code", code).Warn("Snapshot unavailable, asset degrades to default score")
			continue
		}
		out[code] = snapshot
	}
	return out
}

// Invalidate drops the cached snapshot for a code, forcing the next read to
// hit the source
func (f *Fetcher) Invalidate(ctx context.Context, code string) error {
	return f.cache.Delete(ctx, fmt.Sprintf("snapshot:%s", code))
}

func (f *Fetcher) build(ctx context.Context, code string) (*contracts.MarketSnapshot, error) {
	series, err := f.chart.DailyCandles(ctx, code)
	if err == nil {
		return BuildSnapshot(code, series, f.now()), nil
	}

	f.logger.WithError(err).WithField("code", code).Warn("Chart source failed, trying quote page fallback")

	price, scrapeErr := f.scraper.LatestPrice(ctx, code)
	if scrapeErr != nil {
		return nil, fmt.Errorf("all market data sources failed for %s: %w", code, err)
	}

	return &contracts.MarketSnapshot{
		Code:      code,
		Price:     contracts.Float(price),
		UpdatedAt: f.now(),
	}, nil
}
