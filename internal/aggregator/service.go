package aggregator

import (
	"context"
	"time"

	"cosmocast/internal/fetchers"
	"cosmocast/internal/forecast"
	"cosmocast/internal/logger"
	"cosmocast/internal/models"
	"cosmocast/internal/observability"

	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/singleflight"
)

// DefaultCacheTTL shields the upstream providers from request bursts;
// clients polling faster than this only ever see the cached aggregate.
const DefaultCacheTTL = 5 * time.Minute

// Service orchestrates the cosmic weather aggregation cycle: concurrent
// provider fetches, normalization, aurora forecasting and caching. It never
// returns an error to callers; total provider outage still yields a
// structurally complete aggregate with empty lists and floor values.
type Service struct {
	fetcher    *fetchers.DataFetcher
	normalizer *fetchers.DataNormalizer
	forecaster *forecast.Engine
	cache      snapshotCache
	group      singleflight.Group
	clock      clockwork.Clock
	metrics    *observability.Metrics
	log        *logger.Logger
	ttl        time.Duration
}

// NewService creates a new aggregation service. A nil clock falls back to
// real time; a non-positive ttl falls back to DefaultCacheTTL.
func NewService(fetcher *fetchers.DataFetcher, forecaster *forecast.Engine, ttl time.Duration, clock clockwork.Clock, metrics *observability.Metrics) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &Service{
		fetcher:    fetcher,
		normalizer: fetchers.NewDataNormalizer(),
		forecaster: forecaster,
		clock:      clock,
		metrics:    metrics,
		log:        logger.GetGlobalLogger().WithComponent("aggregator"),
		ttl:        ttl,
	}
}

// GetUnifiedData returns the assembled aggregate, serving from the cache
// within the TTL window. Concurrent cache misses are deduplicated so a
// thundering herd triggers exactly one upstream cycle.
func (s *Service) GetUnifiedData(ctx context.Context) *models.SpaceWeatherData {
	if data, ok := s.cache.Get(s.clock.Now(), s.ttl); ok {
		s.metrics.CacheLookups.WithLabelValues("hit").Inc()
		return data
	}
	s.metrics.CacheLookups.WithLabelValues("miss").Inc()

	result, _, _ := s.group.Do("aggregate", func() (interface{}, error) {
		// A concurrent caller may have refreshed while this one waited
		if data, ok := s.cache.Get(s.clock.Now(), s.ttl); ok {
			return data, nil
		}
		return s.refresh(ctx), nil
	})

	return result.(*models.SpaceWeatherData)
}

// refresh runs one full fetch-normalize-assemble cycle and overwrites the
// cache slot.
func (s *Service) refresh(ctx context.Context) *models.SpaceWeatherData {
	start := s.clock.Now()
	s.log.Info("Starting aggregation refresh cycle")

	src := s.fetcher.FetchAll(ctx)
	events, maxKp := s.normalizer.Normalize(src)

	now := s.clock.Now().UTC()
	data := &models.SpaceWeatherData{
		ActiveSolarStorms: events,
		AuroraForecast:    s.forecaster.GenerateFromKp(maxKp),
		RadiationAlerts:   s.normalizer.RadiationAlerts(src.Scales, now),
		LastUpdated:       now.Format(time.RFC3339),
	}

	s.cache.Set(data, s.clock.Now())
	s.metrics.RefreshTotal.Inc()
	s.metrics.RefreshDuration.Observe(s.clock.Since(start).Seconds())

	s.log.Info("Aggregation refresh completed", map[string]interface{}{
		"events":           len(events),
		"max_kp":           maxKp,
		"radiation_alerts": len(data.RadiationAlerts),
	})

	return data
}
