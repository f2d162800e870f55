package fetchers

import (
	"context"
	"errors"
	"strings"

	"cosmocast/internal/config"
	"cosmocast/internal/logger"
	"cosmocast/internal/models"
	"cosmocast/internal/observability"

	"github.com/go-resty/resty/v2"
	"github.com/jonboulle/clockwork"
)

// SourceData contains raw data from all providers before normalization.
// A nil slice or map means that provider degraded for this cycle.
type SourceData struct {
	CMEs   []models.CMEEvent     `json:"cmes"`
	Flares []models.FlareEvent   `json:"flares"`
	Storms []models.StormEvent   `json:"storms"`
	Scales models.ScalesResponse `json:"scales"`
}

// DataFetcher handles fetching data from all external sources
type DataFetcher struct {
	donki   *DONKIFetcher
	noaa    *NOAAFetcher
	clock   clockwork.Clock
	metrics *observability.Metrics
	log     *logger.Logger
}

// NewDataFetcher creates a new data fetcher instance. There is deliberately
// no retry policy: a failed fetch degrades for the rest of the cycle and is
// retried on the next cache-expiry-triggered cycle.
func NewDataFetcher(cfg *config.Config, clock clockwork.Clock, metrics *observability.Metrics) *DataFetcher {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	client := resty.New()

	return &DataFetcher{
		donki:   NewDONKIFetcher(client, cfg.DONKIBaseURL, cfg.NASAAPIKey, cfg.LookbackDays),
		noaa:    NewNOAAFetcher(client, cfg.NOAAScalesURL),
		clock:   clock,
		metrics: metrics,
		log:     logger.GetGlobalLogger().WithComponent("fetchers"),
	}
}

// FetchAll fetches from all four sources concurrently and waits for every
// fetch to settle. Each fetch absorbs its own transport error into a nil
// result; a single provider outage never fails the aggregation.
func (f *DataFetcher) FetchAll(ctx context.Context) *SourceData {
	now := f.clock.Now()

	cmeChan := make(chan []models.CMEEvent, 1)
	flareChan := make(chan []models.FlareEvent, 1)
	stormChan := make(chan []models.StormEvent, 1)
	scalesChan := make(chan models.ScalesResponse, 1)

	go func() {
		data, err := f.donki.FetchCMEs(ctx, now)
		if err != nil {
			f.degrade("donki_cme", err)
			data = nil
		}
		cmeChan <- data
	}()

	go func() {
		data, err := f.donki.FetchFlares(ctx, now)
		if err != nil {
			f.degrade("donki_flr", err)
			data = nil
		}
		flareChan <- data
	}()

	go func() {
		data, err := f.donki.FetchStorms(ctx, now)
		if err != nil {
			f.degrade("donki_gst", err)
			data = nil
		}
		stormChan <- data
	}()

	go func() {
		data, err := f.noaa.FetchScales(ctx)
		if err != nil {
			f.degrade("noaa_scales", err)
			data = nil
		}
		scalesChan <- data
	}()

	// Barrier join: each channel carries exactly one result, degraded or not,
	// so the join itself cannot fail.
	return &SourceData{
		CMEs:   <-cmeChan,
		Flares: <-flareChan,
		Storms: <-stormChan,
		Scales: <-scalesChan,
	}
}

// degrade records a provider failure as a typed metric and a warning log
func (f *DataFetcher) degrade(provider string, err error) {
	reason := degradeReason(err)
	if f.metrics != nil {
		f.metrics.FetchDegradations.WithLabelValues(provider, reason).Inc()
	}
	f.log.Warn("Provider fetch degraded", map[string]interface{}{
		"provider": provider,
		"reason":   reason,
		"error":    err.Error(),
	})
}

// degradeReason buckets a fetch error for the degradation counter
func degradeReason(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case strings.Contains(err.Error(), "returned status"):
		return "http_status"
	case strings.Contains(err.Error(), "failed to parse"):
		return "bad_payload"
	default:
		return "transport"
	}
}
