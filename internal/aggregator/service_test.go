package aggregator

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"cosmocast/internal/config"
	"cosmocast/internal/fetchers"
	"cosmocast/internal/forecast"
	"cosmocast/internal/models"
	"cosmocast/internal/observability"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newUpstreamStub serves healthy DONKI and NOAA responses and counts requests
func newUpstreamStub(t *testing.T, hits *int64, delay time.Duration) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			atomic.AddInt64(hits, 1)
		}
		if delay > 0 {
			time.Sleep(delay)
		}

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/DONKI/CME":
			w.Write([]byte(`[{"activityID":"cme-1","startTime":"2024-05-08T22:36Z","cmeAnalyses":[{"time21_5":"2024-05-09T05:00Z","speed":2100,"type":"S"}]}]`))
		case "/DONKI/FLR":
			w.Write([]byte(`[{"flrID":"flr-1","beginTime":"2024-05-10T06:27Z","classType":"X3.9","activeRegionNum":13664}]`))
		case "/DONKI/GST":
			w.Write([]byte(`[{"gstID":"gst-1","startTime":"2024-05-10T17:00Z","allKpIndex":[{"kpIndex":8.67}],"link":"https://example.com"}]`))
		case "/noaa-scales.json":
			w.Write([]byte(`{"0":{"DateStamp":"2024-05-10","TimeStamp":"18:00:00","S":{"Scale":"3","Text":"strong"}}}`))
		default:
			http.NotFound(w, r)
		}
	}))
}

func newTestService(baseURL string, clock clockwork.Clock, ttl time.Duration) *Service {
	cfg := &config.Config{
		NASAAPIKey:    "test-key",
		DONKIBaseURL:  baseURL + "/DONKI",
		NOAAScalesURL: baseURL + "/noaa-scales.json",
		LookbackDays:  30,
	}

	metrics := observability.NewMetricsForTesting()
	fetcher := fetchers.NewDataFetcher(cfg, clock, metrics)
	engine := forecast.NewEngine(clock)

	return NewService(fetcher, engine, ttl, clock, metrics)
}

func TestGetUnifiedDataAssemblesAggregate(t *testing.T) {
	server := newUpstreamStub(t, nil, 0)
	defer server.Close()

	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 10, 19, 0, 0, 0, time.UTC))
	service := newTestService(server.URL, clock, DefaultCacheTTL)

	data := service.GetUnifiedData(context.Background())
	require.NotNil(t, data)

	require.Len(t, data.ActiveSolarStorms, 3)
	// Sorted descending by start time
	assert.Equal(t, "gst-1", data.ActiveSolarStorms[0].ID)
	assert.Equal(t, "flr-1", data.ActiveSolarStorms[1].ID)
	assert.Equal(t, "cme-1", data.ActiveSolarStorms[2].ID)

	assert.Equal(t, 8.67, data.AuroraForecast.KpIndex)
	assert.Equal(t, models.VisibilityHigh, data.AuroraForecast.VisibilityLevel)

	require.Len(t, data.RadiationAlerts, 1)
	assert.Equal(t, "S3", data.RadiationAlerts[0].AlertLevel)
	assert.Equal(t, models.SeverityHigh, data.RadiationAlerts[0].Severity)
	assert.Len(t, data.RadiationAlerts[0].AffectedSystems, 4)

	assert.Equal(t, "2024-05-10T19:00:00Z", data.LastUpdated)
}

func TestGetUnifiedDataCacheWindow(t *testing.T) {
	var hits int64
	server := newUpstreamStub(t, &hits, 0)
	defer server.Close()

	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 10, 19, 0, 0, 0, time.UTC))
	service := newTestService(server.URL, clock, DefaultCacheTTL)

	first := service.GetUnifiedData(context.Background())
	assert.Equal(t, int64(4), atomic.LoadInt64(&hits))

	// Within the TTL: same object, no upstream traffic
	clock.Advance(4 * time.Minute)
	second := service.GetUnifiedData(context.Background())
	assert.Same(t, first, second)
	assert.Equal(t, int64(4), atomic.LoadInt64(&hits))

	// Past the TTL: fresh cycle with a new timestamp
	clock.Advance(2 * time.Minute)
	third := service.GetUnifiedData(context.Background())
	assert.NotSame(t, first, third)
	assert.Equal(t, int64(8), atomic.LoadInt64(&hits))
	assert.NotEqual(t, first.LastUpdated, third.LastUpdated)
}

func TestGetUnifiedDataTotalOutage(t *testing.T) {
	server := newUpstreamStub(t, nil, 0)
	server.Close() // all four fetches now fail

	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 10, 19, 0, 0, 0, time.UTC))
	service := newTestService(server.URL, clock, DefaultCacheTTL)

	data := service.GetUnifiedData(context.Background())

	require.NotNil(t, data)
	assert.Empty(t, data.ActiveSolarStorms)
	assert.NotNil(t, data.ActiveSolarStorms)
	assert.Empty(t, data.RadiationAlerts)
	assert.NotNil(t, data.RadiationAlerts)
	assert.Equal(t, fetchers.BaselineKp, data.AuroraForecast.KpIndex)
	assert.Equal(t, models.VisibilityNone, data.AuroraForecast.VisibilityLevel)
	assert.NotEmpty(t, data.LastUpdated)
}

func TestGetUnifiedDataSingleFlight(t *testing.T) {
	var hits int64
	server := newUpstreamStub(t, &hits, 50*time.Millisecond)
	defer server.Close()

	service := newTestService(server.URL, clockwork.NewRealClock(), DefaultCacheTTL)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			data := service.GetUnifiedData(context.Background())
			assert.NotNil(t, data)
		}()
	}
	wg.Wait()

	// One flight serves every concurrent miss: exactly one cycle of four fetches
	assert.Equal(t, int64(4), atomic.LoadInt64(&hits))
}
