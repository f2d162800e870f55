package fetchers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"cosmocast/internal/config"
	"cosmocast/internal/observability"

	"github.com/go-resty/resty/v2"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	cmeFixture = `[{"activityID":"2024-05-08T22:36:00-CME-001","startTime":"2024-05-08T22:36Z","sourceLocation":"S18W40",
		"cmeAnalyses":[{"time21_5":"2024-05-09T05:00Z","speed":1750,"type":"S","isMostAccurate":true}]}]`
	flareFixture = `[{"flrID":"2024-05-10T06:27:00-FLR-001","beginTime":"2024-05-10T06:27Z","classType":"X3.9","activeRegionNum":13664}]`
	stormFixture = `[{"gstID":"2024-05-10T17:00:00-GST-001","startTime":"2024-05-10T17:00Z",
		"allKpIndex":[{"observedTime":"2024-05-10T18:00Z","kpIndex":8.67,"source":"NOAA"}],"link":"https://example.com/gst"}]`
	scalesFixture = `{"0":{"DateStamp":"2024-05-10","TimeStamp":"18:00:00",
		"R":{"Scale":"1","Text":"minor"},"S":{"Scale":"2","Text":"moderate"},"G":{"Scale":"4","Text":"severe"}},
		"-1":{"DateStamp":"2024-05-09","TimeStamp":"18:00:00","S":{"Scale":"0","Text":"none"}}}`
)

// newProviderStub serves DONKI and NOAA shaped responses, optionally failing
// selected paths.
func newProviderStub(t *testing.T, failing map[string]bool) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if failing[r.URL.Path] {
			http.Error(w, "upstream unavailable", http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/DONKI/CME":
			w.Write([]byte(cmeFixture))
		case "/DONKI/FLR":
			w.Write([]byte(flareFixture))
		case "/DONKI/GST":
			w.Write([]byte(stormFixture))
		case "/noaa-scales.json":
			w.Write([]byte(scalesFixture))
		default:
			http.NotFound(w, r)
		}
	}))
}

func stubConfig(baseURL string) *config.Config {
	return &config.Config{
		NASAAPIKey:    "test-key",
		DONKIBaseURL:  baseURL + "/DONKI",
		NOAAScalesURL: baseURL + "/noaa-scales.json",
		LookbackDays:  30,
	}
}

func TestFetchAllSuccess(t *testing.T) {
	server := newProviderStub(t, nil)
	defer server.Close()

	fetcher := NewDataFetcher(stubConfig(server.URL), clockwork.NewRealClock(), observability.NewMetricsForTesting())
	src := fetcher.FetchAll(context.Background())

	require.Len(t, src.CMEs, 1)
	assert.Equal(t, "2024-05-08T22:36:00-CME-001", src.CMEs[0].ActivityID)
	assert.Equal(t, 1750.0, src.CMEs[0].Analyses[0].Speed)

	require.Len(t, src.Flares, 1)
	assert.Equal(t, "X3.9", src.Flares[0].ClassType)

	require.Len(t, src.Storms, 1)
	assert.Equal(t, 8.67, src.Storms[0].AllKpIndex[0].KpIndex)

	require.NotNil(t, src.Scales)
	require.NotNil(t, src.Scales["0"].S)
	assert.Equal(t, "2", src.Scales["0"].S.Scale)
}

func TestFetchAllPartialOutage(t *testing.T) {
	server := newProviderStub(t, map[string]bool{"/DONKI/FLR": true})
	defer server.Close()

	fetcher := NewDataFetcher(stubConfig(server.URL), clockwork.NewRealClock(), observability.NewMetricsForTesting())
	src := fetcher.FetchAll(context.Background())

	// The failed feed degrades to nil, the others are untouched
	assert.Nil(t, src.Flares)
	assert.Len(t, src.CMEs, 1)
	assert.Len(t, src.Storms, 1)
	assert.NotNil(t, src.Scales)
}

func TestFetchAllTotalOutage(t *testing.T) {
	server := newProviderStub(t, nil)
	server.Close() // every request now fails at the transport level

	fetcher := NewDataFetcher(stubConfig(server.URL), clockwork.NewRealClock(), observability.NewMetricsForTesting())
	src := fetcher.FetchAll(context.Background())

	assert.Nil(t, src.CMEs)
	assert.Nil(t, src.Flares)
	assert.Nil(t, src.Storms)
	assert.Nil(t, src.Scales)
}

func TestFetchAllSendsLookbackWindow(t *testing.T) {
	// Captures are written from concurrent handler goroutines
	var mu sync.Mutex
	var gotStartDate, gotAPIKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/noaa-scales.json" {
			w.Write([]byte("{}"))
			return
		}
		if r.URL.Path == "/DONKI/CME" {
			mu.Lock()
			gotStartDate = r.URL.Query().Get("startDate")
			gotAPIKey = r.URL.Query().Get("api_key")
			mu.Unlock()
		}
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	clock := clockwork.NewFakeClockAt(time.Date(2024, 5, 31, 12, 0, 0, 0, time.UTC))
	cfg := stubConfig(server.URL)

	fetcher := NewDataFetcher(cfg, clock, observability.NewMetricsForTesting())
	fetcher.FetchAll(context.Background())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "2024-05-01", gotStartDate)
	assert.Equal(t, "test-key", gotAPIKey)
}

func TestDegradeReasonBuckets(t *testing.T) {
	assert.Equal(t, "timeout", degradeReason(context.DeadlineExceeded))
	assert.Equal(t, "transport", degradeReason(assert.AnError))
}

func TestFetchBulletins(t *testing.T) {
	feedXML := `<?xml version="1.0"?>
<rss version="2.0">
  <channel>
    <title>Space Weather News</title>
    <item>
      <title>G4 Watch issued</title>
      <link>https://example.com/g4</link>
      <description>Severe geomagnetic storm watch</description>
      <pubDate>Fri, 10 May 2024 18:00:00 GMT</pubDate>
    </item>
    <item>
      <title>X-class flare observed</title>
      <link>https://example.com/x</link>
      <description>Region 3664 produced an X3.9 flare</description>
      <pubDate>Fri, 10 May 2024 06:30:00 GMT</pubDate>
    </item>
  </channel>
</rss>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(feedXML))
	}))
	defer server.Close()

	news := NewNewsFetcher(resty.New(), server.URL)

	bulletins, err := news.FetchBulletins(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, bulletins, 2)
	assert.Equal(t, "G4 Watch issued", bulletins[0].Title)
	assert.Equal(t, "2024-05-10T18:00:00Z", bulletins[0].Published)

	limited, err := news.FetchBulletins(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestFetchBulletinsUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	news := NewNewsFetcher(resty.New(), server.URL)

	_, err := news.FetchBulletins(context.Background(), 10)
	assert.Error(t, err)
}
