package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cosmocast/internal/models"

	"github.com/go-resty/resty/v2"
)

const (
	// DONKITimeout bounds each individual DONKI feed request
	DONKITimeout = 10 * time.Second
	// DefaultLookbackDays is the event history window requested from DONKI
	DefaultLookbackDays = 30
)

// DONKIFetcher handles fetching event feeds from the NASA DONKI API
type DONKIFetcher struct {
	client       *resty.Client
	baseURL      string
	apiKey       string
	lookbackDays int
}

// NewDONKIFetcher creates a new DONKI fetcher instance
func NewDONKIFetcher(client *resty.Client, baseURL, apiKey string, lookbackDays int) *DONKIFetcher {
	if lookbackDays <= 0 {
		lookbackDays = DefaultLookbackDays
	}
	return &DONKIFetcher{
		client:       client,
		baseURL:      baseURL,
		apiKey:       apiKey,
		lookbackDays: lookbackDays,
	}
}

// startDate computes the lookback window boundary in the YYYY-MM-DD form
// the DONKI API expects.
func (f *DONKIFetcher) startDate(now time.Time) string {
	return now.UTC().AddDate(0, 0, -f.lookbackDays).Format("2006-01-02")
}

// FetchCMEs fetches coronal mass ejection records for the lookback window
func (f *DONKIFetcher) FetchCMEs(ctx context.Context, now time.Time) ([]models.CMEEvent, error) {
	body, err := f.get(ctx, "/CME", now)
	if err != nil {
		return nil, err
	}

	var data []models.CMEEvent
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to parse DONKI CME response: %w", err)
	}

	return data, nil
}

// FetchFlares fetches solar flare records for the lookback window
func (f *DONKIFetcher) FetchFlares(ctx context.Context, now time.Time) ([]models.FlareEvent, error) {
	body, err := f.get(ctx, "/FLR", now)
	if err != nil {
		return nil, err
	}

	var data []models.FlareEvent
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to parse DONKI FLR response: %w", err)
	}

	return data, nil
}

// FetchStorms fetches geomagnetic storm records for the lookback window
func (f *DONKIFetcher) FetchStorms(ctx context.Context, now time.Time) ([]models.StormEvent, error) {
	body, err := f.get(ctx, "/GST", now)
	if err != nil {
		return nil, err
	}

	var data []models.StormEvent
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("failed to parse DONKI GST response: %w", err)
	}

	return data, nil
}

// get performs a single DONKI feed request with the shared query parameters
func (f *DONKIFetcher) get(ctx context.Context, path string, now time.Time) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, DONKITimeout)
	defer cancel()

	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(map[string]string{
			"api_key":   f.apiKey,
			"startDate": f.startDate(now),
		}).
		Get(f.baseURL + path)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch DONKI %s: %w", path, err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("DONKI %s API returned status %d", path, resp.StatusCode())
	}

	return resp.Body(), nil
}
