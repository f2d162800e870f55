package fetchers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cosmocast/internal/models"

	"github.com/go-resty/resty/v2"
)

// ScalesTimeout bounds the NOAA scales status request. The scales product is
// a small current-status document and answers much faster than DONKI.
const ScalesTimeout = 5 * time.Second

// NOAAFetcher handles fetching the scales status product from NOAA SWPC
type NOAAFetcher struct {
	client *resty.Client
	url    string
}

// NewNOAAFetcher creates a new NOAA fetcher instance
func NewNOAAFetcher(client *resty.Client, url string) *NOAAFetcher {
	return &NOAAFetcher{
		client: client,
		url:    url,
	}
}

// FetchScales fetches the current R/S/G scales status. Unlike the DONKI
// feeds this is not a time series; the provider returns current status only.
func (f *NOAAFetcher) FetchScales(ctx context.Context) (models.ScalesResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, ScalesTimeout)
	defer cancel()

	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(f.url)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch NOAA scales: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("NOAA scales API returned status %d", resp.StatusCode())
	}

	var data models.ScalesResponse
	if err := json.Unmarshal(resp.Body(), &data); err != nil {
		return nil, fmt.Errorf("failed to parse NOAA scales response: %w", err)
	}

	return data, nil
}
