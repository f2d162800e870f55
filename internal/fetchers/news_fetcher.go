package fetchers

import (
	"context"
	"fmt"
	"time"

	"cosmocast/internal/models"

	"github.com/go-resty/resty/v2"
	"github.com/mmcdole/gofeed"
)

// NewsTimeout bounds the SWPC news feed request
const NewsTimeout = 10 * time.Second

// NewsFetcher fetches space weather bulletins from the SWPC RSS feed.
// Bulletins are served alongside the aggregate but are not part of it;
// a feed outage never touches the weather pipeline.
type NewsFetcher struct {
	client *resty.Client
	parser *gofeed.Parser
	url    string
}

// NewNewsFetcher creates a new bulletin fetcher instance
func NewNewsFetcher(client *resty.Client, url string) *NewsFetcher {
	return &NewsFetcher{
		client: client,
		parser: gofeed.NewParser(),
		url:    url,
	}
}

// FetchBulletins fetches and parses the most recent feed items, newest first
func (f *NewsFetcher) FetchBulletins(ctx context.Context, limit int) ([]models.Bulletin, error) {
	ctx, cancel := context.WithTimeout(ctx, NewsTimeout)
	defer cancel()

	resp, err := f.client.R().
		SetContext(ctx).
		Get(f.url)

	if err != nil {
		return nil, fmt.Errorf("failed to fetch SWPC news feed: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("SWPC news feed returned status %d", resp.StatusCode())
	}

	feed, err := f.parser.ParseString(string(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SWPC news feed: %w", err)
	}

	bulletins := make([]models.Bulletin, 0, limit)
	for _, item := range feed.Items {
		if limit > 0 && len(bulletins) >= limit {
			break
		}

		bulletin := models.Bulletin{
			Title:   item.Title,
			Link:    item.Link,
			Summary: item.Description,
		}
		if item.PublishedParsed != nil {
			bulletin.Published = item.PublishedParsed.UTC().Format(time.RFC3339)
		}
		bulletins = append(bulletins, bulletin)
	}

	return bulletins, nil
}
