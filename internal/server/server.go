package server

import (
	"net/http"

	"cosmocast/internal/aggregator"
	"cosmocast/internal/charts"
	"cosmocast/internal/config"
	"cosmocast/internal/fetchers"
	"cosmocast/internal/forecast"
	"cosmocast/internal/logger"
	"cosmocast/internal/observability"

	"github.com/go-resty/resty/v2"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server represents the main application server
type Server struct {
	Config     *config.Config
	Aggregator *aggregator.Service
	News       *fetchers.NewsFetcher
	Charts     *charts.Generator

	log *logger.Logger
}

// NewServer creates a new server instance wired with the aggregation
// pipeline. The clock is injectable for tests; pass nil for real time.
func NewServer(cfg *config.Config, clock clockwork.Clock, metrics *observability.Metrics) *Server {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	fetcher := fetchers.NewDataFetcher(cfg, clock, metrics)
	engine := forecast.NewEngine(clock)

	return &Server{
		Config:     cfg,
		Aggregator: aggregator.NewService(fetcher, engine, cfg.CacheTTL, clock, metrics),
		News:       fetchers.NewNewsFetcher(resty.New(), cfg.SWPCNewsURL),
		Charts:     charts.NewGenerator(),
		log:        logger.GetGlobalLogger().WithComponent("server"),
	}
}

// SetupRoutes configures HTTP routes for the server
func (s *Server) SetupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", s.HandleHealth)
	mux.HandleFunc("/api/weather", s.HandleWeather)
	mux.HandleFunc("/api/bulletins", s.HandleBulletins)
	mux.HandleFunc("/charts/activity.png", s.HandleActivityChart)
	mux.Handle("/metrics", promhttp.Handler())

	// Catch-all status page
	mux.HandleFunc("/", s.HandleRoot)

	return mux
}
