package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"cosmocast/internal/aggregator"
	"cosmocast/internal/config"
	"cosmocast/internal/fetchers"
	"cosmocast/internal/forecast"
	"cosmocast/internal/observability"
)

// local-runner performs a single aggregation cycle against the live
// providers and prints the assembled result, for eyeballing the pipeline
// without starting the HTTP server.
func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Println("🚀 Starting local aggregation test...")
	log.Printf("📡 DONKI: %s (key: %s)", cfg.DONKIBaseURL, cfg.NASAAPIKey)
	log.Printf("📡 NOAA scales: %s", cfg.NOAAScalesURL)

	metrics := observability.NewMetricsForTesting()
	fetcher := fetchers.NewDataFetcher(cfg, nil, metrics)
	engine := forecast.NewEngine(nil)
	service := aggregator.NewService(fetcher, engine, cfg.CacheTTL, nil, metrics)

	start := time.Now()
	data := service.GetUnifiedData(ctx)
	log.Printf("✅ Aggregation completed in %v", time.Since(start))

	log.Printf("   Events: %d", len(data.ActiveSolarStorms))
	log.Printf("   Max Kp: %.2f (%s visibility)", data.AuroraForecast.KpIndex, data.AuroraForecast.VisibilityLevel)
	log.Printf("   Radiation alerts: %d", len(data.RadiationAlerts))

	output, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal result: %v", err)
	}
	fmt.Println(string(output))
}
