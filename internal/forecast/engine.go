package forecast

import (
	"fmt"
	"time"

	"cosmocast/internal/models"

	"github.com/jonboulle/clockwork"
)

// ForecastWindow is the fixed validity window stamped on every forecast,
// regardless of activity level.
const ForecastWindow = 8 * time.Hour

// Viewing city lists by activity tier. The kp>=7 list must be checked
// before the kp>=5 list so extreme storms pick the low-latitude cities.
const (
	extremeCities = "Seattle, Chicago, Paris, Berlin"
	stormCities   = "Oslo, Stockholm, Edinburgh, Moscow"
	quietCities   = "Fairbanks, Tromso, Reykjavik, Yellowknife"
)

// Engine derives aurora visibility forecasts from the planetary Kp index.
// It holds no state beyond the time source and never fails: any numeric
// input maps to one of the four visibility tiers.
type Engine struct {
	clock clockwork.Clock
}

// NewEngine creates a forecast engine. A nil clock falls back to real time;
// tests inject a fake clock to pin the validity window.
func NewEngine(clock clockwork.Clock) *Engine {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Engine{clock: clock}
}

// GenerateFromKp builds a complete aurora forecast for the given Kp index
func (e *Engine) GenerateFromKp(kp float64) models.AuroraForecast {
	visibility := calculateVisibility(kp)
	latRange := calculateLatitudeRange(kp)
	now := e.clock.Now().UTC()

	return models.AuroraForecast{
		KpIndex:              kp,
		VisibilityLevel:      visibility,
		VisibleLatitudeRange: latRange,
		ForecastStartTime:    now.Format(time.RFC3339),
		ForecastEndTime:      now.Add(ForecastWindow).Format(time.RFC3339),
		Summary:              generateSummary(kp, visibility, latRange),
	}
}

// calculateVisibility maps Kp onto the four visibility tiers. The bin
// boundaries at 3, 5 and 7 mirror the NOAA G-scale and must stay in sync
// with calculateLatitudeRange.
func calculateVisibility(kp float64) models.VisibilityLevel {
	switch {
	case kp < 3:
		return models.VisibilityNone
	case kp < 5:
		return models.VisibilityLow
	case kp < 7:
		return models.VisibilityMedium
	default:
		return models.VisibilityHigh
	}
}

// calculateLatitudeRange maps Kp onto a descriptive latitude band using the
// same bins as calculateVisibility.
func calculateLatitudeRange(kp float64) string {
	switch {
	case kp < 3:
		return ">65°N (Polar Regions Only)"
	case kp < 5:
		return ">60°N (High Latitudes)"
	case kp < 7:
		return ">50°N (Mid-High Latitudes)"
	default:
		return ">40°N (Low Latitudes)"
	}
}

// generateSummary produces the human-readable viewing guidance
func generateSummary(kp float64, visibility models.VisibilityLevel, latRange string) string {
	if visibility == models.VisibilityNone {
		return "Aurora activity is minimal. Viewing is unlikely outside the polar regions."
	}

	var cities string
	switch {
	case kp >= 7:
		cities = extremeCities
	case kp >= 5:
		cities = stormCities
	default:
		cities = quietCities
	}

	return fmt.Sprintf("Aurora may be visible at latitudes %s. Good viewing chances near %s. Current Kp: %.1f", latRange, cities, kp)
}
