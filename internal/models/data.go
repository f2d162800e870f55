package models

// EventType identifies the kind of solar activity an event describes
type EventType string

const (
	EventCME         EventType = "CME"
	EventFlare       EventType = "FLARE"
	EventGeomagnetic EventType = "GEOMAGNETIC"
)

// Severity is the unified severity tier assigned to every event
type Severity string

const (
	SeverityLow      Severity = "LOW"
	SeverityModerate Severity = "MODERATE"
	SeverityHigh     Severity = "HIGH"
	SeverityExtreme  Severity = "EXTREME"
)

// Confidence reflects how directly an event was observed
type Confidence string

const (
	ConfidenceHigh     Confidence = "HIGH"
	ConfidenceModerate Confidence = "MODERATE"
)

// VisibilityLevel is the aurora visibility classification
type VisibilityLevel string

const (
	VisibilityNone   VisibilityLevel = "NONE"
	VisibilityLow    VisibilityLevel = "LOW"
	VisibilityMedium VisibilityLevel = "MEDIUM"
	VisibilityHigh   VisibilityLevel = "HIGH"
)

// UnifiedEvent is the canonical event shape consumed by the rendering layer,
// produced by normalizing the provider-specific CME/flare/storm records
type UnifiedEvent struct {
	ID        string    `json:"id"`
	Type      EventType `json:"type"`
	Severity  Severity  `json:"severity"`
	StartTime string    `json:"startTime"`
	// ExpectedImpactTime is only meaningful for CME events. For other event
	// types the key is omitted from the JSON entirely rather than emitted
	// as null; consumers must treat a missing key as "no impact estimate".
	ExpectedImpactTime string     `json:"expectedImpactTime,omitempty"`
	Description        string     `json:"description"`
	ConfidenceLevel    Confidence `json:"confidenceLevel"`
}

// AuroraForecast is the visibility forecast derived from the maximum
// observed Kp index, valid for a fixed 8-hour window
type AuroraForecast struct {
	KpIndex              float64         `json:"kpIndex"`
	VisibilityLevel      VisibilityLevel `json:"visibilityLevel"`
	VisibleLatitudeRange string          `json:"visibleLatitudeRange"`
	ForecastStartTime    string          `json:"forecastStartTime"`
	ForecastEndTime      string          `json:"forecastEndTime"`
	Summary              string          `json:"summary"`
}

// RadiationAlert summarizes the current solar radiation storm status.
// At most one alert exists per aggregation cycle.
type RadiationAlert struct {
	AlertLevel      string   `json:"alertLevel"`
	Severity        Severity `json:"severity"`
	AffectedSystems []string `json:"affectedSystems"`
	// StartTime is synthesized from the provider's separate date and time
	// stamps; it is an approximation, not a timezone-verified timestamp.
	StartTime   string `json:"startTime"`
	LastUpdated string `json:"lastUpdated"`
}

// SpaceWeatherData is the fully assembled aggregate served to clients
// and held in the cache slot
type SpaceWeatherData struct {
	// ActiveSolarStorms is sorted descending by start time, most recent first
	ActiveSolarStorms []UnifiedEvent   `json:"activeSolarStorms"`
	AuroraForecast    AuroraForecast   `json:"auroraForecast"`
	RadiationAlerts   []RadiationAlert `json:"radiationAlerts"`
	LastUpdated       string           `json:"lastUpdated"`
}

// Bulletin is a single space weather news item from the SWPC feed
type Bulletin struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Published string `json:"published"`
	Summary   string `json:"summary"`
}
