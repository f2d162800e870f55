package fetchers

import (
	"fmt"
	"sort"
	"strconv"
	"time"

	"cosmocast/internal/models"
)

// BaselineKp is the floor for the maximum observed Kp. A floor of 1
// represents baseline quiet conditions; 0 would imply no measurable field
// activity, which is not how the scale is used downstream.
const BaselineKp = 1.0

// DataNormalizer converts provider-specific records into the unified event
// schema and derives the aggregate-level inputs (max Kp, radiation status).
// All classification is fail-safe: malformed input degrades to LOW, never
// to an error.
type DataNormalizer struct{}

// NewDataNormalizer creates a new data normalizer instance
func NewDataNormalizer() *DataNormalizer {
	return &DataNormalizer{}
}

// Normalize flattens all successfully fetched event feeds into a single
// unified list sorted descending by start time, and returns the maximum
// Kp index observed across all storm records (floored at BaselineKp).
func (n *DataNormalizer) Normalize(src *SourceData) ([]models.UnifiedEvent, float64) {
	events := make([]models.UnifiedEvent, 0, len(src.CMEs)+len(src.Flares)+len(src.Storms))
	maxKp := BaselineKp

	for _, cme := range src.CMEs {
		events = append(events, n.normalizeCME(cme))
	}

	for _, flare := range src.Flares {
		events = append(events, n.normalizeFlare(flare))
	}

	for _, storm := range src.Storms {
		events = append(events, n.normalizeStorm(storm))
		if kp := firstKp(storm.AllKpIndex); kp > maxKp {
			maxKp = kp
		}
	}

	// Most recent activity first
	sort.SliceStable(events, func(i, j int) bool {
		return parseEventTime(events[i].StartTime).After(parseEventTime(events[j].StartTime))
	})

	return events, maxKp
}

func (n *DataNormalizer) normalizeCME(e models.CMEEvent) models.UnifiedEvent {
	location := e.SourceLocation
	if location == "" {
		location = "Unknown"
	}

	event := models.UnifiedEvent{
		ID:              e.ActivityID,
		Type:            models.EventCME,
		Severity:        SeverityForCME(e.Analyses),
		StartTime:       e.StartTime,
		Description:     fmt.Sprintf("Coronal mass ejection from %s", location),
		ConfidenceLevel: models.ConfidenceModerate,
	}

	if len(e.Analyses) > 0 {
		primary := e.Analyses[0]
		event.ExpectedImpactTime = primary.Time215
		// Only a scientific-grade analysis earns direct-observation confidence
		if primary.Type == "S" {
			event.ConfidenceLevel = models.ConfidenceHigh
		}
	}

	return event
}

func (n *DataNormalizer) normalizeFlare(e models.FlareEvent) models.UnifiedEvent {
	return models.UnifiedEvent{
		ID:              e.FlareID,
		Type:            models.EventFlare,
		Severity:        SeverityForFlare(e.ClassType),
		StartTime:       e.BeginTime,
		Description:     fmt.Sprintf("Solar flare %s from active region %d", e.ClassType, e.ActiveRegionNum),
		ConfidenceLevel: models.ConfidenceHigh,
	}
}

func (n *DataNormalizer) normalizeStorm(e models.StormEvent) models.UnifiedEvent {
	// "Linked" records carry an external reference, plain observations do not
	provenance := "Observed"
	if e.Link != "" {
		provenance = "Linked"
	}

	return models.UnifiedEvent{
		ID:              e.GstID,
		Type:            models.EventGeomagnetic,
		Severity:        SeverityForStorm(e.AllKpIndex),
		StartTime:       e.StartTime,
		Description:     fmt.Sprintf("Geomagnetic storm, Kp %.1f (%s)", firstKp(e.AllKpIndex), provenance),
		ConfidenceLevel: models.ConfidenceHigh,
	}
}

// SeverityForFlare classifies a flare by its class letter. An unrecognized
// or missing class degrades to LOW.
func SeverityForFlare(classType string) models.Severity {
	if classType == "" {
		return models.SeverityLow
	}

	switch classType[0] {
	case 'A', 'B', 'C':
		return models.SeverityLow
	case 'M':
		return models.SeverityModerate
	case 'X':
		magnitude, err := strconv.ParseFloat(classType[1:], 64)
		if err != nil {
			magnitude = 0
		}
		if magnitude >= 10 {
			return models.SeverityExtreme
		}
		return models.SeverityHigh
	default:
		return models.SeverityLow
	}
}

// SeverityForStorm classifies a storm by its first Kp observation
func SeverityForStorm(observations []models.KpObservation) models.Severity {
	kp := firstKp(observations)

	switch {
	case kp < 5:
		return models.SeverityLow
	case kp < 7:
		return models.SeverityModerate
	case kp < 9:
		return models.SeverityHigh
	default:
		return models.SeverityExtreme
	}
}

// SeverityForCME classifies a CME by its first analysis speed in km/s
func SeverityForCME(analyses []models.CMEAnalysis) models.Severity {
	var speed float64
	if len(analyses) > 0 {
		speed = analyses[0].Speed
	}

	switch {
	case speed < 500:
		return models.SeverityLow
	case speed < 1000:
		return models.SeverityModerate
	case speed < 2000:
		return models.SeverityHigh
	default:
		return models.SeverityExtreme
	}
}

// RadiationAlerts derives the current radiation storm status from the NOAA
// scales product. No active storm (absent S entry or scale "0") is the
// expected common case and yields an empty list, not an error.
func (n *DataNormalizer) RadiationAlerts(scales models.ScalesResponse, now time.Time) []models.RadiationAlert {
	alerts := []models.RadiationAlert{}

	current, ok := scales["0"]
	if !ok || current.S == nil || current.S.Scale == "" || current.S.Scale == "0" {
		return alerts
	}

	scale, err := strconv.Atoi(current.S.Scale)
	if err != nil {
		scale = 1
	}

	severity := models.SeverityLow
	switch {
	case scale >= 4:
		severity = models.SeverityExtreme
	case scale == 3:
		severity = models.SeverityHigh
	case scale == 2:
		severity = models.SeverityModerate
	}

	systems := []string{"COMMUNICATIONS"}
	if scale >= 3 {
		systems = []string{"SATELLITES", "AVIATION", "GPS", "COMMUNICATIONS"}
	}

	return append(alerts, models.RadiationAlert{
		AlertLevel:      "S" + current.S.Scale,
		Severity:        severity,
		AffectedSystems: systems,
		// Date and time stamps concatenated without offset handling; callers
		// must not assume strict timezone correctness.
		StartTime:   fmt.Sprintf("%sT%sZ", current.DateStamp, current.TimeStamp),
		LastUpdated: now.UTC().Format(time.RFC3339),
	})
}

// firstKp returns the first Kp observation, treated as authoritative,
// defaulting to 0 when absent
func firstKp(observations []models.KpObservation) float64 {
	if len(observations) == 0 {
		return 0
	}
	return observations[0].KpIndex
}

// parseEventTime parses the timestamp formats the DONKI feeds use. An
// unparseable value sorts last.
func parseEventTime(value string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04Z", "2006-01-02T15:04:05Z"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Time{}
}
