package models

// ScalesResponse represents the NOAA SWPC scales product. The response is an
// object keyed by day offset; key "0" holds the current observed status,
// negative keys are past days and positive keys are predictions.
type ScalesResponse map[string]ScaleEntry

// ScaleEntry holds the R/S/G scale readings for a single day
type ScaleEntry struct {
	DateStamp string      `json:"DateStamp"`
	TimeStamp string      `json:"TimeStamp"`
	R         *ScaleValue `json:"R"`
	S         *ScaleValue `json:"S"`
	G         *ScaleValue `json:"G"`
}

// ScaleValue is a single NOAA scale reading ("0" through "5")
type ScaleValue struct {
	Scale string `json:"Scale"`
	Text  string `json:"Text"`
}
