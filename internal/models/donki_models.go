package models

// CMEEvent represents a coronal mass ejection record from the DONKI CME feed
type CMEEvent struct {
	ActivityID     string        `json:"activityID"`
	StartTime      string        `json:"startTime"`
	SourceLocation string        `json:"sourceLocation"`
	Note           string        `json:"note"`
	Analyses       []CMEAnalysis `json:"cmeAnalyses"`
}

// CMEAnalysis is a single modeled analysis of a CME. The first entry in a
// record's analysis list is treated as authoritative.
type CMEAnalysis struct {
	// Time215 is the modeled time the CME reached 21.5 solar radii,
	// used as the expected arrival estimate downstream.
	Time215 string  `json:"time21_5"`
	Speed   float64 `json:"speed"`
	// Type marks the analysis method; "S" denotes a scientific-grade analysis.
	Type           string `json:"type"`
	IsMostAccurate bool   `json:"isMostAccurate"`
}

// FlareEvent represents a solar flare record from the DONKI FLR feed
type FlareEvent struct {
	FlareID   string `json:"flrID"`
	BeginTime string `json:"beginTime"`
	PeakTime  string `json:"peakTime"`
	// ClassType is the flare classification, a letter A-X followed by a
	// numeric magnitude, e.g. "M5.2"
	ClassType       string `json:"classType"`
	ActiveRegionNum int    `json:"activeRegionNum"`
}

// StormEvent represents a geomagnetic storm record from the DONKI GST feed
type StormEvent struct {
	GstID      string          `json:"gstID"`
	StartTime  string          `json:"startTime"`
	AllKpIndex []KpObservation `json:"allKpIndex"`
	Link       string          `json:"link"`
}

// KpObservation is a single Kp index measurement attached to a storm record
type KpObservation struct {
	ObservedTime string  `json:"observedTime"`
	KpIndex      float64 `json:"kpIndex"`
	Source       string  `json:"source"`
}
