package domain_models

import "time"

type Photo struct {
	Ref       string `json:"ref"`
	ThumbRef  string `json:"thumb_ref,omitempty"`
	SizeBytes int64  `json:"size_bytes"`
}

// CheckInDraft is the in-progress record between prepare and submit.
type CheckInDraft struct {
	PointID              string  `json:"point_id"`
	LocationLabel        string  `json:"location_label"`
	Position             LatLng  `json:"position"`
	UsedFallbackLocation bool    `json:"used_fallback_location"`
	Notes                string  `json:"notes"`
	Photos               []Photo `json:"photos"`
}

// CheckInRecord is immutable once returned by the recorder.
type CheckInRecord struct {
	PointID              string    `json:"point_id"`
	Timestamp            time.Time `json:"timestamp"`
	LocationLabel        string    `json:"location_label"`
	Position             LatLng    `json:"position"`
	UsedFallbackLocation bool      `json:"used_fallback_location"`
	Notes                string    `json:"notes"`
	Photos               []Photo   `json:"photos"`
	Code                 string    `json:"code"`
}
