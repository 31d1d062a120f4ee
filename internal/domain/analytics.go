package domain

// StatPoint accumulates one calendar day of catalog-wide activity.
type StatPoint struct {
	Date      string `json:"date"` // YYYY-MM-DD
	Views     int64  `json:"views"`
	Downloads int64  `json:"downloads"`
}

// UserAnalytics accumulates engagement for one known username. Viewers
// without a platform handle are never individually tracked.
type UserAnalytics struct {
	Username   string `json:"username"`
	Views      int64  `json:"views"`
	Downloads  int64  `json:"downloads"`
	LastActive string `json:"lastActive"` // YYYY-MM-DD
}

// ActivityKind is the kind of engagement event being tracked.
type ActivityKind string

// Trackable activity kinds.
const (
	ActivityView     ActivityKind = "view"
	ActivityDownload ActivityKind = "download"
)

// Valid reports whether k is a known activity kind.
func (k ActivityKind) Valid() bool {
	return k == ActivityView || k == ActivityDownload
}
