package entity

import (
	"time"

	"github.com/gofrs/uuid"
)

// TrackVisitRequest is the public payload fired by the landing pages.
// Everything except ProjectID is optional and gets a documented default.
type TrackVisitRequest struct {
	ProjectID        string   `json:"projectId"`
	Page             string   `json:"page"`
	Referrer         string   `json:"referrer"`
	UserAgent        string   `json:"userAgent"`
	ScreenResolution string   `json:"screenResolution"`
	TimeOnPageMs     float64  `json:"timeOnPage"`
	ScrollDepthPct   float64  `json:"scrollDepth"`
	Interactions     []string `json:"interactions"`
	SessionID        string   `json:"sessionId"`
	UserID           string   `json:"userId"`
}

// TrackExitRequest finalizes a visit when the page unloads: the client sends
// the figures it accumulated since the initial trackVisit call.
type TrackExitRequest struct {
	ProjectID      string  `json:"projectId"`
	SessionID      string  `json:"sessionId"`
	TimeOnPageMs   float64 `json:"timeOnPage"`
	ScrollDepthPct float64 `json:"scrollDepth"`
}

// VisitEvent is a normalized TrackVisitRequest: defaults applied, referrer
// and device classified, timestamp stamped at server receipt.
type VisitEvent struct {
	ProjectID        string
	Page             string
	Referrer         string
	UserAgent        string
	DeviceType       string
	ScreenResolution string
	TimeOnPageMs     float64
	ScrollDepthPct   float64
	Interactions     []string
	SessionID        string
	UserID           string
	Timestamp        time.Time
}

// RawVisitRecord is the append-only audit row behind every folded event.
// Never mutated after insert, except trackExit rewriting the time/scroll
// figures of the session's latest record.
type RawVisitRecord struct {
	ID               uuid.UUID   `json:"id" db:"id"`
	ProjectID        string      `json:"projectId" db:"project_id"`
	Page             string      `json:"page" db:"page"`
	Referrer         string      `json:"referrer" db:"referrer"`
	DeviceType       string      `json:"deviceType" db:"device_type"`
	UserAgent        string      `json:"userAgent" db:"user_agent"`
	ScreenResolution string      `json:"screenResolution" db:"screen_resolution"`
	TimeOnPageMs     float64     `json:"timeOnPage" db:"time_on_page_ms"`
	ScrollDepthPct   float64     `json:"scrollDepth" db:"scroll_depth_pct"`
	Interactions     StringList  `json:"interactions" db:"interactions"`
	SessionID        string      `json:"sessionId" db:"session_id"`
	UserID           string      `json:"userId" db:"user_id"`
	Timestamp        time.Time   `json:"timestamp" db:"timestamp"`
	DateKey          string      `json:"dateKey" db:"date_key"`
	Hour             int         `json:"hour" db:"hour"`
	DayOfWeek        int         `json:"dayOfWeek" db:"day_of_week"`
	Month            int         `json:"month" db:"month"`
	CreatedAt        time.Time   `json:"createdAt" db:"created_at"`
}

// RecentVisit is the trimmed raw-record view shown as recent activity in
// the admin reports.
type RecentVisit struct {
	ProjectID  string    `json:"projectId" db:"project_id"`
	Page       string    `json:"page" db:"page"`
	Referrer   string    `json:"referrer" db:"referrer"`
	DeviceType string    `json:"deviceType" db:"device_type"`
	Timestamp  time.Time `json:"timestamp" db:"timestamp"`
}
