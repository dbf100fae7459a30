package entity

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// CounterMap is a name→count breakdown stored as a JSONB column.
type CounterMap map[string]int64

func (m CounterMap) Value() (driver.Value, error) {
	if m == nil {
		m = CounterMap{}
	}
	return json.Marshal(m)
}

func (m *CounterMap) Scan(value interface{}) error {
	if value == nil {
		*m = CounterMap{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, m)
	case string:
		return json.Unmarshal([]byte(v), m)
	default:
		return fmt.Errorf("cannot scan %T into CounterMap", value)
	}
}

// Inc is increment-or-initialize: absent key → 1, present key → +1.
func (m CounterMap) Inc(key string) {
	m[key]++
}

// StringList is a JSONB-backed string array column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
}

// VisitorSet holds the distinct non-anonymous user ids seen by an aggregate.
// Persisting the set itself (not just its size) is what keeps uniqueVisitors
// correct under repeat visits.
type VisitorSet map[string]struct{}

func (s VisitorSet) Value() (driver.Value, error) {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return json.Marshal(ids)
}

func (s *VisitorSet) Scan(value interface{}) error {
	*s = VisitorSet{}
	if value == nil {
		return nil
	}

	var ids []string
	switch v := value.(type) {
	case []byte:
		if err := json.Unmarshal(v, &ids); err != nil {
			return err
		}
	case string:
		if err := json.Unmarshal([]byte(v), &ids); err != nil {
			return err
		}
	default:
		return fmt.Errorf("cannot scan %T into VisitorSet", value)
	}

	for _, id := range ids {
		(*s)[id] = struct{}{}
	}
	return nil
}

func (s VisitorSet) Add(id string) {
	s[id] = struct{}{}
}

const AnonymousUserID = "anonymous"

// DailyAggregate is the per (projectId, dateKey) rolling statistics row.
// It is only ever rewritten as a whole document, guarded by Version.
type DailyAggregate struct {
	ProjectID         string     `json:"projectId" db:"project_id"`
	DateKey           string     `json:"dateKey" db:"date_key"`
	TotalVisits       int64      `json:"totalVisits" db:"total_visits"`
	UniqueVisitors    int64      `json:"uniqueVisitors" db:"unique_visitors"`
	VisitorIDs        VisitorSet `json:"-" db:"visitor_ids"`
	PageViews         CounterMap `json:"pageViews" db:"page_views"`
	Referrers         CounterMap `json:"referrers" db:"referrers"`
	Devices           CounterMap `json:"devices" db:"devices"`
	AvgTimeOnPage     float64    `json:"avgTimeOnPage" db:"avg_time_on_page"`
	AvgScrollDepth    float64    `json:"avgScrollDepth" db:"avg_scroll_depth"`
	TotalTimeOnPage   float64    `json:"totalTimeOnPage" db:"total_time_on_page"`
	TotalScrollDepth  float64    `json:"totalScrollDepth" db:"total_scroll_depth"`
	Interactions      int64      `json:"interactions" db:"interactions"`
	Version           int64      `json:"-" db:"version"`
	LastUpdated       time.Time  `json:"lastUpdated" db:"last_updated"`
}

// NewDailyAggregate is the zero-state: a missing document is treated as an
// aggregate of all-zero counters.
func NewDailyAggregate(projectID, dateKey string) *DailyAggregate {
	return &DailyAggregate{
		ProjectID:  projectID,
		DateKey:    dateKey,
		VisitorIDs: VisitorSet{},
		PageViews:  CounterMap{},
		Referrers:  CounterMap{},
		Devices:    CounterMap{},
	}
}

// Fold applies one visit event to the aggregate. The means are always
// recomputed from the updated sums and count so that
// avg * totalVisits == total holds exactly after every fold.
func (a *DailyAggregate) Fold(ev VisitEvent) {
	a.TotalVisits++

	a.PageViews.Inc(ev.Page)
	a.Referrers.Inc(ev.Referrer)
	a.Devices.Inc(ev.DeviceType)

	a.TotalTimeOnPage += ev.TimeOnPageMs
	a.TotalScrollDepth += ev.ScrollDepthPct
	a.AvgTimeOnPage = a.TotalTimeOnPage / float64(a.TotalVisits)
	a.AvgScrollDepth = a.TotalScrollDepth / float64(a.TotalVisits)

	a.Interactions += int64(len(ev.Interactions))

	if ev.UserID != "" && ev.UserID != AnonymousUserID {
		a.VisitorIDs.Add(ev.UserID)
	}
	a.UniqueVisitors = int64(len(a.VisitorIDs))

	a.LastUpdated = ev.Timestamp
}

// FoldExit adds the final time/scroll deltas reported at page unload. The
// sample count is unchanged: an exit refines an already counted visit.
func (a *DailyAggregate) FoldExit(timeOnPageMs, scrollDepthPct float64, at time.Time) {
	a.TotalTimeOnPage += timeOnPageMs
	a.TotalScrollDepth += scrollDepthPct
	if a.TotalVisits > 0 {
		a.AvgTimeOnPage = a.TotalTimeOnPage / float64(a.TotalVisits)
		a.AvgScrollDepth = a.TotalScrollDepth / float64(a.TotalVisits)
	}
	a.LastUpdated = at
}

// MergeAggregates sums a range of day rows into one report view. Visitor
// sets are unioned, so a user active on several days still counts once.
func MergeAggregates(aggs []DailyAggregate) DailyAggregate {
	merged := *NewDailyAggregate("", "")

	for _, a := range aggs {
		merged.TotalVisits += a.TotalVisits
		merged.TotalTimeOnPage += a.TotalTimeOnPage
		merged.TotalScrollDepth += a.TotalScrollDepth
		merged.Interactions += a.Interactions

		for page, n := range a.PageViews {
			merged.PageViews[page] += n
		}
		for ref, n := range a.Referrers {
			merged.Referrers[ref] += n
		}
		for dev, n := range a.Devices {
			merged.Devices[dev] += n
		}
		for id := range a.VisitorIDs {
			merged.VisitorIDs.Add(id)
		}

		if a.LastUpdated.After(merged.LastUpdated) {
			merged.LastUpdated = a.LastUpdated
		}
	}

	if merged.TotalVisits > 0 {
		merged.AvgTimeOnPage = merged.TotalTimeOnPage / float64(merged.TotalVisits)
		merged.AvgScrollDepth = merged.TotalScrollDepth / float64(merged.TotalVisits)
	}
	merged.UniqueVisitors = int64(len(merged.VisitorIDs))

	return merged
}
