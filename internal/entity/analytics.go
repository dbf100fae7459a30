package entity

// ProjectAnalytics is the per-project admin report.
type ProjectAnalytics struct {
	ProjectID        string        `json:"projectId"`
	TotalVisits      int64         `json:"totalVisits"`
	UniqueVisitors   int64         `json:"uniqueVisitors"`
	TotalSubmissions int64         `json:"totalSubmissions"`
	TotalWaitlist    int64         `json:"totalWaitlist"`
	ConversionRate   float64       `json:"conversionRate"`
	AvgTimeOnPage    float64       `json:"avgTimeOnPage"`
	AvgScrollDepth   float64       `json:"avgScrollDepth"`
	Interactions     int64         `json:"interactions"`
	PageViews        CounterMap    `json:"pageViews"`
	Referrers        CounterMap    `json:"referrers"`
	Devices          CounterMap    `json:"devices"`
	RecentActivity   []RecentVisit `json:"recentActivity"`
}

// GlobalStats sums the figures across every project in the portfolio.
type GlobalStats struct {
	TotalProducts    int64         `json:"totalProducts"`
	TotalVisits      int64         `json:"totalVisits"`
	TotalSubmissions int64         `json:"totalSubmissions"`
	TotalWaitlist    int64         `json:"totalWaitlist"`
	RecentActivity   []RecentVisit `json:"recentActivity"`
}

// ClearAnalyticsResult reports what an admin wipe removed.
type ClearAnalyticsResult struct {
	DeletedVisits int64 `json:"deletedVisits"`
	DeletedStats  int64 `json:"deletedStats"`
}

type AnalyticsRequest struct {
	ProjectID string `json:"projectId" binding:"required"`
}

type ClearAnalyticsRequest struct {
	ProjectID string `json:"projectId" binding:"required"`
}

type CleanupSessionsRequest struct {
	ProjectID string `json:"projectId" binding:"required"`
}
