package entity

import (
	"math"
	"testing"
	"time"
)

func visitEvent(page, userID string, timeOnPage, scrollDepth float64) VisitEvent {
	return VisitEvent{
		ProjectID:      "ahau",
		Page:           page,
		Referrer:       "direct",
		DeviceType:     "desktop",
		TimeOnPageMs:   timeOnPage,
		ScrollDepthPct: scrollDepth,
		UserID:         userID,
		Timestamp:      time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
	}
}

func TestFoldFirstEvent(t *testing.T) {
	agg := NewDailyAggregate("ahau", "2025-01-15")
	agg.Fold(visitEvent("home", AnonymousUserID, 4000, 60))

	if agg.TotalVisits != 1 {
		t.Fatalf("TotalVisits = %d, want 1", agg.TotalVisits)
	}
	if agg.PageViews["home"] != 1 {
		t.Errorf("PageViews[home] = %d, want 1", agg.PageViews["home"])
	}
	if agg.Referrers["direct"] != 1 {
		t.Errorf("Referrers[direct] = %d, want 1", agg.Referrers["direct"])
	}
	if agg.Devices["desktop"] != 1 {
		t.Errorf("Devices[desktop] = %d, want 1", agg.Devices["desktop"])
	}
	if agg.AvgTimeOnPage != 4000 {
		t.Errorf("AvgTimeOnPage = %f, want 4000", agg.AvgTimeOnPage)
	}
	if agg.AvgScrollDepth != 60 {
		t.Errorf("AvgScrollDepth = %f, want 60", agg.AvgScrollDepth)
	}
	if agg.UniqueVisitors != 0 {
		t.Errorf("anonymous visitor should not count, UniqueVisitors = %d", agg.UniqueVisitors)
	}
}

func TestFoldMeanConsistency(t *testing.T) {
	agg := NewDailyAggregate("ahau", "2025-01-15")

	samples := []float64{120, 480.5, 9999, 0, 33.3, 1250, 7, 86400}
	for i, s := range samples {
		agg.Fold(visitEvent("home", AnonymousUserID, s, float64(i*10)))
	}

	product := agg.AvgTimeOnPage * float64(agg.TotalVisits)
	if relErr := math.Abs(product-agg.TotalTimeOnPage) / agg.TotalTimeOnPage; relErr > 1e-6 {
		t.Errorf("avg*count diverged from total: %f vs %f", product, agg.TotalTimeOnPage)
	}

	scrollProduct := agg.AvgScrollDepth * float64(agg.TotalVisits)
	if math.Abs(scrollProduct-agg.TotalScrollDepth) > 1e-6*math.Max(1, agg.TotalScrollDepth) {
		t.Errorf("scroll avg*count diverged from total: %f vs %f", scrollProduct, agg.TotalScrollDepth)
	}
}

func TestFoldUniqueVisitors(t *testing.T) {
	agg := NewDailyAggregate("ahau", "2025-01-15")

	agg.Fold(visitEvent("home", "user-a", 0, 0))
	agg.Fold(visitEvent("home", "user-a", 0, 0)) // repeat visitor
	agg.Fold(visitEvent("home", "user-b", 0, 0))
	agg.Fold(visitEvent("home", AnonymousUserID, 0, 0))
	agg.Fold(visitEvent("home", "", 0, 0))

	if agg.TotalVisits != 5 {
		t.Errorf("TotalVisits = %d, want 5", agg.TotalVisits)
	}
	if agg.UniqueVisitors != 2 {
		t.Errorf("UniqueVisitors = %d, want 2", agg.UniqueVisitors)
	}
}

func TestFoldInteractions(t *testing.T) {
	agg := NewDailyAggregate("ahau", "2025-01-15")

	ev := visitEvent("home", AnonymousUserID, 0, 0)
	ev.Interactions = []string{"click:cta", "scroll:50"}
	agg.Fold(ev)
	agg.Fold(visitEvent("pricing", AnonymousUserID, 0, 0))

	if agg.Interactions != 2 {
		t.Errorf("Interactions = %d, want 2", agg.Interactions)
	}
	if agg.PageViews["home"] != 1 || agg.PageViews["pricing"] != 1 {
		t.Errorf("unexpected page views: %v", agg.PageViews)
	}
}

func TestFoldExit(t *testing.T) {
	agg := NewDailyAggregate("ahau", "2025-01-15")
	agg.Fold(visitEvent("home", AnonymousUserID, 1000, 10))
	agg.Fold(visitEvent("home", AnonymousUserID, 3000, 30))

	agg.FoldExit(2000, 20, time.Date(2025, 1, 15, 11, 0, 0, 0, time.UTC))

	if agg.TotalVisits != 2 {
		t.Errorf("exit must not change visit count, got %d", agg.TotalVisits)
	}
	if agg.TotalTimeOnPage != 6000 {
		t.Errorf("TotalTimeOnPage = %f, want 6000", agg.TotalTimeOnPage)
	}
	if agg.AvgTimeOnPage != 3000 {
		t.Errorf("AvgTimeOnPage = %f, want 3000", agg.AvgTimeOnPage)
	}
}

func TestMergeAggregates(t *testing.T) {
	day1 := NewDailyAggregate("ahau", "2025-01-15")
	day1.Fold(visitEvent("home", "user-a", 4000, 60))
	day1.Fold(visitEvent("pricing", "user-b", 2000, 40))

	day2 := NewDailyAggregate("ahau", "2025-01-16")
	day2.Fold(visitEvent("home", "user-a", 6000, 80)) // same user next day

	merged := MergeAggregates([]DailyAggregate{*day1, *day2})

	if merged.TotalVisits != 3 {
		t.Errorf("TotalVisits = %d, want 3", merged.TotalVisits)
	}
	if merged.UniqueVisitors != 2 {
		t.Errorf("visitor sets must union across days, UniqueVisitors = %d", merged.UniqueVisitors)
	}
	if merged.PageViews["home"] != 2 {
		t.Errorf("PageViews[home] = %d, want 2", merged.PageViews["home"])
	}
	if merged.AvgTimeOnPage != 4000 {
		t.Errorf("AvgTimeOnPage = %f, want 4000", merged.AvgTimeOnPage)
	}
}

func TestMergeAggregatesEmpty(t *testing.T) {
	merged := MergeAggregates(nil)

	if merged.TotalVisits != 0 || merged.AvgTimeOnPage != 0 {
		t.Errorf("empty merge should be all zeroes: %+v", merged)
	}
}

func TestVisitorSetRoundTrip(t *testing.T) {
	set := VisitorSet{}
	set.Add("user-b")
	set.Add("user-a")

	value, err := set.Value()
	if err != nil {
		t.Fatalf("Value: %v", err)
	}

	var restored VisitorSet
	if err := restored.Scan(value); err != nil {
		t.Fatalf("Scan: %v", err)
	}

	if len(restored) != 2 {
		t.Errorf("restored set size = %d, want 2", len(restored))
	}
	if _, ok := restored["user-a"]; !ok {
		t.Errorf("user-a missing after round trip")
	}
}

func TestCounterMapScanNil(t *testing.T) {
	var m CounterMap
	if err := m.Scan(nil); err != nil {
		t.Fatalf("Scan(nil): %v", err)
	}
	m.Inc("home")
	if m["home"] != 1 {
		t.Errorf("Inc after nil scan failed: %v", m)
	}
}
