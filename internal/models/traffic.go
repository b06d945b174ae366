package models

import "time"

// TrafficRecord is one zone/window measurement. Speed and occupancy are
// pointers because the missing-value roll blanks exactly one of them.
type TrafficRecord struct {
	ZoneID          string
	Timestamp       time.Time
	AverageSpeedKmh *float64
	TrafficVolume   int
	OccupancyRate   *float64

	// Injection flags. Never serialized; tests use them to separate clean
	// records from deliberate defects.
	Missing bool
	Outlier bool
}

// WindowKey addresses the congestion table by zone and quantized window.
type WindowKey struct {
	ZoneID string
	Window time.Time
}

// CongestionTable is the hidden signal shared between the traffic and bus
// generators. The traffic generator builds it once; everything downstream
// treats it as read-only.
type CongestionTable map[WindowKey]float64

// Lookup floors ts onto the window grid anchored at start and returns the
// congestion level for the zone. When the floored window has no entry (a
// ping landing just past the last traffic window) it falls back one window.
func (t CongestionTable) Lookup(zoneID string, ts, start time.Time, window time.Duration) (float64, bool) {
	offset := ts.Sub(start)
	if offset < 0 {
		offset = 0
	}
	floored := start.Add(offset - offset%window)
	if c, ok := t[WindowKey{ZoneID: zoneID, Window: floored}]; ok {
		return c, true
	}
	if c, ok := t[WindowKey{ZoneID: zoneID, Window: floored.Add(-window)}]; ok {
		return c, true
	}
	return 0, false
}
