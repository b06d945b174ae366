package models

import "time"

// Line is a bus line with the fixed path of zones it crosses. The path is
// what makes delays zone-dependent: a line through a congested zone inherits
// that zone's delays.
type Line struct {
	ID      string
	ZoneIDs []string
}

// Bus is one vehicle assigned to a line, with a staggered start time.
type Bus struct {
	ID     string
	LineID string
	Start  time.Time
}

// BusPing is one per-minute GPS sample. DelayMinutes is nil when the
// missing-delay roll drops it.
type BusPing struct {
	BusID        string
	LineID       string
	AreaCode     string
	Timestamp    time.Time
	DelayMinutes *int
	SpeedKmh     float64
	Location     Location
}
