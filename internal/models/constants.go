package models

const (
	DayTypeWeekday = "weekday"
	DayTypeWeekend = "weekend"

	// TimestampLayout is ISO-8601 without offset, shared by every dataset.
	TimestampLayout = "2006-01-02T15:04:05"
	// ClockLayout is the wall-clock form used by planning rules.
	ClockLayout = "15:04"

	TopicZones    = "zones"
	TopicTraffic  = "traffic"
	TopicBusPings = "bus_pings"
	TopicPlanning = "planning"
)

// SpeedOutlierValues are the extreme speeds the outlier roll injects. They
// sit well outside the 8-80 km/h operating range so a cleaning step can
// isolate them.
var SpeedOutlierValues = []float64{2.0, 4.5, 120.0}
