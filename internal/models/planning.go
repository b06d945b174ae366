package models

// PlannedService is a recurring service rule, not an event instance: it
// carries a clock time and a headway but no date.
type PlannedService struct {
	LineID        string
	ServiceZone   string
	DayType       string
	ScheduledTime string
	FrequencyMin  int
}
