package simulator

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/urbanmobility/mobidatasim/internal/models"
)

// generateSchedule emits exactly one recurring rule per (line, zone,
// day_type) combination. It describes planned intent, so it never looks at
// the traffic or bus data.
func generateSchedule(zones []models.Zone, lines []models.Line, cfg *models.Config, rng *rand.Rand) ([]models.PlannedService, error) {
	startMin, endMin, err := cfg.ServiceWindowMinutes()
	if err != nil {
		return nil, err
	}
	slots := (endMin-startMin)/10 + 1

	services := make([]models.PlannedService, 0, len(lines)*len(zones)*len(cfg.DayTypes))
	for _, line := range lines {
		for _, zone := range zones {
			for _, dayType := range cfg.DayTypes {
				minute := startMin + 10*rng.Intn(slots)
				services = append(services, models.PlannedService{
					LineID:        line.ID,
					ServiceZone:   zone.ServiceZone,
					DayType:       dayType,
					ScheduledTime: fmt.Sprintf("%02d:%02d", minute/60, minute%60),
					FrequencyMin:  pickFrequency(cfg, dayType, minute/60, rng),
				})
			}
		}
	}
	return services, nil
}

// Weekday morning-peak departures get the shortest headways on offer.
func pickFrequency(cfg *models.Config, dayType string, hour int, rng *rand.Rand) int {
	opts := cfg.FrequencyOptions
	if dayType == models.DayTypeWeekday && hour >= 7 && hour <= 9 {
		short := shortestHeadways(opts, 2)
		return short[rng.Intn(len(short))]
	}
	return opts[rng.Intn(len(opts))]
}

func shortestHeadways(opts []int, n int) []int {
	sorted := append([]int(nil), opts...)
	sort.Ints(sorted)
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}
