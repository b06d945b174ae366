package factories

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/urbanmobility/mobidatasim/internal/models"
)

type LineFactory struct{}

// GenerateLines assigns each line a fixed path of zones, sampled without
// replacement from the registry.
func (lf *LineFactory) GenerateLines(zones []models.Zone, config *models.Config, rng *rand.Rand) ([]models.Line, error) {
	if config.LineCount < 1 {
		return nil, fmt.Errorf("%w: line_count must be at least 1, got %d", models.ErrConfiguration, config.LineCount)
	}
	if config.ZonesPerLine < 1 {
		return nil, fmt.Errorf("%w: zones_per_line must be at least 1, got %d", models.ErrConfiguration, config.ZonesPerLine)
	}
	perLine := config.ZonesPerLine
	if perLine > len(zones) {
		perLine = len(zones)
	}

	lines := make([]models.Line, 0, config.LineCount)
	for i := 1; i <= config.LineCount; i++ {
		perm := rng.Perm(len(zones))
		path := make([]string, 0, perLine)
		for _, idx := range perm[:perLine] {
			path = append(path, zones[idx].ID)
		}
		lines = append(lines, models.Line{ID: fmt.Sprintf("L%d", i), ZoneIDs: path})
	}
	return lines, nil
}

// GenerateFleet spreads buses across lines and staggers their start times
// within the first half hour of the run.
func (lf *LineFactory) GenerateFleet(lines []models.Line, config *models.Config, rng *rand.Rand) []models.Bus {
	fleet := make([]models.Bus, 0, len(lines)*config.BusesPerLine)
	n := 1
	for _, line := range lines {
		for b := 0; b < config.BusesPerLine; b++ {
			fleet = append(fleet, models.Bus{
				ID:     fmt.Sprintf("BUS-%02d", n),
				LineID: line.ID,
				Start:  config.StartDate.Add(time.Duration(rng.Intn(31)) * time.Minute),
			})
			n++
		}
	}
	return fleet
}
