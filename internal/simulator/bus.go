package simulator

import (
	"math"
	"math/rand"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/urbanmobility/mobidatasim/internal/models"
)

const (
	busStep       = time.Minute
	baseDelayMin  = 2.0
	delayPerLevel = 16.0
	delaySigma    = 2.0
	maxDelayMin   = 35
	busBaseSpeed  = 38.0
	busSpeedDrop  = 22.0
)

// generateBusPings walks every bus along its line at one-minute resolution.
// Delay is drawn from a normal whose mean rises linearly with the congestion
// level of the bus's current zone, which is what ties this dataset to the
// traffic one. Speed gets its own jitter so the two datasets correlate
// without ever being copies of each other.
func generateBusPings(registry *models.ZoneRegistry, lines []models.Line, fleet []models.Bus, congestion models.CongestionTable, cfg *models.Config, rng *rand.Rand) []models.BusPing {
	lineByID := make(map[string]models.Line, len(lines))
	for _, l := range lines {
		lineByID[l.ID] = l
	}

	window := time.Duration(cfg.WindowMinutes) * time.Minute
	pings := make([]models.BusPing, 0, len(fleet)*cfg.PointsPerBus)

	bar := progressbar.Default(int64(len(fleet)), "generating bus pings")
	for _, bus := range fleet {
		path := lineByID[bus.LineID].ZoneIDs
		segLen := cfg.PointsPerBus / len(path)
		if segLen < 1 {
			segLen = 1
		}

		for k := 0; k < cfg.PointsPerBus; k++ {
			ts := bus.Start.Add(time.Duration(k) * busStep)
			zone, _ := registry.ByID(path[(k/segLen)%len(path)])

			c, ok := congestion.Lookup(zone.ID, ts, cfg.StartDate, window)
			if !ok {
				c = offPeakBaseline
			}

			speed := busBaseSpeed - busSpeedDrop*c + uniform(rng, -4, 4)
			speed = roundTo(clamp(speed, 5, 60), 1)

			delay := clampInt(int(math.Round(baseDelayMin+delayPerLevel*c+rng.NormFloat64()*delaySigma)), 0, maxDelayMin)

			ping := models.BusPing{
				BusID:     bus.ID,
				LineID:    bus.LineID,
				AreaCode:  zone.AreaCode,
				Timestamp: ts,
				SpeedKmh:  speed,
				Location: models.Location{
					Lat: roundTo(zone.Center.Lat+uniform(rng, -0.0025, 0.0025), 6),
					Lon: roundTo(zone.Center.Lon+uniform(rng, -0.0025, 0.0025), 6),
				},
			}
			if rng.Float64() >= cfg.PMissingDelay {
				d := delay
				ping.DelayMinutes = &d
			}
			pings = append(pings, ping)
		}
		_ = bar.Add(1)
	}
	return pings
}
