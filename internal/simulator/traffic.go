package simulator

import (
	"math/rand"
	"time"

	"github.com/urbanmobility/mobidatasim/internal/models"
)

// generateTraffic produces the per-zone, per-window measurements plus the
// congestion table the bus generator couples against. The table holds the
// level before jitter and defect injection, so it stays the clean reference
// signal.
func generateTraffic(zones []models.Zone, cfg *models.Config, rng *rand.Rand) ([]models.TrafficRecord, models.CongestionTable) {
	step := time.Duration(cfg.WindowMinutes) * time.Minute
	grid := windowGrid(cfg.StartDate, cfg.EndDate, step)

	records := make([]models.TrafficRecord, 0, len(zones)*len(grid))
	table := make(models.CongestionTable, len(zones)*len(grid))

	for i, zone := range zones {
		prof := profileFor(i)
		for _, ts := range grid {
			c := congestionLevel(ts, prof)
			table[models.WindowKey{ZoneID: zone.ID, Window: ts}] = c

			speed := prof.BaseSpeedKmh*(1.0-0.55*c) + uniform(rng, -1.5, 1.5)
			speed = roundTo(clamp(speed, 8, 80), 1)

			volume := clampInt(int(prof.BaseVolume*(1.0+0.9*c)+uniform(rng, -8, 8)), 20, 450)

			occ := 0.18 + float64(volume)/500.0 + 0.25*c + uniform(rng, -0.02, 0.02)
			occ = roundTo(clamp(occ, 0.05, 0.99), 2)

			rec := models.TrafficRecord{
				ZoneID:          zone.ID,
				Timestamp:       ts,
				AverageSpeedKmh: &speed,
				TrafficVolume:   volume,
				OccupancyRate:   &occ,
			}

			// Sensor dropout blanks one non-key field, speed more often
			// than occupancy.
			if rng.Float64() < cfg.PMissing {
				rec.Missing = true
				if rng.Float64() < 0.6 {
					rec.AverageSpeedKmh = nil
				} else {
					rec.OccupancyRate = nil
				}
			}

			// Sensor faults roll independently of dropout.
			if rng.Float64() < cfg.POutlier {
				rec.Outlier = true
				if rng.Float64() < 0.5 {
					v := models.SpeedOutlierValues[rng.Intn(len(models.SpeedOutlierValues))]
					rec.AverageSpeedKmh = &v
				} else {
					v := roundTo(uniform(rng, 1.01, 1.10), 2)
					rec.OccupancyRate = &v
				}
			}

			records = append(records, rec)
		}
	}
	return records, table
}
