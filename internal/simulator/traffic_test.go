package simulator

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanmobility/mobidatasim/internal/factories"
	"github.com/urbanmobility/mobidatasim/internal/models"
)

func generateTestTraffic(t *testing.T, cfg *models.Config) ([]models.TrafficRecord, models.CongestionTable) {
	t.Helper()
	zones, err := (&factories.ZoneFactory{}).GenerateZones(cfg)
	require.NoError(t, err)
	return generateTraffic(zones, cfg, rand.New(rand.NewSource(cfg.Seed)))
}

func TestGenerateTraffic(t *testing.T) {
	cfg := testConfig()
	records, table := generateTestTraffic(t, cfg)

	t.Run("covers every zone and window", func(t *testing.T) {
		windows := int(cfg.EndDate.Sub(cfg.StartDate)/(time.Duration(cfg.WindowMinutes)*time.Minute)) + 1
		require.Len(t, records, cfg.ZoneCount*windows)
		require.Len(t, table, cfg.ZoneCount*windows)
	})

	t.Run("timestamps sit on the window grid", func(t *testing.T) {
		step := time.Duration(cfg.WindowMinutes) * time.Minute
		for _, rec := range records {
			offset := rec.Timestamp.Sub(cfg.StartDate)
			assert.Zero(t, offset%step, "timestamp %s is off-grid", rec.Timestamp)
		}
	})

	t.Run("clean records track the congestion level", func(t *testing.T) {
		var speeds, occs, vols, levels []float64
		for _, rec := range records {
			if rec.Missing || rec.Outlier {
				continue
			}
			c := table[models.WindowKey{ZoneID: rec.ZoneID, Window: rec.Timestamp}]
			levels = append(levels, c)
			speeds = append(speeds, *rec.AverageSpeedKmh)
			occs = append(occs, *rec.OccupancyRate)
			vols = append(vols, float64(rec.TrafficVolume))
		}
		require.NotEmpty(t, levels)

		assert.Less(t, pearson(speeds, levels), -0.3, "speed must fall with congestion")
		assert.Greater(t, pearson(occs, levels), 0.3, "occupancy must rise with congestion")
		assert.Greater(t, pearson(vols, levels), 0.3, "volume must rise with congestion")
	})

	t.Run("missing records blank exactly one field", func(t *testing.T) {
		for _, rec := range records {
			if !rec.Missing || rec.Outlier {
				continue
			}
			blankedSpeed := rec.AverageSpeedKmh == nil
			blankedOcc := rec.OccupancyRate == nil
			assert.True(t, blankedSpeed != blankedOcc, "exactly one field must be blank")
		}
	})

	t.Run("outliers land outside the normal range", func(t *testing.T) {
		var found bool
		for _, rec := range records {
			if !rec.Outlier {
				continue
			}
			found = true
			speedOut := rec.AverageSpeedKmh != nil && (*rec.AverageSpeedKmh < 8 || *rec.AverageSpeedKmh > 80)
			occOut := rec.OccupancyRate != nil && *rec.OccupancyRate > 0.99
			assert.True(t, speedOut || occOut, "outlier record has no out-of-range value")
		}
		assert.True(t, found, "expected at least one outlier at p_outlier=0.01 over the full run")
	})

	t.Run("missing fraction tracks p_missing", func(t *testing.T) {
		cfg := testConfig()
		cfg.PMissing = 0.05
		records, _ := generateTestTraffic(t, cfg)

		var missing int
		for _, rec := range records {
			if rec.Missing {
				missing++
			}
		}
		fraction := float64(missing) / float64(len(records))
		assert.GreaterOrEqual(t, fraction, 0.03)
		assert.LessOrEqual(t, fraction, 0.07)
	})

	t.Run("is deterministic for a fixed seed", func(t *testing.T) {
		again, againTable := generateTestTraffic(t, testConfig())
		assert.Equal(t, records, again)
		assert.Equal(t, table, againTable)
	})
}
