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

type busFixture struct {
	registry   *models.ZoneRegistry
	congestion models.CongestionTable
	pings      []models.BusPing
	cfg        *models.Config
}

func generateTestPings(t *testing.T, cfg *models.Config) busFixture {
	t.Helper()

	zones, err := (&factories.ZoneFactory{}).GenerateZones(cfg)
	require.NoError(t, err)
	registry, err := models.NewZoneRegistry(zones)
	require.NoError(t, err)

	lf := &factories.LineFactory{}
	busRng := rand.New(rand.NewSource(cfg.Seed + 1))
	lines, err := lf.GenerateLines(zones, cfg, busRng)
	require.NoError(t, err)
	fleet := lf.GenerateFleet(lines, cfg, busRng)

	_, table := generateTraffic(zones, cfg, rand.New(rand.NewSource(cfg.Seed)))
	pings := generateBusPings(registry, lines, fleet, table, cfg, busRng)

	return busFixture{registry: registry, congestion: table, pings: pings, cfg: cfg}
}

func (f busFixture) congestionFor(t *testing.T, ping models.BusPing) float64 {
	t.Helper()
	zone, ok := f.registry.ByAreaCode(ping.AreaCode)
	require.True(t, ok)
	window := time.Duration(f.cfg.WindowMinutes) * time.Minute
	c, ok := f.congestion.Lookup(zone.ID, ping.Timestamp, f.cfg.StartDate, window)
	require.True(t, ok)
	return c
}

func TestGenerateBusPings(t *testing.T) {
	cfg := testConfig()
	// Longer trips so the fleet crosses the whole morning peak.
	cfg.PointsPerBus = 400
	cfg.PMissingDelay = 0.05
	fix := generateTestPings(t, cfg)

	require.Len(t, fix.pings, cfg.LineCount*cfg.BusesPerLine*cfg.PointsPerBus)

	t.Run("pings are minute-quantized and area codes resolve", func(t *testing.T) {
		for _, ping := range fix.pings {
			assert.Zero(t, ping.Timestamp.Second())
			_, ok := fix.registry.ByAreaCode(ping.AreaCode)
			require.True(t, ok)
		}
	})

	t.Run("mean delay rises monotonically with congestion", func(t *testing.T) {
		minC, maxC := 1.0, 0.0
		for _, ping := range fix.pings {
			c := fix.congestionFor(t, ping)
			if c < minC {
				minC = c
			}
			if c > maxC {
				maxC = c
			}
		}
		require.Greater(t, maxC, minC)

		// Three equal-width congestion buckets over the observed range.
		sums := make([]float64, 3)
		counts := make([]int, 3)
		for _, ping := range fix.pings {
			if ping.DelayMinutes == nil {
				continue
			}
			c := fix.congestionFor(t, ping)
			bucket := int((c - minC) / (maxC - minC + 1e-9) * 3)
			if bucket > 2 {
				bucket = 2
			}
			sums[bucket] += float64(*ping.DelayMinutes)
			counts[bucket]++
		}

		prev := -1.0
		for b := 0; b < 3; b++ {
			if counts[b] == 0 {
				continue
			}
			mean := sums[b] / float64(counts[b])
			assert.GreaterOrEqual(t, mean, prev, "bucket %d breaks delay monotonicity", b)
			prev = mean
		}
	})

	t.Run("speed falls with congestion", func(t *testing.T) {
		var speeds, levels []float64
		for _, ping := range fix.pings {
			speeds = append(speeds, ping.SpeedKmh)
			levels = append(levels, fix.congestionFor(t, ping))
		}
		assert.Less(t, pearson(speeds, levels), -0.3)
	})

	t.Run("missing delay fraction tracks the configuration", func(t *testing.T) {
		var missing int
		for _, ping := range fix.pings {
			if ping.DelayMinutes == nil {
				missing++
			}
		}
		fraction := float64(missing) / float64(len(fix.pings))
		assert.GreaterOrEqual(t, fraction, 0.03)
		assert.LessOrEqual(t, fraction, 0.07)
	})

	t.Run("delays stay inside the clamp", func(t *testing.T) {
		for _, ping := range fix.pings {
			if ping.DelayMinutes == nil {
				continue
			}
			assert.GreaterOrEqual(t, *ping.DelayMinutes, 0)
			assert.LessOrEqual(t, *ping.DelayMinutes, maxDelayMin)
		}
	})

	t.Run("coordinates stay near the zone center", func(t *testing.T) {
		for _, ping := range fix.pings {
			zone, ok := fix.registry.ByAreaCode(ping.AreaCode)
			require.True(t, ok)
			assert.InDelta(t, zone.Center.Lat, ping.Location.Lat, 0.0026)
			assert.InDelta(t, zone.Center.Lon, ping.Location.Lon, 0.0026)
		}
	})
}
