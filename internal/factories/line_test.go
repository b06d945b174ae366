package factories

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateLines(t *testing.T) {
	cfg := factoryConfig()
	cfg.ZoneCount = 8
	zones, err := (&ZoneFactory{}).GenerateZones(cfg)
	require.NoError(t, err)
	lf := &LineFactory{}

	t.Run("each line crosses distinct known zones", func(t *testing.T) {
		lines, err := lf.GenerateLines(zones, cfg, rand.New(rand.NewSource(cfg.Seed+1)))
		require.NoError(t, err)
		require.Len(t, lines, cfg.LineCount)

		known := make(map[string]bool, len(zones))
		for _, z := range zones {
			known[z.ID] = true
		}
		for _, line := range lines {
			require.Len(t, line.ZoneIDs, cfg.ZonesPerLine)
			seen := make(map[string]bool)
			for _, id := range line.ZoneIDs {
				assert.True(t, known[id], "line %s references unknown zone %s", line.ID, id)
				assert.False(t, seen[id], "line %s repeats zone %s", line.ID, id)
				seen[id] = true
			}
		}
	})

	t.Run("caps the path at the zone count", func(t *testing.T) {
		small := factoryConfig()
		small.ZoneCount = 2
		small.ZonesPerLine = 5
		smallZones, err := (&ZoneFactory{}).GenerateZones(small)
		require.NoError(t, err)
		lines, err := lf.GenerateLines(smallZones, small, rand.New(rand.NewSource(1)))
		require.NoError(t, err)
		for _, line := range lines {
			assert.Len(t, line.ZoneIDs, 2)
		}
	})
}

func TestGenerateFleet(t *testing.T) {
	cfg := factoryConfig()
	cfg.ZoneCount = 8
	zones, err := (&ZoneFactory{}).GenerateZones(cfg)
	require.NoError(t, err)
	lf := &LineFactory{}
	rng := rand.New(rand.NewSource(cfg.Seed + 1))
	lines, err := lf.GenerateLines(zones, cfg, rng)
	require.NoError(t, err)

	fleet := lf.GenerateFleet(lines, cfg, rng)
	require.Len(t, fleet, cfg.LineCount*cfg.BusesPerLine)

	ids := make(map[string]bool)
	for _, bus := range fleet {
		ids[bus.ID] = true
		assert.False(t, bus.Start.Before(cfg.StartDate))
		assert.True(t, bus.Start.Before(cfg.StartDate.Add(31*time.Minute)))
	}
	assert.Len(t, ids, len(fleet), "bus ids must be unique")
}
