package factories

import (
	"fmt"
	"math/rand"

	"github.com/jaswdr/faker"

	"github.com/urbanmobility/mobidatasim/internal/models"
)

type ZoneFactory struct{}

// GenerateZones builds the canonical zone set with the three producer
// vocabularies: Z{n} for traffic, A{nn} for bus telemetry, ServiceZone-Z{n}
// for planning. Centers are scattered around the configured city so the
// GeoJSON output gets plausible coordinates.
func (zf *ZoneFactory) GenerateZones(config *models.Config) ([]models.Zone, error) {
	if config.ZoneCount < 1 {
		return nil, fmt.Errorf("%w: zone_count must be at least 1, got %d", models.ErrConfiguration, config.ZoneCount)
	}

	fake := faker.NewWithSeed(rand.NewSource(config.Seed))
	zones := make([]models.Zone, 0, config.ZoneCount)
	for n := 1; n <= config.ZoneCount; n++ {
		id := fmt.Sprintf("Z%d", n)
		zones = append(zones, models.Zone{
			ID:          id,
			AreaCode:    fmt.Sprintf("A%02d", n),
			ServiceZone: fmt.Sprintf("ServiceZone-%s", id),
			Center: models.Location{
				Lat: config.CityLat + fake.Float64(4, -1, 1)*config.ZoneSpread,
				Lon: config.CityLon + fake.Float64(4, -1, 1)*config.ZoneSpread,
			},
		})
	}
	return zones, nil
}
