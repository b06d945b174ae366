package output

import (
	"encoding/json"
	"io"

	"github.com/urbanmobility/mobidatasim/internal/models"
)

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Type       string            `json:"type"`
	Geometry   pointGeometry     `json:"geometry"`
	Properties busPingProperties `json:"properties"`
}

type pointGeometry struct {
	Type        string     `json:"type"`
	Coordinates [2]float64 `json:"coordinates"` // lon, lat
}

// busPingProperties uses area_code, this producer's dialect for zones.
// delay_minutes disappears from the output when the roll dropped it.
type busPingProperties struct {
	BusID        string  `json:"bus_id"`
	LineID       string  `json:"line_id"`
	AreaCode     string  `json:"area_code"`
	Timestamp    string  `json:"timestamp"`
	DelayMinutes *int    `json:"delay_minutes,omitempty"`
	SpeedKmh     float64 `json:"speed_kmh"`
}

func encodeBusGeoJSON(w io.Writer, pings []models.BusPing) error {
	fc := featureCollection{Type: "FeatureCollection", Features: make([]feature, 0, len(pings))}
	for _, p := range pings {
		fc.Features = append(fc.Features, feature{
			Type: "Feature",
			Geometry: pointGeometry{
				Type:        "Point",
				Coordinates: [2]float64{p.Location.Lon, p.Location.Lat},
			},
			Properties: busPingProperties{
				BusID:        p.BusID,
				LineID:       p.LineID,
				AreaCode:     p.AreaCode,
				Timestamp:    p.Timestamp.Format(models.TimestampLayout),
				DelayMinutes: p.DelayMinutes,
				SpeedKmh:     p.SpeedKmh,
			},
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(fc)
}
