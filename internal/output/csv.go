package output

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/urbanmobility/mobidatasim/internal/models"
)

var trafficHeader = []string{"zone_id", "timestamp", "average_speed_kmh", "traffic_volume", "occupancy_rate"}

// Missing fields serialize as empty strings, which is the contract the
// downstream cleaning exercise expects.
func encodeTrafficCSV(w io.Writer, records []models.TrafficRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(trafficHeader); err != nil {
		return err
	}
	for _, rec := range records {
		row := []string{
			rec.ZoneID,
			rec.Timestamp.Format(models.TimestampLayout),
			formatOptFloat(rec.AverageSpeedKmh, 1),
			strconv.Itoa(rec.TrafficVolume),
			formatOptFloat(rec.OccupancyRate, 2),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func encodeZoneMappingCSV(w io.Writer, zones []models.Zone) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"zone_id", "area_code", "service_zone"}); err != nil {
		return err
	}
	for _, z := range zones {
		if err := cw.Write([]string{z.ID, z.AreaCode, z.ServiceZone}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatOptFloat(v *float64, decimals int) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', decimals, 64)
}
