package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/urbanmobility/mobidatasim/internal/models"
)

type trafficParquetRow struct {
	ZoneID          string   `parquet:"name=zone_id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Timestamp       string   `parquet:"name=timestamp, type=BYTE_ARRAY, convertedtype=UTF8"`
	AverageSpeedKmh *float64 `parquet:"name=average_speed_kmh, type=DOUBLE, repetitiontype=OPTIONAL"`
	TrafficVolume   int64    `parquet:"name=traffic_volume, type=INT64"`
	OccupancyRate   *float64 `parquet:"name=occupancy_rate, type=DOUBLE, repetitiontype=OPTIONAL"`
}

// WriteTrafficParquet mirrors traffic_data.csv as a typed columnar archive.
// Missing fields stay null, so the defect pattern survives the format change.
func WriteTrafficParquet(path string, records []models.TrafficRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), os.ModePerm); err != nil {
		return err
	}
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return fmt.Errorf("failed to create local file writer: %w", err)
	}
	defer fw.Close()

	pw, err := writer.NewParquetWriter(fw, new(trafficParquetRow), 4)
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, rec := range records {
		row := trafficParquetRow{
			ZoneID:          rec.ZoneID,
			Timestamp:       rec.Timestamp.Format(models.TimestampLayout),
			AverageSpeedKmh: rec.AverageSpeedKmh,
			TrafficVolume:   int64(rec.TrafficVolume),
			OccupancyRate:   rec.OccupancyRate,
		}
		if err := pw.Write(row); err != nil {
			return fmt.Errorf("failed to write traffic row: %w", err)
		}
	}
	return pw.WriteStop()
}
