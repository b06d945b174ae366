package output

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/urbanmobility/mobidatasim/internal/cloudwriter"
	"github.com/urbanmobility/mobidatasim/internal/models"
)

const (
	TrafficFile        = "traffic_data.csv"
	BusFile            = "bus_gps.geojson"
	PlanningFile       = "planning.txt"
	ZoneMappingFile    = "zone_mapping.csv"
	TrafficParquetFile = "traffic_data.parquet"
)

// Writer serializes the four contract files, locally or to a cloud bucket.
// Serialization is order-preserving: rows and features go out in generation
// order, never reordered or deduplicated.
type Writer struct {
	basePath string
	folder   string
	factory  cloudwriter.CloudWriterFactory
	bucket   string
}

func NewWriter(config *models.Config) (*Writer, error) {
	w := &Writer{basePath: config.OutputPath, folder: config.OutputFolder}

	if config.OutputDestination != "" && config.OutputDestination != "local" {
		switch config.CloudStorage.Provider {
		case "s3":
			factory, err := cloudwriter.NewS3WriterFactory(config.CloudStorage.Region)
			if err != nil {
				return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
			}
			w.factory = factory
			w.bucket = config.CloudStorage.BucketName
		default:
			return nil, fmt.Errorf("unsupported cloud storage provider: %s", config.CloudStorage.Provider)
		}
	}
	return w, nil
}

// Path returns the local destination for a named output file.
func (w *Writer) Path(name string) string {
	return filepath.Join(w.basePath, w.folder, name)
}

func (w *Writer) WriteAll(zones []models.Zone, traffic []models.TrafficRecord, pings []models.BusPing, schedule []models.PlannedService) error {
	if err := w.write(TrafficFile, func(out io.Writer) error { return encodeTrafficCSV(out, traffic) }); err != nil {
		return err
	}
	if err := w.write(BusFile, func(out io.Writer) error { return encodeBusGeoJSON(out, pings) }); err != nil {
		return err
	}
	if err := w.write(PlanningFile, func(out io.Writer) error { return encodePlanningTXT(out, schedule) }); err != nil {
		return err
	}
	return w.write(ZoneMappingFile, func(out io.Writer) error { return encodeZoneMappingCSV(out, zones) })
}

// write encodes into memory first so a local run and a cloud run produce the
// same bytes, then hands them to the destination. A failed file stays
// partial; already-written files are not rolled back.
func (w *Writer) write(name string, encode func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := encode(&buf); err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	if w.factory != nil {
		cw, err := w.factory.NewWriter(w.bucket, filepath.Join(w.folder, name))
		if err != nil {
			return fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		if _, err := cw.Write(buf.Bytes()); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
		return cw.Close()
	}

	dir := filepath.Join(w.basePath, w.folder)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}
