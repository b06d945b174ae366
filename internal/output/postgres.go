package output

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/urbanmobility/mobidatasim/internal/models"
)

// PostgresSink loads the four datasets into relational tables so the
// integration exercise can also run against a database instead of files.
type PostgresSink struct {
	pool *pgxpool.Pool
}

func NewPostgresSink(ctx context.Context, config *models.DatabaseConfig) (*PostgresSink, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode,
	)
	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("error pinging database: %w", err)
	}
	return &PostgresSink{pool: pool}, nil
}

const schemaDDL = `
CREATE TABLE IF NOT EXISTS zones (
    zone_id TEXT PRIMARY KEY,
    area_code TEXT UNIQUE NOT NULL,
    service_zone TEXT UNIQUE NOT NULL
);
CREATE TABLE IF NOT EXISTS traffic_records (
    zone_id TEXT REFERENCES zones (zone_id),
    ts TIMESTAMP NOT NULL,
    average_speed_kmh DOUBLE PRECISION,
    traffic_volume INTEGER NOT NULL,
    occupancy_rate DOUBLE PRECISION
);
CREATE TABLE IF NOT EXISTS bus_pings (
    bus_id TEXT NOT NULL,
    line_id TEXT NOT NULL,
    area_code TEXT REFERENCES zones (area_code),
    ts TIMESTAMP NOT NULL,
    delay_minutes INTEGER,
    speed_kmh DOUBLE PRECISION NOT NULL,
    lon DOUBLE PRECISION NOT NULL,
    lat DOUBLE PRECISION NOT NULL
);
CREATE TABLE IF NOT EXISTS planned_services (
    line_id TEXT NOT NULL,
    service_zone TEXT REFERENCES zones (service_zone),
    day_type TEXT NOT NULL,
    scheduled_time TEXT NOT NULL,
    frequency_min INTEGER NOT NULL
);`

func (s *PostgresSink) CreateTables(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaDDL); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// LoadAll inserts everything in one transaction: either the full run lands
// or nothing does.
func (s *PostgresSink) LoadAll(ctx context.Context, zones []models.Zone, traffic []models.TrafficRecord, pings []models.BusPing, schedule []models.PlannedService) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	for _, z := range zones {
		_, err := tx.Exec(ctx,
			`INSERT INTO zones (zone_id, area_code, service_zone) VALUES ($1, $2, $3)`,
			z.ID, z.AreaCode, z.ServiceZone,
		)
		if err != nil {
			return fmt.Errorf("failed to insert zone %s: %w", z.ID, err)
		}
	}

	for _, rec := range traffic {
		_, err := tx.Exec(ctx,
			`INSERT INTO traffic_records (zone_id, ts, average_speed_kmh, traffic_volume, occupancy_rate)
             VALUES ($1, $2, $3, $4, $5)`,
			rec.ZoneID, rec.Timestamp, rec.AverageSpeedKmh, rec.TrafficVolume, rec.OccupancyRate,
		)
		if err != nil {
			return fmt.Errorf("failed to insert traffic record: %w", err)
		}
	}

	for _, ping := range pings {
		_, err := tx.Exec(ctx,
			`INSERT INTO bus_pings (bus_id, line_id, area_code, ts, delay_minutes, speed_kmh, lon, lat)
             VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			ping.BusID, ping.LineID, ping.AreaCode, ping.Timestamp,
			ping.DelayMinutes, ping.SpeedKmh, ping.Location.Lon, ping.Location.Lat,
		)
		if err != nil {
			return fmt.Errorf("failed to insert bus ping: %w", err)
		}
	}

	for _, svc := range schedule {
		_, err := tx.Exec(ctx,
			`INSERT INTO planned_services (line_id, service_zone, day_type, scheduled_time, frequency_min)
             VALUES ($1, $2, $3, $4, $5)`,
			svc.LineID, svc.ServiceZone, svc.DayType, svc.ScheduledTime, svc.FrequencyMin,
		)
		if err != nil {
			return fmt.Errorf("failed to insert planned service: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (s *PostgresSink) Close() {
	s.pool.Close()
}
