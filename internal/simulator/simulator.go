package simulator

import (
	"context"
	"fmt"
	"log"
	"math/rand"

	"github.com/lucsky/cuid"

	"github.com/urbanmobility/mobidatasim/internal/factories"
	"github.com/urbanmobility/mobidatasim/internal/models"
	"github.com/urbanmobility/mobidatasim/internal/output"
)

// Simulator owns one full generation run. Each dataset gets its own seeded
// rng (seed, seed+1, seed+2), so a dataset regenerates identically even when
// the volume of another one changes.
type Simulator struct {
	Config   *models.Config
	RunID    string
	Registry *models.ZoneRegistry
	Lines    []models.Line
	Fleet    []models.Bus

	Schedule   []models.PlannedService
	Traffic    []models.TrafficRecord
	Congestion models.CongestionTable
	Pings      []models.BusPing
}

func NewSimulator(config *models.Config) *Simulator {
	return &Simulator{Config: config, RunID: cuid.New()}
}

// Generate builds all four datasets in memory, honoring the dependency
// order: registry first, then schedule and traffic, then bus pings, which
// read the traffic generator's congestion table.
func (s *Simulator) Generate() error {
	if err := s.Config.Validate(); err != nil {
		return err
	}

	zoneFactory := &factories.ZoneFactory{}
	zones, err := zoneFactory.GenerateZones(s.Config)
	if err != nil {
		return err
	}
	s.Registry, err = models.NewZoneRegistry(zones)
	if err != nil {
		return err
	}

	lineFactory := &factories.LineFactory{}
	busRng := rand.New(rand.NewSource(s.Config.Seed + 1))
	s.Lines, err = lineFactory.GenerateLines(zones, s.Config, busRng)
	if err != nil {
		return err
	}
	s.Fleet = lineFactory.GenerateFleet(s.Lines, s.Config, busRng)

	scheduleRng := rand.New(rand.NewSource(s.Config.Seed + 2))
	s.Schedule, err = generateSchedule(zones, s.Lines, s.Config, scheduleRng)
	if err != nil {
		return err
	}

	trafficRng := rand.New(rand.NewSource(s.Config.Seed))
	s.Traffic, s.Congestion = generateTraffic(zones, s.Config, trafficRng)

	s.Pings = generateBusPings(s.Registry, s.Lines, s.Fleet, s.Congestion, s.Config, busRng)

	log.Printf("run %s: %d zones, %d traffic records, %d bus pings, %d planned services",
		s.RunID, s.Registry.Len(), len(s.Traffic), len(s.Pings), len(s.Schedule))
	return nil
}

// Run generates everything and hands it to the configured sinks.
func (s *Simulator) Run() error {
	if err := s.Generate(); err != nil {
		return err
	}

	writer, err := output.NewWriter(s.Config)
	if err != nil {
		return err
	}
	if err := writer.WriteAll(s.Registry.Zones(), s.Traffic, s.Pings, s.Schedule); err != nil {
		return err
	}

	if s.Config.ParquetArchive {
		if err := output.WriteTrafficParquet(writer.Path(output.TrafficParquetFile), s.Traffic); err != nil {
			return fmt.Errorf("parquet archive: %w", err)
		}
	}

	if s.Config.KafkaEnabled {
		publisher, err := output.NewKafkaPublisher(s.Config, s.RunID)
		if err != nil {
			return err
		}
		defer publisher.Close()
		if err := publisher.PublishAll(s.Registry.Zones(), s.Traffic, s.Pings, s.Schedule); err != nil {
			return err
		}
	}

	if s.Config.PostgresEnabled {
		ctx := context.Background()
		sink, err := output.NewPostgresSink(ctx, &s.Config.Database)
		if err != nil {
			return err
		}
		defer sink.Close()
		if err := sink.CreateTables(ctx); err != nil {
			return err
		}
		if err := sink.LoadAll(ctx, s.Registry.Zones(), s.Traffic, s.Pings, s.Schedule); err != nil {
			return err
		}
	}

	return nil
}
