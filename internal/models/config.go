package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

type CloudStorageConfig struct {
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

type Config struct {
	Seed          int64     `mapstructure:"seed"`
	StartDate     time.Time `mapstructure:"start_date"`
	EndDate       time.Time `mapstructure:"end_date"`
	ZoneCount     int       `mapstructure:"zone_count"`
	LineCount     int       `mapstructure:"line_count"`
	ZonesPerLine  int       `mapstructure:"zones_per_line"`
	BusesPerLine  int       `mapstructure:"buses_per_line"`
	PointsPerBus  int       `mapstructure:"points_per_bus"`
	WindowMinutes int       `mapstructure:"window_minutes"`
	DayTypes      []string  `mapstructure:"day_types"`

	PMissing      float64 `mapstructure:"p_missing"`
	POutlier      float64 `mapstructure:"p_outlier"`
	PMissingDelay float64 `mapstructure:"p_missing_delay"`

	ServiceWindowStart string `mapstructure:"service_window_start"`
	ServiceWindowEnd   string `mapstructure:"service_window_end"`
	FrequencyOptions   []int  `mapstructure:"frequency_options"`

	CityLat    float64 `mapstructure:"city_latitude"`
	CityLon    float64 `mapstructure:"city_longitude"`
	ZoneSpread float64 `mapstructure:"zone_spread"`

	OutputPath        string `mapstructure:"output_path"`
	OutputFolder      string `mapstructure:"output_folder"`
	OutputDestination string `mapstructure:"output_destination"`
	ParquetArchive    bool   `mapstructure:"parquet_archive"`

	CloudStorage CloudStorageConfig `mapstructure:"cloud_storage"`

	KafkaEnabled    bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList string `mapstructure:"kafka_broker_list"`

	PostgresEnabled bool           `mapstructure:"postgres_enabled"`
	Database        DatabaseConfig `mapstructure:"database"`
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Default config location
		viper.AddConfigPath(".")
		viper.SetConfigName("mobidatasim")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv() // Read in environment variables that match

	viper.SetDefault("day_types", []string{DayTypeWeekday, DayTypeWeekend})
	viper.SetDefault("service_window_start", "05:00")
	viper.SetDefault("service_window_end", "23:00")
	viper.SetDefault("frequency_options", []int{5, 10, 15, 20})
	viper.SetDefault("city_latitude", 33.589)
	viper.SetDefault("city_longitude", -7.615)
	viper.SetDefault("zone_spread", 0.02)
	viper.SetDefault("output_destination", "local")
	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", "5432")
	viper.SetDefault("database.sslmode", "disable")

	if err := viper.ReadInConfig(); err != nil {
		// A missing default config file is fine; flags and defaults cover it.
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}

// Validate enforces the generation contract: counts at least 1, a non-empty
// time range, probabilities inside [0,1] and a parseable service window.
func (cfg *Config) Validate() error {
	counts := []struct {
		name  string
		value int
	}{
		{"zone_count", cfg.ZoneCount},
		{"line_count", cfg.LineCount},
		{"zones_per_line", cfg.ZonesPerLine},
		{"buses_per_line", cfg.BusesPerLine},
		{"points_per_bus", cfg.PointsPerBus},
		{"window_minutes", cfg.WindowMinutes},
	}
	for _, c := range counts {
		if c.value < 1 {
			return fmt.Errorf("%w: %s must be at least 1, got %d", ErrConfiguration, c.name, c.value)
		}
	}

	if !cfg.EndDate.After(cfg.StartDate) {
		return fmt.Errorf("%w: end_date %s must be after start_date %s",
			ErrConfiguration, cfg.EndDate.Format(time.RFC3339), cfg.StartDate.Format(time.RFC3339))
	}

	probs := []struct {
		name  string
		value float64
	}{
		{"p_missing", cfg.PMissing},
		{"p_outlier", cfg.POutlier},
		{"p_missing_delay", cfg.PMissingDelay},
	}
	for _, p := range probs {
		if p.value < 0 || p.value > 1 {
			return fmt.Errorf("%w: %s must be within [0,1], got %g", ErrConfiguration, p.name, p.value)
		}
	}

	if len(cfg.DayTypes) == 0 {
		return fmt.Errorf("%w: day_types must not be empty", ErrConfiguration)
	}
	if len(cfg.FrequencyOptions) == 0 {
		return fmt.Errorf("%w: frequency_options must not be empty", ErrConfiguration)
	}

	if _, _, err := cfg.ServiceWindowMinutes(); err != nil {
		return err
	}
	return nil
}

// ServiceWindowMinutes parses the planning service window into minutes since
// midnight.
func (cfg *Config) ServiceWindowMinutes() (int, int, error) {
	start, err := time.Parse(ClockLayout, cfg.ServiceWindowStart)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad service_window_start %q: %v", ErrConfiguration, cfg.ServiceWindowStart, err)
	}
	end, err := time.Parse(ClockLayout, cfg.ServiceWindowEnd)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: bad service_window_end %q: %v", ErrConfiguration, cfg.ServiceWindowEnd, err)
	}
	s := start.Hour()*60 + start.Minute()
	e := end.Hour()*60 + end.Minute()
	if e <= s {
		return 0, 0, fmt.Errorf("%w: service window end %s is not after start %s",
			ErrConfiguration, cfg.ServiceWindowEnd, cfg.ServiceWindowStart)
	}
	return s, e, nil
}
