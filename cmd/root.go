package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/urbanmobility/mobidatasim/internal/models"
	"github.com/urbanmobility/mobidatasim/internal/simulator"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "mobidatasim",
	Short: "Generates heterogeneous synthetic mobility datasets",
	Long: `mobidatasim is a CLI tool that generates four semantically linked mobility
datasets (road traffic CSV, bus GPS GeoJSON, planning TXT and a zone mapping
CSV) with controlled defects, for data-space integration exercises. The
datasets share a hidden congestion signal, so bus delays track road traffic
while each file keeps its own vocabulary and format.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := models.LoadConfig(cfgFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}

		sim := simulator.NewSimulator(cfg)
		if err := sim.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Generation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./mobidatasim.yaml)")

	flags := rootCmd.Flags()
	flags.Int64("seed", 42, "Random seed for reproducible output")
	flags.String("start-date", "2025-03-10T05:00:00Z", "Start of the generated time range")
	flags.String("end-date", "2025-03-10T23:00:00Z", "End of the generated time range")
	flags.Int("zone-count", 8, "Number of semantic zones")
	flags.Int("line-count", 8, "Number of bus lines")
	flags.Int("zones-per-line", 3, "Zones crossed by each line")
	flags.Int("buses-per-line", 2, "Buses operating on each line")
	flags.Int("points-per-bus", 120, "GPS points emitted per bus")
	flags.Int("window-minutes", 5, "Traffic measurement window in minutes")
	flags.Float64("p-missing", 0.03, "Probability of a missing traffic field")
	flags.Float64("p-outlier", 0.01, "Probability of a traffic outlier")
	flags.Float64("p-missing-delay", 0.02, "Probability of a missing bus delay")
	flags.String("output-path", "generated_sources", "Base directory for output files")
	flags.String("output-folder", "", "Subfolder under the output path")
	flags.Bool("parquet-archive", false, "Also write the traffic dataset as Parquet")
	flags.Bool("kafka-enabled", false, "Publish generated records to Kafka")
	flags.String("kafka-broker-list", "localhost:9092", "Kafka broker list")
	flags.Bool("postgres-enabled", false, "Load generated datasets into Postgres")

	bindings := map[string]string{
		"seed":              "seed",
		"start_date":        "start-date",
		"end_date":          "end-date",
		"zone_count":        "zone-count",
		"line_count":        "line-count",
		"zones_per_line":    "zones-per-line",
		"buses_per_line":    "buses-per-line",
		"points_per_bus":    "points-per-bus",
		"window_minutes":    "window-minutes",
		"p_missing":         "p-missing",
		"p_outlier":         "p-outlier",
		"p_missing_delay":   "p-missing-delay",
		"output_path":       "output-path",
		"output_folder":     "output-folder",
		"parquet_archive":   "parquet-archive",
		"kafka_enabled":     "kafka-enabled",
		"kafka_broker_list": "kafka-broker-list",
		"postgres_enabled":  "postgres-enabled",
	}
	for key, flag := range bindings {
		cobra.CheckErr(viper.BindPFlag(key, flags.Lookup(flag)))
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
