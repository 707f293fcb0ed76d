package main

import (
	"fmt"
	"os"
	"time"

	"github.com/christabone/google-timeline-to-city/internal/output"
	"github.com/christabone/google-timeline-to-city/internal/services"
	"github.com/christabone/google-timeline-to-city/internal/timeline"
	"github.com/christabone/google-timeline-to-city/internal/utils"
	"github.com/christabone/google-timeline-to-city/pkg/file"
	"github.com/christabone/google-timeline-to-city/pkg/geocoder"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"
)

// Version information, injected at build time via ldflags.
var (
	Version   = "dev"
	Build     = "unknown"
	BuildTime = "unknown"
)

var (
	email      string
	configPath string
	outputPath string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "timeline-to-city <history.json>",
	Short: "Extract closest-time places from a Google Timeline export",
	Long: `timeline-to-city reads a Google Timeline location-history export, picks for
each configured date range the record closest to a target time of day,
reverse-geocodes its coordinates into a place name and writes the results as
tab-separated rows with locally-adjusted timestamps.

The contact address given with --email is sent with every geocoding request,
as required by the Nominatim usage policy.`,
	Version:       fmt.Sprintf("%s (build %s, %s)", Version, Build, BuildTime),
	Args:          cobra.ExactArgs(1),
	RunE:          run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().StringVar(&email, "email", "", "contact address sent to the geocoding service (required)")
	rootCmd.Flags().StringVar(&configPath, "config", "configs/config.yaml", "path to the YAML configuration file")
	rootCmd.Flags().StringVar(&outputPath, "output", "output.tsv", "path of the tab-separated output file")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "sets log level to debug")
	cobra.CheckErr(rootCmd.MarkFlagRequired("email"))
}

func run(cmd *cobra.Command, args []string) error {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Str("run_id", uuid.New().String()).Logger().
		Level(zerolog.InfoLevel)
	if debug {
		logger = logger.Level(zerolog.DebugLevel)
	}

	// Initialize file operations handler
	fileClient := file.NewFileService()

	// Load configuration from file
	config, err := utils.LoadConfig(configPath, fileClient)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Load the location history into memory
	records, err := timeline.NewLoader(fileClient, logger).Load(args[0])
	if err != nil {
		return err
	}

	resolver, err := newResolver(config, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize geocoder: %w", err)
	}

	service := services.NewExtractionService(
		config.DateRanges,
		outputPath,
		records,
		resolver,
		output.NewWriter(fileClient, logger),
		logger,
	)
	return service.Run(cmd.Context())
}

// newResolver constructs the configured reverse-geocoding provider. The
// Nominatim limiter is created here so its lifecycle is scoped to the run.
func newResolver(config *utils.Config, logger zerolog.Logger) (geocoder.Resolver, error) {
	if config.Geocoder.Provider == utils.ProviderGoogle {
		return geocoder.NewGoogleResolver(config.Geocoder.MapsAPIKey, logger)
	}

	limiter := rate.NewLimiter(rate.Every(time.Duration(config.Geocoder.IntervalSeconds)*time.Second), 1)
	return geocoder.NewNominatimResolver(
		geocoder.NominatimBaseURL,
		email,
		time.Duration(config.Geocoder.TimeoutSeconds)*time.Second,
		config.Geocoder.MaxAttempts,
		limiter,
		logger,
	)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
