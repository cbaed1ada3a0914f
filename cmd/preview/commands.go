package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/couchcryptid/daily-brief-service/internal/catalog"
	"github.com/couchcryptid/daily-brief-service/internal/domain"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "preview",
		Short:         "Preview parsed commands, weather conditions and daily briefs",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newParseCmd(), newClassifyCmd(), newReportCmd())
	return root
}

func newParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [text]",
		Short: "Parse a subscriber message; reads stdin when no text is given",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var text string
			if len(args) == 1 {
				// Shell arguments cannot hold real newlines easily.
				text = strings.ReplaceAll(args[0], `\n`, "\n")
			} else {
				data, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				text = string(data)
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetEscapeHTML(false)
			return enc.Encode(domain.ParseCommand(text))
		},
	}
}

func newClassifyCmd() *cobra.Command {
	var obs domain.WeatherObservation
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify a forecast into a weather condition",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("temp-min") {
				obs.TempMin = obs.TempMax - 8
			}
			if !obs.WellFormed() {
				return fmt.Errorf("observation has non-finite values")
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), domain.ClassifyCondition(obs))
			return err
		},
	}
	f := cmd.Flags()
	f.Float64Var(&obs.TempMax, "temp-max", 0, "daily maximum temperature (°C)")
	f.Float64Var(&obs.TempMin, "temp-min", 0, "daily minimum temperature (°C); defaults to temp-max minus 8")
	f.Float64Var(&obs.PrecipitationSum, "precip", 0, "precipitation sum (mm)")
	f.Float64Var(&obs.PrecipitationProbability, "prob", 0, "precipitation probability (%)")
	f.Float64Var(&obs.WindSpeedMax, "wind", 0, "maximum wind speed (km/h)")
	_ = cmd.MarkFlagRequired("temp-max")
	return cmd
}

// fixture is the YAML form of a report request.
type fixture struct {
	Location       string                     `yaml:"location"`
	Personality    string                     `yaml:"personality"`
	Language       string                     `yaml:"language"`
	Date           string                     `yaml:"date"`
	Observation    *domain.WeatherObservation `yaml:"observation"`
	Countdowns     []domain.CountdownEvent    `yaml:"countdowns"`
	IncludeNameday bool                       `yaml:"include_nameday"`
}

func loadFixture(path string) (fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	var fx fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return fixture{}, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return fx, nil
}

func (fx fixture) briefRequest() domain.BriefRequest {
	return domain.ReportRequest{
		Location:       fx.Location,
		Personality:    fx.Personality,
		Language:       fx.Language,
		Date:           fx.Date,
		Observation:    fx.Observation,
		Countdowns:     fx.Countdowns,
		IncludeNameday: fx.IncludeNameday,
	}.BriefRequest()
}

func newReportCmd() *cobra.Command {
	var (
		fixturePath string
		catalogDir  string
		verbose     bool
	)
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render the daily brief for a YAML fixture",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			level := slog.LevelError
			if verbose {
				level = slog.LevelDebug
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			fx, err := loadFixture(fixturePath)
			if err != nil {
				return err
			}
			store, err := catalog.Open(catalogDir, logger)
			if err != nil {
				return err
			}

			brief := domain.NewReportBuilder(store, logger).BuildDailyBrief(fx.briefRequest())
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Subject: %s\n\n%s\n", brief.Subject, brief.Body)
			return err
		},
	}
	f := cmd.Flags()
	f.StringVarP(&fixturePath, "file", "f", "", "YAML report fixture")
	f.StringVar(&catalogDir, "catalog-dir", "", "catalog override directory")
	f.BoolVarP(&verbose, "verbose", "v", false, "log catalog loading and fallbacks to stderr")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
