package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers            []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092" validate:"min=1,dive,required"`
	KafkaGroupID            string   `envconfig:"KAFKA_GROUP_ID" default:"daily-brief" validate:"required"`
	KafkaInboundTopic       string   `envconfig:"KAFKA_INBOUND_TOPIC" default:"inbound-messages" validate:"required"`
	KafkaCommandTopic       string   `envconfig:"KAFKA_COMMAND_TOPIC" default:"subscription-commands" validate:"required"`
	KafkaReportRequestTopic string   `envconfig:"KAFKA_REPORT_REQUEST_TOPIC" default:"report-requests" validate:"required"`
	KafkaReportTopic        string   `envconfig:"KAFKA_REPORT_TOPIC" default:"outbound-reports" validate:"required"`

	HTTPAddr        string        `envconfig:"HTTP_ADDR" default:":8080" validate:"required"`
	LogLevel        string        `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFormat       string        `envconfig:"LOG_FORMAT" default:"json" validate:"oneof=json text"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s" validate:"gt=0"`

	BatchSize          int           `envconfig:"BATCH_SIZE" default:"50" validate:"min=1,max=1000"`
	BatchFlushInterval time.Duration `envconfig:"BATCH_FLUSH_INTERVAL" default:"500ms" validate:"gt=0"`

	// Catalog overrides and scheduled reload. An empty schedule disables
	// reloading.
	CatalogDir            string `envconfig:"CATALOG_DIR"`
	CatalogReloadSchedule string `envconfig:"CATALOG_RELOAD_SCHEDULE" validate:"omitempty,cronspec"`

	// Mapbox geocoding configuration. MapboxEnabled defaults to whether a
	// token is set.
	MapboxToken     string        `envconfig:"MAPBOX_TOKEN"`
	MapboxEnabled   bool          `ignored:"true"`
	MapboxTimeout   time.Duration `envconfig:"MAPBOX_TIMEOUT" default:"5s" validate:"gt=0"`
	MapboxCacheSize int           `envconfig:"MAPBOX_CACHE_SIZE" default:"1000" validate:"min=1"`
}

// Load reads configuration from the environment (and a .env file when
// present), applying defaults where unset.
func Load() (*Config, error) {
	// Existing environment variables win over .env entries.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	cfg.MapboxEnabled = cfg.MapboxToken != ""
	if v, ok := os.LookupEnv("MAPBOX_ENABLED"); ok && v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid MAPBOX_ENABLED %q: %w", v, err)
		}
		cfg.MapboxEnabled = enabled
	}

	if err := newValidator().Struct(cfg); err != nil {
		return nil, validationError(err)
	}

	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}

	return &cfg, nil
}

// newValidator reports fields by their environment variable name and knows
// the cronspec rule.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		if name := f.Tag.Get("envconfig"); name != "" {
			return name
		}
		return f.Name
	})
	_ = v.RegisterValidation("cronspec", func(fl validator.FieldLevel) bool {
		_, err := cron.ParseStandard(fl.Field().String())
		return err == nil
	})
	return v
}

func validationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate config: %w", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s (got %v)", fe.Field(), fe.Tag(), fe.Param(), fe.Value()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s must satisfy %s (got %v)", fe.Field(), fe.Tag(), fe.Value()))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
