package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/yigit/uniconnect-fixtures/internal/pkg/apperrors"
	"github.com/yigit/uniconnect-fixtures/internal/pkg/validation"
)

// DefaultPath is where the CLI looks for a config file when none is given
const DefaultPath = "configs/config.yaml"

// Config structure represents the application configuration
type Config struct {
	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL" validate:"oneof=debug info warn error fatal"`
		Format string `yaml:"format" env:"LOG_FORMAT" validate:"oneof=json pretty"`
	} `yaml:"logging"`

	Data struct {
		Dir       string `yaml:"dir" env:"DATA_DIR" validate:"required"`
		ExportDir string `yaml:"export_dir" env:"EXPORT_DIR" validate:"required"`
	} `yaml:"data"`

	Validation struct {
		CampusMinLat float64 `yaml:"campus_min_lat" env:"CAMPUS_MIN_LAT" validate:"gte=-90,lte=90"`
		CampusMaxLat float64 `yaml:"campus_max_lat" env:"CAMPUS_MAX_LAT" validate:"gte=-90,lte=90,gtefield=CampusMinLat"`
		CampusMinLng float64 `yaml:"campus_min_lng" env:"CAMPUS_MIN_LNG" validate:"gte=-180,lte=180"`
		CampusMaxLng float64 `yaml:"campus_max_lng" env:"CAMPUS_MAX_LNG" validate:"gte=-180,lte=180,gtefield=CampusMinLng"`
	} `yaml:"validation"`

	Export struct {
		SnapshotFilename string `yaml:"snapshot_filename" env:"EXPORT_SNAPSHOT_FILENAME" validate:"required,endswith=.json"`
		EventsComment    string `yaml:"events_comment" env:"EXPORT_EVENTS_COMMENT"`
		Indent           string `yaml:"indent" env:"EXPORT_INDENT"`
	} `yaml:"export"`

	Schedule struct {
		ShiftDays     int `yaml:"shift_days" env:"SCHEDULE_SHIFT_DAYS"`
		DuplicateDays int `yaml:"duplicate_days" env:"SCHEDULE_DUPLICATE_DAYS" validate:"ne=0"`
	} `yaml:"schedule"`
}

// LoadConfig loads configuration from a file and environment variables.
// A missing file is not an error; defaults and the environment still apply.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if configPath != "" {
		file, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(file, config); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, apperrors.NewConfigError(err)
	}

	return config, nil
}

// setDefaults sets default values for the configuration
func setDefaults(config *Config) {
	config.Logging.Level = "info"
	config.Logging.Format = "pretty"

	config.Data.Dir = "data"
	config.Data.ExportDir = "export"

	bounds := validation.DefaultCampusBounds
	config.Validation.CampusMinLat = bounds.MinLat
	config.Validation.CampusMaxLat = bounds.MaxLat
	config.Validation.CampusMinLng = bounds.MinLng
	config.Validation.CampusMaxLng = bounds.MaxLng

	config.Export.SnapshotFilename = "uniconnect-demo-data.json"
	config.Export.EventsComment = "Enhanced events with Phase 2/3 properties. Uses relative dates and comprehensive categorization."
	config.Export.Indent = "  "

	config.Schedule.ShiftDays = 28
	config.Schedule.DuplicateDays = 7
}

var validate = validator.New()

// validateConfig ensures that the configuration is valid
func validateConfig(config *Config) error {
	return validate.Struct(config)
}

// CampusBounds returns the configured campus rectangle
func (c *Config) CampusBounds() validation.Bounds {
	return validation.Bounds{
		MinLat: c.Validation.CampusMinLat,
		MaxLat: c.Validation.CampusMaxLat,
		MinLng: c.Validation.CampusMinLng,
		MaxLng: c.Validation.CampusMaxLng,
	}
}

// PrettyLogs reports whether console logging was requested
func (c *Config) PrettyLogs() bool {
	return c.Logging.Format == "pretty"
}
