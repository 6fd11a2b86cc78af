// Package config loads exaudit settings from defaults, the environment and
// an optional YAML file.
package config

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"gopkg.in/yaml.v2"

	"github.com/ukaji3/exaudit-go/pkg/exaudit"
	"github.com/ukaji3/exaudit-go/pkg/exaudit/categorize"
	"github.com/ukaji3/exaudit-go/pkg/exaudit/parser"
	"github.com/ukaji3/exaudit-go/pkg/exaudit/strategies"
)

// EnvPrefix prefixes every environment variable, e.g.
// EXAUDIT_DETECTION_DUPLICATE_ROWS_MAX_DUPLICATE_ROWS.
const EnvPrefix = "EXAUDIT"

// Config represents the complete exaudit configuration
type Config struct {
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Loader    LoaderConfig    `yaml:"loader" envconfig:"LOADER"`
	Detection DetectionConfig `yaml:"detection" envconfig:"DETECTION"`
	Output    OutputConfig    `yaml:"output" envconfig:"OUTPUT"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level       string `yaml:"level" envconfig:"LEVEL" default:"warn" validate:"oneof=debug info warn error"`
	Development bool   `yaml:"development" envconfig:"DEVELOPMENT" default:"false"`
}

// LoaderConfig contains workbook loading configuration
type LoaderConfig struct {
	// MaxRows caps rows per sheet; -1 reads every row.
	MaxRows int                        `yaml:"max_rows" envconfig:"MAX_ROWS" default:"5000" validate:"gte=-1"`
	Columns parser.NumericColumnParams `yaml:"columns" envconfig:"COLUMNS"`
}

// DetectionConfig contains categorization and strategy thresholds
type DetectionConfig struct {
	// Concurrency bounds parallel sheets; 0 means GOMAXPROCS.
	Concurrency       int                               `yaml:"concurrency" envconfig:"CONCURRENCY" default:"0" validate:"gte=0"`
	Heuristic         categorize.HeuristicParams        `yaml:"heuristic" envconfig:"HEURISTIC"`
	DuplicateRows     strategies.DuplicateRowParams     `yaml:"duplicate_rows" envconfig:"DUPLICATE_ROWS"`
	Sequences         strategies.SequenceParams         `yaml:"sequences" envconfig:"SEQUENCES"`
	IndividualNumbers strategies.IndividualNumberParams `yaml:"individual_numbers" envconfig:"INDIVIDUAL_NUMBERS"`
}

// OutputConfig contains report rendering configuration
type OutputConfig struct {
	Format          string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
	Pretty          bool   `yaml:"pretty" envconfig:"PRETTY" default:"false"`
	MetricsTextfile string `yaml:"metrics_textfile" envconfig:"METRICS_TEXTFILE"`
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{Level: "warn"},
		Loader: LoaderConfig{
			MaxRows: parser.DefaultMaxRows,
			Columns: parser.DefaultNumericColumnParams(),
		},
		Detection: DetectionConfig{
			Heuristic:         categorize.DefaultHeuristicParams(),
			DuplicateRows:     strategies.DefaultDuplicateRowParams(),
			Sequences:         strategies.DefaultSequenceParams(),
			IndividualNumbers: strategies.DefaultIndividualNumberParams(),
		},
		Output: OutputConfig{Format: "json"},
	}
}

// Load builds the configuration from defaults and the environment, then
// overlays the YAML file at path when path is not empty. Keys present in
// the file win over the environment.
func Load(path string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if path != "" {
		if err := loadFromFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// loadFromFile overlays the YAML file onto cfg. Unknown keys are rejected.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.UnmarshalStrict(data, cfg)
}

// Validate checks every field against its validate tag.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// AuditOptions maps the configuration to audit options. The categorizer,
// logger and metrics are left for the caller to set.
func (c *Config) AuditOptions() exaudit.Options {
	opts := exaudit.DefaultOptions()
	opts.Load = parser.LoadOptions{
		MaxRows: c.Loader.MaxRows,
		Columns: c.Loader.Columns,
	}
	opts.Concurrency = c.Detection.Concurrency
	opts.Heuristic = c.Detection.Heuristic
	opts.DuplicateRows = c.Detection.DuplicateRows
	opts.Sequences = c.Detection.Sequences
	opts.IndividualNumbers = c.Detection.IndividualNumbers
	return opts
}

// NewLogger builds a zap logger from the logging section. Production
// loggers write JSON to stderr.
func (c *Config) NewLogger() (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(c.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", c.Logging.Level, err)
	}

	zc := zap.NewProductionConfig()
	if c.Logging.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	return zc.Build()
}
