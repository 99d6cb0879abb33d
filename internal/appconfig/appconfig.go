// internal/appconfig/appconfig.go
// Package appconfig manages loading and interpreting application configuration.
package appconfig

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mwiater/idiombench/internal/benchmark"
	"github.com/mwiater/idiombench/internal/metrics"
	"github.com/mwiater/idiombench/internal/report"
)

const (
	// DefaultConfigPath is the default path to the application's configuration file.
	DefaultConfigPath = "config/idiombench.json"
	// EnvPrefix prefixes every environment override, e.g. IDIOMBENCH_MINTIME.
	EnvPrefix = "IDIOMBENCH"
	// defaultLogFile is used when logFile is not configured.
	defaultLogFile = "idiombench.log"
)

// Config represents the top-level application configuration.
type Config struct {
	MinTime          time.Duration `mapstructure:"minTime" json:"minTime"`
	WarmupTime       time.Duration `mapstructure:"warmupTime" json:"warmupTime"`
	SampleLimit      int           `mapstructure:"sampleLimit" json:"sampleLimit"`
	MinSamples       int           `mapstructure:"minSamples" json:"minSamples"`
	WarmupIterations int           `mapstructure:"warmupIterations" json:"warmupIterations"`
	Batch            int           `mapstructure:"batch" json:"batch"`
	Trim             bool          `mapstructure:"trim" json:"trim"`
	TrimThreshold    float64       `mapstructure:"trimThreshold" json:"trimThreshold"`
	Confidence       float64       `mapstructure:"confidence" json:"confidence"`
	Format           string        `mapstructure:"format" json:"format"`
	Sizes            []int         `mapstructure:"sizes" json:"sizes,omitempty"`
	Output           string        `mapstructure:"output" json:"output,omitempty"`
	Debug            bool          `mapstructure:"debug" json:"debug"`
	NoColor          bool          `mapstructure:"noColor" json:"noColor"`
	LogFile          string        `mapstructure:"logFile" json:"logFile,omitempty"`
	ConfigPath       string        `mapstructure:"-" json:"-"`
}

// Defaults returns the configuration used when nothing is set.
func Defaults() Config {
	budget := benchmark.DefaultBudget()
	opts := metrics.DefaultOptions()
	return Config{
		MinTime:          budget.MinTime,
		WarmupTime:       budget.WarmupTime,
		SampleLimit:      budget.SampleLimit,
		MinSamples:       budget.MinSamples,
		WarmupIterations: budget.WarmupIterations,
		Batch:            budget.Batch,
		Trim:             opts.Trim,
		TrimThreshold:    opts.TrimThreshold,
		Confidence:       opts.Confidence,
		Format:           string(report.FormatTable),
	}
}

// Budget returns the measurement budget. Zero counts fall back to their
// defaults; zero durations are kept and mean no minimum.
func (c Config) Budget() benchmark.Budget {
	def := benchmark.DefaultBudget()
	b := benchmark.Budget{
		WarmupTime:       c.WarmupTime,
		WarmupIterations: c.WarmupIterations,
		MinTime:          c.MinTime,
		MinSamples:       c.MinSamples,
		SampleLimit:      c.SampleLimit,
		Batch:            c.Batch,
	}
	if b.MinSamples == 0 {
		b.MinSamples = def.MinSamples
	}
	if b.SampleLimit == 0 {
		b.SampleLimit = max(def.SampleLimit, b.MinSamples)
	}
	if b.Batch == 0 {
		b.Batch = def.Batch
	}
	return b
}

// MetricsOptions returns how sample sets are reduced.
func (c Config) MetricsOptions() metrics.Options {
	opts := metrics.Options{
		Trim:          c.Trim,
		TrimThreshold: c.TrimThreshold,
		Confidence:    c.Confidence,
	}
	if opts.TrimThreshold <= 0 {
		opts.TrimThreshold = metrics.DefaultTrimThreshold
	}
	if opts.Confidence <= 0 {
		opts.Confidence = metrics.DefaultConfidence
	}
	return opts
}

// ReportOptions returns the configured report rendering.
func (c Config) ReportOptions() (report.Options, error) {
	format, err := report.ParseFormat(c.Format)
	if err != nil {
		return report.Options{}, err
	}
	return report.Options{Format: format, NoColor: c.NoColor}, nil
}

// LogFilePath returns the path to the application log file, applying a default if not set.
func (c Config) LogFilePath() string {
	if path := c.LogFile; strings.TrimSpace(path) != "" {
		return path
	}
	return defaultLogFile
}

// Validate reports the first configuration error.
func (c Config) Validate() error {
	if err := c.Budget().Validate(); err != nil {
		return err
	}
	if c.TrimThreshold < 0 {
		return fmt.Errorf("invalid configuration: trimThreshold must not be negative")
	}
	if c.Confidence != 0 {
		if err := metrics.CheckConfidence(c.Confidence); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}
	for _, n := range c.Sizes {
		if n < 0 {
			return fmt.Errorf("invalid configuration: size %d must not be negative", n)
		}
	}
	if _, err := c.ReportOptions(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// ReadConfigFile schema-validates the JSON file at path and reads it into v.
// A missing file yields an error wrapping os.ErrNotExist.
func ReadConfigFile(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read config file %q: %w", path, err)
	}
	if err := ValidateDocument(data); err != nil {
		return fmt.Errorf("config file %q: %w", path, err)
	}

	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("could not read config file %q: %w", path, err)
	}
	return nil
}

// Decode unmarshals the merged settings of v and validates the result.
func Decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.ConfigPath = v.ConfigFileUsed()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// SetDefaults registers the default value of every option on v.
func SetDefaults(v *viper.Viper) {
	def := Defaults()
	v.SetDefault("minTime", def.MinTime)
	v.SetDefault("warmupTime", def.WarmupTime)
	v.SetDefault("sampleLimit", def.SampleLimit)
	v.SetDefault("minSamples", def.MinSamples)
	v.SetDefault("warmupIterations", def.WarmupIterations)
	v.SetDefault("batch", def.Batch)
	v.SetDefault("trim", def.Trim)
	v.SetDefault("trimThreshold", def.TrimThreshold)
	v.SetDefault("confidence", def.Confidence)
	v.SetDefault("format", def.Format)
}
