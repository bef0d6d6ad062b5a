package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"tlog/internal/app/errors"
)

// Config represents the application configuration
type Config struct {
	Logging Logging `yaml:"logging" mapstructure:"logging"`
	View    View    `yaml:"view" mapstructure:"view"`
	Rules   []Rule  `yaml:"rules" mapstructure:"rules"`
	Remote  Remote  `yaml:"remote" mapstructure:"remote"`
	Plan    Plan    `yaml:"plan" mapstructure:"plan"`
	Report  Report  `yaml:"report" mapstructure:"report"`
	Monitor Monitor `yaml:"monitor" mapstructure:"monitor"`
}

// Logging holds diagnostic logger settings
type Logging struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// View holds log view settings
type View struct {
	MaxLines  int  `yaml:"max_lines" mapstructure:"max_lines"`
	TailLines int  `yaml:"tail_lines" mapstructure:"tail_lines"`
	Follow    bool `yaml:"follow" mapstructure:"follow"`
	Padding   int  `yaml:"padding" mapstructure:"padding"`
}

// Rule maps a glob pattern to a line style
type Rule struct {
	Pattern   string `yaml:"pattern" mapstructure:"pattern"`
	Color     string `yaml:"color" mapstructure:"color"`
	Important bool   `yaml:"important" mapstructure:"important"`
}

// Remote holds websocket intake settings
type Remote struct {
	Address string `yaml:"address" mapstructure:"address"`
	Path    string `yaml:"path" mapstructure:"path"`
}

// Plan holds test plan settings
type Plan struct {
	File          string `yaml:"file" mapstructure:"file"`
	StopOnFailure bool   `yaml:"stop_on_failure" mapstructure:"stop_on_failure"`
}

// Report holds error reporting settings
type Report struct {
	DSN         string `yaml:"dsn" mapstructure:"dsn"`
	Environment string `yaml:"environment" mapstructure:"environment"`
}

// Monitor holds process sampling settings
type Monitor struct {
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// DefaultRules returns the rules used when the config declares none
func DefaultRules() []Rule {
	return []Rule{
		{Pattern: "*FAIL*", Color: "red", Important: true},
		{Pattern: "*ERROR*", Color: "red", Important: true},
		{Pattern: "*PASS*", Color: "green"},
		{Pattern: "*WARN*", Color: "yellow"},
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	cfg := &Config{}

	cfg.Logging.Level = DefaultLogLevel
	cfg.Logging.Format = DefaultLogFormat

	cfg.View.MaxLines = DefaultMaxLines
	cfg.View.TailLines = DefaultTailLines
	cfg.View.Follow = true
	cfg.View.Padding = DefaultPadding

	cfg.Rules = DefaultRules()

	cfg.Remote.Address = DefaultRemoteAddress
	cfg.Remote.Path = DefaultRemotePath

	cfg.Plan.File = DefaultPlanFile
	cfg.Plan.StopOnFailure = true

	cfg.Report.DSN = DefaultDSN
	cfg.Report.Environment = DefaultEnvironment

	cfg.Monitor.Interval = DefaultMonitorInterval

	return cfg
}

// Load reads tlog.yaml from the working directory, applying .env and TLOG_ environment overrides
func Load() (*Config, error) {
	return load(FileName, EnvFile)
}

func load(path, envPath string) (*Config, error) {
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToReadConfig, err)
	}

	cfg := DefaultConfig()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, cfg)

	data, err := os.ReadFile(path)

	switch {
	case err == nil:
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, errors.ErrFailedToParseConfig
		}
	case !os.IsNotExist(err):
		return nil, errors.ErrFailedToReadConfig
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.ErrFailedToParseConfig
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}

	return cfg, nil
}

// setDefaults registers scalar keys so environment overrides resolve during Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.format", cfg.Logging.Format)
	v.SetDefault("view.max_lines", cfg.View.MaxLines)
	v.SetDefault("view.tail_lines", cfg.View.TailLines)
	v.SetDefault("view.follow", cfg.View.Follow)
	v.SetDefault("view.padding", cfg.View.Padding)
	v.SetDefault("remote.address", cfg.Remote.Address)
	v.SetDefault("remote.path", cfg.Remote.Path)
	v.SetDefault("plan.file", cfg.Plan.File)
	v.SetDefault("plan.stop_on_failure", cfg.Plan.StopOnFailure)
	v.SetDefault("report.dsn", cfg.Report.DSN)
	v.SetDefault("report.environment", cfg.Report.Environment)
	v.SetDefault("monitor.interval", cfg.Monitor.Interval)
}

// ApplyDefaults fills values left empty by the config file
func (c *Config) ApplyDefaults() {
	if len(c.Rules) == 0 {
		c.Rules = DefaultRules()
	}

	if c.Remote.Path == "" {
		c.Remote.Path = DefaultRemotePath
	}

	if c.Report.Environment == "" {
		c.Report.Environment = DefaultEnvironment
	}

	for i := range c.Rules {
		c.Rules[i].Color = strings.ToLower(strings.TrimSpace(c.Rules[i].Color))
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.View.MaxLines < 0 {
		return errors.ErrInvalidMaxLines
	}

	if c.Remote.Address == "" {
		return errors.ErrRemoteAddressNeeded
	}

	if !strings.HasPrefix(c.Remote.Path, "/") {
		return errors.ErrInvalidRemotePath
	}

	if c.Remote.Path == MetricsPath {
		return errors.ErrRemotePathReserved
	}

	if c.Monitor.Interval <= 0 {
		return errors.ErrInvalidMonitorRate
	}

	for i, rule := range c.Rules {
		if _, err := glob.Compile(rule.Pattern); err != nil || rule.Pattern == "" {
			return fmt.Errorf("rule %d: %w: '%s'", i, errors.ErrInvalidRulePattern, rule.Pattern)
		}
	}

	return nil
}
