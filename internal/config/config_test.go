package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tlog/internal/app/errors"
)

func Test_DefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, DefaultLogLevel, cfg.Logging.Level)
	assert.Equal(t, DefaultLogFormat, cfg.Logging.Format)
	assert.True(t, cfg.View.Follow)
	assert.Equal(t, DefaultTailLines, cfg.View.TailLines)
	assert.Equal(t, DefaultRemoteAddress, cfg.Remote.Address)
	assert.Equal(t, DefaultRemotePath, cfg.Remote.Path)
	assert.Equal(t, DefaultPlanFile, cfg.Plan.File)
	assert.True(t, cfg.Plan.StopOnFailure)
	assert.Equal(t, DefaultMonitorInterval, cfg.Monitor.Interval)
	assert.Len(t, cfg.Rules, len(DefaultRules()))
	assert.NoError(t, cfg.Validate())
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	return path
}

func Test_Load(t *testing.T) {
	tests := []struct {
		name    string
		content string
		env     map[string]string
		check   func(t *testing.T, cfg *Config)
		err     error
	}{
		{
			name: "no config file uses defaults",
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, DefaultConfig(), cfg)
			},
		},
		{
			name: "valid config file",
			content: `logging:
  level: debug
  format: json
view:
  max_lines: 500
  follow: false
rules:
  - pattern: "*BOOM*"
    color: "#FF0000"
    important: true
remote:
  address: 0.0.0.0:9000
  path: /ingest
plan:
  file: smoke.toml
  stop_on_failure: false
monitor:
  interval: 250ms
`,
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.Equal(t, 500, cfg.View.MaxLines)
				assert.False(t, cfg.View.Follow)
				require.Len(t, cfg.Rules, 1)
				assert.Equal(t, Rule{Pattern: "*BOOM*", Color: "#ff0000", Important: true}, cfg.Rules[0])
				assert.Equal(t, "0.0.0.0:9000", cfg.Remote.Address)
				assert.Equal(t, "/ingest", cfg.Remote.Path)
				assert.Equal(t, "smoke.toml", cfg.Plan.File)
				assert.False(t, cfg.Plan.StopOnFailure)
				assert.Equal(t, 250*time.Millisecond, cfg.Monitor.Interval)
			},
		},
		{
			name:    "environment overrides file",
			content: "logging:\n  level: warn\n",
			env:     map[string]string{"TLOG_LOGGING_LEVEL": "debug", "TLOG_REPORT_DSN": "https://key@example.com/1"},
			check: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, "https://key@example.com/1", cfg.Report.DSN)
			},
		},
		{
			name:    "malformed yaml",
			content: "logging: [\n",
			err:     errors.ErrFailedToParseConfig,
		},
		{
			name:    "negative max lines",
			content: "view:\n  max_lines: -1\n",
			err:     errors.ErrInvalidMaxLines,
		},
		{
			name:    "bad rule pattern",
			content: "rules:\n  - pattern: \"[oops\"\n",
			err:     errors.ErrInvalidRulePattern,
		},
		{
			name:    "remote path without slash",
			content: "remote:\n  path: lines\n",
			err:     errors.ErrInvalidRemotePath,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()

			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			path := filepath.Join(dir, FileName)
			if tt.content != "" {
				path = writeFile(t, dir, FileName, tt.content)
			}

			cfg, err := load(path, filepath.Join(dir, EnvFile))

			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.Nil(t, cfg)

				return
			}

			require.NoError(t, err)
			tt.check(t, cfg)
		})
	}
}

func Test_Load_DotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, EnvFile, "TLOG_REMOTE_ADDRESS=10.0.0.1:1234\n")

	t.Cleanup(func() { os.Unsetenv("TLOG_REMOTE_ADDRESS") })

	cfg, err := load(filepath.Join(dir, FileName), envPath)
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1:1234", cfg.Remote.Address)
}

func Test_Config_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		err    error
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{name: "empty remote address", mutate: func(c *Config) { c.Remote.Address = "" }, err: errors.ErrRemoteAddressNeeded},
		{name: "metrics path is reserved", mutate: func(c *Config) { c.Remote.Path = MetricsPath }, err: errors.ErrRemotePathReserved},
		{name: "zero monitor interval", mutate: func(c *Config) { c.Monitor.Interval = 0 }, err: errors.ErrInvalidMonitorRate},
		{name: "empty rule pattern", mutate: func(c *Config) { c.Rules = []Rule{{Pattern: ""}} }, err: errors.ErrInvalidRulePattern},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func Test_Config_ApplyDefaults(t *testing.T) {
	cfg := &Config{Rules: []Rule{{Pattern: "*x*", Color: "  RED "}}}
	cfg.ApplyDefaults()

	assert.Equal(t, "red", cfg.Rules[0].Color)
	assert.Equal(t, DefaultRemotePath, cfg.Remote.Path)
	assert.Equal(t, DefaultEnvironment, cfg.Report.Environment)

	empty := &Config{}
	empty.ApplyDefaults()
	assert.Equal(t, DefaultRules(), empty.Rules)
}
