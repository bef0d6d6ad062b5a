//go:generate mockgen -source=generator.go -destination=generator_mock.go -package=generator
package generator

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
	"go.yaml.in/yaml/v3"

	"tlog/internal/app/errors"
	"tlog/internal/config"
	"tlog/internal/config/logger"
)

const header = `tlog configuration
Every key may be overridden with a TLOG_ environment variable, e.g. TLOG_VIEW_MAX_LINES=5000`

var sectionComments = map[string]string{
	"logging": "Diagnostic logging of tlog itself (debug, info, warn, error; console or json)",
	"view":    "max_lines of 0 keeps every line; tail_lines is how much history `tlog tail` shows",
	"rules":   "Glob patterns matched against each line in order; the first match picks its style",
	"remote":  "Where `tlog listen` accepts websocket clients; intake counters are served at /metrics",
	"plan":    "Default plan for `tlog run`",
	"report":  "Set dsn to send step and source failures to Sentry",
	"monitor": "How often the status bar samples the running step",
}

// Options contains the configuration for generating project files
type Options struct {
	Dir  string
	Plan bool
}

// DefaultOptions returns sensible defaults for generation
func DefaultOptions() Options {
	return Options{Dir: "."}
}

// Generator writes starter configuration files
type Generator interface {
	Generate(opts Options, force bool, dryRun bool) error
}

type file struct {
	name   string
	render func() ([]byte, error)
}

type generator struct {
	out io.Writer
	log logger.Logger
}

// NewGenerator creates a new generator instance; dry runs print to stdout
func NewGenerator(log logger.Logger) Generator {
	return &generator{
		out: os.Stdout,
		log: log,
	}
}

// Generate writes tlog.yaml and, when asked, a sample plan
func (g *generator) Generate(opts Options, force bool, dryRun bool) error {
	files := []file{{name: config.FileName, render: renderConfig}}

	if opts.Plan {
		files = append(files, file{name: config.DefaultPlanFile, render: renderPlan})
	}

	for _, f := range files {
		path := filepath.Join(opts.Dir, f.name)

		if !dryRun && !force {
			if _, err := os.Stat(path); err == nil {
				return fmt.Errorf("%s: %w", path, errors.ErrFileAlreadyExists)
			}
		}

		content, err := f.render()
		if err != nil {
			return err
		}

		if dryRun {
			fmt.Fprintf(g.out, "# --- %s\n%s", f.name, content)
			continue
		}

		if err := os.WriteFile(path, content, 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}

		g.log.Info().Msgf("Generated %s", path)
	}

	return nil
}

// renderConfig encodes the default config with section comments
func renderConfig() ([]byte, error) {
	var doc yaml.Node
	if err := doc.Encode(config.DefaultConfig()); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}

	doc.HeadComment = header

	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, value := doc.Content[i], doc.Content[i+1]
		key.HeadComment = sectionComments[key.Value]

		humanizeDurations(value)
	}

	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(&doc); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}

	return buf.Bytes(), nil
}

// humanizeDurations rewrites nanosecond durations such as monitor.interval as "1s"
func humanizeDurations(node *yaml.Node) {
	if node.Kind != yaml.MappingNode {
		return
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		if key.Value == "interval" && value.ShortTag() == "!!int" {
			var ns int64
			if err := value.Decode(&ns); err == nil {
				value.SetString(time.Duration(ns).String())
			}
		}
	}
}

// samplePlan is the starter plan written next to tlog.yaml
type samplePlan struct {
	Name          string       `toml:"name"`
	StopOnFailure bool         `toml:"stop_on_failure"`
	Steps         []sampleStep `toml:"steps"`
}

type sampleStep struct {
	Name    string   `toml:"name"`
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
	Timeout string   `toml:"timeout,omitempty"`
}

func renderPlan() ([]byte, error) {
	p := samplePlan{
		Name:          "smoke",
		StopOnFailure: true,
		Steps: []sampleStep{
			{Name: "hello", Command: "sh", Args: []string{"-c", "echo PASS: hello"}},
			{Name: "unit", Command: "go", Args: []string{"test", "./..."}, Timeout: "10m"},
		},
	}

	data, err := toml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode plan: %w", err)
	}

	return data, nil
}
