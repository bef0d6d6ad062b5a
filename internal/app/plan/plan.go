package plan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"tlog/internal/app/errors"
	"tlog/internal/config"
)

// Plan is an ordered list of test steps
type Plan struct {
	Name          string `toml:"name"`
	StopOnFailure *bool  `toml:"stop_on_failure"`
	Steps         []Step `toml:"steps"`
}

// Step is one command run as a test
type Step struct {
	Name    string   `toml:"name"`
	Command string   `toml:"command"`
	Args    []string `toml:"args"`
	Dir     string   `toml:"dir"`
	Env     []string `toml:"env"`
	Timeout string   `toml:"timeout"`

	timeout time.Duration
}

// Load reads and validates a TOML plan file
func Load(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", errors.ErrFailedToReadPlan, path, err)
	}

	p, err := Parse(data)
	if err != nil {
		return nil, err
	}

	if p.Name == "" {
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return p, nil
}

// Parse decodes and validates a TOML plan
func Parse(data []byte) (*Plan, error) {
	var p Plan

	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToParsePlan, err)
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &p, nil
}

// Validate checks steps and resolves their timeouts
func (p *Plan) Validate() error {
	if len(p.Steps) == 0 {
		return errors.ErrPlanHasNoSteps
	}

	for i := range p.Steps {
		step := &p.Steps[i]

		if strings.TrimSpace(step.Name) == "" {
			return fmt.Errorf("step %d: %w", i+1, errors.ErrStepNameRequired)
		}

		if strings.TrimSpace(step.Command) == "" {
			return fmt.Errorf("step %s: %w", step.Name, errors.ErrStepCommandMissing)
		}

		step.timeout = config.DefaultStepTimeout

		if step.Timeout != "" {
			d, err := time.ParseDuration(step.Timeout)
			if err != nil || d <= 0 {
				return fmt.Errorf("step %s: %w: '%s'", step.Name, errors.ErrInvalidStepTimeout, step.Timeout)
			}

			step.timeout = d
		}
	}

	return nil
}

// StepNames returns the names of all steps in order
func (p *Plan) StepNames() []string {
	names := make([]string, 0, len(p.Steps))
	for _, s := range p.Steps {
		names = append(names, s.Name)
	}

	return names
}

// StopsOnFailure resolves the plan's stop_on_failure setting against a default
func (p *Plan) StopsOnFailure(fallback bool) bool {
	if p.StopOnFailure == nil {
		return fallback
	}

	return *p.StopOnFailure
}

// TimeoutOf returns the resolved timeout of a validated step
func (s Step) TimeoutOf() time.Duration {
	if s.timeout <= 0 {
		return config.DefaultStepTimeout
	}

	return s.timeout
}
