package plan

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tlog/internal/app/errors"
	"tlog/internal/config"
)

func Test_Parse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		err   error
		check func(t *testing.T, p *Plan)
	}{
		{
			name: "full plan",
			input: `
name = "lights"
stop_on_failure = false

[[steps]]
name = "boot"
command = "sh"
args = ["-c", "echo ok"]
timeout = "10s"

[[steps]]
name = "blink"
command = "true"
dir = "/tmp"
env = ["LED=1"]
`,
			check: func(t *testing.T, p *Plan) {
				assert.Equal(t, "lights", p.Name)
				assert.False(t, p.StopsOnFailure(true))
				require.Len(t, p.Steps, 2)
				assert.Equal(t, []string{"-c", "echo ok"}, p.Steps[0].Args)
				assert.Equal(t, 10*time.Second, p.Steps[0].TimeoutOf())
				assert.Equal(t, config.DefaultStepTimeout, p.Steps[1].TimeoutOf())
				assert.Equal(t, "/tmp", p.Steps[1].Dir)
				assert.Equal(t, []string{"LED=1"}, p.Steps[1].Env)
				assert.Equal(t, []string{"boot", "blink"}, p.StepNames())
			},
		},
		{
			name:  "stop on failure falls back when unset",
			input: "[[steps]]\nname = \"a\"\ncommand = \"true\"\n",
			check: func(t *testing.T, p *Plan) {
				assert.True(t, p.StopsOnFailure(true))
				assert.False(t, p.StopsOnFailure(false))
			},
		},
		{name: "malformed", input: "name = ", err: errors.ErrFailedToParsePlan},
		{name: "no steps", input: `name = "empty"`, err: errors.ErrPlanHasNoSteps},
		{name: "missing name", input: "[[steps]]\ncommand = \"true\"\n", err: errors.ErrStepNameRequired},
		{name: "missing command", input: "[[steps]]\nname = \"a\"\n", err: errors.ErrStepCommandMissing},
		{name: "bad timeout", input: "[[steps]]\nname = \"a\"\ncommand = \"true\"\ntimeout = \"soon\"\n", err: errors.ErrInvalidStepTimeout},
		{name: "negative timeout", input: "[[steps]]\nname = \"a\"\ncommand = \"true\"\ntimeout = \"-1s\"\n", err: errors.ErrInvalidStepTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse([]byte(tt.input))

			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				assert.Nil(t, p)

				return
			}

			require.NoError(t, err)
			tt.check(t, p)
		})
	}
}

func Test_Load(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "smoke.toml")
	require.NoError(t, os.WriteFile(path, []byte("[[steps]]\nname = \"a\"\ncommand = \"true\"\n"), 0600))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "smoke", p.Name)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.ErrorIs(t, err, errors.ErrFailedToReadPlan)
}
