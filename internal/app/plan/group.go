package plan

import (
	"os/exec"
	"syscall"

	"tlog/internal/config"
)

// configureGroup runs cmd in its own process group so a cancelled step takes its children with it
func configureGroup(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	cmd.Cancel = func() error {
		if err := syscall.Kill(-cmd.Process.Pid, syscall.SIGTERM); err != nil {
			return cmd.Process.Signal(syscall.SIGTERM)
		}

		return nil
	}

	// Wait escalates to SIGKILL once this elapses after Cancel
	cmd.WaitDelay = config.StepStopTimeout
}
