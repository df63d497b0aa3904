package report

import (
	"fmt"
	"os/exec"

	"bluecarbon/internal/config"
)

// Launcher starts the browser-automation runner as a detached process so the
// HTTP request can return immediately. The runner writes its report into the
// shared drop directory; the API never waits on it.
type Launcher struct {
	cfg config.AutomationConfig
}

func NewLauncher(cfg config.AutomationConfig) *Launcher {
	return &Launcher{cfg: cfg}
}

// Launch spawns the automation binary for a project and releases it. The
// process outlives the request; failures inside it surface only as an absent
// report file.
func (l *Launcher) Launch(projectID string) error {
	if !projectIDPattern.MatchString(projectID) {
		return fmt.Errorf("%w: %q", ErrInvalidProjectID, projectID)
	}

	cmd := exec.Command(l.cfg.Bin,
		"-project", projectID,
		"-reports", l.cfg.ReportsDir,
		"-auth", l.cfg.AuthStatePath,
		"-target", l.cfg.TargetURL,
		fmt.Sprintf("-headless=%t", l.cfg.Headless),
	)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start automation: %w", err)
	}
	if err := cmd.Process.Release(); err != nil {
		return fmt.Errorf("detach automation: %w", err)
	}
	return nil
}
