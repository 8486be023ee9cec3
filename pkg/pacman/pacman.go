// pkg/pacman/pacman.go - synchronous pacman invocation for the system stage.

package pacman

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"syscall"

	"github.com/windowsadmins/devbootstrap/pkg/logging"
	"github.com/windowsadmins/devbootstrap/pkg/msys"
)

// Manager runs the pacman executable beneath an MSYS2 root.
type Manager struct {
	root msys.Root
}

// NewManager creates a Manager for the given installation root.
func NewManager(root msys.Root) *Manager {
	return &Manager{root: root}
}

// installArgs builds the argument list for a non-interactive install.
// --needed skips packages that are already up to date.
func installArgs(packages []string) []string {
	args := []string{"-S", "--needed", "--noconfirm"}
	return append(args, packages...)
}

// Install installs the given packages in one synchronous pacman call.
// Output is streamed to the console; a non-zero exit status is returned as
// an error and is not retried.
func (m *Manager) Install(ctx context.Context, packages []string) error {
	if len(packages) == 0 {
		logging.Info("No pacman packages to install")
		return nil
	}

	exe := m.root.PacmanExe()
	if _, err := os.Stat(exe); err != nil {
		return fmt.Errorf("pacman not found at %s: %w", exe, err)
	}

	logging.Info("Installing system packages", "count", len(packages), "pacman", exe)

	cmd := exec.CommandContext(ctx, exe, installArgs(packages)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	// Hide the console window pacman would otherwise pop up.
	if runtime.GOOS == "windows" {
		cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pacman install failed: %w", err)
	}

	logging.Info("System packages installed", "count", len(packages))
	return nil
}
