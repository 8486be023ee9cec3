// pkg/python/python.go - MINGW64 Python interpreter checks and pip installs.

package python

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"syscall"

	version "github.com/hashicorp/go-version"

	"github.com/windowsadmins/devbootstrap/pkg/logging"
	"github.com/windowsadmins/devbootstrap/pkg/msys"
)

// Interpreter wraps the Python interpreter beneath an MSYS2 root.
type Interpreter struct {
	root msys.Root
}

// NewInterpreter creates an Interpreter for the given installation root.
func NewInterpreter(root msys.Root) *Interpreter {
	return &Interpreter{root: root}
}

// Exists reports whether the MINGW64 interpreter is present beneath the root.
// It is installed by the system stage, so absence usually means that stage
// has not run yet.
func (i *Interpreter) Exists() bool {
	info, err := os.Stat(i.root.PythonExe())
	return err == nil && !info.IsDir()
}

// Version queries the interpreter for its "major.minor" version identifier.
func (i *Interpreter) Version(ctx context.Context) (string, error) {
	cmd := exec.CommandContext(ctx, i.root.PythonExe(),
		"-c", "import sys; print('%d.%d' % sys.version_info[:2])")
	hideWindow(cmd)

	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to query Python version: %w", err)
	}

	ver := strings.TrimSpace(string(out))
	if _, err := ParseVersion(ver); err != nil {
		return "", err
	}
	return ver, nil
}

// ParseVersion validates a "major.minor" version string reported by the
// interpreter.
func ParseVersion(s string) (*version.Version, error) {
	v, err := version.NewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("unexpected Python version string %q: %w", s, err)
	}
	return v, nil
}

// CheckMinimum returns an error when the reported version is below minimum.
func CheckMinimum(reported, minimum string) error {
	rv, err := ParseVersion(reported)
	if err != nil {
		return err
	}
	mv, err := version.NewVersion(minimum)
	if err != nil {
		return fmt.Errorf("invalid minimum Python version %q: %w", minimum, err)
	}
	if rv.LessThan(mv) {
		return fmt.Errorf("Python %s is below the required minimum %s", reported, minimum)
	}
	return nil
}

// pipInstallArgs builds the argument list for a non-interactive pip install.
func pipInstallArgs(packages []string) []string {
	args := []string{"-m", "pip", "install", "--disable-pip-version-check"}
	return append(args, packages...)
}

// PipInstall installs the given packages in one synchronous pip call.
// Output is streamed to the console; a non-zero exit status is returned as
// an error and is not retried.
func (i *Interpreter) PipInstall(ctx context.Context, packages []string) error {
	if len(packages) == 0 {
		logging.Info("No pip packages to install")
		return nil
	}

	logging.Info("Installing Python packages", "count", len(packages), "python", i.root.PythonExe())

	cmd := exec.CommandContext(ctx, i.root.PythonExe(), pipInstallArgs(packages)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	hideWindow(cmd)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("pip install failed: %w", err)
	}

	logging.Info("Python packages installed", "count", len(packages))
	return nil
}

// hideWindow keeps child processes from popping up a console window.
func hideWindow(cmd *exec.Cmd) {
	if runtime.GOOS == "windows" {
		cmd.SysProcAttr = &syscall.SysProcAttr{HideWindow: true}
	}
}
