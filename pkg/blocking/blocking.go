// pkg/blocking/blocking.go - refuses to touch an MSYS2 installation while it is in use.
//
// Running pacman while another pacman holds the database lock, or while an
// MSYS2 shell has toolchain DLLs mapped, corrupts the install in ways that
// are hard to diagnose. The system stage therefore scans the process table
// for executables living beneath the installation root before invoking
// pacman.

package blocking

import (
	"strings"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/windowsadmins/devbootstrap/pkg/logging"
	"github.com/windowsadmins/devbootstrap/pkg/msys"
)

// blockingNames are the process names that always block a package operation,
// wherever their executables live.
var blockingNames = []string{"pacman.exe"}

// RunningUnderRoot returns the names of processes whose executable lives
// beneath the installation root, plus any process from blockingNames.
func RunningUnderRoot(root msys.Root) []string {
	procs, err := process.Processes()
	if err != nil {
		logging.Error("Failed to get process list", "error", err)
		return nil
	}

	rootPrefix := strings.ToLower(root.Native)
	seen := make(map[string]bool)
	var running []string

	for _, proc := range procs {
		name, err := proc.Name()
		if err != nil {
			continue
		}
		lowerName := strings.ToLower(name)

		blocked := false
		for _, blocking := range blockingNames {
			if lowerName == blocking {
				blocked = true
				break
			}
		}

		if !blocked && rootPrefix != "" {
			exe, err := proc.Exe()
			if err == nil && strings.HasPrefix(strings.ToLower(exe), rootPrefix) {
				blocked = true
			}
		}

		if blocked && !seen[lowerName] {
			seen[lowerName] = true
			running = append(running, name)
		}
	}

	return running
}

// InstallationBusy reports whether the installation is currently in use and
// logs the offending processes.
func InstallationBusy(root msys.Root) bool {
	running := RunningUnderRoot(root)
	if len(running) == 0 {
		logging.Debug("No blocking processes found", "root", root.Path)
		return false
	}

	logging.Warn("MSYS2 installation is in use", "root", root.Path, "processes", strings.Join(running, ", "))
	return true
}
