// pkg/sysinfo/sysinfo.go - system facts gathered over WMI.
//
// The bootstrap only supports x64 Windows hosts because the package set is
// built for the MINGW64 environment. The facts are gathered once at startup,
// logged, and used to refuse unsupported hosts before anything is written.

package sysinfo

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/yusufpapurcu/wmi"
)

type win32OperatingSystem struct {
	Caption        string
	Version        string
	OSArchitecture string
}

type win32ComputerSystem struct {
	Manufacturer string
	Model        string
}

// Facts contains the host information relevant to a bootstrap run.
type Facts struct {
	Hostname     string
	OSName       string
	OSVersion    string
	Architecture string
	Manufacturer string
	Model        string
}

// Gather collects host facts. WMI failures degrade to the information the
// runtime provides instead of failing the run.
func Gather() Facts {
	hostname, _ := os.Hostname()
	facts := Facts{
		Hostname:     hostname,
		Architecture: GetSystemArchitecture(),
	}

	var osInfo []win32OperatingSystem
	if err := wmi.Query("SELECT Caption, Version, OSArchitecture FROM Win32_OperatingSystem", &osInfo); err == nil && len(osInfo) > 0 {
		facts.OSName = strings.TrimSpace(osInfo[0].Caption)
		facts.OSVersion = osInfo[0].Version
	}

	var systems []win32ComputerSystem
	if err := wmi.Query("SELECT Manufacturer, Model FROM Win32_ComputerSystem", &systems); err == nil && len(systems) > 0 {
		facts.Manufacturer = strings.TrimSpace(systems[0].Manufacturer)
		facts.Model = strings.TrimSpace(systems[0].Model)
	}

	return facts
}

// GetSystemArchitecture maps the Go runtime architecture onto the names used
// for Windows package targeting.
func GetSystemArchitecture() string {
	switch runtime.GOARCH {
	case "amd64":
		return "x64"
	case "386":
		return "x86"
	default:
		return runtime.GOARCH
	}
}

// CheckSupported returns an error when the host cannot run the MINGW64
// toolchain this bootstrap installs.
func CheckSupported(facts Facts) error {
	if facts.Architecture != "x64" {
		return fmt.Errorf("unsupported architecture %s: the MINGW64 package set requires x64", facts.Architecture)
	}
	return nil
}

// String renders the facts for a startup log line.
func (f Facts) String() string {
	parts := []string{f.Hostname, f.OSName, f.OSVersion, f.Architecture}
	if f.Model != "" {
		parts = append(parts, f.Manufacturer+" "+f.Model)
	}
	return strings.Join(parts, " | ")
}
