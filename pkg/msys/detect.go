// pkg/msys/detect.go - platform-level discovery of MSYS2 installations.

package msys

import (
	"os"
	"path/filepath"

	"golang.org/x/sys/windows/registry"

	"github.com/windowsadmins/devbootstrap/pkg/logging"
)

// uninstallKeys are the registry locations the MSYS2 installer writes its
// InstallLocation to, in preference order.
var uninstallKeys = []string{
	`SOFTWARE\Microsoft\Windows\CurrentVersion\Uninstall\MSYS2 64bit`,
	`SOFTWARE\WOW6432Node\Microsoft\Windows\CurrentVersion\Uninstall\MSYS2 64bit`,
}

// wellKnownLocations are checked when no registry entry exists, e.g. for
// installs unpacked from the self-extracting archive or placed by Chocolatey.
var wellKnownLocations = []string{
	`C:\msys64`,
	`C:\tools\msys64`,
}

// SystemDetector queries the Windows registry for the MSYS2 installer's
// uninstall entry and falls back to well-known installation locations.
type SystemDetector struct{}

// NewSystemDetector returns the default platform detector.
func NewSystemDetector() *SystemDetector {
	return &SystemDetector{}
}

// Detect returns the native path of an MSYS2 installation, or "" when none
// could be discovered. Only discovery errors are returned; an absent
// registry key is not an error.
func (d *SystemDetector) Detect() (string, error) {
	for _, keyPath := range uninstallKeys {
		if location := readInstallLocation(keyPath); location != "" {
			logging.Debug("Found MSYS2 registry entry", "key", keyPath, "location", location)
			return location, nil
		}
	}

	for _, location := range wellKnownLocations {
		if info, err := os.Stat(location); err == nil && info.IsDir() {
			logging.Debug("Found MSYS2 at well-known location", "location", location)
			return location, nil
		}
	}

	return "", nil
}

// readInstallLocation reads the InstallLocation value from an uninstall key,
// returning "" when the key or value is absent.
func readInstallLocation(keyPath string) string {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, keyPath, registry.READ)
	if err != nil {
		return ""
	}
	defer key.Close()

	location, _, err := key.GetStringValue("InstallLocation")
	if err != nil || location == "" {
		return ""
	}
	return filepath.Clean(location)
}
