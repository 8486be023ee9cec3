// pkg/msys/resolve.go - installation root resolution.

package msys

import (
	"errors"
	"fmt"

	"github.com/windowsadmins/devbootstrap/pkg/logging"
)

var (
	// ErrNotFound means auto-detection produced no candidate at all.
	ErrNotFound = errors.New("no MSYS2 installation found")

	// ErrInvalidRoot means auto-detection produced a candidate whose required
	// toolchain directory is missing.
	ErrInvalidRoot = errors.New("detected MSYS2 installation is missing the MINGW64 toolchain")
)

// Detector discovers an MSYS2 installation root in native form. An empty
// result with a nil error means nothing was found.
type Detector interface {
	Detect() (string, error)
}

// Resolve produces a validated installation root.
//
// A non-empty pre-set candidate that validates wins outright and skips
// detection; it is authoritative in automated runs. An invalid candidate is
// only a warning and falls through to auto-detection. Detection failures are
// terminal: either nothing was found (ErrNotFound) or the detected path is
// unusable (ErrInvalidRoot). Neither is retried.
func Resolve(candidate string, detector Detector) (Root, error) {
	if candidate != "" {
		root := NewRoot(candidate)
		if root.Validate() {
			logging.Info("Using pre-set MSYS2 root", "root", root.Path)
			return root, nil
		}
		logging.Warn("Pre-set MSYS2 root is invalid, falling back to auto-detection",
			"candidate", candidate)
	}

	detected, err := detector.Detect()
	if err != nil {
		return Root{}, fmt.Errorf("MSYS2 auto-detection failed: %w", err)
	}
	if detected == "" {
		return Root{}, ErrNotFound
	}

	root := NewRoot(detected)
	if !root.Validate() {
		return Root{}, fmt.Errorf("%w: %s", ErrInvalidRoot, root.Path)
	}

	logging.Info("Auto-detected MSYS2 root", "root", root.Path)
	return root, nil
}
