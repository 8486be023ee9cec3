package blocking

import (
	"testing"

	"github.com/windowsadmins/devbootstrap/pkg/msys"
)

func TestRunningUnderRootEmptyForUnusedRoot(t *testing.T) {
	// Nothing can be running beneath a directory that was just created.
	root := msys.NewRoot(t.TempDir())
	for _, name := range RunningUnderRoot(root) {
		if name != "pacman.exe" {
			t.Errorf("unexpected blocking process %q for unused root", name)
		}
	}
}

func TestInstallationBusyUnusedRoot(t *testing.T) {
	root := msys.NewRoot(t.TempDir())
	// A fresh temp dir can only be busy if a global pacman process exists,
	// which would also make this test environment unable to run pacman tests.
	if InstallationBusy(root) {
		t.Skip("a pacman process is running on the test host")
	}
}
