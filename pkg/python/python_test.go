package python

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/windowsadmins/devbootstrap/pkg/msys"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		in      string
		wantErr bool
	}{
		{"3.12", false},
		{"3.9", false},
		{"3", false},
		{"", true},
		{"Python 3.12", true},
		{"not-a-version", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			_, err := ParseVersion(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseVersion(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
		})
	}
}

func TestCheckMinimum(t *testing.T) {
	tests := []struct {
		name     string
		reported string
		minimum  string
		wantErr  bool
	}{
		{"above minimum", "3.12", "3.9", false},
		{"equal to minimum", "3.9", "3.9", false},
		{"below minimum", "3.8", "3.9", true},
		{"two-digit minor compares numerically", "3.10", "3.9", false},
		{"garbage reported", "three", "3.9", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckMinimum(tt.reported, tt.minimum)
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckMinimum(%q, %q) error = %v, wantErr %v",
					tt.reported, tt.minimum, err, tt.wantErr)
			}
		})
	}
}

func TestPipInstallArgs(t *testing.T) {
	args := pipInstallArgs([]string{"pyserial", "pyyaml"})
	want := []string{"-m", "pip", "install", "--disable-pip-version-check", "pyserial", "pyyaml"}
	if len(args) != len(want) {
		t.Fatalf("pipInstallArgs() = %v, want %v", args, want)
	}
	for i := range want {
		if args[i] != want[i] {
			t.Errorf("pipInstallArgs()[%d] = %q, want %q", i, args[i], want[i])
		}
	}
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	interp := NewInterpreter(msys.NewRoot(dir))
	if interp.Exists() {
		t.Error("Exists() = true with no interpreter present")
	}

	binDir := filepath.Join(dir, "mingw64", "bin")
	if err := os.MkdirAll(binDir, 0755); err != nil {
		t.Fatalf("MkdirAll() error: %v", err)
	}
	if err := os.WriteFile(filepath.Join(binDir, "python.exe"), []byte{}, 0755); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	if !interp.Exists() {
		t.Error("Exists() = false with interpreter present")
	}
}
