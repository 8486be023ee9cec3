package sysinfo

import (
	"runtime"
	"strings"
	"testing"
)

func TestGetSystemArchitecture(t *testing.T) {
	got := GetSystemArchitecture()
	switch runtime.GOARCH {
	case "amd64":
		if got != "x64" {
			t.Errorf("GetSystemArchitecture() = %q, want x64", got)
		}
	case "386":
		if got != "x86" {
			t.Errorf("GetSystemArchitecture() = %q, want x86", got)
		}
	default:
		if got != runtime.GOARCH {
			t.Errorf("GetSystemArchitecture() = %q, want %q", got, runtime.GOARCH)
		}
	}
}

func TestCheckSupported(t *testing.T) {
	if err := CheckSupported(Facts{Architecture: "x64"}); err != nil {
		t.Errorf("CheckSupported(x64) error: %v", err)
	}
	if err := CheckSupported(Facts{Architecture: "arm64"}); err == nil {
		t.Error("CheckSupported(arm64): expected error, got nil")
	}
	if err := CheckSupported(Facts{Architecture: "x86"}); err == nil {
		t.Error("CheckSupported(x86): expected error, got nil")
	}
}

func TestFactsString(t *testing.T) {
	f := Facts{
		Hostname:     "dev-01",
		OSName:       "Microsoft Windows 11 Pro",
		OSVersion:    "10.0.26100",
		Architecture: "x64",
	}
	s := f.String()
	if s == "" {
		t.Fatal("String() is empty")
	}
	for _, want := range []string{"dev-01", "x64", "10.0.26100"} {
		if !strings.Contains(s, want) {
			t.Errorf("String() = %q, missing %q", s, want)
		}
	}
}
