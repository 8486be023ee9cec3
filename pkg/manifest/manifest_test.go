package manifest

import "testing"

func TestDefault(t *testing.T) {
	set, err := Default()
	if err != nil {
		t.Fatalf("Default() error: %v", err)
	}
	if len(set.Pacman) == 0 {
		t.Error("Default() pacman list is empty")
	}
	if len(set.Pip) == 0 {
		t.Error("Default() pip list is empty")
	}
	for _, pkg := range set.Pacman {
		if pkg == "" {
			t.Error("Default() pacman list contains empty entry")
		}
	}
}

func TestMerge(t *testing.T) {
	base := PackageSet{
		Pacman: []string{"mingw-w64-x86_64-gcc"},
		Pip:    []string{"pyserial"},
	}

	t.Run("empty overrides keep defaults", func(t *testing.T) {
		merged := base.Merge(nil, nil)
		if len(merged.Pacman) != 1 || merged.Pacman[0] != "mingw-w64-x86_64-gcc" {
			t.Errorf("Merge(nil, nil).Pacman = %v", merged.Pacman)
		}
		if len(merged.Pip) != 1 || merged.Pip[0] != "pyserial" {
			t.Errorf("Merge(nil, nil).Pip = %v", merged.Pip)
		}
	})

	t.Run("overrides replace lists", func(t *testing.T) {
		merged := base.Merge([]string{"mingw-w64-x86_64-rust"}, []string{"requests"})
		if len(merged.Pacman) != 1 || merged.Pacman[0] != "mingw-w64-x86_64-rust" {
			t.Errorf("Merge().Pacman = %v", merged.Pacman)
		}
		if len(merged.Pip) != 1 || merged.Pip[0] != "requests" {
			t.Errorf("Merge().Pip = %v", merged.Pip)
		}
	})

	t.Run("base is not mutated", func(t *testing.T) {
		base.Merge([]string{"x"}, []string{"y"})
		if base.Pacman[0] != "mingw-w64-x86_64-gcc" {
			t.Errorf("Merge mutated base: %v", base.Pacman)
		}
	})
}
