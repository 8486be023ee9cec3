// pkg/msys/root.go - the MSYS2 installation root and its derived paths.

package msys

import (
	"os"
	"path/filepath"
	"strings"
)

// requiredSubdir is the toolchain binary directory that must exist beneath a
// path for it to count as a usable MINGW64 installation root.
const requiredSubdir = "mingw64/bin"

// Root is a validated MSYS2 installation root. Path holds the normalized
// MSYS-style form used in the environment file (/c/msys64); Native holds the
// platform form used when invoking executables beneath the root.
type Root struct {
	Path   string
	Native string
}

// NewRoot builds a Root from a candidate path in either form. It does not
// validate; see Validate.
func NewRoot(candidate string) Root {
	return Root{
		Path:   Normalize(candidate),
		Native: NativePath(candidate),
	}
}

// Normalize converts a Windows-native path into the MSYS-style form expected
// by the rest of the toolchain: backslashes become forward slashes and a
// drive-letter prefix becomes a single-letter mount prefix (C:\msys64 ->
// /c/msys64). Already-normalized input is returned unchanged, so the
// transform is idempotent.
func Normalize(path string) string {
	p := strings.ReplaceAll(path, `\`, "/")
	if len(p) >= 2 && p[1] == ':' && isDriveLetter(p[0]) {
		p = "/" + strings.ToLower(string(p[0])) + p[2:]
	}
	return strings.TrimRight(p, "/")
}

// NativePath converts an MSYS-style path back into the Windows-native form
// (/c/msys64 -> C:\msys64). Paths without a single-letter mount prefix are
// returned with separators restored but otherwise untouched.
func NativePath(path string) string {
	p := strings.ReplaceAll(path, `\`, "/")
	if len(p) >= 2 && p[0] == '/' && isDriveLetter(p[1]) && (len(p) == 2 || p[2] == '/') {
		p = strings.ToUpper(string(p[1])) + ":" + p[2:]
	}
	return strings.TrimRight(filepath.FromSlash(p), string(filepath.Separator))
}

func isDriveLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Validate reports whether the root contains the required toolchain binary
// directory. This is the single validity criterion for an installation root,
// regardless of whether the root was pre-set or auto-detected.
func (r Root) Validate() bool {
	info, err := os.Stat(filepath.Join(r.Native, filepath.FromSlash(requiredSubdir)))
	return err == nil && info.IsDir()
}

// PkgConfigPath returns the pkg-config metadata search path beneath the root.
func (r Root) PkgConfigPath() string {
	return r.Path + "/mingw64/lib/pkgconfig"
}

// TypelibPath returns the GObject introspection typelib search path.
func (r Root) TypelibPath() string {
	return r.Path + "/mingw64/lib/girepository-1.0"
}

// LibraryPath returns the runtime shared-library search path.
func (r Root) LibraryPath() string {
	return r.Path + "/mingw64/lib"
}

// SitePackagesPath returns the interpreter module search path for the given
// "major.minor" Python version.
func (r Root) SitePackagesPath(pythonVersion string) string {
	return r.Path + "/mingw64/lib/python" + pythonVersion + "/site-packages"
}

// PacmanExe returns the native path of the pacman executable beneath the root.
func (r Root) PacmanExe() string {
	return filepath.Join(r.Native, "usr", "bin", "pacman.exe")
}

// PythonExe returns the native path of the MINGW64 Python interpreter.
func (r Root) PythonExe() string {
	return filepath.Join(r.Native, "mingw64", "bin", "python.exe")
}
