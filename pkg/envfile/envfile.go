// pkg/envfile/envfile.go - persisted KEY=VALUE environment file shared between stages.
//
// The file is the only state carried between independently invoked stages:
// the system stage writes the resolved installation root and its derived
// search paths, and the python stage re-loads them before adding the
// interpreter module path. The file is modeled as an ordered key/value map
// and fully rewritten on every save, so repeated runs replace values instead
// of accumulating stale lines.

package envfile

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Store holds the key/value pairs of an environment file, preserving the
// order in which keys were first set.
type Store struct {
	path   string
	keys   []string
	values map[string]string
}

// New creates an empty Store bound to the given file path.
func New(path string) *Store {
	return &Store{
		path:   path,
		values: make(map[string]string),
	}
}

// Load reads an existing environment file. A missing file is an error: the
// python stage depends on the system stage having written it first.
func Load(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("environment file does not exist: %s", path)
		}
		return nil, fmt.Errorf("failed to open environment file: %w", err)
	}
	defer f.Close()

	s := New(path)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, found := strings.Cut(line, "=")
		if !found || strings.TrimSpace(key) == "" {
			return nil, fmt.Errorf("malformed line %d in %s: %q", lineNo, path, line)
		}
		s.Set(strings.TrimSpace(key), value)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read environment file: %w", err)
	}

	return s, nil
}

// Path returns the file path this store is bound to.
func (s *Store) Path() string {
	return s.path
}

// Set stores a value for key. Setting an existing key replaces its value
// in place and keeps its original position.
func (s *Store) Set(key, value string) {
	if _, exists := s.values[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Get returns the value for key and whether it was present.
func (s *Store) Get(key string) (string, bool) {
	value, ok := s.values[key]
	return value, ok
}

// Keys returns the keys in insertion order.
func (s *Store) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	return len(s.keys)
}

// Save truncates and rewrites the environment file, one KEY=VALUE pair per
// line in insertion order.
func (s *Store) Save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create environment file directory: %w", err)
	}

	var b strings.Builder
	for _, key := range s.keys {
		fmt.Fprintf(&b, "%s=%s\n", key, s.values[key])
	}

	if err := os.WriteFile(s.path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("failed to write environment file: %w", err)
	}
	return nil
}
