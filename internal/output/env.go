package output

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Snapshot collects the values later pipeline steps consume. Keys keep
// insertion order so the persisted file stays readable.
type Snapshot struct {
	keys   []string
	values map[string]string
}

func NewSnapshot() *Snapshot {
	return &Snapshot{values: make(map[string]string)}
}

func (s *Snapshot) Set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Persist appends export lines to path, the CircleCI BASH_ENV file that
// later steps source before running.
func (s *Snapshot) Persist(path string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening env file: %w", err)
	}
	defer f.Close()

	for _, key := range s.keys {
		if _, err := fmt.Fprintf(f, "export %s='%s'\n", key, shellQuote(s.values[key])); err != nil {
			return fmt.Errorf("writing env file: %w", err)
		}
	}
	return nil
}

// Print writes KEY=value lines, for running outside a CI environment.
func (s *Snapshot) Print(w io.Writer) {
	for _, key := range s.keys {
		fmt.Fprintf(w, "%s=%s\n", key, s.values[key])
	}
}

// shellQuote escapes a value for a single-quoted shell string.
func shellQuote(value string) string {
	return strings.ReplaceAll(value, "'", `'\''`)
}
