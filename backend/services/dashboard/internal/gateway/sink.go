package gateway

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DirSink saves downloads as files in Dir.
type DirSink struct {
	Dir string

	// Saved is the path of the last file written.
	Saved string
}

// Save implements Sink.
func (s *DirSink) Save(filename, _ string, body []byte) error {
	if filename == "" || filepath.Base(filename) != filename {
		return fmt.Errorf("gateway: refusing to save %q outside %s", filename, s.Dir)
	}
	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("gateway: create %s: %w", dir, err)
	}
	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return fmt.Errorf("gateway: write %s: %w", path, err)
	}
	s.Saved = path
	return nil
}

// ErrNothingSaved is reported by callers that expected a download and got none.
var ErrNothingSaved = errors.New("gateway: export produced no file")
