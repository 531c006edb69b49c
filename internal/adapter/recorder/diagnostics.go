package recorder

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// DiagnosticDir implements usecase.DiagnosticStore as PNG files in one directory.
type DiagnosticDir struct {
	dir string
	now func() time.Time
}

// NewDiagnosticDir creates dir when needed.
func NewDiagnosticDir(dir string) (*DiagnosticDir, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create diagnostics dir: %w", err)
	}
	return &DiagnosticDir{dir: dir, now: time.Now}, nil
}

// Dir returns the directory snapshots are written to.
func (d *DiagnosticDir) Dir() string {
	return d.dir
}

// Save writes png as "<code>-<timestamp>.png" and returns that file name.
func (d *DiagnosticDir) Save(code string, png []byte) (string, error) {
	safe := unsafeName.ReplaceAllString(code, "_")
	if safe == "" {
		safe = "record"
	}
	name := fmt.Sprintf("%s-%s.png", safe, d.now().Format("20060102-150405"))

	if err := os.WriteFile(filepath.Join(d.dir, name), png, 0o644); err != nil {
		return "", fmt.Errorf("write screenshot: %w", err)
	}
	return name, nil
}
