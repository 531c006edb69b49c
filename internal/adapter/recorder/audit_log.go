package recorder

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"github.com/Thesaidctm/automate/internal/domain"
)

var auditHeader = []string{"id", "value", "status", "message"}

// AuditLog implements usecase.OutcomeRecorder as a semicolon-separated file. Lines are
// only ever appended, one per outcome, so the file can be inspected mid-run.
type AuditLog struct {
	mu   sync.Mutex
	path string
}

// OpenAuditLog returns the log at path, creating it with its header when absent.
func OpenAuditLog(path string) (*AuditLog, error) {
	l := &AuditLog{path: path}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("create audit log: %w", err)
	}

	if err := writeLine(f, auditHeader); err != nil {
		f.Close()
		return nil, fmt.Errorf("write audit header: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close audit log: %w", err)
	}
	return l, nil
}

// Path returns the file the log appends to.
func (l *AuditLog) Path() string {
	return l.path
}

func (l *AuditLog) Record(_ context.Context, outcome domain.Outcome) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open audit log: %w", err)
	}

	err = writeLine(f, []string{
		outcome.Code,
		domain.FormatAmount(outcome.Target),
		string(outcome.Status),
		outcome.Message,
	})
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("append audit log: %w", err)
	}
	return nil
}

func writeLine(f *os.File, fields []string) error {
	w := csv.NewWriter(f)
	w.Comma = ';'
	if err := w.Write(fields); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
