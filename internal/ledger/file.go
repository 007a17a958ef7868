package ledger

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileLedger is a Ledger backed by a plain-text file, one stage name per
// line. Lookups are line-exact. I/O errors other than a missing file are
// returned to the caller; provisioning must never guess at completion state.
type FileLedger struct {
	path string
}

// NewFileLedger creates a ledger backed by the file at path. The file is
// not created until the first MarkComplete.
func NewFileLedger(path string) *FileLedger {
	return &FileLedger{path: path}
}

// Path returns the backing file path.
func (l *FileLedger) Path() string {
	return l.path
}

// IsComplete implements Ledger.
func (l *FileLedger) IsComplete(name string) (bool, error) {
	names, err := l.Completed()
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// MarkComplete implements Ledger. The record is appended unconditionally.
func (l *FileLedger) MarkComplete(name string) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0o755); err != nil {
		return fmt.Errorf("failed to create ledger directory: %w", err)
	}

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}

	_, writeErr := fmt.Fprintln(f, name)
	closeErr := f.Close()

	if writeErr != nil {
		return fmt.Errorf("failed to append to ledger: %w", writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close ledger: %w", closeErr)
	}
	return nil
}

// Completed implements Ledger.
func (l *FileLedger) Completed() ([]string, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	defer func() { _ = f.Close() }()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	return names, nil
}
