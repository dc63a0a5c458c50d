// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ledger records which calendar days a crawl has fully processed.
// The backing store is a plain-text file with one YYYY-MM-DD per line,
// only ever appended to. Re-processing a day means editing the file by hand.
package ledger

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/paper-harvester/pkg/types"
)

// Ledger is the append-only log of processed days.
type Ledger struct {
	path string
	w    io.Writer
}

// Open returns a ledger backed by path. Diagnostics about malformed lines
// go to w. The file is not touched until Load or Mark.
func Open(path string, w io.Writer) *Ledger {
	if w == nil {
		w = io.Discard
	}
	return &Ledger{path: path, w: w}
}

// Path returns the backing file path.
func (l *Ledger) Path() string { return l.path }

// Key formats day as a ledger key.
func Key(day time.Time) string {
	return day.UTC().Format(types.DateLayout)
}

// Load returns the set of processed day keys. A missing file is an empty
// set. Lines that are not valid dates are skipped with a warning.
func (l *Ledger) Load() (map[string]bool, error) {
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return map[string]bool{}, nil
		}
		return nil, fmt.Errorf("opening progress log: %w", err)
	}
	defer f.Close()

	days := make(map[string]bool)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if _, err := time.Parse(types.DateLayout, line); err != nil {
			fmt.Fprintf(l.w, "warning: %s:%d: ignoring malformed entry %q\n", l.path, lineNo, line)
			continue
		}
		days[line] = true
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading progress log: %w", err)
	}
	return days, nil
}

// Mark appends day to the log. The file is closed before Mark returns, so
// the entry is flushed before the caller moves on to the next day.
func (l *Ledger) Mark(day time.Time) error {
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating progress log directory: %w", err)
		}
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening progress log: %w", err)
	}
	if _, err := fmt.Fprintln(f, Key(day)); err != nil {
		f.Close()
		return fmt.Errorf("appending to progress log: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing progress log: %w", err)
	}
	return nil
}

// Days returns the processed day keys in ascending order.
func (l *Ledger) Days() ([]string, error) {
	set, err := l.Load()
	if err != nil {
		return nil, err
	}
	days := make([]string, 0, len(set))
	for d := range set {
		days = append(days, d)
	}
	sort.Strings(days)
	return days, nil
}
