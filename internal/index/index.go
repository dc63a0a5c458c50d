// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package index regenerates the Markdown README that lists every downloaded
// paper, newest first.
package index

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/paper-harvester/internal/acquire"
	"github.com/pdiddy/paper-harvester/pkg/types"
)

const (
	fileDateLayout  = "20060102"
	entryDateLayout = "2006-01-02"
	updatedLayout   = "2006-01-02 15:04:05"
)

// Entry is one line of the generated list.
type Entry struct {
	Filename string
	Date     time.Time
	Title    string
}

// Line renders the entry as a Markdown bullet.
func (e Entry) Line() string {
	return fmt.Sprintf("- **%s**: %s", e.Date.Format(entryDateLayout), e.Title)
}

// ParseFilename recovers date and title from a "YYYYMMDD_Title.pdf" name.
// The name is split on the first underscore, so a title containing
// underscores survives intact.
func ParseFilename(name string) (Entry, error) {
	prefix, rest, ok := strings.Cut(name, "_")
	if !ok {
		return Entry{}, fmt.Errorf("no underscore separator")
	}
	date, err := time.Parse(fileDateLayout, prefix)
	if err != nil {
		return Entry{}, fmt.Errorf("prefix %q is not a YYYYMMDD date", prefix)
	}
	return Entry{
		Filename: name,
		Date:     date,
		Title:    strings.TrimSuffix(rest, filepath.Ext(rest)),
	}, nil
}

// Scan lists the PDFs in dir sorted by filename descending. Date and title
// come from the sidecar metadata when present, otherwise from the filename.
// Files with neither are reported to w and left out.
func Scan(dir string, w io.Writer) ([]Entry, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, de := range dirEntries {
		if de.IsDir() || !strings.HasSuffix(de.Name(), ".pdf") {
			continue
		}
		names = append(names, de.Name())
	}
	sort.Sort(sort.Reverse(sort.StringSlice(names)))

	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		if p, err := acquire.ReadMetadata(dir, name); err == nil && p.Title != "" && !p.Published.IsZero() {
			entries = append(entries, Entry{Filename: name, Date: p.Published.UTC(), Title: p.Title})
			continue
		}
		e, err := ParseFilename(name)
		if err != nil {
			fmt.Fprintf(w, "Skipping malformed filename: %s (%v)\n", name, err)
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// Generate builds the README text for the papers in cfg.PapersDir. now is
// printed as the last-updated timestamp.
func Generate(cfg types.IndexConfig, now time.Time, w io.Writer) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", cfg.Title)
	if cfg.Description != "" {
		fmt.Fprintf(&b, "%s\n\n", cfg.Description)
	}
	fmt.Fprintf(&b, "Last updated: %s\n\n", now.Format(updatedLayout))
	b.WriteString("---\n\n")

	entries, err := Scan(cfg.PapersDir, w)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(w, "warning: directory %q not found\n", cfg.PapersDir)
			fmt.Fprintf(&b, "No papers found yet. The '%s' directory is missing.", cfg.PapersDir)
			return b.String(), nil
		}
		return "", fmt.Errorf("listing %s: %w", cfg.PapersDir, err)
	}
	if len(entries) == 0 {
		fmt.Fprintf(&b, "No papers found in the '%s' directory.", cfg.PapersDir)
		return b.String(), nil
	}

	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.Line()
	}
	b.WriteString(strings.Join(lines, "\n"))
	b.WriteString("\n")
	return b.String(), nil
}

// Write regenerates cfg.ReadmePath, replacing it through a temporary file.
func Write(cfg types.IndexConfig, now time.Time, w io.Writer) error {
	content, err := Generate(cfg, now, w)
	if err != nil {
		return err
	}

	dir := filepath.Dir(cfg.ReadmePath)
	tmpFile, err := os.CreateTemp(dir, ".readme-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.WriteString(content)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", cfg.ReadmePath, writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, cfg.ReadmePath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	fmt.Fprintf(w, "Updated %s (%d bytes).\n", cfg.ReadmePath, len(content))
	return nil
}
