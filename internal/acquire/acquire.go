// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire materializes search candidates as PDF files on disk.
// The existence of a file with the derived name is the only record that a
// paper has been downloaded.
package acquire

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-harvester/internal/httputil"
	"github.com/pdiddy/paper-harvester/pkg/types"
)

// MetaDir is the hidden subdirectory of the papers directory holding one
// YAML sidecar per downloaded PDF.
const MetaDir = ".meta"

// Status is the outcome of materializing one candidate.
type Status int

const (
	// Downloaded means the PDF was fetched and written.
	Downloaded Status = iota
	// Exists means a file with the derived name was already present.
	Exists
	// Failed means the download could not be completed.
	Failed
)

func (s Status) String() string {
	switch s {
	case Downloaded:
		return "downloaded"
	case Exists:
		return "exists"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Outcome reports what Materialize did for one candidate.
type Outcome struct {
	Status Status
	Path   string
	Err    error
}

// Fetcher downloads candidate PDFs into Dir.
type Fetcher struct {
	Client    *http.Client
	Dir       string
	UserAgent string
	// RunID is recorded in sidecar metadata.
	RunID string
	// Throttle spaces consecutive downloads. Nil means no delay.
	Throttle *httputil.Throttle
	// Now stamps sidecar metadata. Defaults to time.Now.
	Now func() time.Time
}

// EnsureDir creates the papers directory if it does not exist.
func (f *Fetcher) EnsureDir() error {
	if err := os.MkdirAll(f.Dir, 0o755); err != nil {
		return fmt.Errorf("creating directory %s: %w", f.Dir, err)
	}
	return nil
}

// Has reports whether the PDF for a paper with this prefix and title is
// already on disk.
func (f *Fetcher) Has(prefix, title string) bool {
	_, err := os.Stat(filepath.Join(f.Dir, Filename(prefix, title)))
	return err == nil
}

// Materialize writes the candidate's PDF to Dir under Filename(prefix, title)
// unless that file already exists. Download failures are reported in the
// Outcome and logged to w; they are never returned as fatal errors.
func (f *Fetcher) Materialize(ctx context.Context, c types.Candidate, prefix string, w io.Writer) Outcome {
	name := Filename(prefix, c.Title)
	path := filepath.Join(f.Dir, name)

	if _, err := os.Stat(path); err == nil {
		fmt.Fprintf(w, "  skipped: %q (already exists)\n", c.Title)
		return Outcome{Status: Exists, Path: path}
	}

	if err := f.Throttle.Wait(ctx); err != nil {
		return Outcome{Status: Failed, Path: path, Err: err}
	}

	fmt.Fprintf(w, "  downloading: %q (%s)\n", c.Title, c.ID)
	if err := f.download(ctx, c.PDFURL, path); err != nil {
		fmt.Fprintf(w, "  failed: %q: %v\n", c.Title, err)
		return Outcome{Status: Failed, Path: path, Err: err}
	}
	fmt.Fprintf(w, "  saved: %s\n", name)

	if err := f.writeMetadata(c, path); err != nil {
		fmt.Fprintf(w, "  warning: metadata for %s not written: %v\n", name, err)
	}
	return Outcome{Status: Downloaded, Path: path}
}

// download fetches url to destPath through a temporary file in the same
// directory, so a reader never sees a partial PDF under the final name.
func (f *Fetcher) download(ctx context.Context, url, destPath string) error {
	resp, err := httputil.Get(ctx, f.Client, url, f.UserAgent, "application/pdf")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	tmpFile, err := os.CreateTemp(filepath.Dir(destPath), ".acquire-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, copyErr := io.Copy(tmpFile, resp.Body)
	closeErr := tmpFile.Close()
	if copyErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing download: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// MetadataPath returns the sidecar path for a PDF in dir.
func MetadataPath(dir, pdfName string) string {
	return filepath.Join(dir, MetaDir, strings.TrimSuffix(pdfName, filepath.Ext(pdfName))+".yaml")
}

func (f *Fetcher) writeMetadata(c types.Candidate, pdfPath string) error {
	now := time.Now
	if f.Now != nil {
		now = f.Now
	}
	p := types.Paper{
		ID:           c.ID,
		Title:        c.Title,
		Published:    c.Published,
		SourceURL:    c.PDFURL,
		PDFPath:      pdfPath,
		RunID:        f.RunID,
		DownloadedAt: now().UTC(),
	}
	metaPath := MetadataPath(f.Dir, filepath.Base(pdfPath))
	if err := os.MkdirAll(filepath.Dir(metaPath), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(&p)
	if err != nil {
		return fmt.Errorf("marshaling metadata: %w", err)
	}
	return os.WriteFile(metaPath, data, 0o644)
}

// ReadMetadata reads the sidecar for a PDF in dir.
func ReadMetadata(dir, pdfName string) (*types.Paper, error) {
	data, err := os.ReadFile(MetadataPath(dir, pdfName))
	if err != nil {
		return nil, err
	}
	var paper types.Paper
	if err := yaml.Unmarshal(data, &paper); err != nil {
		return nil, err
	}
	return &paper, nil
}
