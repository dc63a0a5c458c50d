// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// Paper holds metadata for a downloaded PDF. It is written as a YAML sidecar
// so the index generator can recover the title without parsing filenames.
type Paper struct {
	// ID is the arXiv identifier (e.g. "2501.01234").
	ID string `json:"id" yaml:"id"`

	// Title is the title as returned by the search API, before sanitization.
	Title string `json:"title" yaml:"title"`

	// Published is the submission timestamp from the search API.
	Published time.Time `json:"published" yaml:"published"`

	// SourceURL is the URL the PDF was downloaded from.
	SourceURL string `json:"source_url" yaml:"source_url"`

	// PDFPath is the local filesystem path to the downloaded PDF.
	PDFPath string `json:"pdf_path" yaml:"pdf_path"`

	// RunID identifies the crawl run that downloaded the file.
	RunID string `json:"run_id,omitempty" yaml:"run_id,omitempty"`

	// DownloadedAt is when the file was written.
	DownloadedAt time.Time `json:"downloaded_at" yaml:"downloaded_at"`
}
