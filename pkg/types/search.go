// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the paper-harvester crawl.
// Candidate is a search hit for the length of one pagination pass; Paper is
// the metadata persisted next to a downloaded PDF.
package types

import "time"

// Candidate is one result returned by the arXiv search API. It lives only
// for the duration of a pagination pass.
type Candidate struct {
	// ID is the arXiv identifier without version suffix (e.g. "2501.01234").
	ID string `json:"id" yaml:"id"`

	// Title is the paper title with internal whitespace collapsed.
	Title string `json:"title" yaml:"title"`

	// Published is the source-assigned submission timestamp.
	Published time.Time `json:"published" yaml:"published"`

	// PDFURL is the link tagged as the PDF relation. Empty when the entry
	// carries no such link.
	PDFURL string `json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`
}

// HasPDF reports whether the candidate carries a PDF link.
func (c Candidate) HasPDF() bool {
	return c.PDFURL != ""
}
