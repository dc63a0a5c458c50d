// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package crawl

import "github.com/pdiddy/paper-harvester/pkg/types"

// Action is what the crawl does with one candidate.
type Action int

const (
	// Keep hands the candidate to the fetcher.
	Keep Action = iota
	// Skip moves on to the next candidate. Decision.Reason says why.
	Skip
	// Stop ends pagination: the stream is sorted, so nothing after this
	// candidate can match either.
	Stop
)

func (a Action) String() string {
	switch a {
	case Keep:
		return "keep"
	case Skip:
		return "skip"
	case Stop:
		return "stop"
	default:
		return "unknown"
	}
}

// Skip reasons.
const (
	ReasonMissingPDF = "missing PDF link"
	ReasonExists     = "already downloaded"
	ReasonNewer      = "newer than target year"
)

// Decision is the outcome of classifying a candidate.
type Decision struct {
	Action Action
	Reason string
}

// Filter classifies candidates for download.
type Filter interface {
	Classify(c types.Candidate) Decision
}

// DayFilter classifies results of a date-bounded query. The server already
// restricted the window, so only the PDF link matters.
type DayFilter struct{}

// Classify keeps candidates that carry a PDF link.
func (DayFilter) Classify(c types.Candidate) Decision {
	if !c.HasPDF() {
		return Decision{Action: Skip, Reason: ReasonMissingPDF}
	}
	return Decision{Action: Keep}
}

// YearFilter classifies results sorted newest first against a target year.
type YearFilter struct {
	Year int
}

// Classify stops at the first candidate older than the target year. Papers
// newer than the target year are skipped.
func (f YearFilter) Classify(c types.Candidate) Decision {
	switch y := c.Published.Year(); {
	case y < f.Year:
		return Decision{Action: Stop}
	case y > f.Year:
		return Decision{Action: Skip, Reason: ReasonNewer}
	}
	return DayFilter{}.Classify(c)
}
