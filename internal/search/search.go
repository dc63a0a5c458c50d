// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package search pages through the arXiv search API and turns each result
// page into a sequence of candidate records.
package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pdiddy/paper-harvester/pkg/types"
)

// ErrAPI marks failures talking to the search API: transport errors,
// unexpected status codes, and undecodable feeds. A crawl pass treats these
// as fatal.
var ErrAPI = errors.New("search API failure")

// submittedLayout is the timestamp format of submittedDate range clauses.
const submittedLayout = "20060102150405"

// Query is a keyword expression optionally restricted to a submission window.
// The zero window means no restriction.
type Query struct {
	Base string
	From time.Time
	To   time.Time
}

// DayQuery restricts base to submissions on the UTC calendar day of day.
func DayQuery(base string, day time.Time) Query {
	y, m, d := day.Date()
	from := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return Query{
		Base: base,
		From: from,
		To:   from.Add(24*time.Hour - time.Second),
	}
}

// HasWindow reports whether the query carries a submission window.
func (q Query) HasWindow() bool {
	return !q.From.IsZero() && !q.To.IsZero()
}

// String renders the search_query parameter. With a window the base
// expression is parenthesized and ANDed with a submittedDate range.
func (q Query) String() string {
	if !q.HasWindow() {
		return q.Base
	}
	return fmt.Sprintf("(%s) AND submittedDate:[%s TO %s]",
		q.Base, q.From.UTC().Format(submittedLayout), q.To.UTC().Format(submittedLayout))
}

// Order is the submission-date sort direction of a page request.
type Order string

const (
	Ascending  Order = "ascending"
	Descending Order = "descending"
)

// Page describes one page request.
type Page struct {
	Query Query
	Start int
	Size  int
	Order Order
}

// Next returns the request for the page following one that returned n records.
func (p Page) Next(n int) Page {
	p.Start += n
	return p
}

// Pager fetches one page of candidates, sorted by submission time in the
// requested order.
type Pager interface {
	FetchPage(ctx context.Context, page Page) ([]types.Candidate, error)
}

// Paced is implemented by pagers that space their own requests.
// RestartInterval makes the next request wait a full interval from now, so a
// pause taken by the caller adds to the page interval instead of absorbing it.
type Paced interface {
	RestartInterval()
}

// LastPage reports whether a page of n records answering a request for size
// records is the final one. A short page means the server has nothing more.
func LastPage(n, size int) bool {
	return n == 0 || n < size
}
