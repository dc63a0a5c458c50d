// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mmcdole/gofeed/atom"

	"github.com/pdiddy/paper-harvester/internal/httputil"
	"github.com/pdiddy/paper-harvester/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

const publishedLayout = "2006-01-02T15:04:05Z"

// ArxivClient fetches result pages from the arXiv API. Every request first
// waits on Throttle so successive calls honour the API's fair-use interval.
type ArxivClient struct {
	// BaseURL overrides the API endpoint when non-empty.
	BaseURL   string
	Client    *http.Client
	Throttle  *httputil.Throttle
	UserAgent string
}

var (
	_ Pager = (*ArxivClient)(nil)
	_ Paced = (*ArxivClient)(nil)
)

// NewArxivClient returns a client that spaces page requests by interval.
func NewArxivClient(client *http.Client, interval time.Duration, userAgent string) *ArxivClient {
	return &ArxivClient{
		Client:    client,
		Throttle:  httputil.NewThrottle(interval),
		UserAgent: userAgent,
	}
}

// FetchPage requests one page sorted by submission date and decodes it.
// Transport, status, and decode failures wrap ErrAPI and are not retried.
func (c *ArxivClient) FetchPage(ctx context.Context, page Page) ([]types.Candidate, error) {
	if err := c.Throttle.Wait(ctx); err != nil {
		return nil, err
	}

	resp, err := httputil.Get(ctx, c.Client, c.pageURL(page), c.UserAgent, "application/atom+xml")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrAPI, err)
	}
	defer resp.Body.Close()

	feed, err := (&atom.Parser{}).Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing arXiv response: %v", ErrAPI, err)
	}

	candidates := make([]types.Candidate, 0, len(feed.Entries))
	for _, entry := range feed.Entries {
		cand, err := candidateFromEntry(entry)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAPI, err)
		}
		candidates = append(candidates, cand)
	}
	return candidates, nil
}

// RestartInterval makes the next FetchPage wait a full page interval from
// now.
func (c *ArxivClient) RestartInterval() {
	c.Throttle.Restart()
}

// pageURL builds the query URL for page.
func (c *ArxivClient) pageURL(page Page) string {
	base := c.BaseURL
	if base == "" {
		base = arxivAPIBase
	}
	order := page.Order
	if order == "" {
		order = Descending
	}
	params := url.Values{}
	params.Set("search_query", page.Query.String())
	params.Set("start", strconv.Itoa(page.Start))
	params.Set("max_results", strconv.Itoa(page.Size))
	params.Set("sortBy", "submittedDate")
	params.Set("sortOrder", string(order))
	return base + "?" + params.Encode()
}

// candidateFromEntry converts one Atom entry. arXiv reports query errors
// as a single entry whose id points at /api/errors.
func candidateFromEntry(entry *atom.Entry) (types.Candidate, error) {
	if strings.Contains(entry.ID, "/api/errors") {
		return types.Candidate{}, fmt.Errorf("arXiv rejected query: %s", strings.TrimSpace(entry.Summary))
	}

	published, err := time.Parse(publishedLayout, strings.TrimSpace(entry.Published))
	if err != nil {
		return types.Candidate{}, fmt.Errorf("entry %s: invalid published date %q", entry.ID, entry.Published)
	}

	return types.Candidate{
		ID:        extractArxivID(entry.ID),
		Title:     strings.Join(strings.Fields(entry.Title), " "),
		Published: published,
		PDFURL:    pdfLink(entry.Links),
	}, nil
}

// pdfLink returns the href of the link tagged as the PDF relation, or "".
func pdfLink(links []*atom.Link) string {
	for _, l := range links {
		if l == nil {
			continue
		}
		if l.Title == "pdf" || l.Type == "application/pdf" {
			return l.Href
		}
	}
	return ""
}

// extractArxivID pulls the arXiv ID from the entry's <id> URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → "2301.07041").
func extractArxivID(idURL string) string {
	const prefix = "/abs/"
	idx := strings.Index(idURL, prefix)
	if idx < 0 {
		return ""
	}
	id := idURL[idx+len(prefix):]

	// Strip version suffix (e.g. "v1", "v2").
	if vIdx := strings.LastIndex(id, "v"); vIdx > 0 {
		if _, err := strconv.Atoi(id[vIdx+1:]); err == nil {
			id = id[:vIdx]
		}
	}
	return id
}
