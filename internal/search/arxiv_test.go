// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePageXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom" xmlns:opensearch="http://a9.com/-/spec/opensearch/1.1/">
  <title>ArXiv Query</title>
  <id>http://arxiv.org/api/abc</id>
  <updated>2025-01-03T00:00:00-05:00</updated>
  <opensearch:totalResults>2</opensearch:totalResults>
  <entry>
    <id>http://arxiv.org/abs/2501.01234v2</id>
    <updated>2025-01-02T10:00:00Z</updated>
    <published>2025-01-02T09:15:00Z</published>
    <title>Graph-Based Approximate
      Nearest Neighbor Search</title>
    <summary>We study ANNS.</summary>
    <author><name>Alice Smith</name></author>
    <link href="http://arxiv.org/abs/2501.01234v2" rel="alternate" type="text/html"/>
    <link title="pdf" href="http://arxiv.org/pdf/2501.01234v2" rel="related" type="application/pdf"/>
  </entry>
  <entry>
    <id>http://arxiv.org/abs/2501.05678v1</id>
    <updated>2025-01-02T11:00:00Z</updated>
    <published>2025-01-02T11:00:00Z</published>
    <title>Vector Search Without a PDF</title>
    <summary>No PDF link here.</summary>
    <link href="http://arxiv.org/abs/2501.05678v1" rel="alternate" type="text/html"/>
  </entry>
</feed>`

const emptyPageXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>ArXiv Query</title>
  <id>http://arxiv.org/api/abc</id>
  <updated>2025-01-03T00:00:00-05:00</updated>
</feed>`

const errorPageXML = `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
  <title>ArXiv Query</title>
  <id>http://arxiv.org/api/abc</id>
  <updated>2025-01-03T00:00:00-05:00</updated>
  <entry>
    <id>http://arxiv.org/api/errors#incorrect_id_format_for_1234</id>
    <title>Error</title>
    <summary>incorrect id format for 1234</summary>
    <updated>2025-01-03T00:00:00-05:00</updated>
  </entry>
</feed>`

func withArxivBase(t *testing.T, base string) {
	t.Helper()
	old := arxivAPIBase
	arxivAPIBase = base
	t.Cleanup(func() { arxivAPIBase = old })
}

func TestFetchPage_DecodesEntries(t *testing.T) {
	var gotQuery url.Values
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/atom+xml")
		fmt.Fprint(w, samplePageXML)
	}))
	defer ts.Close()
	withArxivBase(t, ts.URL+"/api/query")

	client := NewArxivClient(ts.Client(), 0, "test/0.1")
	day := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	page := Page{Query: DayQuery(`ti:"ANNS"`, day), Start: 200, Size: 100, Order: Ascending}

	got, err := client.FetchPage(context.Background(), page)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "2501.01234", got[0].ID)
	assert.Equal(t, "Graph-Based Approximate Nearest Neighbor Search", got[0].Title)
	assert.Equal(t, time.Date(2025, 1, 2, 9, 15, 0, 0, time.UTC), got[0].Published)
	assert.Equal(t, "http://arxiv.org/pdf/2501.01234v2", got[0].PDFURL)

	assert.Equal(t, "2501.05678", got[1].ID)
	assert.False(t, got[1].HasPDF())

	assert.Equal(t, `(ti:"ANNS") AND submittedDate:[20250102000000 TO 20250102235959]`, gotQuery.Get("search_query"))
	assert.Equal(t, "200", gotQuery.Get("start"))
	assert.Equal(t, "100", gotQuery.Get("max_results"))
	assert.Equal(t, "submittedDate", gotQuery.Get("sortBy"))
	assert.Equal(t, "ascending", gotQuery.Get("sortOrder"))
}

func TestFetchPage_SpacesRequests(t *testing.T) {
	const interval = 50 * time.Millisecond
	var (
		mu   sync.Mutex
		hits []time.Time
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits = append(hits, time.Now())
		mu.Unlock()
		fmt.Fprint(w, emptyPageXML)
	}))
	defer ts.Close()

	client := NewArxivClient(ts.Client(), interval, "")
	client.BaseURL = ts.URL
	page := Page{Query: Query{Base: "all:x"}, Size: 10}
	for i := 0; i < 3; i++ {
		_, err := client.FetchPage(context.Background(), page)
		require.NoError(t, err)
		page = page.Next(10)
	}

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, hits, 3)
	for i := 1; i < len(hits); i++ {
		assert.GreaterOrEqual(t, hits[i].Sub(hits[i-1]), interval-5*time.Millisecond, "gap before request %d", i)
	}
}

func TestFetchPage_RestartIntervalDelaysNextRequest(t *testing.T) {
	const interval = 50 * time.Millisecond
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, emptyPageXML)
	}))
	defer ts.Close()

	client := NewArxivClient(ts.Client(), interval, "")
	client.BaseURL = ts.URL
	page := Page{Query: Query{Base: "all:x"}, Size: 10}

	_, err := client.FetchPage(context.Background(), page)
	require.NoError(t, err)
	time.Sleep(2 * interval)
	client.RestartInterval()

	start := time.Now()
	_, err = client.FetchPage(context.Background(), page)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), interval-5*time.Millisecond)
}

func TestFetchPage_DefaultsToDescending(t *testing.T) {
	var order string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = r.URL.Query().Get("sortOrder")
		fmt.Fprint(w, emptyPageXML)
	}))
	defer ts.Close()
	withArxivBase(t, ts.URL)

	got, err := NewArxivClient(ts.Client(), 0, "").FetchPage(context.Background(), Page{Query: Query{Base: "all:x"}, Size: 10})
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, "descending", order)
}

func TestFetchPage_Failures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"http error", http.StatusInternalServerError, "", "HTTP 500"},
		{"malformed xml", http.StatusOK, "this is not a feed", "parsing arXiv response"},
		{"arxiv error entry", http.StatusOK, errorPageXML, "incorrect id format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				fmt.Fprint(w, tt.body)
			}))
			defer ts.Close()
			withArxivBase(t, ts.URL)

			_, err := NewArxivClient(ts.Client(), 0, "").FetchPage(context.Background(), Page{Query: Query{Base: "all:x"}, Size: 10})
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrAPI), "error should wrap ErrAPI: %v", err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestFetchPage_TransportFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	base := ts.URL
	ts.Close()
	withArxivBase(t, base)

	_, err := NewArxivClient(http.DefaultClient, 0, "").FetchPage(context.Background(), Page{Query: Query{Base: "all:x"}, Size: 10})
	assert.ErrorIs(t, err, ErrAPI)
}

func TestExtractArxivID(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"http://arxiv.org/abs/2301.07041v1", "2301.07041"},
		{"http://arxiv.org/abs/2301.07041", "2301.07041"},
		{"http://arxiv.org/abs/cs/0112017v1", "cs/0112017"},
		{"http://example.com/other", ""},
	}
	for _, tt := range tests {
		if got := extractArxivID(tt.in); got != tt.want {
			t.Errorf("extractArxivID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
