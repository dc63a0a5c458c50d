// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package crawl drives the search, filter, and download loop.
//
// In days mode the driver walks calendar days from the configured start date
// to today, issues one date-bounded query per day, and records each finished
// day in the progress ledger so a later run resumes where this one stopped.
// In year mode it walks the whole result set newest first and stops at the
// first paper older than the target year.
//
// Every step is sequential. Search API failures abort the run; download
// failures are logged and skipped.
package crawl

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/paper-harvester/internal/acquire"
	"github.com/pdiddy/paper-harvester/internal/httputil"
	"github.com/pdiddy/paper-harvester/internal/ledger"
	"github.com/pdiddy/paper-harvester/internal/search"
	"github.com/pdiddy/paper-harvester/pkg/types"
)

// Summary counts what a run did.
type Summary struct {
	RunID         string
	DaysProcessed int
	DaysSkipped   int
	Pages         int
	Records       int
	Downloaded    int
	Existing      int
	Failed        int
	MissingPDF    int
	Skipped       int
}

// Driver runs a crawl pass.
type Driver struct {
	cfg     types.CrawlConfig
	pager   search.Pager
	fetcher *acquire.Fetcher
	ledger  *ledger.Ledger
	w       io.Writer

	// Now returns the current time. "Today" is evaluated once per run.
	Now func() time.Time
	// Sleep pauses between days.
	Sleep func(ctx context.Context, d time.Duration) error
}

// NewDriver returns a driver for cfg. The ledger is only consulted in days
// mode and may be nil in year mode.
func NewDriver(cfg types.CrawlConfig, pager search.Pager, fetcher *acquire.Fetcher, l *ledger.Ledger, w io.Writer) *Driver {
	if w == nil {
		w = io.Discard
	}
	return &Driver{
		cfg:     cfg,
		pager:   pager,
		fetcher: fetcher,
		ledger:  l,
		w:       w,
		Now:     time.Now,
		Sleep:   httputil.Sleep,
	}
}

// Run validates the configuration and crawls in the configured mode.
func (d *Driver) Run(ctx context.Context) (Summary, error) {
	if err := d.cfg.Validate(); err != nil {
		return Summary{RunID: d.fetcher.RunID}, fmt.Errorf("invalid configuration: %w", err)
	}

	fmt.Fprintf(d.w, "Crawl started (run %s)\n", d.fetcher.RunID)
	fmt.Fprintf(d.w, "Search keywords: %s\n", d.cfg.Query)

	var (
		sum Summary
		err error
	)
	switch d.cfg.Mode {
	case types.ModeYear:
		sum, err = d.RunYear(ctx)
	default:
		sum, err = d.RunDays(ctx)
	}

	fmt.Fprintf(d.w, "\nSummary: %d downloaded, %d already present, %d failed, %d without PDF (%d records, %d pages)\n",
		sum.Downloaded, sum.Existing, sum.Failed, sum.MissingPDF, sum.Records, sum.Pages)
	if d.cfg.Mode != types.ModeYear {
		fmt.Fprintf(d.w, "Days: %d processed, %d already done\n", sum.DaysProcessed, sum.DaysSkipped)
	}
	fmt.Fprintf(d.w, "Total downloaded %d new papers.\n", sum.Downloaded)
	return sum, err
}

// RunDays processes every unmarked day from the start date through today,
// marking each one after all its pages were consumed. An error leaves the
// current day unmarked.
func (d *Driver) RunDays(ctx context.Context) (Summary, error) {
	sum := Summary{RunID: d.fetcher.RunID}

	start, err := d.cfg.Start()
	if err != nil {
		return sum, err
	}
	today := truncateDay(d.Now())

	done, err := d.ledger.Load()
	if err != nil {
		return sum, err
	}
	if err := d.fetcher.EnsureDir(); err != nil {
		return sum, err
	}

	fmt.Fprintf(d.w, "Date range: %s to %s\n", ledger.Key(start), ledger.Key(today))

	queried := false
	for day := start; !day.After(today); day = day.AddDate(0, 0, 1) {
		key := ledger.Key(day)
		if done[key] {
			sum.DaysSkipped++
			continue
		}

		if queried {
			if err := d.pauseBetweenDays(ctx); err != nil {
				return sum, err
			}
		}
		queried = true

		fmt.Fprintf(d.w, "\n%s: searching\n", key)
		if err := d.crawlDay(ctx, day, &sum); err != nil {
			return sum, fmt.Errorf("crawling %s: %w", key, err)
		}
		if err := d.ledger.Mark(day); err != nil {
			return sum, err
		}
		sum.DaysProcessed++
	}
	return sum, nil
}

// pauseBetweenDays sleeps DayDelay and then restarts the pager's own
// interval, so the first request of the next day waits both delays.
func (d *Driver) pauseBetweenDays(ctx context.Context) error {
	if err := d.Sleep(ctx, d.cfg.DayDelay); err != nil {
		return err
	}
	if p, ok := d.pager.(search.Paced); ok {
		p.RestartInterval()
	}
	return nil
}

// crawlDay pages through one day's results in ascending order until an
// empty or short page.
func (d *Driver) crawlDay(ctx context.Context, day time.Time, sum *Summary) error {
	page := search.Page{
		Query: search.DayQuery(d.cfg.Query, day),
		Size:  d.cfg.PageSize,
		Order: search.Ascending,
	}
	prefix := acquire.DayPrefix(day)
	prefixFor := func(types.Candidate) string { return prefix }

	for {
		records, err := d.pager.FetchPage(ctx, page)
		if err != nil {
			return err
		}
		sum.Pages++
		fmt.Fprintf(d.w, "  offset %d: %d papers\n", page.Start, len(records))
		if len(records) == 0 {
			return nil
		}

		if _, err := d.processPage(ctx, records, DayFilter{}, prefixFor, sum); err != nil {
			return err
		}
		if search.LastPage(len(records), page.Size) {
			return nil
		}
		page = page.Next(len(records))
	}
}

// RunYear walks results newest first and collects papers published in the
// target year, stopping at the first older paper or an empty page.
func (d *Driver) RunYear(ctx context.Context) (Summary, error) {
	sum := Summary{RunID: d.fetcher.RunID}
	if err := d.fetcher.EnsureDir(); err != nil {
		return sum, err
	}

	filter := YearFilter{Year: d.cfg.TargetYear}
	prefixFor := func(c types.Candidate) string { return acquire.IDPrefix(c.ID) }
	page := search.Page{
		Query: search.Query{Base: d.cfg.Query},
		Size:  d.cfg.PageSize,
		Order: search.Descending,
	}

	fmt.Fprintf(d.w, "Search year: %d\n", d.cfg.TargetYear)
	for {
		fmt.Fprintf(d.w, "\nRequesting %d papers starting from index %d...\n", page.Size, page.Start)
		records, err := d.pager.FetchPage(ctx, page)
		if err != nil {
			return sum, err
		}
		sum.Pages++
		if len(records) == 0 {
			fmt.Fprintln(d.w, "No more papers found.")
			return sum, nil
		}

		res, err := d.processPage(ctx, records, filter, prefixFor, &sum)
		if err != nil {
			return sum, err
		}
		if res.inWindow == 0 && !res.stopped {
			fmt.Fprintf(d.w, "No papers from %d found in this batch of %d papers.\n", filter.Year, len(records))
		}
		if res.stopped {
			return sum, nil
		}
		page = page.Next(len(records))
	}
}

type pageResult struct {
	evaluated int
	inWindow  int
	stopped   bool
}

// processPage classifies records in order and materializes kept ones. It
// returns early on a Stop decision without looking at later records.
func (d *Driver) processPage(ctx context.Context, records []types.Candidate, filter Filter, prefixFor func(types.Candidate) string, sum *Summary) (pageResult, error) {
	var res pageResult
	for _, c := range records {
		res.evaluated++
		sum.Records++

		prefix := prefixFor(c)
		dec := filter.Classify(c)
		if dec.Action == Keep && d.fetcher.Has(prefix, c.Title) {
			dec = Decision{Action: Skip, Reason: ReasonExists}
		}

		switch dec.Action {
		case Stop:
			fmt.Fprintf(d.w, "Found paper from %d (%s), stopping search.\n", c.Published.Year(), c.ID)
			res.stopped = true
			return res, nil
		case Skip:
			d.logSkip(c, dec.Reason, sum)
			if dec.Reason != ReasonNewer {
				res.inWindow++
			}
			continue
		}

		res.inWindow++
		out := d.fetcher.Materialize(ctx, c, prefix, d.w)
		switch out.Status {
		case acquire.Downloaded:
			sum.Downloaded++
		case acquire.Exists:
			sum.Existing++
		case acquire.Failed:
			sum.Failed++
			if err := ctx.Err(); err != nil {
				return res, err
			}
		}
	}
	return res, nil
}

func (d *Driver) logSkip(c types.Candidate, reason string, sum *Summary) {
	switch reason {
	case ReasonMissingPDF:
		sum.MissingPDF++
		fmt.Fprintf(d.w, "  warning: %q (ID: %s) has no PDF link, skipping\n", c.Title, c.ID)
	case ReasonExists:
		sum.Existing++
		fmt.Fprintf(d.w, "  skipped: %q (%s)\n", c.Title, reason)
	default:
		sum.Skipped++
		fmt.Fprintf(d.w, "  skipped: %q (ID: %s, %s)\n", c.Title, c.ID, reason)
	}
}

// truncateDay returns the UTC calendar day containing t.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
