// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-harvester/internal/acquire"
	"github.com/pdiddy/paper-harvester/internal/crawl"
	"github.com/pdiddy/paper-harvester/internal/httputil"
	"github.com/pdiddy/paper-harvester/internal/index"
	"github.com/pdiddy/paper-harvester/internal/ledger"
	"github.com/pdiddy/paper-harvester/internal/search"
)

var crawlCmd = &cobra.Command{
	Use:   "crawl",
	Short: "Search arXiv and download new matching papers",
	Long: `Crawl walks calendar days from the start date through today. For every day
not yet recorded in the progress file it pages through the day's search
results, downloads each paper with a PDF link that is not already on disk,
and then records the day as done. The README is regenerated afterwards.

With --mode year the crawl instead walks all results newest first and stops at
the first paper older than --year.

Requests to the search API are spaced by --page-delay; processed days are
separated by --day-delay. A failing search request aborts the run and leaves
the current day unrecorded.`,
	RunE: runCrawl,
}

func init() {
	crawlCmd.Flags().String("query", "", "arXiv search expression (default: vector search / ANNS keywords)")
	crawlCmd.Flags().String("mode", "", "crawl mode: days or year (default days)")
	crawlCmd.Flags().String("start", "", "first day to crawl in days mode, YYYY-MM-DD (default 2025-01-01)")
	crawlCmd.Flags().Int("year", 0, "publication year to collect in year mode (default 2025)")
	crawlCmd.Flags().Int("page-size", 0, "results per search request (default 100)")
	crawlCmd.Flags().Duration("page-delay", 0, "minimum interval between search requests (default 3s)")
	crawlCmd.Flags().Duration("day-delay", 0, "pause between processed days (default 3s)")
	crawlCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	crawlCmd.Flags().Bool("no-index", false, "do not regenerate the README after crawling")

	for key, name := range map[string]string{
		"query":       "query",
		"mode":        "mode",
		"start_date":  "start",
		"target_year": "year",
		"page_size":   "page-size",
		"page_delay":  "page-delay",
		"day_delay":   "day-delay",
		"timeout":     "timeout",
	} {
		bindFlag(key, crawlCmd.Flags().Lookup(name))
	}

	rootCmd.AddCommand(crawlCmd)
}

func runCrawl(cmd *cobra.Command, args []string) error {
	cfg, err := crawlConfig()
	if err != nil {
		return err
	}
	noIndex, _ := cmd.Flags().GetBool("no-index")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := &http.Client{
		Timeout: cfg.Timeout,
	}
	runID := uuid.NewString()

	pager := search.NewArxivClient(client, cfg.PageDelay, cfg.UserAgent)
	fetcher := &acquire.Fetcher{
		Client:    client,
		Dir:       cfg.PapersDir,
		UserAgent: cfg.UserAgent,
		RunID:     runID,
		Throttle:  httputil.NewThrottle(cfg.DownloadDelay),
	}
	progress := ledger.Open(cfg.ProgressFile, os.Stdout)

	driver := crawl.NewDriver(cfg, pager, fetcher, progress, os.Stdout)
	_, crawlErr := driver.Run(ctx)

	if !noIndex {
		if err := index.Write(indexConfig(), time.Now(), os.Stdout); err != nil {
			if crawlErr == nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "warning: README not updated: %v\n", err)
		}
	}
	return crawlErr
}
