// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-day format used for start dates and the
// progress ledger.
const DateLayout = "2006-01-02"

// Config file and environment names shared by the CLI and the build targets.
const (
	ConfigName = "paper-harvester"
	EnvPrefix  = "PAPER_HARVESTER"
)

// Default locations, relative to the working directory.
const (
	DefaultPapersDir    = "papers"
	DefaultProgressFile = "processed_dates.log"
	DefaultReadme       = "README.md"
)

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "paper-harvester/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// CrawlMode selects how the crawl walks the search results.
type CrawlMode string

const (
	// ModeDays walks calendar days from StartDate to today, one
	// date-bounded query per day, resuming from the progress ledger.
	ModeDays CrawlMode = "days"

	// ModeYear walks the whole result set newest first and stops at the
	// first paper older than TargetYear.
	ModeYear CrawlMode = "year"
)

// CrawlConfig holds settings for the crawl. It replaces the constants of a
// one-off script: every run builds one value and hands it to the driver.
type CrawlConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Query is the base keyword expression in arXiv search syntax.
	Query string `json:"query" yaml:"query" mapstructure:"query"`

	// Mode selects day-bounded or whole-year crawling (default days).
	Mode CrawlMode `json:"mode" yaml:"mode" mapstructure:"mode"`

	// StartDate is the first calendar day crawled in days mode (YYYY-MM-DD).
	StartDate string `json:"start_date" yaml:"start_date" mapstructure:"start_date"`

	// TargetYear is the publication year collected in year mode.
	TargetYear int `json:"target_year" yaml:"target_year" mapstructure:"target_year"`

	// PapersDir is the directory that receives downloaded PDFs.
	PapersDir string `json:"papers_dir" yaml:"papers_dir" mapstructure:"papers_dir"`

	// ProgressFile is the append-only log of fully processed days.
	ProgressFile string `json:"progress_file" yaml:"progress_file" mapstructure:"progress_file"`

	// PageSize is the number of results requested per page (default 100).
	PageSize int `json:"page_size" yaml:"page_size" mapstructure:"page_size"`

	// PageDelay is the minimum interval between search API requests (default 3s).
	PageDelay time.Duration `json:"page_delay" yaml:"page_delay" mapstructure:"page_delay"`

	// DayDelay is the pause between two processed days (default 3s).
	DayDelay time.Duration `json:"day_delay" yaml:"day_delay" mapstructure:"day_delay"`

	// DownloadDelay is the minimum interval between PDF downloads (default 0).
	DownloadDelay time.Duration `json:"download_delay" yaml:"download_delay" mapstructure:"download_delay"`
}

// Start parses StartDate as a UTC calendar day.
func (c CrawlConfig) Start() (time.Time, error) {
	t, err := time.Parse(DateLayout, c.StartDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid start_date %q: %w", c.StartDate, err)
	}
	return t, nil
}

// Validate reports the first configuration problem that would make a crawl
// run meaningless.
func (c CrawlConfig) Validate() error {
	if c.Query == "" {
		return fmt.Errorf("query is empty")
	}
	if c.PapersDir == "" {
		return fmt.Errorf("papers_dir is empty")
	}
	if c.PageSize < 1 {
		return fmt.Errorf("page_size must be at least 1, got %d", c.PageSize)
	}
	if c.PageDelay < 0 || c.DayDelay < 0 || c.DownloadDelay < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	switch c.Mode {
	case ModeDays:
		if c.ProgressFile == "" {
			return fmt.Errorf("progress_file is empty")
		}
		if _, err := c.Start(); err != nil {
			return err
		}
	case ModeYear:
		if c.TargetYear <= 0 {
			return fmt.Errorf("target_year must be positive, got %d", c.TargetYear)
		}
	default:
		return fmt.Errorf("unknown mode %q (want %q or %q)", c.Mode, ModeDays, ModeYear)
	}
	return nil
}

// IndexConfig holds settings for README regeneration.
type IndexConfig struct {
	// PapersDir is the directory scanned for PDFs.
	PapersDir string `json:"papers_dir" yaml:"papers_dir" mapstructure:"papers_dir"`

	// ReadmePath is the generated Markdown file.
	ReadmePath string `json:"readme" yaml:"readme" mapstructure:"readme"`

	// Title is the first-level heading of the README.
	Title string `json:"title" yaml:"title" mapstructure:"title"`

	// Description is the paragraph under the heading.
	Description string `json:"description" yaml:"description" mapstructure:"description"`
}
