// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDaysConfig() CrawlConfig {
	return CrawlConfig{
		Query:        `ti:"vector search"`,
		Mode:         ModeDays,
		StartDate:    "2025-01-01",
		PapersDir:    "papers",
		ProgressFile: "processed_dates.log",
		PageSize:     100,
		PageDelay:    3 * time.Second,
		DayDelay:     3 * time.Second,
	}
}

func TestCrawlConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*CrawlConfig)
		wantErr string
	}{
		{"valid days", func(*CrawlConfig) {}, ""},
		{"valid year", func(c *CrawlConfig) { c.Mode = ModeYear; c.TargetYear = 2025; c.StartDate = "" }, ""},
		{"empty query", func(c *CrawlConfig) { c.Query = "" }, "query is empty"},
		{"empty papers dir", func(c *CrawlConfig) { c.PapersDir = "" }, "papers_dir"},
		{"zero page size", func(c *CrawlConfig) { c.PageSize = 0 }, "page_size"},
		{"negative delay", func(c *CrawlConfig) { c.DayDelay = -time.Second }, "negative"},
		{"bad start date", func(c *CrawlConfig) { c.StartDate = "2025/01/01" }, "start_date"},
		{"missing progress file", func(c *CrawlConfig) { c.ProgressFile = "" }, "progress_file"},
		{"year without target", func(c *CrawlConfig) { c.Mode = ModeYear }, "target_year"},
		{"unknown mode", func(c *CrawlConfig) { c.Mode = "weekly" }, "unknown mode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validDaysConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCrawlConfigStart(t *testing.T) {
	cfg := validDaysConfig()
	start, err := cfg.Start()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), start)
}

func TestCandidateHasPDF(t *testing.T) {
	assert.True(t, Candidate{PDFURL: "http://arxiv.org/pdf/2501.00001v1"}.HasPDF())
	assert.False(t, Candidate{}.HasPDF())
}
