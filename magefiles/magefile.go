// Package main contains Mage build targets for paper-harvester developer tooling.
package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/pdiddy/paper-harvester/internal/acquire"
	"github.com/pdiddy/paper-harvester/internal/index"
	"github.com/pdiddy/paper-harvester/internal/ledger"
	"github.com/pdiddy/paper-harvester/pkg/types"
)

// settings are the locations the CLI would use from this directory.
type settings struct {
	papersDir    string
	progressFile string
}

// loadSettings resolves papers_dir and progress_file the way the CLI does:
// defaults, then paper-harvester.yaml, then PAPER_HARVESTER_* variables.
func loadSettings() settings {
	v := viper.New()
	v.SetDefault("papers_dir", types.DefaultPapersDir)
	v.SetDefault("progress_file", types.DefaultProgressFile)
	v.SetConfigName(types.ConfigName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", types.ConfigName))
	}
	v.SetEnvPrefix(types.EnvPrefix)
	v.AutomaticEnv()
	_ = v.ReadInConfig()

	return settings{
		papersDir:    v.GetString("papers_dir"),
		progressFile: v.GetString("progress_file"),
	}
}

// Init creates the papers directory and its metadata subdirectory.
func Init() error {
	s := loadSettings()
	for _, dir := range []string{s.papersDir, filepath.Join(s.papersDir, acquire.MetaDir)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
		fmt.Println("  ", dir)
	}
	fmt.Println("Project directories initialized.")
	return nil
}

const (
	binDir  = "bin"
	binName = "paper-harvester"
	cmdPkg  = "./cmd/paper-harvester"
)

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	cmd := exec.Command("go", "build", "-o", out, cmdPkg)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Stats prints collection metrics: papers on disk, the newest and oldest
// paper dates, and the span of days recorded in the progress file.
func Stats() error {
	s := loadSettings()

	entries, err := index.Scan(s.papersDir, io.Discard)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("scanning %s: %w", s.papersDir, err)
	}
	days, err := ledger.Open(s.progressFile, io.Discard).Days()
	if err != nil {
		return fmt.Errorf("reading %s: %w", s.progressFile, err)
	}

	fmt.Printf("Papers (%s):       %d\n", s.papersDir, len(entries))
	if newest, oldest, ok := dateSpan(entries); ok {
		fmt.Printf("Newest paper:       %s\n", newest)
		fmt.Printf("Oldest paper:       %s\n", oldest)
	}
	fmt.Printf("Days processed:     %d\n", len(days))
	if len(days) > 0 {
		fmt.Printf("First day:          %s\n", days[0])
		fmt.Printf("Last day:           %s\n", days[len(days)-1])
	}
	return nil
}

// dateSpan returns the newest and oldest entry dates. Scan orders by
// filename, which is not date order when sidecars supply the date.
func dateSpan(entries []index.Entry) (newest, oldest string, ok bool) {
	if len(entries) == 0 {
		return "", "", false
	}
	hi, lo := entries[0].Date, entries[0].Date
	for _, e := range entries[1:] {
		if e.Date.After(hi) {
			hi = e.Date
		}
		if e.Date.Before(lo) {
			lo = e.Date
		}
	}
	return hi.Format(types.DateLayout), lo.Format(types.DateLayout), true
}
