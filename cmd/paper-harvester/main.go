// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the paper-harvester CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-harvester/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultQuery = `(ti:"vector search" OR abs:"vector search" OR ti:"ANNS" OR abs:"ANNS" OR ti:"approximate nearest neighbor" OR abs:"approximate nearest neighbor")`

	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "paper-harvester/0.1"
)

// rootCmd is the base command for the paper-harvester CLI.
var rootCmd = &cobra.Command{
	Use:   "paper-harvester",
	Short: "Incrementally download arXiv papers matching a keyword query",
	Long: `paper-harvester queries the arXiv API one calendar day at a time, downloads
the PDF of every matching paper into a local directory, remembers which days
are complete, and regenerates a README listing the collection.

Re-running is safe: finished days are skipped and existing files are never
downloaded twice.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./paper-harvester.yaml or ~/.config/paper-harvester/config.yaml)")
	rootCmd.PersistentFlags().String("papers-dir", types.DefaultPapersDir, "directory holding downloaded PDFs")
	rootCmd.PersistentFlags().String("progress-file", types.DefaultProgressFile, "append-only log of fully processed days")
	bindFlag("papers_dir", rootCmd.PersistentFlags().Lookup("papers-dir"))
	bindFlag("progress_file", rootCmd.PersistentFlags().Lookup("progress-file"))

	viper.SetDefault("query", defaultQuery)
	viper.SetDefault("mode", string(types.ModeDays))
	viper.SetDefault("start_date", "2025-01-01")
	viper.SetDefault("target_year", 2025)
	viper.SetDefault("page_size", 100)
	viper.SetDefault("page_delay", 3*time.Second)
	viper.SetDefault("day_delay", 3*time.Second)
	viper.SetDefault("download_delay", time.Duration(0))
	viper.SetDefault("timeout", defaultTimeout)
	viper.SetDefault("user_agent", defaultUserAgent)
	viper.SetDefault("readme", types.DefaultReadme)
	viper.SetDefault("title", "VDB & ANNS Papers")
	viper.SetDefault("description", "A curated list of papers related to vector search and ANNS, automatically updated.")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(types.ConfigName)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", types.ConfigName))
		}
	}

	viper.SetEnvPrefix(types.EnvPrefix)
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
