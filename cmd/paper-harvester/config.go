// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-harvester/pkg/types"
)

// bindFlag ties a config key to a flag so an explicitly set flag wins over
// the config file and environment.
func bindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("binding flag %s: %v", flag.Name, err))
	}
}

// crawlConfig assembles the crawl settings from flags, environment, config
// file, and defaults.
func crawlConfig() (types.CrawlConfig, error) {
	var cfg types.CrawlConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// indexConfig assembles the README settings.
func indexConfig() types.IndexConfig {
	return types.IndexConfig{
		PapersDir:   viper.GetString("papers_dir"),
		ReadmePath:  viper.GetString("readme"),
		Title:       viper.GetString("title"),
		Description: viper.GetString("description"),
	}
}
