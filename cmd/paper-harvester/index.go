// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/paper-harvester/internal/index"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Regenerate the README listing downloaded papers",
	Long: `Index scans the papers directory and rewrites the README with one line per
PDF, newest first. Files whose names carry no date and that have no metadata
sidecar are reported and left out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return index.Write(indexConfig(), time.Now(), os.Stdout)
	},
}

func init() {
	indexCmd.Flags().String("readme", "", "README file to write (default README.md)")
	indexCmd.Flags().String("title", "", "README heading")
	bindFlag("readme", indexCmd.Flags().Lookup("readme"))
	bindFlag("title", indexCmd.Flags().Lookup("title"))

	rootCmd.AddCommand(indexCmd)
}
