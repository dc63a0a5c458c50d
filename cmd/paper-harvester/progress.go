// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/paper-harvester/internal/ledger"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "List the days recorded as fully processed",
	Long: `Progress prints the days recorded in the progress file. To crawl a day again,
delete its line from the file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		l := ledger.Open(viper.GetString("progress_file"), os.Stderr)
		days, err := l.Days()
		if err != nil {
			return err
		}
		if len(days) == 0 {
			fmt.Printf("No days processed yet (%s).\n", l.Path())
			return nil
		}
		for _, d := range days {
			fmt.Println(d)
		}
		fmt.Printf("\n%d days processed, %s through %s\n", len(days), days[0], days[len(days)-1])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(progressCmd)
}
