package main

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// Crawl builds the CLI and runs a day-bounded crawl with the local config.
func Crawl() error {
	mg.Deps(Build)
	return runBinary("crawl")
}

// Index builds the CLI and regenerates README.md from the papers directory.
func Index() error {
	mg.Deps(Build)
	return runBinary("index")
}

// Progress builds the CLI and lists the days already processed.
func Progress() error {
	mg.Deps(Build)
	return runBinary("progress")
}

// runBinary executes the built CLI with args, streaming its output.
func runBinary(args ...string) error {
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}
