package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/droidgen/cmd/droidgen"
	"github.com/arthur-debert/droidgen/internal/version"
)

func main() {
	rootCmd := droidgen.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "DROIDGEN",
		Section: "1",
		Source:  "droidgen " + version.Version,
		Manual:  "droidgen manual",
	}

	if err := doc.GenMan(rootCmd, header, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man page: %v\n", err)
		os.Exit(1)
	}
}
