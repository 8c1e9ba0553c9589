package main

import (
	"fmt"
	"os"

	"github.com/arthur-debert/droidgen/cmd/droidgen"
	"github.com/arthur-debert/droidgen/pkg/ui"
)

func main() {
	rootCmd := droidgen.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		ui.NewPrinter(os.Stderr).Error(err)
		fmt.Fprintln(os.Stderr)
		os.Exit(1)
	}
}
