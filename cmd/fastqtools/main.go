// Copyright 2026 The FastQTools Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fastqtools",
	Short: "A parallel processing toolkit for FASTQ sequencing files",
	Long: `fastqtools runs FASTQ records through a three-stage pipeline:
a serial reader, a parallel worker pool applying filters and trims, and
a serial writer that restores the original record order.`,
}

func main() {
	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(statCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
