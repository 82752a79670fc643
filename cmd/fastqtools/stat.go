// Copyright 2026 The FastQTools Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// statCmd is a stub: format inference and summary statistics over a
// FASTQ file are a separate collaborator, not part of the processing
// pipeline this binary wires together.
func statCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stat",
		Short: "Placeholder for FASTQ summary statistics (not implemented in this build)",
		RunE: func(cmd *cobra.Command, args []string) error {
			color.Yellow("stat is not implemented by the processing pipeline in this build")
			fmt.Println("use 'fastqtools run' to filter and trim records instead")
			return nil
		},
	}
}
