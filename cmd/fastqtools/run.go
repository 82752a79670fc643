// Copyright 2026 The FastQTools Authors. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	fastqtools "github.com/LessUp/fastqtools"
	"github.com/LessUp/fastqtools/fastqmutators"
	"github.com/LessUp/fastqtools/fastqpredicates"
	"github.com/LessUp/fastqtools/internal/fastqio"
)

func runCmd() *cobra.Command {
	var (
		configPath  string
		inputPath   string
		outputPath  string
		gzipIn      bool
		gzipOut     bool
		minLen      int
		maxMeanErr  float64
		trimLeftN   int
		trimAdapter string
		verbose     bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the processing pipeline over a FASTQ file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := fastqtools.DefaultConfig()
			if configPath != "" {
				loaded, err := fastqtools.LoadConfigFile(configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}

			level := zerolog.InfoLevel
			if verbose {
				level = zerolog.DebugLevel
			}
			log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).
				With().Timestamp().Logger()

			inFile, err := os.Open(inputPath)
			if err != nil {
				return fmt.Errorf("opening input: %w", err)
			}
			defer inFile.Close()

			reader, err := fastqio.NewReader(inFile, gzipIn || strings.HasSuffix(inputPath, ".gz"))
			if err != nil {
				return err
			}
			defer reader.Close()

			outFile, err := os.Create(outputPath)
			if err != nil {
				return fmt.Errorf("creating output: %w", err)
			}
			defer outFile.Close()

			writer := fastqio.NewWriter(outFile, gzipOut || strings.HasSuffix(outputPath, ".gz"))
			defer writer.Close()

			var predicates []fastqtools.Predicate
			if minLen > 0 {
				predicates = append(predicates, fastqpredicates.MinLength(minLen))
			}
			if maxMeanErr > 0 {
				predicates = append(predicates, fastqpredicates.MinAverageQuality(maxMeanErr))
			}

			var mutators []fastqtools.Mutator
			if trimLeftN > 0 {
				mutators = append(mutators, fastqmutators.TrimLeft(trimLeftN))
			}
			if trimAdapter != "" {
				mutators = append(mutators, fastqmutators.TrimAdapter([]byte(trimAdapter), 8, minLen))
			}

			runner, err := fastqtools.NewPipelineRunner(cfg, reader, writer, predicates, mutators, log, nil)
			if err != nil {
				return err
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			stats, err := runner.Run(ctx)
			if err != nil {
				return err
			}

			log.Info().
				Int("total", stats.TotalRecords).
				Int("passed", stats.PassedRecords).
				Int("filtered", stats.FilteredRecords).
				Int("errored", stats.ErroredRecords).
				Float64("throughput_records_per_sec", stats.ThroughputRecordsPerSecond).
				Msg("run finished")
			return nil
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	cmd.Flags().StringVar(&inputPath, "input", "", "input FASTQ file path")
	cmd.Flags().StringVar(&outputPath, "output", "", "output FASTQ file path")
	cmd.Flags().BoolVar(&gzipIn, "gzip-in", false, "force gzip decompression of the input")
	cmd.Flags().BoolVar(&gzipOut, "gzip-out", false, "gzip-compress the output")
	cmd.Flags().IntVar(&minLen, "min-length", 0, "drop records shorter than this many bases")
	cmd.Flags().Float64Var(&maxMeanErr, "max-mean-error", 0, "drop records with mean base error above this")
	cmd.Flags().IntVar(&trimLeftN, "trim-left", 0, "trim this many bases from the 5' end")
	cmd.Flags().StringVar(&trimAdapter, "trim-adapter", "", "trim everything from the first match of this adapter's first 8 bases onward (adapters shorter than 8 bases are ignored)")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "enable debug logging")
	cmd.MarkFlagRequired("input")
	cmd.MarkFlagRequired("output")

	return cmd
}
