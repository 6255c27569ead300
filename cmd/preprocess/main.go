// Cinemonth - Monthly Genre-Taste Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemonth

// Command preprocess turns the IMDB bulk files into the processed catalog
// CSV the server loads, and can inspect a catalog against a watch log.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tomtom215/cinemonth/internal/imdb"
	"github.com/tomtom215/cinemonth/internal/ingest"
	"github.com/tomtom215/cinemonth/internal/logging"
	"github.com/tomtom215/cinemonth/internal/recommend"
)

const (
	defaultTitlesPath  = "data/title.basics.tsv.gz"
	defaultRatingsPath = "data/title.ratings.tsv.gz"
	defaultOutputPath  = "data/processed_movies.csv"
)

var (
	buildTitles    string
	buildRatings   string
	buildOutput    string
	buildMinRating float64
	buildMinVotes  int
	buildPrefilter bool

	inspectCatalog string
	inspectWatched string
	inspectEpoch   int

	logLevel string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults := recommend.DefaultCatalogOptions()

	rootCmd := &cobra.Command{
		Use:           "preprocess",
		Short:         "Build the Cinemonth catalog from IMDB bulk files",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(*cobra.Command, []string) {
			cfg := logging.DefaultConfig()
			cfg.Level = logLevel
			cfg.Format = "console"
			logging.Init(cfg)
		},
		RunE: runBuildCmd,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level")

	rootCmd.Flags().StringVar(&buildTitles, "titles", defaultTitlesPath, "path to title.basics.tsv(.gz)")
	rootCmd.Flags().StringVar(&buildRatings, "ratings", defaultRatingsPath, "path to title.ratings.tsv(.gz)")
	rootCmd.Flags().StringVarP(&buildOutput, "out", "o", defaultOutputPath, "processed catalog output path")
	rootCmd.Flags().Float64Var(&buildMinRating, "min-rating", defaults.MinRating, "minimum average rating")
	rootCmd.Flags().IntVar(&buildMinVotes, "min-votes", defaults.MinVotes, "minimum number of votes")
	rootCmd.Flags().BoolVar(&buildPrefilter, "prefilter", true, "filter type and rating inside the scan")

	rootCmd.AddCommand(newInspectCmd())

	return rootCmd
}

func runBuildCmd(cmd *cobra.Command, _ []string) error {
	opts := recommend.CatalogOptions{MinRating: buildMinRating, MinVotes: buildMinVotes}

	reader, err := imdb.NewReader(imdb.Options{Prefilter: buildPrefilter, Catalog: opts})
	if err != nil {
		return err
	}
	defer reader.Close() //nolint:errcheck // in-memory database

	catalog, stats, err := reader.BuildCatalog(cmd.Context(), buildTitles, buildRatings)
	if err != nil {
		return fmt.Errorf("build catalog: %w", err)
	}
	if err := ingest.SaveCatalog(buildOutput, catalog.Entries()); err != nil {
		return err
	}

	printCatalogStats(cmd.OutOrStdout(), stats)
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d entries to %s\n", catalog.Len(), buildOutput)
	return nil
}

func newInspectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Report how a watch log lines up with a processed catalog",
		RunE:  runInspectCmd,
	}
	cmd.Flags().StringVar(&inspectCatalog, "catalog", defaultOutputPath, "processed catalog path")
	cmd.Flags().StringVar(&inspectWatched, "watched", "data/watched.csv", "watched.csv or Letterboxd export ZIP")
	cmd.Flags().IntVar(&inspectEpoch, "epoch", recommend.DefaultEpochYear, "year whose January is month 1")
	return cmd
}

func runInspectCmd(cmd *cobra.Command, _ []string) error {
	catalogRows, err := ingest.LoadCatalog(inspectCatalog)
	if err != nil {
		return err
	}
	catalog, catalogStats := recommend.CatalogFromRows(catalogRows, recommend.CatalogOptions{})

	watchRows, err := ingest.LoadWatched(inspectWatched)
	if err != nil {
		return err
	}
	history, historyStats := recommend.BuildHistory(watchRows, catalog, inspectEpoch)
	state := recommend.NewState(catalog, history, inspectEpoch)

	out := cmd.OutOrStdout()
	printCatalogStats(out, catalogStats)
	fmt.Fprintf(out, "watch rows:       %d\n", historyStats.Rows)
	fmt.Fprintf(out, "  kept:           %d\n", historyStats.Kept)
	fmt.Fprintf(out, "  with genres:    %d\n", historyStats.WithGenres)
	fmt.Fprintf(out, "  not in catalog: %d\n", historyStats.CatalogMiss)
	fmt.Fprintf(out, "  before %d:    %d\n", inspectEpoch, historyStats.PreEpoch)
	fmt.Fprintf(out, "  bad date:       %d\n", historyStats.DroppedDate)
	fmt.Fprintf(out, "  bad name/year:  %d\n", historyStats.DroppedKey)
	fmt.Fprintf(out, "candidates:       %d\n", len(state.Candidates()))
	return nil
}

func printCatalogStats(out io.Writer, s recommend.CatalogStats) {
	fmt.Fprintf(out, "catalog kept:     %d\n", s.Kept)
	fmt.Fprintf(out, "  wrong type:     %d\n", s.DroppedType)
	fmt.Fprintf(out, "  below rating:   %d\n", s.DroppedRating)
	fmt.Fprintf(out, "  unrated:        %d\n", s.DroppedUnmatched)
	fmt.Fprintf(out, "  no name/year:   %d\n", s.DroppedKey)
	fmt.Fprintf(out, "  duplicate key:  %d\n", s.DroppedDuplicate)
}
