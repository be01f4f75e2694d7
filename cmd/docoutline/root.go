package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose     bool
	pdfFallback bool
)

var rootCmd = &cobra.Command{
	Use:   "docoutline",
	Short: "Build hierarchical outlines of documents",
	Long: `docoutline reads markdown, HTML, typst, numbered text, DOCX, PDF and CSV
documents and prints their section tree with per-section word counts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log pipeline stages to stderr")
	rootCmd.PersistentFlags().BoolVar(&pdfFallback, "pdftotext", true, "Retry PDF extraction with the pdftotext binary")
}

// logger returns a text logger on stderr, at debug level with --verbose.
func logger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error:"), err)
		os.Exit(1)
	}
}
