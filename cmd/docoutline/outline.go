package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docoutline/internal/convert"
	"github.com/dgallion1/docoutline/internal/outline"
	"github.com/dgallion1/docoutline/internal/reader"
)

var (
	outlineJSON      bool
	outlineNoContent bool
	outlineTarget    int
	outlineDist      string
)

var outlineCmd = &cobra.Command{
	Use:   "outline FILE",
	Short: "Print the section tree of a document",
	Long: `Print a table of contents with the words each section holds itself and
including its subsections. With --target the total is split uniformly across
sections and every line shows its balance against the share left for it.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var target *outline.WordsTarget
		if cmd.Flags().Changed("target") {
			if outlineTarget < 0 {
				return fmt.Errorf("--target must not be negative")
			}
			target = &outline.WordsTarget{Words: outlineTarget, Distribution: outline.Distribution(outlineDist)}
		}

		src, _, out, err := load(args[0], outline.Options{IncludeContent: !outlineNoContent}, target)
		if err != nil {
			return err
		}

		if outlineJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(out)
		}
		renderTOC(cmd.OutOrStdout(), src.Name, out)
		return nil
	},
}

func init() {
	outlineCmd.Flags().BoolVar(&outlineJSON, "json", false, "Print the outline as JSON")
	outlineCmd.Flags().BoolVar(&outlineNoContent, "no-content", false, "Skip section text; counts and hashes stay empty")
	outlineCmd.Flags().IntVarP(&outlineTarget, "target", "t", 0, "Words target for the whole document")
	outlineCmd.Flags().StringVar(&outlineDist, "distribution", string(outline.DistributionUniform), "How the target is split among sections")
	rootCmd.AddCommand(outlineCmd)
}

// load converts and outlines the file at path.
func load(path string, opts outline.Options, target *outline.WordsTarget) (*convert.Source, *outline.Engine, *outline.Outline, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, nil, err
	}
	defer f.Close()

	src, err := convert.Load(f, path, convert.Options{PDFFallbackPdftotext: pdfFallback})
	if err != nil {
		return nil, nil, nil, err
	}
	rd, err := reader.ForFormat(src.Format)
	if err != nil {
		return nil, nil, nil, err
	}

	engine := outline.New(src.Text, opts, logger().With("file", path))
	out, err := engine.Outline(rd, target)
	if err != nil {
		return nil, nil, nil, err
	}
	return src, engine, out, nil
}
