package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docoutline/internal/outline"
)

var (
	showSection string
	showFull    bool
)

var showCmd = &cobra.Command{
	Use:   "show FILE",
	Short: "Print the text of sections with a given title",
	Long: `Print the text each matching section holds itself, without its
subsections. With --full the whole block range is printed verbatim.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if showSection == "" {
			return fmt.Errorf("--section is required")
		}
		_, engine, _, err := load(args[0], outline.DefaultOptions(), nil)
		if err != nil {
			return err
		}

		ids := engine.Blocks().FindByTitle(showSection)
		if len(ids) == 0 {
			return fmt.Errorf("no section titled %q", showSection)
		}

		w := cmd.OutOrStdout()
		for i, id := range ids {
			var text string
			if showFull {
				text, err = engine.BlockContent(id)
			} else {
				text, err = engine.BodyText(id)
			}
			if err != nil {
				return err
			}
			if i > 0 {
				fmt.Fprintln(w)
			}
			b := engine.Blocks()[id]
			fmt.Fprintln(w, titleStyle.Render(strings.TrimSpace(b.Marker+" "+b.Title)))
			fmt.Fprintln(w, text)
		}
		return nil
	},
}

func init() {
	showCmd.Flags().StringVarP(&showSection, "section", "s", "", "Title of the section to print")
	showCmd.Flags().BoolVar(&showFull, "full", false, "Print the whole block including subsections")
	rootCmd.AddCommand(showCmd)
}
