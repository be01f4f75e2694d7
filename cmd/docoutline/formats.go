package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dgallion1/docoutline/internal/convert"
	"github.com/dgallion1/docoutline/internal/reader"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported readers and file extensions",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		w := cmd.OutOrStdout()
		fmt.Fprintln(w, titleStyle.Render("Readers"))
		for _, f := range reader.Formats() {
			fmt.Fprintln(w, "  "+f)
		}
		fmt.Fprintln(w, titleStyle.Render("Extensions"))
		for _, ext := range convert.Extensions() {
			fmt.Fprintln(w, "  "+ext)
		}
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
