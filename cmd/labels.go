package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/tacit/internal/screens/guide"
	"github.com/abhisek/tacit/internal/taxonomy"
)

var labelsCmd = &cobra.Command{
	Use:   "labels",
	Short: "List the label taxonomy in display order",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		for i, l := range taxonomy.All() {
			fmt.Fprintf(out, "%2d  %-13s %s\n", i+1, l, guide.Description(l))
		}
	},
}
