package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"
)

var (
	statsJSON     bool
	statsFilter   string
	statsCategory string
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show completed vs. not completed charts",
	Long:  `Show absolute counts and percentages of completed and not completed notes for the same selection 'list' would show.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		query, err := buildQuery(statsFilter, statsCategory)
		if err != nil {
			fatal("Invalid query", err)
		}

		view := openService().View(query)

		if statsJSON {
			view.Entries = nil
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(view); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		renderStats(os.Stdout, view)
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output in JSON format")
	statsCmd.Flags().StringVarP(&statsFilter, "filter", "f", "", "Only titles containing this text")
	statsCmd.Flags().StringVar(&statsCategory, "category", "all", "all, completed or uncompleted")
}
