package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/twodo/pkg/core"
)

var (
	listJSON     bool
	listFilter   string
	listCategory string
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List notes",
	Long: `List notes in insertion order. --filter keeps titles containing the text
(case-insensitive); --category narrows to completed or uncompleted notes.
Positions shown are the ones other commands accept.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		query, err := buildQuery(listFilter, listCategory)
		if err != nil {
			fatal("Invalid query", err)
		}

		view := openService().View(query)

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(view.Entries); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		renderEntries(os.Stdout, view.Entries)
	},
}

func buildQuery(filter, category string) (core.Query, error) {
	c, err := core.ParseCategory(category)
	if err != nil {
		return core.Query{}, err
	}
	return core.Query{Filter: filter, Category: c}, nil
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVarP(&listFilter, "filter", "f", "", "Only titles containing this text")
	listCmd.Flags().StringVar(&listCategory, "category", "all", "all, completed or uncompleted")
}
