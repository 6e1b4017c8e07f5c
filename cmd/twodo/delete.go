package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <index>",
	Aliases: []string{"rm"},
	Short:   "Delete a note",
	Long:    `Delete permanently removes the note at the given position. Expired notes can be deleted too.`,
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()

		index, err := parseIndex(args[0])
		if err != nil {
			fatal("Invalid index", err)
		}

		title := ""
		if notes := svc.Notes(); index < len(notes) {
			title = notes[index].Title
		}

		if err := svc.Delete(context.Background(), index); err != nil {
			fatal("Failed to delete note", err)
		}

		fmt.Printf("Deleted #%d: %s\n", index+1, title)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
