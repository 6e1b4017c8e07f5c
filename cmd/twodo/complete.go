package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var completeCmd = &cobra.Command{
	Use:     "complete <index>",
	Aliases: []string{"toggle", "done"},
	Short:   "Toggle the completed flag of a note",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()

		index, err := parseIndex(args[0])
		if err != nil {
			fatal("Invalid index", err)
		}

		note, err := svc.ToggleComplete(context.Background(), index)
		if err != nil {
			fatal("Failed to toggle note", err)
		}

		state := "not completed"
		if note.Completed {
			state = "completed"
		}
		fmt.Printf("#%d %s is now %s\n", index+1, note.Title, state)
	},
}

func init() {
	rootCmd.AddCommand(completeCmd)
}
