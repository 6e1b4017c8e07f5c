package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	editTitle    string
	editContent  string
	editDeadline string
)

var editCmd = &cobra.Command{
	Use:   "edit <index>",
	Short: "Edit a note",
	Long: `Edit the note at the given position (as shown by 'twodo list').
Title and content keep their current values unless given; the deadline must
always be given again. Expired notes cannot be edited.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()

		index, err := parseIndex(args[0])
		if err != nil {
			fatal("Invalid index", err)
		}

		draft, err := svc.StartEdit(index)
		if err != nil {
			fatal("Cannot edit note", err)
		}
		if cmd.Flags().Changed("title") {
			draft.Title = editTitle
		}
		if cmd.Flags().Changed("content") {
			draft.Content = editContent
		}
		draft.Deadline = editDeadline

		note, err := svc.Submit(context.Background(), draft)
		if err != nil {
			fatal("Failed to save note", err)
		}

		fmt.Printf("Updated #%d: %s (due %s)\n", index+1, note.Title, note.Deadline)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editCmd.Flags().StringVarP(&editTitle, "title", "t", "", "New title")
	editCmd.Flags().StringVarP(&editContent, "content", "c", "", "New content")
	editCmd.Flags().StringVarP(&editDeadline, "deadline", "d", "", "Due date (YYYY-MM-DD)")
	editCmd.MarkFlagRequired("deadline")
}
