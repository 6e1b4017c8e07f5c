package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	addContent  string
	addDeadline string
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a note",
	Long:  `Add a new, uncompleted note. The deadline is a date in YYYY-MM-DD form.`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		svc := openService()

		note, err := svc.Add(context.Background(), strings.Join(args, " "), addContent, addDeadline)
		if err != nil {
			fatal("Failed to add note", err)
		}

		fmt.Printf("Added #%d: %s (due %s)\n", svc.Len(), note.Title, note.Deadline)
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addContent, "content", "c", "", "Note content")
	addCmd.Flags().StringVarP(&addDeadline, "deadline", "d", "", "Due date (YYYY-MM-DD)")
	addCmd.MarkFlagRequired("deadline")
}
