package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/twodo/pkg/adapters/fs"
)

var importAppend bool

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Load notes from a JSON or YAML file",
	Long:  `Replace the note list with the notes in file, or append them with --append. Every note needs a title and a deadline.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		serializer, err := fs.SerializerFor(args[0])
		if err != nil {
			fatal("Unsupported format", err)
		}

		f, err := os.Open(args[0])
		if err != nil {
			fatal("Failed to open file", err)
		}
		defer f.Close()

		incoming, err := serializer.Parse(f)
		if err != nil {
			fatal("Failed to parse file", err)
		}

		svc := openService()
		notes := incoming
		if importAppend {
			notes = append(svc.Notes(), incoming...)
		}

		if err := svc.Replace(context.Background(), notes); err != nil {
			fatal("Failed to import notes", err)
		}

		fmt.Printf("Imported %d notes (%d total)\n", len(incoming), svc.Len())
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVar(&importAppend, "append", false, "Append instead of replacing the list")
}
