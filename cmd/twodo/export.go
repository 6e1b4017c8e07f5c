package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/twodo/pkg/adapters/fs"
)

var exportFormat string

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write all notes to a JSON or YAML file",
	Long:  `Write all notes to a file. The format follows the extension (.json, .yaml, .yml); without a file the notes go to stdout as --format.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		target := exportFormat
		if len(args) == 1 {
			target = args[0]
		}

		serializer, err := fs.SerializerFor(target)
		if err != nil {
			fatal("Unsupported format", err)
		}

		notes := openService().Notes()
		data, err := serializer.Serialize(notes)
		if err != nil {
			fatal("Failed to encode notes", err)
		}

		if len(args) == 0 {
			os.Stdout.Write(data)
			return
		}
		if err := os.WriteFile(args[0], data, 0644); err != nil {
			fatal("Failed to write file", err)
		}
		fmt.Fprintf(os.Stderr, "Exported %d notes to %s\n", len(notes), args[0])
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format when writing to stdout (json or yaml)")
}
