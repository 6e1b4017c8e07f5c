package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/twodo"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of twodo",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("twodo version %s\n", strings.TrimSpace(twodo.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
