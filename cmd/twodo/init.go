package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/twodo"
	"github.com/aretw0/twodo/internal/platform"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a twodo workspace",
	Long:  `Create the .twodo directory in the current directory (or --dir).`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		root := cfg.Store.Dir
		if root == "" {
			wd, err := os.Getwd()
			if err != nil {
				fatal("Failed to get CWD", err)
			}
			root = wd
		}

		store, err := twodo.Init(root, storeOptions()...)
		if err != nil {
			fatal("Failed to initialize workspace", err)
		}
		if c, ok := store.(io.Closer); ok {
			closers = append(closers, c)
		}

		if cfg.Store.Adapter == "fs" {
			fmt.Println("Initialized empty twodo workspace in", filepath.Join(root, platform.DefaultSystemDir))
			return
		}
		fmt.Printf("Initialized %s store\n", cfg.Store.Adapter)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
