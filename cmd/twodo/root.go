package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/twodo"
	"github.com/aretw0/twodo/internal/config"
	"github.com/aretw0/twodo/internal/logging"
	"github.com/aretw0/twodo/pkg/core"
)

var (
	verbose  bool
	dir      string
	adapter  string
	slotKey  string
	redisURL string
	logFile  string
	readOnly bool

	cfg       *config.Config
	logCloser io.Closer
	// closers are released when the command ends, including through fatal.
	closers []io.Closer
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "twodo",
	Short: "A tiny note and task tracker with due dates",
	Long: `twodo keeps an ordered list of notes with deadlines.
Notes can be completed, edited, filtered and summarized; the list is stored
in a single slot of a key-value store (a JSON file under .twodo/ by default).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		applyFlagOverrides(cmd)

		level := cfg.Log.Level
		if verbose {
			level = slog.LevelDebug
		}

		var logger *slog.Logger
		logger, logCloser = logging.New(logging.Options{
			Level:   level,
			Console: os.Stderr,
			File:    cfg.Log.File,
		})
		slog.SetDefault(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		cleanup()
	},
}

// applyFlagOverrides lets explicit flags win over the environment.
func applyFlagOverrides(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.Store.Dir = dir
	}
	if flags.Changed("adapter") {
		cfg.Store.Adapter = adapter
	}
	if flags.Changed("key") {
		cfg.Store.Key = slotKey
	}
	if flags.Changed("redis-url") {
		cfg.Store.RedisURL = redisURL
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}
}

// cleanup closes opened stores, then the log file.
func cleanup() {
	for _, c := range closers {
		if err := c.Close(); err != nil {
			slog.Debug("close failed", "error", err)
		}
	}
	closers = nil

	if logCloser != nil {
		logCloser.Close()
		logCloser = nil
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cleanup()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&dir, "dir", "", "Workspace directory (default: nearest .twodo upwards)")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "fs", "Store adapter: fs, memory or redis")
	rootCmd.PersistentFlags().StringVar(&slotKey, "key", "notes", "Slot key the notes are stored under")
	rootCmd.PersistentFlags().StringVar(&redisURL, "redis-url", "", "Redis connection string for the redis adapter")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Also write JSON logs to this rotating file")
	rootCmd.PersistentFlags().BoolVar(&readOnly, "read-only", false, "Refuse every write")
}

// workspaceRoot returns the directory the fs adapter works in.
// Without --dir it walks up from the current directory.
func workspaceRoot() (string, error) {
	if cfg.Store.Dir != "" {
		return cfg.Store.Dir, nil
	}
	if cfg.Store.Adapter != "fs" {
		return "", nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return twodo.FindRoot(wd)
}

func storeOptions() []twodo.Option {
	return []twodo.Option{
		twodo.WithAdapter(cfg.Store.Adapter),
		twodo.WithKey(cfg.Store.Key),
		twodo.WithRedisURL(cfg.Store.RedisURL),
		twodo.WithLocation(cfg.Location),
		twodo.WithReadOnly(readOnly),
		twodo.WithLogger(slog.Default()),
	}
}

// openStore opens the store of an initialized workspace or exits.
// Stores holding connections are closed by cleanup.
func openStore(root string) core.Store {
	store, err := twodo.Init(root, append(storeOptions(), twodo.WithMustExist(true))...)
	if err != nil {
		fatal("Error opening workspace", err)
	}
	if c, ok := store.(io.Closer); ok {
		closers = append(closers, c)
	}
	return store
}

// openService opens an initialized workspace or exits.
func openService() *core.Service {
	root, err := workspaceRoot()
	if err != nil {
		fatal("Error", err)
	}
	return serviceFor(root, openStore(root))
}

// serviceFor loads the notes held by an already opened store.
func serviceFor(root string, store core.Store) *core.Service {
	svc, err := twodo.New(root, append(storeOptions(), twodo.WithStore(store))...)
	if err != nil {
		fatal("Error opening workspace", err)
	}
	return svc
}
