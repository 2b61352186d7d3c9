package main

import (
	"io"
	"log/slog"
	"os"

	"github.com/pkotlin/pkc/config"
	"github.com/spf13/cobra"
)

var rootFlags = struct {
	config  *string
	verbose *bool
}{}

var (
	cfg    = config.Default()
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

var rootCmd = &cobra.Command{
	Use:   "pkc",
	Short: "Analyze Pseudo-Kotlin programs",
	Long: `pkc checks whether a Pseudo-Kotlin program is lexically and syntactically valid.
It prints the token stream, the identifiers, and the parse tree of a program,
and saves programs as .pk project files.`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setUp,
}

func init() {
	rootFlags.config = rootCmd.PersistentFlags().String("config", "", "configuration file path (default "+config.DefaultPath+" when it exists)")
	rootFlags.verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print debug logs to stderr")
}

func setUp(cmd *cobra.Command, args []string) error {
	level := slog.LevelWarn
	if *rootFlags.verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))

	c, err := config.LoadOrDefault(*rootFlags.config)
	if err != nil {
		return err
	}
	cfg = c
	logger.Debug("loaded a configuration",
		slog.Int("max_depth", cfg.Analyzer.MaxDepth),
		slog.Bool("lac", *cfg.Analyzer.LAC),
		slog.String("format", cfg.Output.Format),
	)

	return nil
}

// Execute runs the command line. The caller prints the returned error.
func Execute() error {
	return rootCmd.Execute()
}
