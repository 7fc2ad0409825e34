package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/shahar-caura/glutenguard/internal/config"
	"github.com/spf13/cobra"
)

// app carries global flags and the state PersistentPreRunE builds from them.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	jsonOutput bool

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "glutenguard",
		Short: "Check ingredients, products and dishes for gluten",
		Long: `glutenguard classifies ingredient lists as safe, caution or unsafe for a
gluten-free diet. Look products up by barcode, search dishes by name, keep
favorites, or serve the same checks over HTTP and MCP.`,
		Version:           version,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	cmd.PersistentFlags().StringVar(&a.configPath, "config", config.DefaultPath, "config file")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error); overrides config")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format (text, json); overrides config")
	cmd.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "print results as JSON")

	cmd.AddCommand(
		newCheckCmd(a),
		newBarcodeCmd(a),
		newSearchCmd(a),
		newScanCmd(a),
		newFavoritesCmd(a),
		newHistoryCmd(a),
		newCacheCmd(a),
		newPhrasesCmd(a),
		newServeCmd(a),
		newMCPCmd(a),
		newInitCmd(a),
		newCompletionCmd(),
		newVersionCmd(),
	)

	return cmd
}

// annotationConfigOptional marks commands that run before a config file exists.
const annotationConfigOptional = "config-optional"

// setup loads env files and config, then builds the logger. A missing
// config file is only an error when --config was given explicitly.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	config.LoadEnvFiles(config.EnvFiles()...)

	load := config.LoadOrDefault
	if cmd.Flags().Changed("config") && cmd.Annotations[annotationConfigOptional] == "" {
		load = config.Load
	}
	cfg, err := load(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}

	logger, err := newLogger(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = logger
	slog.SetDefault(logger)
	return nil
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var slogLevel slog.Level
	switch level {
	case "debug":
		slogLevel = slog.LevelDebug
	case "info":
		slogLevel = slog.LevelInfo
	case "warn":
		slogLevel = slog.LevelWarn
	case "error":
		slogLevel = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level: %s", level)
	}

	opts := &slog.HandlerOptions{Level: slogLevel}
	switch format {
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format: %s", format)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "glutenguard %s\n", version)
			return err
		},
	}
}
