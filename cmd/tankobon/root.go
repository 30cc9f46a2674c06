package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tankobon/tankobon/internal/config"
	"github.com/tankobon/tankobon/internal/library"
)

var version = "dev"

// app holds state shared by all subcommands of one invocation.
type app struct {
	configPath string
	jsonOutput bool
	logLevel   string

	cfg    *config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:   "tankobon",
		Short: "Manage a library of manga, comic and novel records",
		Long: `tankobon - content library for manga, comics and novels

Imports and exports backup documents, validates content records,
and finds the same series across sources.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to config file (default: discovered)")
	cmd.PersistentFlags().BoolVar(&a.jsonOutput, "json", false, "Output as JSON")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Override log level (debug, info, warn, error)")
	cmd.SetVersionTemplate("tankobon {{.Version}}\n")

	cmd.AddCommand(
		newImportCmd(a),
		newExportCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newDecodeCmd(a),
		newLinksCmd(a),
		newConfigCmd(a),
		newVersionCmd(),
	)
	return cmd
}

// load resolves the configuration once per invocation: --config, then
// Discover, then built-in defaults.
func (a *app) load(cmd *cobra.Command) (*config.Config, error) {
	if a.cfg != nil {
		return a.cfg, nil
	}

	path := a.configPath
	if path == "" {
		found, err := config.Discover()
		if err != nil && !errors.Is(err, config.ErrNotFound) {
			return nil, err
		}
		path = found
	}

	cfg := config.Default()
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	a.cfg = cfg
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))
	a.logger.Debug("config loaded", "path", path, "database", cfg.Database.Path)
	return cfg, nil
}

// openStore opens the configured database. The returned func closes it.
func (a *app) openStore(cmd *cobra.Command) (*library.Store, func(), error) {
	cfg, err := a.load(cmd)
	if err != nil {
		return nil, nil, err
	}
	db, err := library.Open(cfg.Database.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("open database: %w", err)
	}
	return library.NewStore(db), func() { _ = db.Close() }, nil
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// openInput returns stdin for "-" or no argument, otherwise the named file.
func openInput(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) == 0 || args[0] == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
