package main

import (
	"fmt"
	"log/slog"

	"github.com/axon-ui/axon/internal/config"
	"github.com/axon-ui/axon/internal/demo"
	"github.com/axon-ui/axon/pkg/cortex"
	"github.com/axon-ui/axon/pkg/keyval"
	"github.com/axon-ui/axon/pkg/live"
	"github.com/spf13/cobra"
)

func serveCmd() *cobra.Command {
	var (
		address string
		backend string
		path    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the built-in todo demo",
		Long: `Start the live server with the built-in todo app.

Settings come from axon.toml and AXON_* environment variables; flags
override both.

Examples:
  axon serve
  axon serve --address=:9000
  axon serve --store=sqlite --store-path=todos.db`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(address, backend, path)
		},
	}

	cmd.Flags().StringVarP(&address, "address", "a", "", "Listen address (default from config)")
	cmd.Flags().StringVar(&backend, "store", "", "Store backend: memory, file or sqlite")
	cmd.Flags().StringVar(&path, "store-path", "", "File store directory or sqlite database file")

	return cmd
}

func runServe(address, backend, path string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Command-line overrides.
	if address != "" {
		cfg.Server.Address = address
	}
	if backend != "" {
		cfg.Store.Backend = backend
	}
	if path != "" {
		cfg.Store.Path = path
	}

	logger := config.NewLogger(cfg.Log)
	slog.SetDefault(logger)

	store, err := openStore(cfg.Store)
	if err != nil {
		return err
	}
	defer store.Close()

	app := live.App{
		NewCortex: func() *cortex.Cortex {
			return demo.NewCortex(store)
		},
		Root: demo.Root,
	}

	server := live.New(app,
		live.WithAddress(cfg.Server.Address),
		live.WithTitle(cfg.Server.Title),
		live.WithLogger(logger.With("component", "live")),
	)

	logger.Info("serving todo demo",
		"address", cfg.Server.Address,
		"store", cfg.Store.Backend)
	return server.Run()
}

func openStore(cfg config.StoreConfig) (keyval.Store, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return keyval.NewMemoryStore(), nil

	case config.BackendFile:
		dir := cfg.Path
		if dir == "" {
			dir = "axon-data"
		}
		return keyval.NewFileStore(dir)

	case config.BackendSQLite:
		dbPath := cfg.Path
		if dbPath == "" {
			dbPath = "axon.db"
		}
		return keyval.OpenSQLite(dbPath)

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
