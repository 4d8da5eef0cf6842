package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/leapstack-labs/lookup/internal/catalog"
	"github.com/leapstack-labs/lookup/internal/cli/config"
	"github.com/leapstack-labs/lookup/internal/console"
	"github.com/leapstack-labs/lookup/internal/dispatch"
	"github.com/leapstack-labs/lookup/internal/export"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg    *config.Config
	Logger *slog.Logger
	Store  *catalog.Store
	Table  *dispatch.Table
}

// NewCommandContext opens the configured database read-only and builds the
// command table over it.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	ctx := cmd.Context()
	cfg := config.FromContext(ctx)
	logger := config.GetLogger(ctx)

	store, err := openStore(ctx, cfg, logger, false)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		_ = store.Close()
	}

	return &CommandContext{
		Cfg:    cfg,
		Logger: logger,
		Store:  store,
		Table:  dispatch.NewTable(catalog.Queries(), store),
	}, cleanup, nil
}

// Dispatcher builds a dispatcher writing to cmd's output.
func (c *CommandContext) Dispatcher(cmd *cobra.Command, offerer export.Offerer) *dispatch.Dispatcher {
	return dispatch.New(c.Table, offerer, dispatch.Options{
		Out:    cmd.OutOrStdout(),
		Format: dispatch.Format(c.Cfg.Format),
		Logger: c.Logger,
	})
}

func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger, readWrite bool) (*catalog.Store, error) {
	store, err := catalog.Open(ctx, catalog.Options{
		Driver:    cfg.Driver,
		Database:  cfg.DatabasePath,
		ReadWrite: readWrite,
		Logger:    logger,
	})
	if errors.Is(err, catalog.ErrDatabaseMissing) {
		return nil, fmt.Errorf("please store your database as %s", cfg.DatabasePath)
	}
	return store, err
}

// newLineReader returns a readline editor when cmd reads from a terminal and
// a plain line scanner otherwise.
func newLineReader(cmd *cobra.Command, cfg *config.Config, completions []string) (console.LineReader, func(), error) {
	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		rl, err := console.NewReadline(console.ReadlineConfig{
			HistoryFile: cfg.HistoryFile,
			Completions: completions,
			Stdin:       f,
			Stdout:      cmd.OutOrStdout(),
			Stderr:      cmd.ErrOrStderr(),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize line editor: %w", err)
		}
		return rl, func() { _ = rl.Close() }, nil
	}
	return console.NewScannerReader(cmd.InOrStdin(), cmd.OutOrStdout()), func() {}, nil
}
