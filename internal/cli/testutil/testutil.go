// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"context"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/leapstack-labs/lookup/internal/catalog"
	"github.com/leapstack-labs/lookup/internal/cli/config"
	"github.com/leapstack-labs/lookup/internal/schema"
	itestutil "github.com/leapstack-labs/lookup/internal/testutil"
	"github.com/spf13/cobra"
)

// SetupTestDatabase creates a migrated sqlite database with the demo data in
// a temporary directory and returns its path.
func SetupTestDatabase(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "HyperionDev.db")
	store, err := catalog.Open(context.Background(), catalog.Options{
		Driver:    catalog.DriverSQLite,
		Database:  path,
		ReadWrite: true,
	})
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	defer func() { _ = store.Close() }()

	if err := schema.Migrate(context.Background(), store.DB(), schema.Options{Driver: catalog.DriverSQLite}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return path
}

// TestConfig returns the default configuration pointed at database.
func TestConfig(database string) *config.Config {
	cfg := config.Default()
	cfg.DatabasePath = database
	return cfg
}

// Result holds the captured streams of a command run.
type Result struct {
	Out    string
	ErrOut string
}

// ExecuteCommand runs cmd with args, feeding stdin and capturing output. The
// config and a test logger are placed in the command context the way the
// root command does it.
func ExecuteCommand(t *testing.T, cmd *cobra.Command, cfg *config.Config, stdin string, args ...string) (Result, error) {
	t.Helper()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	// A nil slice makes cobra fall back to os.Args.
	cmd.SetArgs(append([]string{}, args...))

	ctx := config.WithConfig(context.Background(), cfg)
	ctx = config.WithLogger(ctx, itestutil.NewTestLogger(t))
	err := cmd.ExecuteContext(ctx)
	return Result{Out: out.String(), ErrOut: errOut.String()}, err
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}
