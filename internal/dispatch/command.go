package dispatch

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/leapstack-labs/lookup/internal/catalog"
	"github.com/leapstack-labs/lookup/internal/result"
)

// ExitCommand is the name of the command that ends the session.
const ExitCommand = "e"

// Runner executes named catalog queries.
type Runner interface {
	Run(ctx context.Context, name string, args []string) (*result.Set, error)
}

// Handler maps command arguments to a result set.
type Handler func(ctx context.Context, args []string) (*result.Set, error)

// Command is an entry of the static command table.
type Command struct {
	Name    string
	Arity   int
	Usage   string
	Summary string
	View    View
	Exit    bool
	Handler Handler
}

// Table maps command names to commands and remembers menu order.
type Table struct {
	byName map[string]Command
	order  []string
}

// NewTable builds the command table from the catalog queries, with the exit
// command appended. Each query command runs through runner.
func NewTable(queries []catalog.Query, runner Runner) *Table {
	t := &Table{byName: make(map[string]Command, len(queries)+1)}
	for _, q := range queries {
		name := q.Name
		t.add(Command{
			Name:    name,
			Arity:   q.Arity,
			Usage:   q.Usage,
			Summary: q.Summary,
			View:    views[name],
			Handler: func(ctx context.Context, args []string) (*result.Set, error) {
				return runner.Run(ctx, name, args)
			},
		})
	}
	t.add(Command{
		Name:    ExitCommand,
		Usage:   ExitCommand,
		Summary: "exit this program",
		Exit:    true,
	})
	return t
}

func (t *Table) add(cmd Command) {
	if _, exists := t.byName[cmd.Name]; !exists {
		t.order = append(t.order, cmd.Name)
	}
	t.byName[cmd.Name] = cmd
}

// Lookup returns the command registered under name.
func (t *Table) Lookup(name string) (Command, bool) {
	cmd, ok := t.byName[name]
	return cmd, ok
}

// Names returns the command names in menu order.
func (t *Table) Names() []string {
	out := make([]string, len(t.order))
	copy(out, t.order)
	return out
}

// WriteMenu writes the usage menu shown before every prompt.
func (t *Table) WriteMenu(w io.Writer) error {
	var b strings.Builder
	b.WriteString("\nWhat would you like to do?\n\n")
	for _, name := range t.order {
		cmd := t.byName[name]
		fmt.Fprintf(&b, "%-26s - %s\n", cmd.Usage, cmd.Summary)
	}
	b.WriteString("\n")
	_, err := io.WriteString(w, b.String())
	return err
}
