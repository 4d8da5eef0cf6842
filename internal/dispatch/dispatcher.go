// Package dispatch implements the command loop: it tokenises input lines,
// checks argument counts against the static command table, runs the matching
// lookup, prints the result set and offers to export it.
package dispatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/lookup/internal/console"
	"github.com/leapstack-labs/lookup/internal/export"
)

// Outcome is the result of dispatching one line.
type Outcome int

// Dispatch outcomes.
const (
	Displayed Outcome = iota
	Exported
	Skipped
	InvalidArity
	UnknownCommand
	QueryFailed
	Exit
)

var outcomeNames = map[Outcome]string{
	Displayed:      "displayed",
	Exported:       "exported",
	Skipped:        "skipped",
	InvalidArity:   "invalid-arity",
	UnknownCommand: "unknown-command",
	QueryFailed:    "query-failed",
	Exit:           "exit",
}

func (o Outcome) String() string {
	if name, ok := outcomeNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Prompt is shown below the menu when reading a command.
const Prompt = "Type your option here: "

// Options configures a Dispatcher.
type Options struct {
	Out    io.Writer
	Format Format
	Logger *slog.Logger
}

// Dispatcher routes command lines to the command table.
type Dispatcher struct {
	table   *Table
	offerer export.Offerer
	out     *renderer
	logger  *slog.Logger
}

// New creates a Dispatcher. Non-empty result sets are handed to offerer.
func New(table *Table, offerer export.Offerer, opts Options) *Dispatcher {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	if opts.Format == "" {
		opts.Format = FormatText
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{
		table:   table,
		offerer: offerer,
		out:     newRenderer(opts.Out, opts.Format),
		logger:  opts.Logger,
	}
}

// Dispatch splits line on whitespace and executes it. An empty line is an
// unknown command with an empty name.
func (d *Dispatcher) Dispatch(ctx context.Context, line string) (Outcome, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return d.Execute(ctx, "", nil)
	}
	return d.Execute(ctx, fields[0], fields[1:])
}

// Execute runs the named command with args. Recoverable problems (unknown
// command, wrong argument count, query failure) are reported on the console
// and yield a nil error. A returned error means the session cannot go on.
func (d *Dispatcher) Execute(ctx context.Context, name string, args []string) (Outcome, error) {
	cmd, ok := d.table.Lookup(name)
	if !ok {
		d.out.warn("Incorrect command: '%s'", name)
		return UnknownCommand, nil
	}

	if len(args) != cmd.Arity {
		d.out.warn("The %s command requires %d %s.", cmd.Name, cmd.Arity, plural(cmd.Arity, "argument"))
		return InvalidArity, nil
	}

	if cmd.Exit {
		d.out.notice("Programme exited successfully!")
		return Exit, nil
	}

	d.logger.Debug("executing command", "command", cmd.Name, "args", len(args))

	set, err := cmd.Handler(ctx, args)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return QueryFailed, ctxErr
		}
		d.logger.Debug("command failed", "command", cmd.Name, "error", err)
		d.out.warn("Query failed: %v", err)
		return QueryFailed, nil
	}

	if err := d.out.render(cmd, args, set); err != nil {
		return Displayed, fmt.Errorf("failed to print result: %w", err)
	}
	if set.Empty() {
		return Displayed, nil
	}

	res, err := d.offerer.Offer(ctx, set)
	if err != nil {
		return Skipped, err
	}
	if res.Written() {
		return Exported, nil
	}
	return Skipped, nil
}

// Loop shows the menu, reads a command and dispatches it until the exit
// command, end of input or cancellation of ctx. Ctrl-C discards the current
// line.
func (d *Dispatcher) Loop(ctx context.Context, in console.LineReader) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := d.table.WriteMenu(d.out.w); err != nil {
			return err
		}
		line, err := in.ReadLine(Prompt)
		if errors.Is(err, console.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			d.out.notice("Programme exited successfully!")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read command: %w", err)
		}
		d.out.notice("")

		outcome, err := d.Dispatch(ctx, line)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		d.logger.Debug("command dispatched", "outcome", outcome.String())
		if outcome == Exit {
			return nil
		}
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
