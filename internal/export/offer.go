package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/lookup/internal/console"
	"github.com/leapstack-labs/lookup/internal/result"
)

// Kind is the outcome of an export offer.
type Kind int

// Offer outcomes.
const (
	Declined Kind = iota
	WrittenJSON
	WrittenXML
)

func (k Kind) String() string {
	switch k {
	case Declined:
		return "declined"
	case WrittenJSON:
		return "written-json"
	case WrittenXML:
		return "written-xml"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Result reports what an offer did. Path is set when a file was written.
type Result struct {
	Kind Kind
	Path string
}

// Written reports whether a file was written.
func (r Result) Written() bool {
	return r.Kind == WrittenJSON || r.Kind == WrittenXML
}

// Offerer decides whether and where a result set is stored.
type Offerer interface {
	Offer(ctx context.Context, set *result.Set) (Result, error)
}

// Prompts shown by the interactive offer.
const (
	promptStore    = "Would you like to store this result?"
	promptChoice   = "Y/[N]? : "
	promptFilename = "Specify filename. Must end in .xml or .json: "
)

// Interactive asks the user whether to store a result set and where.
type Interactive struct {
	in     console.LineReader
	out    io.Writer
	logger *slog.Logger
}

// NewInteractive creates an interactive offerer reading answers from in.
func NewInteractive(in console.LineReader, out io.Writer, logger *slog.Logger) *Interactive {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Interactive{in: in, out: out, logger: logger}
}

// Offer repeats the yes/no question until the user declines or a file is
// written. Unknown answers, unsupported extensions and write failures are
// reported and the question is asked again. Input exhaustion returns Declined
// together with io.EOF.
func (o *Interactive) Offer(ctx context.Context, set *result.Set) (Result, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Result{Kind: Declined}, err
		}

		_, _ = fmt.Fprintln(o.out, promptStore)
		choice, err := o.in.ReadLine(promptChoice)
		if err != nil {
			return o.inputFailed(err)
		}

		switch strings.ToLower(strings.TrimSpace(choice)) {
		case "n":
			return Result{Kind: Declined}, nil
		case "y":
		default:
			_, _ = fmt.Fprintln(o.out, "Invalid choice")
			continue
		}

		filename, err := o.in.ReadLine(promptFilename)
		if err != nil {
			return o.inputFailed(err)
		}
		filename = strings.TrimSpace(filename)

		format, err := FormatFromFilename(filename)
		if err != nil {
			_, _ = fmt.Fprintln(o.out, "Invalid file extension. Please use .xml or .json")
			continue
		}

		if err := Write(filename, format, set); err != nil {
			o.logger.Debug("export failed", "path", filename, "error", err)
			_, _ = fmt.Fprintf(o.out, "Could not store result: %v\n", err)
			continue
		}

		o.logger.Debug("result exported", "path", filename, "format", string(format), "records", set.Len())
		_, _ = fmt.Fprintf(o.out, "Result stored in %s\n", filename)
		return Result{Kind: kindOf(format), Path: filename}, nil
	}
}

func (o *Interactive) inputFailed(err error) (Result, error) {
	if errors.Is(err, console.ErrInterrupt) {
		return Result{Kind: Declined}, nil
	}
	return Result{Kind: Declined}, err
}

// File stores every offered result set at a fixed path without prompting.
type File struct {
	path   string
	format Format
}

// ToFile returns an offerer writing to path. The extension is validated here.
func ToFile(path string) (*File, error) {
	format, err := FormatFromFilename(path)
	if err != nil {
		return nil, err
	}
	return &File{path: path, format: format}, nil
}

// Offer writes set to the configured path.
func (f *File) Offer(_ context.Context, set *result.Set) (Result, error) {
	if err := Write(f.path, f.format, set); err != nil {
		return Result{Kind: Declined}, err
	}
	return Result{Kind: kindOf(f.format), Path: f.path}, nil
}

// Never declines every offer.
type Never struct{}

// Offer returns Declined.
func (Never) Offer(context.Context, *result.Set) (Result, error) {
	return Result{Kind: Declined}, nil
}

func kindOf(format Format) Kind {
	if format == FormatXML {
		return WrittenXML
	}
	return WrittenJSON
}
