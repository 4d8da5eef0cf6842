// Package console provides the line readers used by the interactive session
// and the export prompt.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// ErrInterrupt is returned by ReadLine when the user pressed Ctrl-C.
var ErrInterrupt = errors.New("interrupted")

// LineReader reads one line of user input after showing a prompt.
// ReadLine returns io.EOF when the input is exhausted.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// ScannerReader reads lines from a plain io.Reader, echoing prompts to w.
// It is used for piped input and in tests.
type ScannerReader struct {
	scanner *bufio.Scanner
	w       io.Writer
}

// NewScannerReader creates a ScannerReader over r.
func NewScannerReader(r io.Reader, w io.Writer) *ScannerReader {
	return &ScannerReader{scanner: bufio.NewScanner(r), w: w}
}

// ReadLine writes prompt and returns the next line without its line ending.
// At end of input a shown prompt is ended with a newline, as a terminal does
// on Ctrl-D.
func (s *ScannerReader) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		if _, err := fmt.Fprint(s.w, prompt); err != nil {
			return "", err
		}
	}
	if !s.scanner.Scan() {
		if err := s.scanner.Err(); err != nil {
			return "", err
		}
		if prompt != "" {
			_, _ = fmt.Fprintln(s.w)
		}
		return "", io.EOF
	}
	return strings.TrimRight(s.scanner.Text(), "\r"), nil
}

// ReadlineConfig configures a terminal line reader.
type ReadlineConfig struct {
	HistoryFile string
	Completions []string
	Stdin       io.ReadCloser
	Stdout      io.Writer
	Stderr      io.Writer
}

// Readline is a LineReader backed by chzyer/readline with history and
// tab completion.
type Readline struct {
	rl *readline.Instance
}

// NewReadline creates a terminal line reader.
func NewReadline(cfg ReadlineConfig) (*Readline, error) {
	items := make([]readline.PrefixCompleterInterface, 0, len(cfg.Completions))
	for _, c := range cfg.Completions {
		items = append(items, readline.PcItem(c))
	}

	rl, err := readline.NewEx(&readline.Config{
		HistoryFile:     cfg.HistoryFile,
		AutoComplete:    readline.NewPrefixCompleter(items...),
		InterruptPrompt: "^C",
		Stdin:           cfg.Stdin,
		Stdout:          cfg.Stdout,
		Stderr:          cfg.Stderr,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize line editor: %w", err)
	}
	return &Readline{rl: rl}, nil
}

// ReadLine shows prompt and reads one edited line.
func (r *Readline) ReadLine(prompt string) (string, error) {
	r.rl.SetPrompt(prompt)
	line, err := r.rl.Readline()
	if errors.Is(err, readline.ErrInterrupt) {
		return "", ErrInterrupt
	}
	return line, err
}

// Close restores the terminal.
func (r *Readline) Close() error {
	return r.rl.Close()
}
