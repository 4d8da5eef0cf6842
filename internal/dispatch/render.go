package dispatch

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/leapstack-labs/lookup/internal/export"
	"github.com/leapstack-labs/lookup/internal/result"
)

// Format selects how result sets are printed.
type Format string

// Console formats.
const (
	FormatText  Format = "text"
	FormatTable Format = "table"
)

// View describes the text layout of one command's records.
type View struct {
	// Title is a format string receiving the command arguments.
	Title string
	// Lines lists the lines printed per record. Empty prints all fields on one line.
	Lines []Line
	// Separate prints a blank line after every record.
	Separate bool
}

// Line is one labelled output line made of one or more field positions.
type Line struct {
	Label  string
	Fields []int
}

var studentLines = []Line{
	{Label: "Student number", Fields: []int{0}},
	{Label: "Name", Fields: []int{1, 2}},
	{Label: "Email", Fields: []int{3}},
	{Label: "Course name", Fields: []int{4}},
}

var views = map[string]View{
	"vs": {Title: "Subjects for student %s :"},
	"la": {Title: "Address for %s %s :"},
	"lr": {
		Title: "Reviews for student %s :",
		Lines: []Line{
			{Label: "Completeness", Fields: []int{0}},
			{Label: "Efficiency", Fields: []int{1}},
			{Label: "Style", Fields: []int{2}},
			{Label: "Documentation", Fields: []int{3}},
			{Label: "Text", Fields: []int{4}},
		},
	},
	"lc": {Title: "Courses taught by teacher %s :"},
	"lnc": {
		Title:    "Students who haven't completed their course:",
		Lines:    studentLines,
		Separate: true,
	},
	"lf": {
		Title:    "Students who have completed their course and achieved a mark of 30 or below:",
		Lines:    append(append([]Line{}, studentLines...), Line{Label: "Mark", Fields: []int{5}}),
		Separate: true,
	},
}

type renderer struct {
	w      io.Writer
	format Format
	title  lipgloss.Style
	alert  lipgloss.Style
}

func newRenderer(w io.Writer, format Format) *renderer {
	r := lipgloss.NewRenderer(w)
	return &renderer{
		w:      w,
		format: format,
		title:  r.NewStyle().Bold(true),
		alert:  r.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// notice writes a plain diagnostic line.
func (r *renderer) notice(format string, a ...any) {
	_, _ = fmt.Fprintf(r.w, format+"\n", a...)
}

// warn writes a highlighted diagnostic line.
func (r *renderer) warn(format string, a ...any) {
	_, _ = fmt.Fprintln(r.w, r.alert.Render(fmt.Sprintf(format, a...)))
}

// render prints set for cmd in record order.
func (r *renderer) render(cmd Command, args []string, set *result.Set) error {
	if title := cmd.View.title(args); title != "" {
		if _, err := fmt.Fprintln(r.w, r.title.Render(title)); err != nil {
			return err
		}
	}

	if set.Empty() {
		_, err := fmt.Fprintln(r.w, "(no results)")
		return err
	}

	if r.format == FormatTable {
		return r.renderTable(set)
	}
	return r.renderText(cmd.View, set)
}

func (r *renderer) renderText(view View, set *result.Set) error {
	var b strings.Builder
	for _, rec := range set.Records {
		if len(view.Lines) == 0 {
			all := make([]int, len(rec))
			for i := range rec {
				all[i] = i
			}
			b.WriteString(joinFields(rec, all))
			b.WriteString("\n")
		}
		for _, line := range view.Lines {
			fmt.Fprintf(&b, "%s: %s\n", line.Label, joinFields(rec, line.Fields))
		}
		if view.Separate {
			b.WriteString("\n")
		}
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

func (r *renderer) renderTable(set *result.Set) error {
	width := set.Width()

	t := table.NewWriter()
	t.SetOutputMirror(r.w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, width)
	for i := range header {
		if len(set.Columns) == width {
			header[i] = set.Columns[i]
		} else {
			header[i] = export.FieldName(i)
		}
	}
	t.AppendHeader(header)

	for _, rec := range set.Records {
		row := make(table.Row, width)
		for i := range row {
			row[i] = ""
			if i < len(rec) {
				row[i] = formatValue(rec[i])
			}
		}
		t.AppendRow(row)
	}

	t.Render()
	_, err := fmt.Fprintf(r.w, "(%d rows)\n", set.Len())
	return err
}

func (v View) title(args []string) string {
	if v.Title == "" {
		return ""
	}
	params := make([]any, len(args))
	for i, a := range args {
		params[i] = a
	}
	return fmt.Sprintf(v.Title, params...)
}

// joinFields joins the given positions of rec with spaces. Positions past the
// end of the record render as empty.
func joinFields(rec result.Record, fields []int) string {
	parts := make([]string, len(fields))
	for i, idx := range fields {
		if idx < len(rec) {
			parts[i] = formatValue(rec[idx])
		}
	}
	return strings.Join(parts, " ")
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	return result.String(v)
}
