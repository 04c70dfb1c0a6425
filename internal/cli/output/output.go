// Package output renders command results for a terminal or for pipes.
//
// In auto mode a terminal gets styled tables and everything else gets
// markdown, so output pasted into an issue or piped into a file stays
// readable.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"golang.org/x/term"
)

// Mode selects the output format.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeTable    Mode = "table"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
	ModeCSV      Mode = "csv"
)

// Modes lists the accepted --output values.
var Modes = []string{"auto", "table", "markdown", "json", "csv"}

// ParseMode validates an --output value. "text" and "md" are accepted as
// aliases of table and markdown.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return ModeAuto, nil
	case "table", "text":
		return ModeTable, nil
	case "markdown", "md":
		return ModeMarkdown, nil
	case "json":
		return ModeJSON, nil
	case "csv":
		return ModeCSV, nil
	}
	return "", fmt.Errorf("unknown output format %q (want one of %s)", s, strings.Join(Modes, ", "))
}

// Styles are the lipgloss styles used in table mode.
type Styles struct {
	Header  lipgloss.Style
	Muted   lipgloss.Style
	Bold    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("8")),
		Bold:    r.NewStyle().Bold(true),
		Success: r.NewStyle().Foreground(lipgloss.Color("10")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// Renderer writes command output in the selected mode.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	isTTY  bool
	styles *Styles
}

// NewRenderer creates a renderer, detecting whether out is a terminal.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	return NewRendererWithTTY(out, errOut, isTerminal(out), mode)
}

// NewRendererWithTTY creates a renderer with an explicit terminal state.
func NewRendererWithTTY(out, errOut io.Writer, isTTY bool, mode Mode) *Renderer {
	return &Renderer{
		out:    out,
		errOut: errOut,
		mode:   mode,
		isTTY:  isTTY,
		styles: newStyles(lipgloss.NewRenderer(out)),
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd())) //nolint:gosec // fd fits in int
}

// EffectiveMode resolves auto to table or markdown.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto && r.mode != "" {
		return r.mode
	}
	if r.isTTY {
		return ModeTable
	}
	return ModeMarkdown
}

func (r *Renderer) Writer() io.Writer    { return r.out }
func (r *Renderer) ErrWriter() io.Writer { return r.errOut }
func (r *Renderer) Styles() *Styles      { return r.styles }

func (r *Renderer) Println(a ...any) {
	_, _ = fmt.Fprintln(r.out, a...)
}

func (r *Renderer) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(r.out, format, a...)
}

// Header prints a section title. JSON and CSV output has no headers.
func (r *Renderer) Header(text string) {
	switch r.EffectiveMode() {
	case ModeMarkdown:
		r.Printf("## %s\n\n", text)
	case ModeTable:
		r.Println(r.styles.Header.Render(text))
	}
}

// Muted prints secondary text to the error stream.
func (r *Renderer) Muted(text string) {
	_, _ = fmt.Fprintln(r.errOut, r.styles.Muted.Render(text))
}

// Code prints a block of source, fenced in markdown mode.
func (r *Renderer) Code(lang, src string) {
	if r.EffectiveMode() == ModeMarkdown {
		r.Printf("```%s\n%s\n```\n", lang, src)
		return
	}
	r.Println(src)
}

// JSON writes v as indented JSON.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table writes rows under cols. In JSON mode every row becomes an object
// keyed by column name.
func (r *Renderer) Table(cols []string, rows [][]any) error {
	mode := r.EffectiveMode()
	if mode == ModeJSON {
		objs := make([]map[string]any, len(rows))
		for i, row := range rows {
			obj := make(map[string]any, len(cols))
			for j, col := range cols {
				obj[col] = row[j]
			}
			objs[i] = obj
		}
		return r.JSON(objs)
	}

	if len(rows) == 0 && mode != ModeCSV {
		r.Println("(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	header := make(table.Row, len(cols))
	for i, c := range cols {
		header[i] = c
	}
	t.AppendHeader(header)
	for _, row := range rows {
		out := make(table.Row, len(row))
		for i, v := range row {
			out[i] = FormatValue(v)
		}
		t.AppendRow(out)
	}

	switch mode {
	case ModeCSV:
		t.RenderCSV()
	case ModeMarkdown:
		t.RenderMarkdown()
		r.Println()
	default:
		t.SetStyle(table.StyleLight)
		t.Render()
		r.Println(r.styles.Muted.Render(fmt.Sprintf("(%d rows)", len(rows))))
	}
	return nil
}

// FormatValue renders one cell. NULL is spelled out and byte slices are
// shown as text.
func FormatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(v)
	case string:
		return v
	}
	return fmt.Sprintf("%v", v)
}
