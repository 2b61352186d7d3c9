package console

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/pkotlin/pkc/analyzer"
	"github.com/pkotlin/pkc/config"
	"github.com/pkotlin/pkc/driver/parser"
	"github.com/pkotlin/pkc/token"
	"gopkg.in/yaml.v3"
)

// Colors
var (
	colorSuccess = lipgloss.Color("#10B981")
	colorError   = lipgloss.Color("#EF4444")
	colorHeader  = lipgloss.Color("#7C3AED")
	colorMuted   = lipgloss.Color("#6B7280")
)

type styles struct {
	success lipgloss.Style
	err     lipgloss.Style
	header  lipgloss.Style
	cell    lipgloss.Style
	border  lipgloss.Style
}

func newStyles(color bool) *styles {
	if !color {
		plain := lipgloss.NewStyle()
		return &styles{
			success: plain,
			err:     plain,
			header:  plain.Bold(true).Padding(0, 1),
			cell:    plain.Padding(0, 1),
			border:  plain,
		}
	}
	return &styles{
		success: lipgloss.NewStyle().Foreground(colorSuccess).Bold(true),
		err:     lipgloss.NewStyle().Foreground(colorError),
		header:  lipgloss.NewStyle().Foreground(colorHeader).Bold(true).Padding(0, 1),
		cell:    lipgloss.NewStyle().Padding(0, 1),
		border:  lipgloss.NewStyle().Foreground(colorMuted),
	}
}

// Printer renders analysis results on a terminal.
type Printer struct {
	w      io.Writer
	styles *styles
}

func NewPrinter(w io.Writer, color bool) *Printer {
	return &Printer{
		w:      w,
		styles: newStyles(color),
	}
}

// Message prints the console message: a confirmation when the program has no errors, otherwise every
// error on its own line in detection order.
func (p *Printer) Message(res *analyzer.AnalysisResult) {
	errs := res.Errors()
	if len(errs) == 0 {
		fmt.Fprintln(p.w, p.styles.success.Render(res.Message()))
		return
	}
	p.Errors(errs)
}

// Errors prints error messages one per line.
func (p *Printer) Errors(errs []string) {
	for _, e := range errs {
		fmt.Fprintln(p.w, p.styles.err.Render(e))
	}
}

func (p *Printer) newTable(headers ...string) *table.Table {
	s := p.styles
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(s.border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return s.header
			}
			return s.cell
		}).
		Headers(headers...)
}

// Tokens prints tokens as a table.
func (p *Printer) Tokens(toks []*token.Token) {
	t := p.newTable("#", "LINE", "KIND", "TEXT")
	for i, tok := range toks {
		t.Row(strconv.Itoa(i+1), strconv.Itoa(tok.Line), tok.Kind.String(), tok.Text)
	}
	fmt.Fprintln(p.w, t.Render())
}

// Identifiers prints identifiers as a table in first-seen order.
func (p *Printer) Identifiers(ids []string) {
	t := p.newTable("#", "IDENTIFIER")
	for i, id := range ids {
		t.Row(strconv.Itoa(i+1), id)
	}
	fmt.Fprintln(p.w, t.Render())
}

// Tree prints the parse tree of an accepted program, or the errors that prevented it.
func (p *Printer) Tree(res *analyzer.AnalysisResult) {
	if res.Tree == nil {
		p.Message(res)
		return
	}
	var b strings.Builder
	parser.PrintTree(&b, res.Tree)
	fmt.Fprint(p.w, b.String())
}

// Encode writes `v` in a machine-readable format.
func Encode(w io.Writer, format string, v interface{}) error {
	switch format {
	case config.FormatJSON:
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%v\n", string(b))
		return err
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		err := enc.Encode(v)
		if err != nil {
			return err
		}
		return enc.Close()
	}

	err := config.ValidateFormat(format)
	if err != nil {
		return err
	}
	return fmt.Errorf("%v is not a machine-readable format", format)
}
