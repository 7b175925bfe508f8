// Package output renders command results: tables of installs and
// defaults, download progress, and shell guidance. Styling is applied
// only when the destination is a capable terminal.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/pterm/pterm"

	"github.com/MystenLabs/suiup/pkg/types"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("6"))

// Printer renders to one stream in one format.
type Printer struct {
	w      io.Writer
	format Format
}

// NewPrinter creates a printer, resolving FormatAuto against the
// stream. Non-file writers always get plain text.
func NewPrinter(w io.Writer, format Format) *Printer {
	if format == FormatAuto {
		if f, ok := w.(*os.File); ok {
			format = DetectFormat(f)
		} else {
			format = FormatText
		}
	}
	return &Printer{w: w, format: format}
}

// Format returns the resolved format.
func (p *Printer) Format() Format { return p.format }

func (p *Printer) styled() bool { return p.format == FormatTerminal }

// Header prints a section heading.
func (p *Printer) Header(text string) {
	if p.format == FormatJSON {
		return
	}
	if p.styled() {
		fmt.Fprintln(p.w, headerStyle.Render(text))
		return
	}
	fmt.Fprintln(p.w, text)
}

// Printf writes a plain formatted line.
func (p *Printer) Printf(format string, args ...interface{}) {
	if p.format == FormatJSON {
		return
	}
	fmt.Fprintf(p.w, format, args...)
}

// JSON emits v when the format is JSON and reports whether it did, so
// callers can skip their human-readable rendering.
func (p *Printer) JSON(v interface{}) bool {
	if p.format != FormatJSON {
		return false
	}
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
	return true
}

// Installed renders the install table. Default installs are marked.
func (p *Printer) Installed(records []types.InstallRecord, defaults []types.DefaultPointer) {
	isDefault := make(map[types.InstallKey]bool, len(defaults))
	for _, ptr := range defaults {
		isDefault[ptr.Key()] = true
	}

	rows := [][]string{{"TOOL", "CHANNEL", "VERSION", "VARIANT", "DEFAULT"}}
	for _, rec := range records {
		marker := ""
		if isDefault[rec.Key()] {
			marker = "*"
		}
		rows = append(rows, []string{
			rec.Tool.String(), rec.Channel, rec.Version, rec.Variant().String(), marker,
		})
	}
	p.table(rows)
}

// Defaults renders the default-pointer table.
func (p *Printer) Defaults(defaults []types.DefaultPointer) {
	rows := [][]string{{"BINARY", "CHANNEL", "VERSION"}}
	for _, ptr := range defaults {
		rows = append(rows, []string{ptr.BinaryName(), ptr.Channel, ptr.Version})
	}
	p.table(rows)
}

func (p *Printer) table(rows [][]string) {
	if p.styled() {
		if err := pterm.DefaultTable.WithHasHeader().WithData(rows).
			WithWriter(p.w).Render(); err == nil {
			return
		}
	}

	tw := tabwriter.NewWriter(p.w, 0, 4, 2, ' ', 0)
	for _, row := range rows {
		for i, cell := range row {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, cell)
		}
		fmt.Fprintln(tw)
	}
	_ = tw.Flush()
}

// Progress opens a progress sink for a download. Non-terminal formats
// get a silent sink.
func (p *Printer) Progress(label string, total int64) io.WriteCloser {
	if !p.styled() || total <= 0 {
		return nopWriteCloser{}
	}

	bar, err := pterm.DefaultProgressbar.
		WithTotal(int(total)).
		WithTitle(label).
		WithShowCount(false).
		WithWriter(p.w).
		Start()
	if err != nil {
		return nopWriteCloser{}
	}
	return &progressWriter{bar: bar}
}

type progressWriter struct {
	bar *pterm.ProgressbarPrinter
}

func (w *progressWriter) Write(data []byte) (int, error) {
	w.bar.Add(len(data))
	return len(data), nil
}

func (w *progressWriter) Close() error {
	_, err := w.bar.Stop()
	return err
}

type nopWriteCloser struct{}

func (nopWriteCloser) Write(data []byte) (int, error) { return len(data), nil }
func (nopWriteCloser) Close() error                   { return nil }
