package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/muurk/gridbook/internal/grid"
)

// Printer writes styled components to a writer.
// This is the primary way commands should output styled content.
type Printer struct {
	out   io.Writer
	width int
}

// NewPrinter creates a new Printer that writes to the given writer.
// If w is nil, os.Stdout is used.
func NewPrinter(w io.Writer) *Printer {
	if w == nil {
		w = os.Stdout
	}
	return &Printer{
		out:   w,
		width: GetTerminalWidth(),
	}
}

// WithWidth overrides the detected terminal width
func (p *Printer) WithWidth(width int) *Printer {
	p.width = max(width, MinTerminalWidth)
	return p
}

// Width returns the current terminal width used by this printer
func (p *Printer) Width() int {
	return p.width
}

// Println writes content with a newline
func (p *Printer) Println(content string) {
	_, _ = fmt.Fprintln(p.out, content)
}

// Newline prints an empty line
func (p *Printer) Newline() {
	_, _ = fmt.Fprintln(p.out)
}

// PrintHeader prints a command header box
func (p *Printer) PrintHeader(title, command string, params ...Detail) {
	p.Println(NewHeader(title, command, params...).SetWidth(p.width).Render())
	p.Newline()
}

// PrintSuccess prints a success result box
func (p *Printer) PrintSuccess(title string, details ...Detail) {
	p.Println(NewSuccessResult(title, details...).SetWidth(p.width).Render())
	p.Newline()
}

// PrintWarning prints a warning result box
func (p *Printer) PrintWarning(title string, details ...Detail) {
	p.Println(NewWarningResult(title, details...).SetWidth(p.width).Render())
	p.Newline()
}

// PrintError prints an error result box with troubleshooting tips
func (p *Printer) PrintError(title string, err error, troubleshooting ...string) {
	p.Println(NewFailureResult(title, err, troubleshooting...).SetWidth(p.width).Render())
	p.Newline()
}

// PrintGrid prints the grid table
func (p *Printer) PrintGrid(state *grid.State, errorsOnly bool) {
	p.Println(RenderGrid(state, TableOptions{ErrorsOnly: errorsOnly}))
	p.Newline()
}

// PrintValidationReport prints the per-row error listing
func (p *Printer) PrintValidationReport(state *grid.State) {
	p.Println(RenderValidationReport(state))
	p.Newline()
}
