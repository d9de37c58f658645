package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// UI writes progress lines and tables to the console. It is safe for
// concurrent use.
type UI struct {
	Verbose bool
	Out     io.Writer
	ErrOut  io.Writer

	mu sync.Mutex
}

// New creates a UI on stdout/stderr, without colour when stdout is not a
// terminal.
func New() *UI {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
	return &UI{
		Out:    os.Stdout,
		ErrOut: os.Stderr,
	}
}

var (
	infoPrefix    = color.New(color.FgHiBlue).Sprint("i")
	successPrefix = color.New(color.FgHiGreen).Sprint("✓")
	warningPrefix = color.New(color.FgHiYellow).Sprint("⚠")
	errorPrefix   = color.New(color.FgHiRed).Sprint("✗")
	verbosePrefix = color.New(color.FgHiBlue).Sprint("  →")
	cyan          = color.New(color.FgHiCyan).SprintFunc()
	green         = color.New(color.FgHiGreen).SprintFunc()
	yellow        = color.New(color.FgHiYellow).SprintFunc()
	red           = color.New(color.FgHiRed).SprintFunc()
)

func Cyan(s string) string { return cyan(s) }

// StatusColor colours a migration status.
func StatusColor(status string) string {
	switch status {
	case "completed":
		return green(status)
	case "running":
		return yellow(status)
	case "failed":
		return red(status)
	default:
		return status
	}
}

func (u *UI) Info(format string, a ...any) {
	u.println(u.Out, infoPrefix, format, a...)
}

func (u *UI) Success(format string, a ...any) {
	u.println(u.Out, successPrefix, format, a...)
}

func (u *UI) Warning(format string, a ...any) {
	u.println(u.ErrOut, warningPrefix, format, a...)
}

func (u *UI) Error(format string, a ...any) {
	u.println(u.ErrOut, errorPrefix, format, a...)
}

func (u *UI) VerboseLog(format string, a ...any) {
	if u.Verbose {
		u.println(u.Out, verbosePrefix, format, a...)
	}
}

func (u *UI) println(w io.Writer, prefix, format string, a ...any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	fmt.Fprintf(w, "%s %s\n", prefix, fmt.Sprintf(format, a...))
}

// Table creates a new tablewriter configured with consistent styling.
func (u *UI) Table(headers []string) *tablewriter.Table {
	table := tablewriter.NewTable(u.Out,
		tablewriter.WithHeaderAlignment(tw.AlignLeft),
		tablewriter.WithRowAlignment(tw.AlignLeft),
		tablewriter.WithRendition(tw.Rendition{
			Borders: tw.BorderNone,
			Settings: tw.Settings{
				Lines:      tw.LinesNone,
				Separators: tw.SeparatorsNone,
			},
		}),
		tablewriter.WithPadding(tw.Padding{Left: "", Right: "  "}),
	)
	table.Header(headers)
	return table
}
