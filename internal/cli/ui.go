package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/neunenak/typst/pkg/diag"
)

// stdout receives command output. Tests replace it.
var stdout io.Writer = os.Stdout

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Public Styles
// =============================================================================

var (
	// StyleTitle for main headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleHighlight for emphasized values.
	StyleHighlight = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	// StyleError for error messages.
	StyleError = lipgloss.NewStyle().Foreground(colorRed)
)

// =============================================================================
// Internal Styles
// =============================================================================

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)

	styleLocation = lipgloss.NewStyle().Bold(true)
	styleCode     = lipgloss.NewStyle().Foreground(colorGray)
)

// =============================================================================
// Icons
// =============================================================================

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(stdout, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

func printError(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(stdout, styleIconError.Render(iconError)+" "+msg)
}

func printWarning(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(stdout, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

func printInfo(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(stdout, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints an indented, dimmed line.
func printDetail(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(stdout, "  "+StyleDim.Render(msg))
}

// printFile prints a written output file.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printKeyValue prints a labeled value.
func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(stdout, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

// =============================================================================
// Diagnostics
// =============================================================================

// printDiagnostic prints "file:line:col: error: message [CODE]".
func printDiagnostic(file string, d diag.Diagnostic) {
	loc := d.Span.String()
	if file != "" {
		loc = file + ":" + loc
	}
	level := StyleWarning.Render(d.Level.String())
	if d.Level == diag.LevelError {
		level = StyleError.Render(d.Level.String())
	}
	fmt.Fprintf(stdout, "  %s %s: %s %s\n",
		styleLocation.Render(loc+":"), level, d.Message, styleCode.Render("["+string(d.Code)+"]"))
}

// countErrors returns how many diagnostics are errors.
func countErrors(diags []diag.Diagnostic) int {
	n := 0
	for _, d := range diags {
		if d.Level == diag.LevelError {
			n++
		}
	}
	return n
}

// =============================================================================
// Stats Display
// =============================================================================

// printStats prints compilation statistics on a single line.
func printStats(nodes, calls, diagnostics int, cached bool) {
	parts := []string{
		fmt.Sprintf("%d nodes", nodes),
		fmt.Sprintf("%d calls", calls),
		fmt.Sprintf("%d diagnostics", diagnostics),
	}

	status := iconFresh
	statusStyle := styleComputed
	if cached {
		status = iconCached
		statusStyle = styleCached
	}

	line := "  "
	for i, part := range parts {
		if i > 0 {
			line += StyleDim.Render(" · ")
		}
		line += StyleDim.Render(part)
	}
	line += StyleDim.Render(" · ") + statusStyle.Render(status)
	fmt.Fprintln(stdout, line)
}

// =============================================================================
// Tables
// =============================================================================

// renderTable renders rows under headers with a rounded border.
func renderTable(headers []string, rows [][]string) string {
	headerStyle := StyleTitle.Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}
