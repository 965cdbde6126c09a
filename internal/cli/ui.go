package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/souper/pkg/pipeline"
	"github.com/matzehuels/souper/pkg/soup"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success, additions
	colorYellow = lipgloss.Color("220") // Amber - warnings, updates
	colorRed    = lipgloss.Color("167") // Soft red - errors, removals
	colorBlue   = lipgloss.Color("75")  // Light blue - commands
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

	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for data values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleNumber for numeric values.
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)

	// StyleSuccess for success messages.
	StyleSuccess = lipgloss.NewStyle().Foreground(colorGreen)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)
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

	styleAdded   = lipgloss.NewStyle().Foreground(colorGreen)
	styleRemoved = lipgloss.NewStyle().Foreground(colorRed)
	styleUpdated = lipgloss.NewStyle().Foreground(colorYellow)

	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
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
	iconAdded   = "+"
	iconRemoved = "-"
	iconUpdated = "~"
)

// maxChangeLines caps the change list printed after a scan.
const maxChangeLines = 20

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+msg)
}

func printError(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconError.Render(iconError)+" "+msg)
}

func printWarning(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(msg))
}

func printInfo(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+msg)
}

// printDetail prints a detail line (indented).
func printDetail(w io.Writer, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w, "  "+StyleDim.Render(msg))
}

// printFile prints a file output line.
func printFile(w io.Writer, path string) {
	fmt.Fprintln(w, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

// printNextStep prints a suggested next command.
func printNextStep(w io.Writer, description, cmd string) {
	fmt.Fprintln(w, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

// =============================================================================
// Scan Summary
// =============================================================================

// printStats prints scan statistics on a single line.
func printStats(w io.Writer, stats pipeline.Stats, changes []soup.Change) {
	added, removed, updated := soup.CountChanges(changes)
	parts := []string{
		fmt.Sprintf("%d manifests", stats.Manifests),
		fmt.Sprintf("%d dependencies", stats.Dependencies),
		styleAdded.Render(fmt.Sprintf("%s%d", iconAdded, added)) + " " +
			styleRemoved.Render(fmt.Sprintf("%s%d", iconRemoved, removed)) + " " +
			styleUpdated.Render(fmt.Sprintf("%s%d", iconUpdated, updated)),
	}
	if stats.CacheHits > 0 {
		parts = append(parts, fmt.Sprintf("%d cached", stats.CacheHits))
	}
	parts = append(parts, stats.Duration.Round(time.Millisecond).String())

	fmt.Fprintln(w, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// printChanges lists dependency changes, at most limit of them.
func printChanges(w io.Writer, changes []soup.Change, limit int) {
	for i, c := range changes {
		if i == limit {
			printDetail(w, "… and %d more", len(changes)-limit)
			return
		}
		fmt.Fprintln(w, "  "+formatChange(c))
	}
}

func formatChange(c soup.Change) string {
	where := StyleDim.Render(c.Path)
	switch c.Kind {
	case soup.Added:
		return styleAdded.Render(iconAdded) + " " + where + "  " + c.Name + " " + StyleValue.Render(c.To)
	case soup.Removed:
		return styleRemoved.Render(iconRemoved) + " " + where + "  " + c.Name + " " + StyleDim.Render(c.From)
	default:
		return styleUpdated.Render(iconUpdated) + " " + where + "  " + c.Name + " " +
			StyleDim.Render(c.From) + " " + iconArrow + " " + StyleValue.Render(c.To)
	}
}
