package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// stdout receives command results. Logs and the spinner go to stderr.
var stdout io.Writer = os.Stdout

// =============================================================================
// Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorRed    = lipgloss.Color("167")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleTitle renders view names and headings.
	StyleTitle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	// StyleDim renders hints and secondary text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(12)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)

	styleIconSpinner = lipgloss.NewStyle().Foreground(colorCyan)
)

// status is a one-line message prefixed by a colored mark.
type status struct {
	mark  string
	style lipgloss.Style
}

var (
	statusOK   = status{"✓", lipgloss.NewStyle().Foreground(colorGreen)}
	statusFail = status{"✗", lipgloss.NewStyle().Foreground(colorRed)}
	statusWarn = status{"!", lipgloss.NewStyle().Foreground(colorYellow)}
	statusNote = status{"›", lipgloss.NewStyle().Foreground(colorGray)}
)

func (s status) print(format string, args ...any) {
	fmt.Fprintln(stdout, s.style.Render(s.mark)+" "+fmt.Sprintf(format, args...))
}

func printSuccess(format string, args ...any) { statusOK.print(format, args...) }
func printError(format string, args ...any)   { statusFail.print(format, args...) }
func printWarning(format string, args ...any) { statusWarn.print(format, args...) }
func printInfo(format string, args ...any)    { statusNote.print(format, args...) }

// printDetail prints an indented dim line under a status.
func printDetail(format string, args ...any) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printFile prints a written output file.
func printFile(path string) {
	fmt.Fprintln(stdout, "  "+StyleDim.Render("→")+" "+styleValue.Render(path))
}

// printKeyValue prints one row of an aligned key/value listing.
func printKeyValue(key, value string) {
	fmt.Fprintln(stdout, styleKey.Render(key)+" "+styleValue.Render(value))
}

// printStats prints "N paths · M nodes · cached|fresh". Zero counts are
// left out.
func printStats(pathCount, nodeCount int, cached bool) {
	var parts []string
	if pathCount > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d paths", pathCount)))
	}
	if nodeCount > 0 {
		parts = append(parts, StyleDim.Render(fmt.Sprintf("%d nodes", nodeCount)))
	}
	if cached {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorGreen).Render("cached"))
	} else {
		parts = append(parts, lipgloss.NewStyle().Foreground(colorGray).Render("fresh"))
	}
	fmt.Fprintln(stdout, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// printNextStep suggests the command to run after this one.
func printNextStep(description, cmd string) {
	fmt.Fprintln(stdout, StyleDim.Render(description+":")+" "+styleCommand.Render(cmd))
}

func printNewline() { fmt.Fprintln(stdout) }
