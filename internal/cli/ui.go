package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette shared by all command output.
var (
	colorGreen  = lipgloss.Color("35")
	colorYellow = lipgloss.Color("220")
	colorBlue   = lipgloss.Color("75")
	colorWhite  = lipgloss.Color("255")
	colorGray   = lipgloss.Color("245")
	colorDim    = lipgloss.Color("240")
)

var (
	// StyleDim for secondary/muted text.
	StyleDim = lipgloss.NewStyle().Foreground(colorDim)

	// StyleValue for paths and other values.
	StyleValue = lipgloss.NewStyle().Foreground(colorWhite)

	// StyleWarning for warning messages.
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleCommand = lipgloss.NewStyle().Foreground(colorBlue)
	styleKey     = lipgloss.NewStyle().Foreground(colorGray).Width(12)
)

// status prints msg behind a coloured marker.
func status(marker lipgloss.Style, icon, msg string) {
	fmt.Println(marker.Render(icon) + " " + msg)
}

func printSuccess(format string, args ...any) {
	status(styleSuccess, "✓", fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	status(StyleWarning, "!", StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	status(styleInfo, "›", fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line under a status line.
func printDetail(format string, args ...any) {
	fmt.Println("  " + StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printKeyValue prints key in a fixed-width column followed by value.
func printKeyValue(key, value string) {
	fmt.Println(styleKey.Render(key) + " " + StyleValue.Render(value))
}

// printStats prints the object counts of a conversion and whether the
// Graphviz output came from the cache.
func printStats(itemCount, removedCount int, cached bool) {
	parts := []string{fmt.Sprintf("%d objects", itemCount)}
	if removedCount > 0 {
		parts = append(parts, fmt.Sprintf("%d error handling objects hidden", removedCount))
	}
	if cached {
		parts = append(parts, styleSuccess.Render("cached"))
	} else {
		parts = append(parts, styleInfo.Render("fresh"))
	}
	fmt.Println("  " + strings.Join(parts, StyleDim.Render(" · ")))
}

// printNextStep prints a suggested follow-up command.
func printNextStep(description, cmd string) {
	fmt.Println(StyleDim.Render(description+":") + " " + styleCommand.Render(cmd))
}
