package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Styles used across commands for success/info/error reporting and the
// spinner, the same lipgloss-based terminal-styling approach the teacher
// used for its render/parse command output.
var (
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	styleInfo    = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	styleError   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)

	// StyleDim renders secondary detail text, e.g. a spinner's message.
	StyleDim = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	// styleIconSpinner renders the spinner's animated frame character.
	styleIconSpinner = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
)

// printSuccess writes a green "✓"-prefixed line to stderr.
func printSuccess(format string, args ...any) {
	fmt.Fprintln(os.Stderr, styleSuccess.Render("✓ ")+fmt.Sprintf(format, args...))
}

// printInfo writes a blue "i"-prefixed line to stderr.
func printInfo(format string, args ...any) {
	fmt.Fprintln(os.Stderr, styleInfo.Render("i ")+fmt.Sprintf(format, args...))
}

// printDetail writes a dimmed, unprefixed line to stderr, for secondary
// detail under a printSuccess or printInfo line.
func printDetail(format string, args ...any) {
	fmt.Fprintln(os.Stderr, StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printError writes a red "✗"-prefixed line to stderr.
func printError(format string, args ...any) {
	fmt.Fprintln(os.Stderr, styleError.Render("✗ ")+fmt.Sprintf(format, args...))
}
