package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/crgimenes/qmlnet"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	missingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// renderReport formats the bootstrap report. Plain output carries no
// escape sequences.
func renderReport(rep qmlnet.Report, styled bool) string {
	style := func(s lipgloss.Style, v string) string {
		if !styled {
			return v
		}
		return s.Render(v)
	}
	orNone := func(v string) string {
		if v == "" {
			return style(missingStyle, "(none)")
		}
		return style(valueStyle, v)
	}

	var b strings.Builder
	b.WriteString(style(titleStyle, "qmlnet bootstrap"))
	b.WriteString("\n")

	row := func(k, v string) {
		fmt.Fprintf(&b, "%s %s\n", style(keyStyle, fmt.Sprintf("%-12s", k)), v)
	}
	row("mode", orNone(rep.Mode.String()))
	row("probe", orNone(rep.Probe))
	if rep.Resolution.OK() {
		row("resolved", orNone(rep.Resolution.Path))
	} else {
		row("resolved", orNone(""))
		row("reason", rep.Resolution.Err.Error())
	}
	row("loaded", orNone(rep.LoadedPath))
	row("plugins", orNone(rep.Aux.PluginDir))
	row("qml", orNone(rep.Aux.QMLDir))
	if rep.Fingerprint != "" {
		row("blake2b", orNone(rep.Fingerprint))
	}
	row("tables", style(valueStyle, fmt.Sprintf("%d (%d symbols)", len(rep.Tables), rep.Symbols())))
	for _, t := range rep.Tables {
		fmt.Fprintf(&b, "  %-28s %3d\n", t.Name, t.Symbols)
	}
	return b.String()
}
