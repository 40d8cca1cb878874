// Package styles provides shared lipgloss v2 styles for CLI and TUI components.
package styles

import (
	"fmt"
	"image/color"
	"strings"

	lipgloss "charm.land/lipgloss/v2"
	glamouransi "github.com/charmbracelet/glamour/ansi"
	glamourstyles "github.com/charmbracelet/glamour/styles"

	"github.com/colonyops/songbook/internal/core/render"
)

// Override names accepted by SetColor.
const (
	ColorNameTitle    = "title"
	ColorNameComment  = "comment"
	ColorNameChord    = "chord"
	ColorNameLyrics   = "lyrics"
	ColorNameSelected = "selected"
)

// ColorNames lists the names accepted by SetColor.
var ColorNames = []string{ColorNameTitle, ColorNameComment, ColorNameChord, ColorNameLyrics, ColorNameSelected}

// CurrentPalette holds the active theme palette.
var CurrentPalette Palette

// Exported color aliases for convenience.
var (
	ColorPrimary    color.Color
	ColorSecondary  color.Color
	ColorForeground color.Color
	ColorMuted      color.Color
	ColorBackground color.Color
	ColorSurface    color.Color
	ColorSuccess    color.Color
	ColorWarning    color.Color
	ColorError      color.Color
)

// Style exports.
var (
	// Song styles, one per render.Style.
	TitleStyle   lipgloss.Style
	CommentStyle lipgloss.Style
	ChordStyle   lipgloss.Style
	LyricsStyle  lipgloss.Style

	// TUI styles.
	PaneStyle         lipgloss.Style
	PaneFocusedStyle  lipgloss.Style
	PaneTitleStyle    lipgloss.Style
	SelectedItemStyle lipgloss.Style
	NormalItemStyle   lipgloss.Style
	FolderItemStyle   lipgloss.Style
	PlaylistItemStyle lipgloss.Style
	StatusStyle       lipgloss.Style
	KeyBadgeStyle     lipgloss.Style
	HelpStyle         lipgloss.Style
	ErrorStyle        lipgloss.Style

	// CLI styles.
	CommandHeaderStyle lipgloss.Style
	DividerStyle       lipgloss.Style
)

// SetTheme sets the active palette and rebuilds all global styles. Color
// overrides set earlier are discarded.
func SetTheme(p Palette) {
	CurrentPalette = p

	ColorPrimary = p.Primary
	ColorSecondary = p.Secondary
	ColorForeground = p.Foreground
	ColorMuted = p.Muted
	ColorBackground = p.Background
	ColorSurface = p.Surface
	ColorSuccess = p.Success
	ColorWarning = p.Warning
	ColorError = p.Error

	TitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	CommentStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)
	ChordStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary)
	LyricsStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)

	PaneStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorMuted)
	PaneFocusedStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorSuccess)
	PaneTitleStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	SelectedItemStyle = lipgloss.NewStyle().
		Foreground(ColorSuccess).
		Background(ColorSurface).
		Bold(true)
	NormalItemStyle = lipgloss.NewStyle().
		Foreground(ColorForeground)
	FolderItemStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary)
	PlaylistItemStyle = lipgloss.NewStyle().
		Foreground(ColorWarning)
	StatusStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	KeyBadgeStyle = lipgloss.NewStyle().
		Foreground(ColorBackground).
		Background(ColorPrimary).
		Padding(0, 1)
	HelpStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
	ErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError)

	CommandHeaderStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)
	DividerStyle = lipgloss.NewStyle().
		Foreground(ColorMuted)
}

// SetColor overrides the foreground color of one song style. name is one of
// ColorNames and hex a "#rrggbb" color.
func SetColor(name, hex string) error {
	c, err := ParseHex(hex)
	if err != nil {
		return err
	}

	switch name {
	case ColorNameTitle:
		TitleStyle = TitleStyle.Foreground(c)
	case ColorNameComment:
		CommentStyle = CommentStyle.Foreground(c)
	case ColorNameChord:
		ChordStyle = ChordStyle.Foreground(c)
	case ColorNameLyrics:
		LyricsStyle = LyricsStyle.Foreground(c)
	case ColorNameSelected:
		SelectedItemStyle = SelectedItemStyle.Foreground(c)
	default:
		return fmt.Errorf("unknown color name %q", name)
	}

	return nil
}

// For returns the lipgloss style for a render style tag.
func For(s render.Style) lipgloss.Style {
	switch s {
	case render.StyleChord:
		return ChordStyle
	case render.StyleComment:
		return CommentStyle
	case render.StyleTitle:
		return TitleStyle
	default:
		return LyricsStyle
	}
}

// Row renders a formatted row with the active styles.
func Row(r render.Row) string {
	var sb strings.Builder
	for _, span := range r {
		sb.WriteString(For(span.Style).Render(span.Text))
	}
	return sb.String()
}

// nolint:gochecknoinits // bootstrap default theme before any style is accessed.
func init() {
	SetTheme(themes[DefaultTheme])
}

// GlamourStyle returns a Glamour style config derived from the active theme.
func GlamourStyle() glamouransi.StyleConfig {
	cfg := glamourstyles.DarkStyleConfig

	fg := colorHexPtr(ColorForeground)
	primary := colorHexPtr(ColorPrimary)
	secondary := colorHexPtr(ColorSecondary)
	muted := colorHexPtr(ColorMuted)
	surface := colorHexPtr(ColorSurface)

	cfg.Document.Color = fg

	cfg.Paragraph.Color = fg

	cfg.Heading.Color = primary
	cfg.H1.Color = fg
	cfg.H1.BackgroundColor = surface
	cfg.H2.Color = primary
	cfg.H3.Color = primary

	cfg.BlockQuote.Color = muted
	cfg.HorizontalRule.Color = muted

	cfg.Code.Color = secondary
	cfg.CodeBlock.Color = muted

	cfg.Table.Color = fg

	return cfg
}
