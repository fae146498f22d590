package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme_GradeColoursAreDistinct(t *testing.T) {
	theme := DefaultTheme()

	palette := []lipgloss.Color{theme.Primary, theme.Secondary, theme.Success, theme.Warning, theme.Error}
	seen := make(map[lipgloss.Color]bool, len(palette))
	for _, c := range palette {
		require.NotEmpty(t, string(c))
		assert.False(t, seen[c], "duplicate colour %s", c)
		seen[c] = true
	}
}

func TestNewStyles(t *testing.T) {
	t.Run("uses the given theme", func(t *testing.T) {
		theme := DefaultTheme()
		theme.Primary = lipgloss.Color("#FF0000")

		s := NewStyles(theme)

		assert.Same(t, theme, s.Theme())
		assert.Equal(t, lipgloss.Color("#FF0000"), s.Title.GetForeground())
		assert.Equal(t, lipgloss.Color("#FF0000"), s.Selected.GetBackground())
	})

	t.Run("nil falls back to the default", func(t *testing.T) {
		s := NewStyles(nil)

		require.NotNil(t, s.Theme())
		assert.Equal(t, DefaultTheme().Primary, s.Title.GetForeground())
	})
}

func TestDefaultStyles(t *testing.T) {
	s := DefaultStyles()
	theme := s.Theme()

	assert.True(t, s.Title.GetBold())
	assert.True(t, s.Subtitle.GetBold())
	assert.True(t, s.Selected.GetBold())
	assert.False(t, s.Normal.GetBold())

	assert.Equal(t, theme.Error, s.Error.GetForeground())
	assert.Equal(t, theme.Success, s.Success.GetForeground())
	assert.Equal(t, theme.Warning, s.Warning.GetForeground())
	assert.Equal(t, theme.Background, s.StatusBar.GetBackground())
	assert.Equal(t, theme.Border, s.Border.GetBorderTopForeground())
	assert.Equal(t, 1, s.InputField.GetPaddingLeft())

	for name, style := range map[string]lipgloss.Style{
		"title": s.Title, "muted": s.Muted, "help": s.Help, "selected": s.Selected,
	} {
		assert.Contains(t, style.Render("Midterm"), "Midterm", name)
	}
}

func TestStyles_ForPercent(t *testing.T) {
	s := DefaultStyles()

	tests := []struct {
		name string
		pct  float64
		want lipgloss.Style
	}{
		{"failing", 49.99, s.Error},
		{"zero", 0, s.Error},
		{"pass mark", 50, s.Warning},
		{"borderline", 79.9, s.Warning},
		{"honours", 80, s.Success},
		{"extra credit", 104, s.Success},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.ForPercent(tt.pct))
		})
	}
}
