package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTheme(t *testing.T) {
	theme := DefaultTheme()
	assert.Equal(t, "#4a90e2", theme.BannerStart)
	assert.Equal(t, "#145da0", theme.BannerEnd)
	assert.Equal(t, "#007bff", theme.Accent)
	assert.Equal(t, "1400px", theme.MaxContentWidth)
	assert.NotEmpty(t, theme.FontFamily)
}

func TestLoadTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.yaml")
	content := `
banner_start: "#101010"
banner_end: "#202020"
accent: "#ee3344"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	theme, err := LoadTheme(path)
	require.NoError(t, err)

	assert.Equal(t, "#101010", theme.BannerStart)
	assert.Equal(t, "#202020", theme.BannerEnd)
	assert.Equal(t, "#ee3344", theme.Accent)

	// Unset fields fall back to the defaults
	assert.Equal(t, DefaultTheme().FontFamily, theme.FontFamily)
	assert.Equal(t, DefaultTheme().MaxContentWidth, theme.MaxContentWidth)
}

func TestLoadTheme_MissingFile(t *testing.T) {
	_, err := LoadTheme(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadTheme_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("accent: [unclosed"), 0644))

	_, err := LoadTheme(path)
	assert.Error(t, err)
}

func TestTheme_CSSVariables(t *testing.T) {
	css := DefaultTheme().cssVariables()
	assert.Contains(t, css, ":root {")
	assert.Contains(t, css, "--rb-font: ")
	assert.Contains(t, css, "--rb-banner-start: #4a90e2;")
	assert.Contains(t, css, "--rb-banner-end: #145da0;")
	assert.Contains(t, css, "--rb-accent: #007bff;")
	assert.Contains(t, css, "--rb-max-width: 1400px;")
}
