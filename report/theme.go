package report

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/singjc/report-builder/pkg/errors"
)

// Theme holds the styling knobs the renderer exposes. The embedded base
// stylesheet reads these through CSS variables, so a theme changes colors
// and typography without touching layout or behavior.
type Theme struct {
	// FontFamily is the document font stack
	FontFamily string `yaml:"font_family"`
	// BannerStart and BannerEnd are the banner gradient endpoints
	BannerStart string `yaml:"banner_start"`
	BannerEnd   string `yaml:"banner_end"`
	// Accent is the highlight color for active tabs, sort indicators, links
	Accent string `yaml:"accent"`
	// MaxContentWidth bounds the content column (CSS length, e.g. "1400px")
	MaxContentWidth string `yaml:"max_content_width"`
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return Theme{
		FontFamily:      "system-ui, -apple-system, 'Segoe UI', Roboto, Arial, sans-serif",
		BannerStart:     "#4a90e2",
		BannerEnd:       "#145da0",
		Accent:          "#007bff",
		MaxContentWidth: "1400px",
	}
}

// LoadTheme reads a theme from a YAML file. Unset fields fall back to the
// default theme, so a theme file only needs to name what it changes.
func LoadTheme(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, errors.Wrap(errors.ErrCodeValidation, fmt.Sprintf("failed to read theme %s", path), err)
	}
	theme := Theme{}
	if err := yaml.Unmarshal(data, &theme); err != nil {
		return Theme{}, errors.Wrap(errors.ErrCodeValidation, fmt.Sprintf("failed to parse theme %s", path), err)
	}
	theme.applyDefaults()
	return theme, nil
}

// applyDefaults fills unset fields from the default theme.
func (t *Theme) applyDefaults() {
	def := DefaultTheme()
	if t.FontFamily == "" {
		t.FontFamily = def.FontFamily
	}
	if t.BannerStart == "" {
		t.BannerStart = def.BannerStart
	}
	if t.BannerEnd == "" {
		t.BannerEnd = def.BannerEnd
	}
	if t.Accent == "" {
		t.Accent = def.Accent
	}
	if t.MaxContentWidth == "" {
		t.MaxContentWidth = def.MaxContentWidth
	}
}

// cssVariables renders the theme as the :root variable block consumed by
// the embedded stylesheet.
func (t Theme) cssVariables() string {
	var sb strings.Builder
	sb.WriteString(":root {\n")
	fmt.Fprintf(&sb, "    --rb-font: %s;\n", t.FontFamily)
	fmt.Fprintf(&sb, "    --rb-banner-start: %s;\n", t.BannerStart)
	fmt.Fprintf(&sb, "    --rb-banner-end: %s;\n", t.BannerEnd)
	fmt.Fprintf(&sb, "    --rb-accent: %s;\n", t.Accent)
	fmt.Fprintf(&sb, "    --rb-max-width: %s;\n", t.MaxContentWidth)
	sb.WriteString("}")
	return sb.String()
}
