package markup

import (
	"sort"
	"strconv"
	"strings"

	"wpc/ir"
)

// Style collects everything that ends up in a block's nested style attribute
// and in the matching inline css of the rendered element. Both serialized
// forms derive from this one structure so they cannot disagree.
type Style struct {
	Typography Typography
	Color      ColorStyle
	Padding    BoxSides
	Margin     BoxSides
	Gap        string
	Radius     string
	Border     BorderStyle
}

type Typography struct {
	FontSize      string
	FontStyle     string
	FontWeight    string
	LineHeight    string
	LetterSpacing string
	TextTransform string
}

type ColorStyle struct {
	Text       string
	Background string
	Gradient   string
}

type BoxSides struct {
	Top    string
	Right  string
	Bottom string
	Left   string
}

type BorderStyle struct {
	Width string
	Style string
	Color string
}

func (b BoxSides) empty() bool {
	return b == BoxSides{}
}

// Empty reports whether nothing was collected.
func (s *Style) Empty() bool {
	return *s == Style{}
}

// Fold merges one free form css declaration into the structure. Returns
// false for properties that have no representation here, those are dropped
// by the caller.
func (s *Style) Fold(prop, value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return true
	}
	switch strings.ToLower(strings.TrimSpace(prop)) {
	case "font-size":
		s.Typography.FontSize = value
	case "font-style":
		s.Typography.FontStyle = value
	case "font-weight":
		s.Typography.FontWeight = value
	case "line-height":
		s.Typography.LineHeight = value
	case "letter-spacing":
		s.Typography.LetterSpacing = value
	case "text-transform":
		s.Typography.TextTransform = value
	case "color":
		s.Color.Text = value
	case "background-color":
		s.Color.Background = value
	case "background":
		if strings.Contains(value, "gradient(") {
			s.Color.Gradient = value
		} else {
			s.Color.Background = value
		}
	case "padding":
		s.Padding = expandBox(value)
	case "padding-top":
		s.Padding.Top = value
	case "padding-right":
		s.Padding.Right = value
	case "padding-bottom":
		s.Padding.Bottom = value
	case "padding-left":
		s.Padding.Left = value
	case "margin":
		s.Margin = expandBox(value)
	case "margin-top":
		s.Margin.Top = value
	case "margin-right":
		s.Margin.Right = value
	case "margin-bottom":
		s.Margin.Bottom = value
	case "margin-left":
		s.Margin.Left = value
	case "gap":
		s.Gap = value
	case "display":
		// consumed by group layout detection, never an inline property
	case "border-radius":
		s.Radius = value
	case "border-width":
		s.Border.Width = value
	case "border-style":
		s.Border.Style = value
	case "border-color":
		s.Border.Color = value
	default:
		return false
	}
	return true
}

// FoldMap folds a whole free form declaration map in sorted property order,
// which keeps shorthands ("padding") applied before their sides
// ("padding-top") and makes the result independent of map iteration.
// Returns the properties that could not be represented.
func (s *Style) FoldMap(style map[string]string) []string {
	if len(style) == 0 {
		return nil
	}
	props := make([]string, 0, len(style))
	for prop := range style {
		props = append(props, prop)
	}
	sort.Strings(props)

	var dropped []string
	for _, prop := range props {
		if !s.Fold(prop, style[prop]) {
			dropped = append(dropped, prop)
		}
	}
	return dropped
}

// AttrObject renders the structure as the nested object stored under the
// "style" attribute key. Empty branches vanish later in CleanObject.
func (s *Style) AttrObject() map[string]any {
	return map[string]any{
		"typography": map[string]any{
			"fontSize":      s.Typography.FontSize,
			"fontStyle":     s.Typography.FontStyle,
			"fontWeight":    s.Typography.FontWeight,
			"lineHeight":    s.Typography.LineHeight,
			"letterSpacing": s.Typography.LetterSpacing,
			"textTransform": s.Typography.TextTransform,
		},
		"color": map[string]any{
			"text":       s.Color.Text,
			"background": s.Color.Background,
			"gradient":   s.Color.Gradient,
		},
		"spacing": map[string]any{
			"padding":  boxObject(s.Padding),
			"margin":   boxObject(s.Margin),
			"blockGap": s.Gap,
		},
		"border": map[string]any{
			"radius": s.Radius,
			"width":  s.Border.Width,
			"style":  s.Border.Style,
			"color":  s.Border.Color,
		},
	}
}

// Inline serializes the structure to inline css. Emission order is fixed:
// typography, text color, background color, gradient, padding sides top
// right bottom left, margin sides, gap, border radius, border. Pairs are
// joined with ";" and there is no trailing semicolon.
func (s *Style) Inline() string {
	var parts []string
	add := func(prop, value string) {
		if value != "" {
			parts = append(parts, prop+":"+value)
		}
	}

	add("font-size", s.Typography.FontSize)
	add("font-style", s.Typography.FontStyle)
	add("font-weight", s.Typography.FontWeight)
	add("line-height", s.Typography.LineHeight)
	add("letter-spacing", s.Typography.LetterSpacing)
	add("text-transform", s.Typography.TextTransform)
	add("color", s.Color.Text)
	add("background-color", s.Color.Background)
	add("background", s.Color.Gradient)
	add("padding-top", s.Padding.Top)
	add("padding-right", s.Padding.Right)
	add("padding-bottom", s.Padding.Bottom)
	add("padding-left", s.Padding.Left)
	add("margin-top", s.Margin.Top)
	add("margin-right", s.Margin.Right)
	add("margin-bottom", s.Margin.Bottom)
	add("margin-left", s.Margin.Left)
	add("gap", s.Gap)
	add("border-radius", s.Radius)
	add("border-width", s.Border.Width)
	add("border-style", s.Border.Style)
	add("border-color", s.Border.Color)

	return strings.Join(parts, ";")
}

func boxObject(b BoxSides) map[string]any {
	return map[string]any{
		"top":    b.Top,
		"right":  b.Right,
		"bottom": b.Bottom,
		"left":   b.Left,
	}
}

// expandBox expands css box shorthand (1 to 4 values) into explicit sides.
func expandBox(value string) BoxSides {
	f := strings.Fields(value)
	switch len(f) {
	case 1:
		return BoxSides{Top: f[0], Right: f[0], Bottom: f[0], Left: f[0]}
	case 2:
		return BoxSides{Top: f[0], Right: f[1], Bottom: f[0], Left: f[1]}
	case 3:
		return BoxSides{Top: f[0], Right: f[1], Bottom: f[2], Left: f[1]}
	case 4:
		return BoxSides{Top: f[0], Right: f[1], Bottom: f[2], Left: f[3]}
	default:
		return BoxSides{}
	}
}

// padPixels is the fixed spacing scale. Spacer heights, section padding and
// block gaps all read from this one table.
var padPixels = map[ir.PadSize]int{
	ir.PadSizeNone: 0,
	ir.PadSizeSm:   16,
	ir.PadSizeMd:   32,
	ir.PadSizeLg:   64,
	ir.PadSizeXl:   96,
}

// PadPx translates a spacing token to a pixel length. Unknown tokens fall
// back to the medium step.
func PadPx(size ir.PadSize) string {
	px, ok := padPixels[size]
	if !ok {
		px = padPixels[ir.PadSizeMd]
	}
	return strconv.Itoa(px) + "px"
}

// fontSizeSlugs maps the IR font size scale to theme preset slugs.
var fontSizeSlugs = map[ir.FontSize]string{
	ir.FontSizeSm:  "small",
	ir.FontSizeMd:  "medium",
	ir.FontSizeLg:  "large",
	ir.FontSizeXl:  "x-large",
	ir.FontSizeXxl: "xx-large",
}

// FontSizeSlug translates a font size token to its preset slug, "" for
// unknown tokens.
func FontSizeSlug(size ir.FontSize) string {
	return fontSizeSlugs[size]
}

// isPresetName distinguishes palette tokens ("primary") from raw css color
// values ("#1a2b3c", "rgb(0,0,0)"). Tokens are plain identifiers.
func isPresetName(v string) bool {
	if v == "" {
		return false
	}
	c := v[0] | 0x20
	if c < 'a' || c > 'z' {
		return false
	}
	for i := 0; i < len(v); i++ {
		c := v[i]
		switch {
		case c >= 'a' && c <= 'z':
		case c >= 'A' && c <= 'Z':
		case c >= '0' && c <= '9':
		case c == '-' || c == '_':
		default:
			return false
		}
	}
	return true
}
