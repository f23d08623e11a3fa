package theme

import (
	"bytes"
	"fmt"
	"html"
	"text/template"

	"wpc/config"
	"wpc/ir"
	"wpc/utils/images"
)

// screenshotValues are substituted into the screenshot SVG template.
type screenshotValues struct {
	Title      string
	Background string
	Accent     string
}

// buildScreenshot renders the theme preview image from the SVG template,
// tinted with the page palette.
func buildScreenshot(tmpl []byte, doc *ir.Document, cfg *config.ScreenshotConfig) ([]byte, error) {
	t, err := template.New("screenshot").Parse(string(tmpl))
	if err != nil {
		return nil, fmt.Errorf("unable to parse screenshot template: %w", err)
	}

	bg := paletteColor(doc, "background", "base", "surface")
	if bg == "" {
		bg = "#ffffff"
	}
	accent := paletteColor(doc, "primary", "accent", "brand")
	if accent == "" {
		if len(doc.Tokens.Palette) > 0 {
			accent = doc.Tokens.Palette[0].Color
		} else {
			accent = "#1a4548"
		}
	}

	// values land inside XML, escape them
	v := screenshotValues{
		Title:      html.EscapeString(doc.Title),
		Background: html.EscapeString(bg),
		Accent:     html.EscapeString(accent),
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, v); err != nil {
		return nil, fmt.Errorf("unable to expand screenshot template: %w", err)
	}

	img, err := images.RasterizeSVGToImage(buf.Bytes(), cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("unable to rasterize screenshot: %w", err)
	}

	out, err := images.EncodePNG(img)
	if err != nil {
		return nil, fmt.Errorf("unable to encode screenshot: %w", err)
	}
	return out, nil
}
