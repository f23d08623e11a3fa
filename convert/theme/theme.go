// Package theme packages a prepared page into an installable WordPress block
// theme archive.
package theme

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/gosimple/slug"
	fixzip "github.com/hidez8891/zip"
	"go.uber.org/zap"

	"wpc/config"
	"wpc/content"
	"wpc/ir"
	"wpc/markup"
	"wpc/state"
)

const (
	templatesDir = "templates"
	partsDir     = "parts"
	assetsDir    = "assets/images"

	schemaURL   = "https://schemas.wp.org/trunk/theme.json"
	requiresWP  = "6.4"
	requiresPHP = "7.4"
)

// Generate creates the theme archive for a single prepared page.
func Generate(ctx context.Context, c *content.Content, outputPath string, cfg *config.DocumentConfig, log *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)

	if _, err := os.Stat(outputPath); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputPath)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputPath))
		if err = os.Remove(outputPath); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	log.Info("Generating theme", zap.String("theme", cfg.Theme.Name), zap.String("output", outputPath))

	_, tmpName := filepath.Split(outputPath)
	tmpName = filepath.Join(c.WorkDir, tmpName)

	f, err := os.Create(tmpName)
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	defer f.Close()

	zw := zip.NewWriter(f)
	defer zw.Close()

	// Localize assets first, rendering must see the rewritten image sources.
	var srcDir string
	if env.SrcRoot != "" {
		srcDir = filepath.Dir(filepath.Join(env.SrcRoot, c.SrcName))
	}
	assets := localizeAssets(c.Doc, srcDir, &cfg.Assets, log)
	for _, a := range assets {
		if err := writeDataToZip(zw, path.Join(assetsDir, a.Name), a.Data); err != nil {
			return fmt.Errorf("unable to write asset %s: %w", a.Name, err)
		}
	}

	if err := writeStylesheet(zw, c, cfg, env.ExtraStyle); err != nil {
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}

	if err := writeThemeJSON(zw, c, cfg); err != nil {
		return fmt.Errorf("unable to write theme.json: %w", err)
	}

	if err := writeTemplates(zw, c, cfg, log); err != nil {
		return fmt.Errorf("unable to write templates: %w", err)
	}

	if cfg.Screenshot.Generate {
		shot, err := buildScreenshot(env.DefaultScreenshot, c.Doc, &cfg.Screenshot)
		if err != nil {
			return fmt.Errorf("unable to build screenshot: %w", err)
		}
		if err := writeDataToZip(zw, "screenshot.png", shot); err != nil {
			return fmt.Errorf("unable to write screenshot: %w", err)
		}
	}

	// make sure buffers are flushed before continuing
	if err := zw.Close(); err != nil {
		return fmt.Errorf("unable to close output archive: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("unable to finalize output file: %w", err)
	}
	// clean temporary file
	defer os.Remove(tmpName)

	if cfg.FixZip {
		return copyZipWithoutDataDescriptors(tmpName, outputPath)
	}
	return copyFile(tmpName, outputPath)
}

func themeSlug(cfg *config.DocumentConfig) string {
	return slug.Make(cfg.Theme.Name)
}

// writeStylesheet emits style.css: the header comment WordPress requires to
// recognize the theme, followed by the captured page styles verbatim and any
// operator supplied styles.
func writeStylesheet(zw *zip.Writer, c *content.Content, cfg *config.DocumentConfig, extra []byte) error {
	var buf bytes.Buffer

	buf.WriteString("/*\n")
	fmt.Fprintf(&buf, "Theme Name: %s\n", cfg.Theme.Name)
	if cfg.Theme.Description != "" {
		fmt.Fprintf(&buf, "Description: %s\n", cfg.Theme.Description)
	}
	if cfg.Theme.Author != "" {
		fmt.Fprintf(&buf, "Author: %s\n", cfg.Theme.Author)
	}
	fmt.Fprintf(&buf, "Version: %s\n", cfg.Theme.Version)
	fmt.Fprintf(&buf, "Requires at least: %s\n", requiresWP)
	fmt.Fprintf(&buf, "Requires PHP: %s\n", requiresPHP)
	buf.WriteString("License: GNU General Public License v2 or later\n")
	buf.WriteString("License URI: http://www.gnu.org/licenses/gpl-2.0.html\n")
	fmt.Fprintf(&buf, "Text Domain: %s\n", themeSlug(cfg))
	buf.WriteString("*/\n")

	appendStyles(&buf, "Captured page styles", c.Page.Stylesheet)
	appendStyles(&buf, "Operator supplied styles", extra)

	return writeDataToZip(zw, "style.css", buf.Bytes())
}

func appendStyles(buf *bytes.Buffer, title string, css []byte) {
	if len(css) == 0 {
		return
	}
	fmt.Fprintf(buf, "\n/* %s */\n", title)
	buf.Write(css)
	if !bytes.HasSuffix(css, []byte("\n")) {
		buf.WriteByte('\n')
	}
}

// theme.json model, only the parts we generate.
type (
	themeJSON struct {
		Schema        string        `json:"$schema"`
		Version       int           `json:"version"`
		Settings      themeSettings `json:"settings"`
		Styles        *themeStyles  `json:"styles,omitempty"`
		TemplateParts []themePart   `json:"templateParts,omitempty"`
	}

	themeSettings struct {
		Color      *colorSettings      `json:"color,omitempty"`
		Typography *typographySettings `json:"typography,omitempty"`
		Spacing    *spacingSettings    `json:"spacing,omitempty"`
		Layout     layoutSettings      `json:"layout"`
	}

	colorSettings struct {
		Palette []presetColor `json:"palette"`
	}

	presetColor struct {
		Slug  string `json:"slug"`
		Color string `json:"color"`
		Name  string `json:"name"`
	}

	typographySettings struct {
		FontFamilies []presetFontFamily `json:"fontFamilies,omitempty"`
		FontSizes    []presetSize       `json:"fontSizes,omitempty"`
	}

	presetFontFamily struct {
		Slug       string `json:"slug"`
		FontFamily string `json:"fontFamily"`
		Name       string `json:"name"`
	}

	presetSize struct {
		Slug string `json:"slug"`
		Size string `json:"size"`
		Name string `json:"name"`
	}

	spacingSettings struct {
		SpacingSizes []presetSize `json:"spacingSizes"`
	}

	layoutSettings struct {
		ContentSize string `json:"contentSize"`
		WideSize    string `json:"wideSize"`
	}

	themeStyles struct {
		Color      *styleColor      `json:"color,omitempty"`
		Typography *styleTypography `json:"typography,omitempty"`
	}

	styleColor struct {
		Background string `json:"background,omitempty"`
		Text       string `json:"text,omitempty"`
	}

	styleTypography struct {
		FontFamily string `json:"fontFamily,omitempty"`
	}

	themePart struct {
		Name  string `json:"name"`
		Title string `json:"title"`
		Area  string `json:"area"`
	}
)

func writeThemeJSON(zw *zip.Writer, c *content.Content, cfg *config.DocumentConfig) error {
	data, err := buildThemeJSON(c.Doc, cfg)
	if err != nil {
		return err
	}
	return writeDataToZip(zw, "theme.json", data)
}

// buildThemeJSON turns the page design tokens into version 3 theme.json.
// Preset order follows token order so repeated runs do not churn the file.
func buildThemeJSON(doc *ir.Document, cfg *config.DocumentConfig) ([]byte, error) {
	tokens := doc.Tokens

	tj := themeJSON{
		Schema:  schemaURL,
		Version: 3,
		Settings: themeSettings{
			Layout: layoutSettings{
				ContentSize: cfg.Theme.ContentSize,
				WideSize:    cfg.Theme.WideSize,
			},
		},
	}

	if len(tokens.Palette) > 0 {
		cs := &colorSettings{Palette: make([]presetColor, 0, len(tokens.Palette))}
		for _, e := range tokens.Palette {
			cs.Palette = append(cs.Palette, presetColor{Slug: e.Name, Color: e.Color, Name: presetName(e.Name)})
		}
		tj.Settings.Color = cs
	}

	var ts typographySettings
	if tokens.Fonts.Heading != "" {
		ts.FontFamilies = append(ts.FontFamilies, presetFontFamily{Slug: "heading", FontFamily: tokens.Fonts.Heading, Name: "Heading"})
	}
	if tokens.Fonts.Body != "" {
		ts.FontFamilies = append(ts.FontFamilies, presetFontFamily{Slug: "body", FontFamily: tokens.Fonts.Body, Name: "Body"})
	}
	for _, s := range tokens.FontSizes {
		ts.FontSizes = append(ts.FontSizes, presetSize{Slug: s.Name, Size: s.Size, Name: presetName(s.Name)})
	}
	if len(ts.FontFamilies) > 0 || len(ts.FontSizes) > 0 {
		tj.Settings.Typography = &ts
	}

	if len(tokens.Spacing) > 0 {
		ss := &spacingSettings{SpacingSizes: make([]presetSize, 0, len(tokens.Spacing))}
		for _, s := range tokens.Spacing {
			ss.SpacingSizes = append(ss.SpacingSizes, presetSize{Slug: s.Name, Size: s.Size, Name: presetName(s.Name)})
		}
		tj.Settings.Spacing = ss
	}

	var styles themeStyles
	var sc styleColor
	if bg := paletteColor(doc, "background", "base", "surface"); bg != "" {
		sc.Background = bg
	}
	if fg := paletteColor(doc, "foreground", "text", "contrast"); fg != "" {
		sc.Text = fg
	}
	if sc.Background != "" || sc.Text != "" {
		styles.Color = &sc
	}
	if tokens.Fonts.Body != "" {
		styles.Typography = &styleTypography{FontFamily: "var:preset|font-family|body"}
	}
	if styles.Color != nil || styles.Typography != nil {
		tj.Styles = &styles
	}

	if doc.Header != nil {
		tj.TemplateParts = append(tj.TemplateParts, themePart{Name: "header", Title: "Header", Area: "header"})
	}
	if doc.Footer != nil {
		tj.TemplateParts = append(tj.TemplateParts, themePart{Name: "footer", Title: "Footer", Area: "footer"})
	}

	data, err := json.MarshalIndent(tj, "", "\t")
	if err != nil {
		return nil, fmt.Errorf("unable to marshal theme.json: %w", err)
	}
	return append(data, '\n'), nil
}

// presetName turns a preset slug into a display name, "base-2" becomes
// "Base 2".
func presetName(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// paletteColor returns the color of the first palette entry matching one of
// the names, empty string when none match.
func paletteColor(doc *ir.Document, names ...string) string {
	for _, want := range names {
		for _, e := range doc.Tokens.Palette {
			if strings.EqualFold(e.Name, want) {
				return e.Color
			}
		}
	}
	return ""
}

func writeTemplates(zw *zip.Writer, c *content.Content, cfg *config.DocumentConfig, log *zap.Logger) error {
	g := markup.NewGenerator(themeSlug(cfg), log)

	if err := writeDataToZip(zw, path.Join(templatesDir, "index.html"), []byte(g.RenderTemplate(c.Doc))); err != nil {
		return fmt.Errorf("unable to write index template: %w", err)
	}
	if c.Doc.Header != nil {
		if err := writeDataToZip(zw, path.Join(partsDir, "header.html"), []byte(g.RenderPart(c.Doc.Header))); err != nil {
			return fmt.Errorf("unable to write header part: %w", err)
		}
	}
	if c.Doc.Footer != nil {
		if err := writeDataToZip(zw, path.Join(partsDir, "footer.html"), []byte(g.RenderPart(c.Doc.Footer))); err != nil {
			return fmt.Errorf("unable to write footer part: %w", err)
		}
	}
	return nil
}

func writeDataToZip(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// copyZipWithoutDataDescriptors rewrites the archive so entries carry sizes
// in their local headers instead of data descriptors. WordPress installs
// themes with PclZip which cannot handle descriptors.
func copyZipWithoutDataDescriptors(from, to string) error {

	out, err := os.Create(to)
	if err != nil {
		return fmt.Errorf("unable to create target file (%s): %w", to, err)
	}
	defer out.Close()

	r, err := fixzip.OpenReader(from)
	if err != nil {
		return fmt.Errorf("unable to read archive file (%s): %w", from, err)
	}
	defer r.Close()

	w := fixzip.NewWriter(out)
	defer w.Close()

	for _, file := range r.File {
		// unset data descriptor flag.
		file.Flags &= ^fixzip.FlagDataDescriptor

		// copy zip entry
		if err := w.CopyFile(file); err != nil {
			return fmt.Errorf("unable to write target file (%s): %w", to, err)
		}
	}
	return nil
}

func copyFile(src, dst string) error {

	sourceFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer sourceFile.Close()

	destinationFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer destinationFile.Close()

	if _, err = io.Copy(destinationFile, sourceFile); err != nil {
		return fmt.Errorf("failed to copy file contents: %w", err)
	}

	if err = destinationFile.Close(); err != nil {
		return fmt.Errorf("failed to close destination file: %w", err)
	}
	return nil
}
