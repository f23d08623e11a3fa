package markup

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"wpc/ir"
)

// Grid layouts use a smaller minimum column width when nested inside another
// container than at section level.
const (
	sectionGridMinColumn = "300px"
	nestedGridMinColumn  = "280px"
)

// Generator renders IR trees into block markup. It is stateless apart from
// the logger and the theme slug used in template part references, one
// instance can render any number of documents.
type Generator struct {
	log   *zap.Logger
	theme string
}

// NewGenerator creates a markup generator. theme is the slug referenced by
// template parts, it may be empty for outputs that carry no parts.
func NewGenerator(theme string, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{log: log.Named("markup"), theme: theme}
}

// RenderNode renders a single node into one complete block. Unsupported
// kinds degrade to an inert placeholder naming the kind, rendering a
// document never fails on content.
func (g *Generator) RenderNode(n *ir.Node) string {
	switch n.Kind {
	case ir.NodeKindHeading:
		return g.renderHeading(n)
	case ir.NodeKindParagraph:
		return g.renderParagraph(n)
	case ir.NodeKindImage:
		return g.renderImage(n)
	case ir.NodeKindButton:
		return g.renderButton(n)
	case ir.NodeKindList:
		return g.renderList(n)
	case ir.NodeKindSpacer:
		return g.renderSpacer(n)
	case ir.NodeKindGroup:
		return g.renderGroup(n)
	case ir.NodeKindNavigation:
		return g.renderNavigation(n)
	default:
		g.log.Warn("Unsupported node kind", zap.String("kind", string(n.Kind)))
		return block("html", nil, "<!-- unsupported node kind: "+escapeText(string(n.Kind))+" -->")
	}
}

func (g *Generator) renderNodes(nodes []ir.Node) []string {
	blocks := make([]string, 0, len(nodes))
	for i := range nodes {
		blocks = append(blocks, g.RenderNode(&nodes[i]))
	}
	return blocks
}

// presentation carries the parts shared by all content kinds: the attribute
// object under construction, the mirrored class tokens in their fixed order
// (custom classes, then colors, then font size) and the collected style.
type presentation struct {
	attrs   map[string]any
	classes []string
	style   *Style
}

func (g *Generator) presentationFor(n *ir.Node) presentation {
	st := &Style{}
	if dropped := st.FoldMap(n.Style); len(dropped) > 0 {
		g.log.Debug("Dropping unsupported style properties",
			zap.String("kind", string(n.Kind)), zap.Strings("properties", dropped))
	}

	attrs := make(map[string]any)
	var classes []string

	if n.ClassName != "" {
		tokens := classTokens(n.ClassName)
		attrs["className"] = strings.Join(tokens, " ")
		classes = append(classes, tokens...)
	}
	if n.TextColor != "" {
		if isPresetName(n.TextColor) {
			attrs["textColor"] = n.TextColor
			classes = append(classes, "has-"+n.TextColor+"-color", "has-text-color")
		} else {
			st.Color.Text = n.TextColor
		}
	}
	if n.BackgroundColor != "" {
		if isPresetName(n.BackgroundColor) {
			attrs["backgroundColor"] = n.BackgroundColor
			classes = append(classes, "has-"+n.BackgroundColor+"-background-color", "has-background")
		} else {
			st.Color.Background = n.BackgroundColor
		}
	}
	if n.FontSize != "" {
		if slug := FontSizeSlug(n.FontSize); slug != "" {
			attrs["fontSize"] = slug
			classes = append(classes, "has-"+slug+"-font-size")
		} else {
			g.log.Debug("Unknown font size token", zap.String("fontSize", string(n.FontSize)))
		}
	}
	attrs["style"] = st.AttrObject()

	return presentation{attrs: attrs, classes: classes, style: st}
}

func (g *Generator) renderHeading(n *ir.Node) string {
	p := g.presentationFor(n)

	level := n.HeadingLevel()
	if level != 2 {
		p.attrs["level"] = level
	}

	classes := []string{"wp-block-heading"}
	if n.Align != "" {
		p.attrs["textAlign"] = n.Align
		classes = append(classes, "has-text-align-"+n.Align)
	}
	classes = append(classes, p.classes...)

	tag := "h" + strconv.Itoa(level)
	inner := "<" + tag + classAttr(classes...) + styleAttr(p.style.Inline()) + ">" +
		escapeText(n.Text) + "</" + tag + ">"
	return block("heading", p.attrs, inner)
}

func (g *Generator) renderParagraph(n *ir.Node) string {
	p := g.presentationFor(n)

	var classes []string
	if n.Align != "" {
		p.attrs["align"] = n.Align
		classes = append(classes, "has-text-align-"+n.Align)
	}
	classes = append(classes, p.classes...)

	inner := "<p" + classAttr(classes...) + styleAttr(p.style.Inline()) + ">" +
		escapeText(n.Text) + "</p>"
	return block("paragraph", p.attrs, inner)
}

func (g *Generator) renderImage(n *ir.Node) string {
	p := g.presentationFor(n)
	p.attrs["sizeSlug"] = "full"
	p.attrs["linkDestination"] = "none"

	classes := []string{"wp-block-image"}
	if n.Align != "" {
		p.attrs["align"] = n.Align
		classes = append(classes, "align"+n.Align)
	}
	classes = append(classes, "size-full")
	classes = append(classes, p.classes...)

	var dims string
	if n.Width > 0 {
		p.attrs["width"] = n.Width
		dims += ` width="` + strconv.Itoa(n.Width) + `"`
	}
	if n.Height > 0 {
		p.attrs["height"] = n.Height
		dims += ` height="` + strconv.Itoa(n.Height) + `"`
	}

	// src is a url and stays untouched
	inner := "<figure" + classAttr(classes...) + `><img src="` + n.Src + `" alt="` +
		escapeAttr(n.Alt) + `"` + dims + "/></figure>"
	return block("image", p.attrs, inner)
}

// renderButton always wraps the button in a buttons container. The primary
// variant fills with the palette primary color and contrasts the text with
// the palette background color; outline keeps the fill empty and draws a
// border instead, which picks up the text color through currentColor.
func (g *Generator) renderButton(n *ir.Node) string {
	st := &Style{}
	if dropped := st.FoldMap(n.Style); len(dropped) > 0 {
		g.log.Debug("Dropping unsupported style properties",
			zap.String("kind", string(n.Kind)), zap.Strings("properties", dropped))
	}

	outline := n.Variant == ir.VariantOutline
	if n.Variant != "" && !n.Variant.IsValid() {
		g.log.Debug("Unknown button variant, rendering as primary", zap.String("variant", string(n.Variant)))
	}

	textColor := n.TextColor
	bgColor := n.BackgroundColor
	if outline {
		if textColor == "" {
			textColor = "primary"
		}
		bgColor = ""
		if st.Border.Width == "" {
			st.Border.Width = "2px"
		}
		if st.Border.Style == "" {
			st.Border.Style = "solid"
		}
	} else {
		if bgColor == "" {
			bgColor = "primary"
		}
		if textColor == "" {
			textColor = "background"
		}
	}

	attrs := make(map[string]any)
	var linkClasses []string
	if textColor != "" {
		if isPresetName(textColor) {
			attrs["textColor"] = textColor
			linkClasses = append(linkClasses, "has-"+textColor+"-color", "has-text-color")
		} else {
			st.Color.Text = textColor
		}
	}
	if bgColor != "" {
		if isPresetName(bgColor) {
			attrs["backgroundColor"] = bgColor
			linkClasses = append(linkClasses, "has-"+bgColor+"-background-color", "has-background")
		} else {
			st.Color.Background = bgColor
		}
	}
	if n.FontSize != "" {
		if slug := FontSizeSlug(n.FontSize); slug != "" {
			attrs["fontSize"] = slug
			linkClasses = append(linkClasses, "has-"+slug+"-font-size")
		}
	}
	attrs["style"] = st.AttrObject()

	custom := classTokens(n.ClassName)
	if outline {
		custom = append(custom, "is-style-outline")
	}
	if len(custom) > 0 {
		attrs["className"] = strings.Join(custom, " ")
	}

	anchorClasses := append([]string{"wp-block-button__link"}, linkClasses...)
	anchorClasses = append(anchorClasses, "wp-element-button")
	anchor := "<a" + classAttr(anchorClasses...) + styleAttr(st.Inline()) +
		` href="` + n.Href + `">` + escapeText(n.Text) + "</a>"

	inner := "<div" + classAttr(append([]string{"wp-block-button"}, custom...)...) + ">" + anchor + "</div>"
	button := block("button", attrs, inner)

	return block("buttons", nil, "<div class=\"wp-block-buttons\">\n"+button+"\n</div>")
}

func (g *Generator) renderList(n *ir.Node) string {
	p := g.presentationFor(n)

	tag := "ul"
	if n.Ordered {
		tag = "ol"
		p.attrs["ordered"] = true
	}

	var items strings.Builder
	for _, item := range n.Items {
		items.WriteString("<li>")
		items.WriteString(escapeText(item))
		items.WriteString("</li>\n")
	}

	inner := "<" + tag + classAttr(append([]string{"wp-block-list"}, p.classes...)...) +
		styleAttr(p.style.Inline()) + ">\n" + items.String() + "</" + tag + ">"
	return block("list", p.attrs, inner)
}

func (g *Generator) renderSpacer(n *ir.Node) string {
	size := n.PadSize
	if size == "" {
		size = ir.PadSizeMd
	} else if !size.IsValid() {
		g.log.Debug("Unknown spacer size, using md", zap.String("size", string(size)))
		size = ir.PadSizeMd
	}

	height := PadPx(size)
	inner := `<div style="height:` + height + `" aria-hidden="true" class="wp-block-spacer"></div>`
	return block("spacer", map[string]any{"height": height}, inner)
}

func (g *Generator) renderGroup(n *ir.Node) string {
	p := g.presentationFor(n)
	p.attrs["layout"] = groupLayout(n.Style, nestedGridMinColumn)

	classes := append([]string{"wp-block-group"}, p.classes...)
	inner := "<div" + classAttr(classes...) + styleAttr(p.style.Inline()) + ">"
	if len(n.Children) > 0 {
		inner += "\n" + joinBlocks(g.renderNodes(n.Children)) + "\n"
	}
	inner += "</div>"
	return block("group", p.attrs, inner)
}

// renderNavigation deliberately renders a flex group of plain links instead
// of a navigation block: navigation blocks resolve against menu entities
// that only exist inside a live installation, while a group of links works
// everywhere the markup is imported.
func (g *Generator) renderNavigation(n *ir.Node) string {
	attrs := make(map[string]any)
	var classes []string
	if n.ClassName != "" {
		tokens := classTokens(n.ClassName)
		attrs["className"] = strings.Join(tokens, " ")
		classes = append(classes, tokens...)
	}
	attrs["layout"] = map[string]any{"type": "flex", "flexWrap": "wrap"}

	links := make([]string, 0, len(n.Links))
	for _, l := range n.Links {
		links = append(links, block("paragraph", nil,
			`<p><a href="`+l.Href+`">`+escapeText(l.Label)+"</a></p>"))
	}

	inner := "<div" + classAttr(append([]string{"wp-block-group"}, classes...)...) + ">"
	if len(links) > 0 {
		inner += "\n" + joinBlocks(links) + "\n"
	}
	inner += "</div>"
	return block("group", attrs, inner)
}

// groupLayout derives the layout descriptor from free form style. A declared
// grid or flex display wins over the constrained default.
func groupLayout(style map[string]string, gridMinColumn string) map[string]any {
	switch strings.ToLower(strings.TrimSpace(style["display"])) {
	case "grid":
		return map[string]any{"type": "grid", "minimumColumnWidth": gridMinColumn}
	case "flex":
		return map[string]any{"type": "flex", "flexWrap": "wrap"}
	default:
		return map[string]any{"type": "constrained"}
	}
}
