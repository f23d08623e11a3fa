package markup

import (
	"strings"

	"go.uber.org/zap"

	"wpc/ir"
)

const defaultColumnCount = 2

// RenderSection renders one section with its layout arrangement, background
// treatment and vertical padding. Sections with an image background render
// as a cover block, everything else as a group.
func (g *Generator) RenderSection(s *ir.Section) string {
	inner := g.sectionContent(s)
	if s.Background.Kind == ir.BackgroundKindImage && s.Background.Value != "" {
		return g.renderCover(s, inner)
	}
	return g.renderSectionGroup(s, inner)
}

// sectionContent arranges the section's nodes: a columns layout produces a
// single columns block, all other layouts render children directly.
func (g *Generator) sectionContent(s *ir.Section) string {
	if g.effectiveLayout(s) == ir.LayoutKindColumns {
		return g.renderColumns(s)
	}
	return joinBlocks(g.renderNodes(s.Nodes))
}

// renderColumns partitions children into consecutive chunks, one per
// column. The section gap becomes a horizontal and vertical block gap on
// the columns wrapper.
func (g *Generator) renderColumns(s *ir.Section) string {
	count := s.Columns
	if count < 1 {
		count = defaultColumnCount
	}
	chunks := chunkNodes(s.Nodes, count)

	attrs := make(map[string]any)
	var inline string
	if s.Gap != "" {
		px := PadPx(g.gapSize(s.Gap))
		attrs["style"] = map[string]any{"spacing": map[string]any{"blockGap": map[string]any{"top": px, "left": px}}}
		inline = "gap:" + px
	}

	cols := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		colInner := `<div class="wp-block-column">`
		if len(chunk) > 0 {
			colInner += "\n" + joinBlocks(g.renderNodes(chunk)) + "\n"
		}
		colInner += "</div>"
		cols = append(cols, block("column", nil, colInner))
	}

	inner := `<div class="wp-block-columns"` + styleAttr(inline) + ">\n" + joinBlocks(cols) + "\n</div>"
	return block("columns", attrs, inner)
}

// chunkNodes partitions nodes into count consecutive chunks preserving
// order. The first len(nodes)%count chunks take one node more, so no chunk
// exceeds ceil(len/count) and nothing is dealt round robin.
func chunkNodes(nodes []ir.Node, count int) [][]ir.Node {
	if count < 1 {
		count = 1
	}
	chunks := make([][]ir.Node, 0, count)
	q, r := len(nodes)/count, len(nodes)%count
	pos := 0
	for i := 0; i < count; i++ {
		size := q
		if i < r {
			size++
		}
		chunks = append(chunks, nodes[pos:pos+size])
		pos += size
	}
	return chunks
}

func (g *Generator) renderSectionGroup(s *ir.Section, inner string) string {
	layout := g.effectiveLayout(s)

	attrs := make(map[string]any)
	st := &Style{}
	var classes []string

	if s.ClassName != "" {
		tokens := classTokens(s.ClassName)
		attrs["className"] = strings.Join(tokens, " ")
		classes = append(classes, tokens...)
	}

	switch layout {
	case ir.LayoutKindFull:
		attrs["align"] = "full"
		attrs["layout"] = map[string]any{"type": "constrained"}
	case ir.LayoutKindGrid:
		attrs["layout"] = map[string]any{"type": "grid", "minimumColumnWidth": sectionGridMinColumn}
	default:
		attrs["layout"] = map[string]any{"type": "constrained"}
	}

	if s.Gap != "" {
		px := PadPx(g.gapSize(s.Gap))
		st.Padding.Top = px
		st.Padding.Bottom = px
	}

	switch s.Background.Kind {
	case "", ir.BackgroundKindNone, ir.BackgroundKindImage:
		// image backgrounds take the cover path before we get here
	case ir.BackgroundKindColor:
		if isPresetName(s.Background.Value) {
			attrs["backgroundColor"] = s.Background.Value
			classes = append(classes, "has-"+s.Background.Value+"-background-color", "has-background")
		} else if s.Background.Value != "" {
			st.Color.Background = s.Background.Value
			classes = append(classes, "has-background")
		}
	case ir.BackgroundKindGradient:
		if s.Background.Value != "" {
			st.Color.Gradient = s.Background.Value
			classes = append(classes, "has-background")
		}
	default:
		g.log.Debug("Unknown background kind, rendering plain", zap.String("kind", string(s.Background.Kind)))
	}

	attrs["style"] = st.AttrObject()

	divClasses := []string{"wp-block-group"}
	if layout == ir.LayoutKindFull {
		divClasses = append(divClasses, "alignfull")
	}
	divClasses = append(divClasses, classes...)

	div := "<div" + classAttr(divClasses...) + styleAttr(st.Inline()) + ">"
	if inner != "" {
		div += "\n" + inner + "\n"
	}
	div += "</div>"
	return block("group", attrs, div)
}

// renderCover wraps the section content in a cover block: a half dimmed
// overlay above the background image, content inside the inner container.
func (g *Generator) renderCover(s *ir.Section, inner string) string {
	layout := g.effectiveLayout(s)

	attrs := map[string]any{"url": s.Background.Value, "dimRatio": 50}
	st := &Style{}
	var classes []string

	if s.ClassName != "" {
		tokens := classTokens(s.ClassName)
		attrs["className"] = strings.Join(tokens, " ")
		classes = append(classes, tokens...)
	}
	if layout == ir.LayoutKindFull {
		attrs["align"] = "full"
	}
	if s.Gap != "" {
		px := PadPx(g.gapSize(s.Gap))
		st.Padding.Top = px
		st.Padding.Bottom = px
	}
	attrs["style"] = st.AttrObject()

	// a grid arrangement needs its own container, the cover itself cannot
	// lay out its children
	if layout == ir.LayoutKindGrid {
		gridAttrs := map[string]any{"layout": map[string]any{"type": "grid", "minimumColumnWidth": sectionGridMinColumn}}
		content := `<div class="wp-block-group">`
		if inner != "" {
			content += "\n" + inner + "\n"
		}
		content += "</div>"
		inner = block("group", gridAttrs, content)
	}

	divClasses := []string{"wp-block-cover"}
	if layout == ir.LayoutKindFull {
		divClasses = append(divClasses, "alignfull")
	}
	divClasses = append(divClasses, classes...)

	var sb strings.Builder
	sb.WriteString("<div" + classAttr(divClasses...) + styleAttr(st.Inline()) + ">\n")
	sb.WriteString(`<span aria-hidden="true" class="wp-block-cover__background has-background-dim"></span>` + "\n")
	sb.WriteString(`<img class="wp-block-cover__image-background" alt="" src="` + s.Background.Value + `" data-object-fit="cover"/>` + "\n")
	sb.WriteString(`<div class="wp-block-cover__inner-container">`)
	if inner != "" {
		sb.WriteString("\n" + inner + "\n")
	}
	sb.WriteString("</div>\n</div>")
	return block("cover", attrs, sb.String())
}

func (g *Generator) effectiveLayout(s *ir.Section) ir.LayoutKind {
	if s.Layout == "" {
		return ir.LayoutKindConstrained
	}
	if !s.Layout.IsValid() {
		g.log.Debug("Unknown section layout, using constrained", zap.String("layout", string(s.Layout)))
		return ir.LayoutKindConstrained
	}
	return s.Layout
}

func (g *Generator) gapSize(gap ir.PadSize) ir.PadSize {
	if !gap.IsValid() {
		g.log.Debug("Unknown gap size, using md", zap.String("gap", string(gap)))
		return ir.PadSizeMd
	}
	return gap
}
