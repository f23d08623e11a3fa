package ir

import (
	"strconv"

	"wpc/utils/debug"
)

type treeWriter struct {
	*debug.TreeWriter
}

// String returns a readable tree of the document. It exists solely for manual
// inspection during debugging, the output format is not stable.
func (doc *Document) String() string {
	if doc == nil {
		return "<nil Document>"
	}
	return treeWriter{debug.NewTreeWriter()}.document(doc).String()
}

func (tw treeWriter) document(doc *Document) treeWriter {
	tw.Line(0, "Document title=%q lang=%q", doc.Title, doc.Lang)
	tw.tokens(1, &doc.Tokens)
	if doc.Header != nil {
		tw.section(1, "Header", doc.Header)
	}
	for i := range doc.Sections {
		tw.section(1, "Section["+strconv.Itoa(i)+"]", &doc.Sections[i])
	}
	if doc.Footer != nil {
		tw.section(1, "Footer", doc.Footer)
	}
	return tw
}

func (tw treeWriter) tokens(depth int, t *DesignTokens) {
	if len(t.Palette) == 0 && t.Fonts == (FontPair{}) && len(t.FontSizes) == 0 && len(t.Spacing) == 0 {
		return
	}
	tw.Line(depth, "Tokens fonts=%q/%q", t.Fonts.Heading, t.Fonts.Body)
	for _, p := range t.Palette {
		tw.Line(depth+1, "Palette %s=%s", p.Name, p.Color)
	}
	for _, s := range t.FontSizes {
		tw.Line(depth+1, "FontSize %s=%s", s.Name, s.Size)
	}
	for _, s := range t.Spacing {
		tw.Line(depth+1, "Spacing %s=%s", s.Name, s.Size)
	}
}

func (tw treeWriter) section(depth int, label string, s *Section) {
	tw.Line(depth, "%s layout=%q columns=%d gap=%q background=%q class=%q", label, s.Layout, s.Columns, s.Gap, s.Background.Kind, s.ClassName)
	for i := range s.Nodes {
		tw.node(depth+1, i, &s.Nodes[i])
	}
}

func (tw treeWriter) node(depth, index int, n *Node) {
	switch n.Kind {
	case NodeKindHeading:
		tw.Line(depth, "[%d] heading level=%d class=%q", index, n.HeadingLevel(), n.ClassName)
		tw.TextBlock(depth+1, "Text", n.Text)
	case NodeKindParagraph:
		tw.Line(depth, "[%d] paragraph class=%q", index, n.ClassName)
		tw.TextBlock(depth+1, "Text", n.Text)
	case NodeKindImage:
		tw.Line(depth, "[%d] image src=%q alt=%q class=%q", index, n.Src, n.Alt, n.ClassName)
	case NodeKindButton:
		tw.Line(depth, "[%d] button href=%q variant=%q class=%q", index, n.Href, n.Variant, n.ClassName)
		tw.TextBlock(depth+1, "Text", n.Text)
	case NodeKindList:
		tw.Line(depth, "[%d] list ordered=%t items=%d class=%q", index, n.Ordered, len(n.Items), n.ClassName)
		for i, item := range n.Items {
			tw.TextBlock(depth+1, "Item["+strconv.Itoa(i)+"]", item)
		}
	case NodeKindSpacer:
		tw.Line(depth, "[%d] spacer size=%q", index, n.PadSize)
	case NodeKindGroup:
		tw.Line(depth, "[%d] group class=%q children=%d", index, n.ClassName, len(n.Children))
		for i := range n.Children {
			tw.node(depth+1, i, &n.Children[i])
		}
	case NodeKindNavigation:
		tw.Line(depth, "[%d] navigation links=%d class=%q", index, len(n.Links), n.ClassName)
		for _, l := range n.Links {
			tw.Line(depth+1, "Link %q -> %q", l.Label, l.Href)
		}
	default:
		tw.Line(depth, "[%d] %s (unsupported)", index, n.Kind)
	}
}
