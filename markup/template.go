package markup

import (
	"wpc/ir"
)

// RenderTemplate produces the index template: template part references for
// header and footer around the rendered page sections.
func (g *Generator) RenderTemplate(doc *ir.Document) string {
	parts := make([]string, 0, len(doc.Sections)+2)
	if doc.Header != nil {
		parts = append(parts, g.partRef("header"))
	}
	for i := range doc.Sections {
		parts = append(parts, g.RenderSection(&doc.Sections[i]))
	}
	if doc.Footer != nil {
		parts = append(parts, g.partRef("footer"))
	}
	return fileContent(joinBlocks(parts))
}

// RenderPart renders the file content for a single template part.
func (g *Generator) RenderPart(s *ir.Section) string {
	return fileContent(g.RenderSection(s))
}

// RenderBody renders every region inline, header first and footer last, for
// destinations that cannot reference template parts.
func (g *Generator) RenderBody(doc *ir.Document) string {
	parts := make([]string, 0, len(doc.Sections)+2)
	if doc.Header != nil {
		parts = append(parts, g.RenderSection(doc.Header))
	}
	for i := range doc.Sections {
		parts = append(parts, g.RenderSection(&doc.Sections[i]))
	}
	if doc.Footer != nil {
		parts = append(parts, g.RenderSection(doc.Footer))
	}
	return joinBlocks(parts)
}

func (g *Generator) partRef(slug string) string {
	attrs := map[string]any{"slug": slug, "theme": g.theme}
	switch slug {
	case "header":
		attrs["tagName"] = "header"
	case "footer":
		attrs["tagName"] = "footer"
	}
	return selfClosingBlock("template-part", attrs)
}

// fileContent terminates rendered template text with a single newline.
func fileContent(s string) string {
	if s == "" {
		return s
	}
	return s + "\n"
}
