package ir

// Clone and deep copy functions for IR structures. Reconciliation annotates a
// copy of the document, never its input, so callers can diff the two or
// re-run with different thresholds.

// Clone creates a deep copy of the document.
func (doc *Document) Clone() *Document {
	if doc == nil {
		return nil
	}
	return &Document{
		Title:    doc.Title,
		Lang:     doc.Lang,
		Tokens:   cloneTokens(&doc.Tokens),
		Header:   cloneSectionPtr(doc.Header),
		Sections: cloneSections(doc.Sections),
		Footer:   cloneSectionPtr(doc.Footer),
	}
}

func cloneTokens(t *DesignTokens) DesignTokens {
	return DesignTokens{
		Palette:   cloneSlice(t.Palette),
		Fonts:     t.Fonts,
		FontSizes: cloneSlice(t.FontSizes),
		Spacing:   cloneSlice(t.Spacing),
	}
}

func cloneSectionPtr(s *Section) *Section {
	if s == nil {
		return nil
	}
	c := cloneSection(s)
	return &c
}

func cloneSections(sections []Section) []Section {
	if sections == nil {
		return nil
	}
	result := make([]Section, len(sections))
	for i := range sections {
		result[i] = cloneSection(&sections[i])
	}
	return result
}

func cloneSection(s *Section) Section {
	return Section{
		Layout:     s.Layout,
		Columns:    s.Columns,
		Gap:        s.Gap,
		Background: s.Background,
		ClassName:  s.ClassName,
		Nodes:      cloneNodes(s.Nodes),
	}
}

func cloneNodes(nodes []Node) []Node {
	if nodes == nil {
		return nil
	}
	result := make([]Node, len(nodes))
	for i := range nodes {
		result[i] = cloneNode(&nodes[i])
	}
	return result
}

func cloneNode(n *Node) Node {
	c := *n
	c.Items = cloneSlice(n.Items)
	c.Links = cloneSlice(n.Links)
	c.Children = cloneNodes(n.Children)
	c.Style = cloneStyle(n.Style)
	return c
}

func cloneStyle(style map[string]string) map[string]string {
	if style == nil {
		return nil
	}
	result := make(map[string]string, len(style))
	for k, v := range style {
		result[k] = v
	}
	return result
}

func cloneSlice[T any](s []T) []T {
	if s == nil {
		return nil
	}
	result := make([]T, len(s))
	copy(result, s)
	return result
}
