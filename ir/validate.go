package ir

import (
	"fmt"

	"go.uber.org/multierr"
)

// Validate checks the document against the model constraints and reports
// every violation found, not just the first one. Violations are addressed by
// path ("sections[1].nodes[0]") so they can be fed back to the inference step
// verbatim.
//
// A failed validation does not necessarily make the document unusable:
// rendering degrades gracefully on most of these. The gate exists so that
// inference output can be retried while it is still cheap to do so.
func Validate(doc *Document) error {
	if doc == nil {
		return fmt.Errorf("document is nil")
	}

	var err error
	if doc.Header == nil && doc.Footer == nil && len(doc.Sections) == 0 {
		err = multierr.Append(err, fmt.Errorf("document has no sections and no parts"))
	}
	for i := range doc.Tokens.Palette {
		p := &doc.Tokens.Palette[i]
		if p.Name == "" || p.Color == "" {
			err = multierr.Append(err, fmt.Errorf("tokens.palette[%d]: name and color are both required", i))
		}
	}
	if doc.Header != nil {
		err = multierr.Append(err, validateSection("header", doc.Header))
	}
	for i := range doc.Sections {
		err = multierr.Append(err, validateSection(fmt.Sprintf("sections[%d]", i), &doc.Sections[i]))
	}
	if doc.Footer != nil {
		err = multierr.Append(err, validateSection("footer", doc.Footer))
	}
	return err
}

func validateSection(path string, s *Section) error {
	var err error
	if s.Layout != "" && !s.Layout.IsValid() {
		err = multierr.Append(err, fmt.Errorf("%s: unknown layout %q", path, s.Layout))
	}
	if s.Columns < 0 {
		err = multierr.Append(err, fmt.Errorf("%s: negative column count %d", path, s.Columns))
	}
	if s.Gap != "" && !s.Gap.IsValid() {
		err = multierr.Append(err, fmt.Errorf("%s: unknown gap size %q", path, s.Gap))
	}
	if s.Background.Kind != "" && !s.Background.Kind.IsValid() {
		err = multierr.Append(err, fmt.Errorf("%s: unknown background kind %q", path, s.Background.Kind))
	} else if s.Background.Kind != "" && s.Background.Kind != BackgroundKindNone && s.Background.Value == "" {
		err = multierr.Append(err, fmt.Errorf("%s: background kind %q requires a value", path, s.Background.Kind))
	}
	for i := range s.Nodes {
		err = multierr.Append(err, validateNode(fmt.Sprintf("%s.nodes[%d]", path, i), &s.Nodes[i]))
	}
	return err
}

func validateNode(path string, n *Node) error {
	var err error
	if n.Kind == "" {
		err = multierr.Append(err, fmt.Errorf("%s: node kind is required", path))
	} else if !n.Kind.IsValid() {
		err = multierr.Append(err, fmt.Errorf("%s: unknown node kind %q", path, n.Kind))
	}

	switch n.Kind {
	case NodeKindHeading:
		if n.Level != 0 && (n.Level < 1 || n.Level > 6) {
			err = multierr.Append(err, fmt.Errorf("%s: heading level %d out of range 1..6", path, n.Level))
		}
	case NodeKindImage:
		if n.Src == "" {
			err = multierr.Append(err, fmt.Errorf("%s: image source is required", path))
		}
	case NodeKindButton:
		if n.Href == "" {
			err = multierr.Append(err, fmt.Errorf("%s: button target is required", path))
		}
		if n.Variant != "" && !n.Variant.IsValid() {
			err = multierr.Append(err, fmt.Errorf("%s: unknown button variant %q", path, n.Variant))
		}
	case NodeKindNavigation:
		for i, l := range n.Links {
			if l.Label == "" || l.Href == "" {
				err = multierr.Append(err, fmt.Errorf("%s.links[%d]: label and href are both required", path, i))
			}
		}
	case NodeKindSpacer:
		if n.PadSize != "" && !n.PadSize.IsValid() {
			err = multierr.Append(err, fmt.Errorf("%s: unknown spacer size %q", path, n.PadSize))
		}
	}

	switch n.Align {
	case "", "left", "center", "right":
	default:
		err = multierr.Append(err, fmt.Errorf("%s: unknown alignment %q", path, n.Align))
	}
	if n.FontSize != "" && !n.FontSize.IsValid() {
		err = multierr.Append(err, fmt.Errorf("%s: unknown font size %q", path, n.FontSize))
	}

	for i := range n.Children {
		err = multierr.Append(err, validateNode(fmt.Sprintf("%s.children[%d]", path, i), &n.Children[i]))
	}
	return err
}
