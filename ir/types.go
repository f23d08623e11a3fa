// Package ir defines the intermediate representation of a captured web page:
// an ordered tree of sections and nodes plus the design tokens extracted from
// the page. The model is produced by the inference step as JSON and consumed
// by reconciliation and markup generation. All downstream processing works on
// this structure only, never on the original HTML.
package ir

// Document is the root of the IR tree for a single page.
type Document struct {
	Title    string       `json:"title"`
	Lang     string       `json:"lang,omitempty"`
	Tokens   DesignTokens `json:"tokens"`
	Header   *Section     `json:"header,omitempty"`
	Sections []Section    `json:"sections"`
	Footer   *Section     `json:"footer,omitempty"`
}

// DesignTokens carries page level design decisions: color palette, font
// families and the size scales. Palette and scales keep their order stable so
// generated theme.json does not churn between runs.
type DesignTokens struct {
	Palette   []PaletteEntry `json:"palette,omitempty"`
	Fonts     FontPair       `json:"fonts"`
	FontSizes []ScaleEntry   `json:"fontSizes,omitempty"`
	Spacing   []ScaleEntry   `json:"spacing,omitempty"`
}

// PaletteEntry names a single color. Name is a slug usable in preset
// attributes ("primary", "background"), Color is a CSS color value.
type PaletteEntry struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

// FontPair holds the two font families the page design is built on.
type FontPair struct {
	Heading string `json:"heading,omitempty"`
	Body    string `json:"body,omitempty"`
}

// ScaleEntry is a named step of a size scale ("md" -> "18px").
type ScaleEntry struct {
	Name string `json:"name"`
	Size string `json:"size"`
}

// Section is a horizontal band of the page with its own layout, background
// and content nodes.
type Section struct {
	Layout     LayoutKind `json:"layout,omitempty"`
	Columns    int        `json:"columns,omitempty"`
	Gap        PadSize    `json:"gap,omitempty"`
	Background Background `json:"background"`
	ClassName  string     `json:"className,omitempty"`
	Nodes      []Node     `json:"nodes"`
}

// Background describes the section backdrop.
type Background struct {
	Kind  BackgroundKind `json:"kind,omitempty"`
	Value string         `json:"value,omitempty"`
}

// Node is a single content or structural element. Which fields are meaningful
// depends on Kind; the rest stay zero. Unknown kinds are preserved through
// decoding so rendering can degrade instead of failing.
type Node struct {
	Kind NodeKind `json:"kind"`

	// content
	Text    string   `json:"text,omitempty"`
	Level   int      `json:"level,omitempty"`
	Src     string   `json:"src,omitempty"`
	Alt     string   `json:"alt,omitempty"`
	Width   int      `json:"width,omitempty"`
	Height  int      `json:"height,omitempty"`
	Href    string   `json:"href,omitempty"`
	Variant Variant  `json:"variant,omitempty"`
	Ordered bool     `json:"ordered,omitempty"`
	Items   []string `json:"items,omitempty"`
	Links   []Link   `json:"links,omitempty"`

	// structure
	Children []Node `json:"children,omitempty"`

	// presentation
	Align           string            `json:"align,omitempty"`
	FontSize        FontSize          `json:"fontSize,omitempty"`
	PadSize         PadSize           `json:"padSize,omitempty"`
	TextColor       string            `json:"textColor,omitempty"`
	BackgroundColor string            `json:"backgroundColor,omitempty"`
	Style           map[string]string `json:"style,omitempty"`
	ClassName       string            `json:"className,omitempty"`
}

// Link is a single navigation entry.
type Link struct {
	Label string `json:"label"`
	Href  string `json:"href"`
}

// IsContent reports whether the node carries content directly, as opposed to
// structural nodes which only arrange other nodes.
func (n *Node) IsContent() bool {
	switch n.Kind {
	case NodeKindHeading, NodeKindParagraph, NodeKindImage, NodeKindButton, NodeKindList:
		return true
	default:
		return false
	}
}

// HeadingLevel returns the effective heading level, normalizing absent and
// out of range values to the default level 2.
func (n *Node) HeadingLevel() int {
	if n.Level >= 1 && n.Level <= 6 {
		return n.Level
	}
	return 2
}
