package ir

// Kind of a single IR node.
// ENUM(heading, paragraph, image, button, list, spacer, group, navigation)
type NodeKind string

// Section layout strategy.
// ENUM(constrained, full, columns, grid)
type LayoutKind string

// Kind of a section background.
// ENUM(none, color, gradient, image)
type BackgroundKind string

// Named step on the spacing scale.
// ENUM(none, sm, md, lg, xl)
type PadSize string

// Named step on the font size scale.
// ENUM(sm, md, lg, xl, xxl)
type FontSize string

// Button presentation variant.
// ENUM(primary, outline)
type Variant string
