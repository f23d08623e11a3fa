package content

import (
	"sort"

	"github.com/maruel/natural"

	"wpc/utils/debug"
)

// String returns a readable dump of the whole Content starting with the IR
// document. It exists solely for manual inspection during debugging.
func (c *Content) String() string {
	if c == nil {
		return "<nil Content>"
	}

	tw := debug.NewTreeWriter()

	if c.Classes.Len() > 0 {
		tw.Blank()
		tw.Line(0, "Stylesheet classes: %d", c.Classes.Len())
		names := c.Classes.Names()
		sort.Sort(natural.StringSlice(names))
		for _, n := range names {
			tw.Line(1, "Class[%q]", n)
		}
		for i, url := range c.Classes.Imports {
			tw.Line(1, "Import[%d] %q", i, url)
		}
	}

	if c.Page != nil && len(c.Page.SheetLinks) > 0 {
		tw.Blank()
		tw.Line(0, "Linked stylesheets: %d", len(c.Page.SheetLinks))
		for i, href := range c.Page.SheetLinks {
			tw.Line(1, "Link[%d] %q", i, href)
		}
	}

	return c.Doc.String() + tw.String()
}
