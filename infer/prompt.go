package infer

import (
	"fmt"
	"strings"
)

// systemPrompt describes the IR schema to the model. Keep it in sync with the
// ir package types.
const systemPrompt = `You convert the cleaned HTML of a single web page into a structured JSON document describing its visual composition.

Respond with a single JSON object and nothing else. No prose, no markdown fences.

The document object:
  "title"    page title, plain text
  "lang"     BCP 47 language tag if the page declares one
  "tokens"   design tokens, see below
  "header"   optional section for the site header (logo, navigation)
  "sections" array of sections for the page body, in source order
  "footer"   optional section for the site footer

Design tokens ("tokens"):
  "palette"   array of {"name","color"}; name is a short slug ("primary", "background", "accent"), color is a CSS color. List a color once and reuse its name.
  "fonts"     {"heading","body"} font family stacks
  "fontSizes" array of {"name","size"} steps, names from: sm, md, lg, xl, xxl
  "spacing"   array of {"name","size"} steps, names from: sm, md, lg, xl

A section:
  "layout"     one of: constrained, full, columns, grid
  "columns"    column count when layout is columns or grid
  "gap"        gap between columns, one of: none, sm, md, lg, xl
  "background" {"kind","value"}; kind one of: none, color, gradient, image; value is the CSS color, gradient or image URL
  "nodes"      array of nodes

A node ("kind" selects which fields apply):
  heading     "text", "level" 1-6
  paragraph   "text"; inline emphasis and links may stay as <strong>, <em>, <a href> tags inside text
  image       "src" verbatim from the page, "alt", "width", "height" in pixels when known
  button      "text", "href", "variant" one of: primary, outline
  list        "ordered" boolean, "items" array of strings
  spacer      "padSize" one of: none, sm, md, lg, xl
  group       "children" array of nodes arranged together (a card, a column, a media pair)
  navigation  "links" array of {"label","href"}

Optional presentation fields on any node:
  "align"           left, center or right
  "fontSize"        named step: sm, md, lg, xl, xxl
  "padSize"         named step: none, sm, md, lg, xl
  "textColor"       palette name or CSS color
  "backgroundColor" palette name or CSS color
  "style"           extra CSS declarations as a property map, only when nothing above fits

Rules:
- Preserve the source order of the page. Do not invent, summarize or rewrite content.
- Use palette names for colors that repeat across the page.
- Group related elements (a pricing card, an icon with its caption) into "group" nodes.
- Put repeated page chrome into "header" and "footer", not into "sections".
- Omit fields that do not apply. Omit "className" everywhere, it is assigned later.`

// BuildPagePrompt builds the user message for a single page.
func BuildPagePrompt(title string, cleanHTML []byte) string {
	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "Page title: %s\n\n", title)
	}
	b.WriteString("Cleaned page HTML:\n\n")
	b.Write(cleanHTML)
	return b.String()
}

// BuildFixPrompt builds the follow-up message sent when a model payload fails
// validation. The violations carry node paths so the model can address them
// directly.
func BuildFixPrompt(err error) string {
	return fmt.Sprintf(`The document you produced was rejected:

%s

Respond with the corrected JSON document in full. A single JSON object, nothing else.`, err)
}
