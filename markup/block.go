// Package markup renders IR documents into WordPress block markup. The
// serialized grammar is byte exact: downstream the markup is consumed by a
// strict parser which tolerates no variation in comment delimiters or
// attribute placement, so everything here is assembled by hand from strings
// instead of going through a document builder.
package markup

import (
	"bytes"
	"encoding/json"
	"strings"
)

// CleanObject recursively removes attribute keys whose values are nil or an
// empty string, and drops nested objects that become empty after cleaning.
// Arrays are kept as they are, cleaning never descends into them. The
// operation is idempotent.
func CleanObject(obj map[string]any) map[string]any {
	if obj == nil {
		return nil
	}
	out := make(map[string]any, len(obj))
	for k, v := range obj {
		switch t := v.(type) {
		case nil:
			continue
		case string:
			if t == "" {
				continue
			}
			out[k] = t
		case map[string]any:
			cleaned := CleanObject(t)
			if len(cleaned) == 0 {
				continue
			}
			out[k] = cleaned
		default:
			out[k] = v
		}
	}
	return out
}

// attrJSON serializes cleaned block attributes: compact, deterministic
// (sorted keys) and with HTML escaping off so urls inside attribute values
// survive verbatim. Returns "" when nothing remains after cleaning.
func attrJSON(attrs map[string]any) string {
	attrs = CleanObject(attrs)
	if len(attrs) == 0 {
		return ""
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(attrs); err != nil {
		// attribute values are built from plain strings, numbers and maps,
		// there is nothing json cannot encode
		return ""
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// block emits one complete block: opening comment, inner content on its own
// lines, closing comment. When the cleaned attribute object is empty the
// json and its leading space are omitted entirely.
func block(name string, attrs map[string]any, inner string) string {
	var sb strings.Builder
	sb.Grow(len(name)*2 + len(inner) + 32)
	sb.WriteString("<!-- wp:")
	sb.WriteString(name)
	if j := attrJSON(attrs); j != "" {
		sb.WriteByte(' ')
		sb.WriteString(j)
	}
	sb.WriteString(" -->\n")
	sb.WriteString(inner)
	sb.WriteString("\n<!-- /wp:")
	sb.WriteString(name)
	sb.WriteString(" -->")
	return sb.String()
}

// selfClosingBlock emits the void form used for template part references.
func selfClosingBlock(name string, attrs map[string]any) string {
	var sb strings.Builder
	sb.WriteString("<!-- wp:")
	sb.WriteString(name)
	if j := attrJSON(attrs); j != "" {
		sb.WriteByte(' ')
		sb.WriteString(j)
	}
	sb.WriteString(" /-->")
	return sb.String()
}

// joinBlocks joins sibling blocks with a blank line between them.
func joinBlocks(blocks []string) string {
	return strings.Join(blocks, "\n\n")
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// escapeText escapes character data for element content. Urls never go
// through here, they are emitted verbatim.
func escapeText(s string) string {
	return textEscaper.Replace(s)
}

// escapeAttr escapes a value for a double quoted attribute.
func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// classAttr renders a class attribute with a leading space, skipping empty
// tokens, or "" when no tokens remain.
func classAttr(tokens ...string) string {
	kept := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if t != "" {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return ""
	}
	return ` class="` + strings.Join(kept, " ") + `"`
}

// styleAttr renders a style attribute with a leading space, or "" for empty
// inline css.
func styleAttr(inline string) string {
	if inline == "" {
		return ""
	}
	return ` style="` + inline + `"`
}

// classTokens splits a className field into its space separated tokens.
func classTokens(className string) []string {
	return strings.Fields(className)
}
