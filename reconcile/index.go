package reconcile

import (
	"strings"

	"golang.org/x/net/html"

	"wpc/css"
	"wpc/ir"
)

// leafElement is one content bearing tag of the original page. Its identity
// is the document position assigned during indexing, classes holds only the
// names the extracted stylesheet actually defines.
type leafElement struct {
	id      int
	kind    ir.NodeKind
	key     string
	classes []string
}

// containerElement is a structural wrapper carrying at least one qualifying
// class, annotated with the fingerprints of every leaf in its subtree.
type containerElement struct {
	id       int
	classes  []string
	leafKeys map[string]struct{}
}

// index holds the original page prepared for matching: leaves bucketed by
// exact fingerprint and by kind for fallback, containers in the order the
// walk closed them (innermost first among nested wrappers).
type index struct {
	byKey      map[string][]*leafElement
	byKind     map[ir.NodeKind][]*leafElement
	containers []*containerElement
}

func (x *index) empty() bool {
	return len(x.byKey) == 0 && len(x.containers) == 0
}

// newIndex walks the parsed page once, assigning identities in document
// order. Leaves without a single stylesheet backed class are fingerprinted
// for container sets but not bucketed, matching them could only consume a
// slot while contributing nothing.
func newIndex(root *html.Node, classes *css.ClassIndex) *index {
	b := &indexBuilder{
		classes: classes,
		idx: &index{
			byKey:  make(map[string][]*leafElement),
			byKind: make(map[ir.NodeKind][]*leafElement),
		},
	}
	b.walk(root)
	return b.idx
}

type indexBuilder struct {
	classes *css.ClassIndex
	idx     *index
	nextID  int
}

func (b *indexBuilder) assign() int {
	b.nextID++
	return b.nextID
}

// walk indexes the subtree rooted at n and returns the fingerprints of all
// leaves found in it, which accumulate into every enclosing container.
func (b *indexBuilder) walk(n *html.Node) []string {
	var keys []string

	if n.Type == html.ElementNode {
		if kind, ok := leafKinds[strings.ToLower(n.Data)]; ok {
			key := htmlLeafKey(n, kind)
			leaf := &leafElement{id: b.assign(), kind: kind, key: key, classes: b.qualifyingClasses(n)}
			if len(leaf.classes) > 0 {
				b.idx.byKey[key] = append(b.idx.byKey[key], leaf)
				b.idx.byKind[kind] = append(b.idx.byKind[kind], leaf)
			}
			keys = append(keys, key)
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		keys = append(keys, b.walk(c)...)
	}

	if n.Type == html.ElementNode && containerTags[strings.ToLower(n.Data)] {
		classes := b.qualifyingClasses(n)
		if len(classes) > 0 && len(keys) > 0 {
			b.idx.containers = append(b.idx.containers, &containerElement{
				id:       b.assign(),
				classes:  classes,
				leafKeys: toKeySet(keys),
			})
		}
	}

	return keys
}

// qualifyingClasses returns the element's class tokens that the extracted
// stylesheet defines, deduplicated in attribute order.
func (b *indexBuilder) qualifyingClasses(n *html.Node) []string {
	raw := attrVal(n, "class")
	if raw == "" {
		return nil
	}
	seen := make(map[string]struct{})
	var out []string
	for _, t := range strings.Fields(raw) {
		if !b.classes.Has(t) {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

func htmlLeafKey(n *html.Node, kind ir.NodeKind) string {
	switch kind {
	case ir.NodeKindImage:
		return imageKey(attrVal(n, "src"))
	case ir.NodeKindButton:
		return buttonKey(textContent(n), attrVal(n, "href"))
	case ir.NodeKindList:
		var items []string
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && strings.EqualFold(c.Data, "li") {
				items = append(items, textContent(c))
			}
		}
		return listKey(items)
	default:
		return textKey(kind, textContent(n))
	}
}

// textContent concatenates every text node of the subtree.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(n)
	return sb.String()
}

func attrVal(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func toKeySet(keys []string) map[string]struct{} {
	set := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		set[k] = struct{}{}
	}
	return set
}
