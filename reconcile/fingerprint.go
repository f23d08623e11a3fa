package reconcile

import (
	"strings"

	"wpc/ir"
)

// leafKinds maps original page tags to the content kind their fingerprints
// are computed under. Anchors and buttons share a kind, so do both list
// flavors.
var leafKinds = map[string]ir.NodeKind{
	"h1":     ir.NodeKindHeading,
	"h2":     ir.NodeKindHeading,
	"h3":     ir.NodeKindHeading,
	"h4":     ir.NodeKindHeading,
	"h5":     ir.NodeKindHeading,
	"h6":     ir.NodeKindHeading,
	"p":      ir.NodeKindParagraph,
	"img":    ir.NodeKindImage,
	"a":      ir.NodeKindButton,
	"button": ir.NodeKindButton,
	"ul":     ir.NodeKindList,
	"ol":     ir.NodeKindList,
}

// containerTags are the structural wrappers considered as match candidates
// for sections and group nodes.
var containerTags = map[string]bool{
	"div":     true,
	"section": true,
	"header":  true,
	"footer":  true,
	"main":    true,
	"article": true,
	"aside":   true,
	"nav":     true,
	"figure":  true,
}

// normalizeText lowercases and collapses whitespace runs so cosmetic
// formatting differences between the page and the IR do not break matches.
func normalizeText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func textKey(kind ir.NodeKind, text string) string {
	return string(kind) + "|" + normalizeText(text)
}

func imageKey(src string) string {
	return "image|" + strings.TrimSpace(src)
}

func buttonKey(text, href string) string {
	return "button|" + normalizeText(text) + "|" + strings.TrimSpace(href)
}

func listKey(items []string) string {
	norm := make([]string, 0, len(items))
	for _, item := range items {
		norm = append(norm, normalizeText(item))
	}
	return "list|" + strings.Join(norm, "|")
}

// nodeKey computes the fingerprint of an IR content node, mirroring the keys
// assigned to original page leaves during indexing.
func nodeKey(n *ir.Node) string {
	switch n.Kind {
	case ir.NodeKindImage:
		return imageKey(n.Src)
	case ir.NodeKindButton:
		return buttonKey(n.Text, n.Href)
	case ir.NodeKindList:
		return listKey(n.Items)
	default:
		return textKey(n.Kind, n.Text)
	}
}

// collectNodeKeys gathers the fingerprints of every content node in the
// subtree into keys, descending through groups.
func collectNodeKeys(nodes []ir.Node, keys map[string]struct{}) {
	for i := range nodes {
		n := &nodes[i]
		if n.IsContent() {
			keys[nodeKey(n)] = struct{}{}
		}
		if len(n.Children) > 0 {
			collectNodeKeys(n.Children, keys)
		}
	}
}
