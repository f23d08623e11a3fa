package page

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// dropTags are removed with their whole subtree. Styles are collected
// before the tree is cleaned, so dropping them here loses nothing.
var dropTags = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Iframe:   true,
	atom.Svg:      true,
	atom.Template: true,
	atom.Object:   true,
	atom.Embed:    true,
	atom.Canvas:   true,
	atom.Link:     true,
	atom.Meta:     true,
	atom.Base:     true,
}

// frameworkAttrPrefixes mark attributes injected by client side frameworks,
// useless to inference and noise for reconciliation.
var frameworkAttrPrefixes = []string{
	"data-react",
	"data-v-",
	"data-server-rendered",
	"ng-",
	"_ngcontent",
	"_nghost",
	"v-",
	"x-data",
	"x-on",
}

var hiddenStylePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)display\s*:\s*none`),
	regexp.MustCompile(`(?i)visibility\s*:\s*hidden`),
	regexp.MustCompile(`(?i)opacity\s*:\s*0(?:[;\s]|$)`),
}

// cleanTree removes everything later stages cannot use: dropped tags,
// comments, hidden elements, event handler and framework attributes. The
// walk collects first and detaches afterwards so removal never races the
// sibling iteration.
func cleanTree(root *html.Node) {
	var doomed []*html.Node
	var visit func(*html.Node)
	visit = func(n *html.Node) {
		switch n.Type {
		case html.CommentNode:
			doomed = append(doomed, n)
			return
		case html.ElementNode:
			if dropTags[n.DataAtom] || isHidden(n) {
				doomed = append(doomed, n)
				return
			}
			n.Attr = cleanAttrs(n.Attr)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(root)

	for _, n := range doomed {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
}

func cleanAttrs(attrs []html.Attribute) []html.Attribute {
	kept := attrs[:0]
	for _, a := range attrs {
		if dropAttr(strings.ToLower(a.Key)) {
			continue
		}
		kept = append(kept, a)
	}
	return kept
}

func dropAttr(key string) bool {
	if strings.HasPrefix(key, "on") {
		return true
	}
	for _, p := range frameworkAttrPrefixes {
		if strings.HasPrefix(key, p) {
			return true
		}
	}
	return false
}

func isHidden(n *html.Node) bool {
	for _, a := range n.Attr {
		switch strings.ToLower(a.Key) {
		case "hidden":
			return true
		case "style":
			for _, pat := range hiddenStylePatterns {
				if pat.MatchString(a.Val) {
					return true
				}
			}
		}
	}
	return false
}
