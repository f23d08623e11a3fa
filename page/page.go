// Package page reads captured web pages and prepares them for inference
// and reconciliation: decode to utf-8, pull out title and inline styles,
// strip everything a later stage cannot use. Both inference and
// reconciliation consume the same cleaned bytes, so fingerprints computed
// on one side always line up with the other.
package page

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// Page is one source document after preparation.
type Page struct {
	Name       string
	Title      string
	Raw        []byte
	Clean      []byte
	Stylesheet []byte
	SheetLinks []string
}

// Processor prepares pages. Safe for reuse across documents.
type Processor struct {
	log      *zap.Logger
	policy   *bluemonday.Policy
	override encoding.Encoding
}

// NewProcessor creates a page processor. forceCharset overrides charset
// detection with a fixed IANA encoding name, empty means sniff from BOM,
// content type and meta tags.
func NewProcessor(forceCharset string, log *zap.Logger) (*Processor, error) {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Processor{log: log.Named("page"), policy: cleanPolicy()}
	if forceCharset != "" {
		enc, err := ianaindex.IANA.Encoding(forceCharset)
		if err != nil || enc == nil {
			return nil, fmt.Errorf("unsupported charset %q", forceCharset)
		}
		p.override = enc
	}
	return p, nil
}

// Load reads, decodes and cleans one page.
func (p *Processor) Load(name string, r io.Reader) (*Page, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", name, err)
	}

	decoded, err := p.decode(raw)
	if err != nil {
		return nil, fmt.Errorf("unable to decode %s: %w", name, err)
	}

	root, err := html.Parse(bytes.NewReader(decoded))
	if err != nil {
		return nil, fmt.Errorf("unable to parse %s: %w", name, err)
	}

	pg := &Page{Name: name, Raw: raw}
	pg.Title = findTitle(root)

	var styles []string
	collectStyles(root, &styles, &pg.SheetLinks)
	pg.Stylesheet = []byte(strings.Join(styles, "\n"))

	cleanTree(root)

	var sb strings.Builder
	if body := findBody(root); body != nil {
		for c := body.FirstChild; c != nil; c = c.NextSibling {
			if err := html.Render(&sb, c); err != nil {
				return nil, fmt.Errorf("unable to serialize %s: %w", name, err)
			}
		}
	}
	pg.Clean = p.policy.SanitizeBytes([]byte(sb.String()))

	p.log.Debug("Page prepared",
		zap.String("name", name),
		zap.String("title", pg.Title),
		zap.Int("clean_bytes", len(pg.Clean)),
		zap.Int("stylesheet_bytes", len(pg.Stylesheet)),
		zap.Int("sheet_links", len(pg.SheetLinks)))
	return pg, nil
}

func (p *Processor) decode(raw []byte) ([]byte, error) {
	var r io.Reader
	if p.override != nil {
		r = transform.NewReader(bytes.NewReader(raw), p.override.NewDecoder())
	} else {
		nr, err := charset.NewReader(bytes.NewReader(raw), "")
		if err != nil {
			return nil, err
		}
		r = nr
	}
	return io.ReadAll(r)
}

// cleanPolicy keeps the structural and content tags inference needs, with
// class, id and inline style attributes preserved for reconciliation and
// layout detection.
func cleanPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("header", "footer", "nav", "section", "main", "aside", "article", "figure", "figcaption", "button", "span", "form", "picture", "source")
	p.AllowAttrs("class", "id", "style").Globally()
	p.AllowAttrs("href").OnElements("a")
	p.AllowAttrs("src", "srcset", "alt", "width", "height").OnElements("img", "source")
	p.RequireNoFollowOnLinks(false)
	return p
}

func findTitle(n *html.Node) string {
	if n.Type == html.ElementNode && n.DataAtom == atom.Title {
		if n.FirstChild != nil {
			return strings.TrimSpace(n.FirstChild.Data)
		}
		return ""
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if t := findTitle(c); t != "" {
			return t
		}
	}
	return ""
}

func findBody(n *html.Node) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == atom.Body {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if b := findBody(c); b != nil {
			return b
		}
	}
	return nil
}

// collectStyles gathers inline style texts in document order and the hrefs
// of linked stylesheets. Linked sheets are not fetched, their names are kept
// so the operator can capture them next to the page.
func collectStyles(n *html.Node, styles *[]string, links *[]string) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.Style:
			var sb strings.Builder
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					sb.WriteString(c.Data)
				}
			}
			if s := strings.TrimSpace(sb.String()); s != "" {
				*styles = append(*styles, s)
			}
		case atom.Link:
			if strings.EqualFold(attr(n, "rel"), "stylesheet") {
				if href := attr(n, "href"); href != "" {
					*links = append(*links, href)
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectStyles(c, styles, links)
	}
}

func attr(n *html.Node, name string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, name) {
			return a.Val
		}
	}
	return ""
}
