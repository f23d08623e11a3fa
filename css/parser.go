package css

import (
	"bytes"
	"io"
	"strings"

	parse "github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/zap"
)

// Parser scans CSS stylesheets for class selectors.
type Parser struct {
	log *zap.Logger
}

// NewParser creates a new CSS parser.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{log: log.Named("css-parser")}
}

// Extract walks the stylesheet grammar and collects every class name used in
// a selector, including selectors nested inside @media and other at-rule
// blocks. Malformed input is never an error, the scan simply stops collecting
// where the tokenizer gives up.
// The optional source parameter identifies what's being scanned (for debug logging).
func (p *Parser) Extract(data []byte, source ...string) *ClassIndex {
	idx := newClassIndex()

	if len(source) > 0 && source[0] != "" {
		p.log.Debug("Scanning stylesheet", zap.String("source", source[0]), zap.Int("bytes", len(data)))
	}

	input := parse.NewInput(bytes.NewReader(data))
	parser := css.NewParser(input, false)
	p.walk(parser, idx, 0)

	p.log.Debug("Stylesheet scan complete", zap.Int("classes", idx.Len()), zap.Int("imports", len(idx.Imports)))
	return idx
}

func (p *Parser) walk(parser *css.Parser, idx *ClassIndex, depth int) {
	for {
		gt, _, data := parser.Next()

		switch gt {
		case css.ErrorGrammar:
			// End of input or error
			if err := parser.Err(); err != nil && err != io.EOF {
				p.log.Debug("Stylesheet parse stopped", zap.Error(err))
			}
			return

		case css.BeginAtRuleGrammar:
			// Selectors inside @media and friends count the same as top
			// level ones, so descend instead of skipping the block.
			p.walk(parser, idx, depth+1)

		case css.EndAtRuleGrammar:
			if depth > 0 {
				return
			}

		case css.AtRuleGrammar:
			// Simple @-rule without block (e.g., @import)
			if string(data) == "@import" {
				if url := extractImportURL(parser.Values()); url != "" {
					idx.Imports = append(idx.Imports, url)
					p.log.Debug("Found @import", zap.String("url", url))
				}
			}

		case css.BeginRulesetGrammar, css.QualifiedRuleGrammar:
			for _, sel := range selectorStrings(data, parser.Values()) {
				collectClassNames(sel, idx)
			}
		}
	}
}

// selectorStrings builds selector strings from token data and splits grouped
// selectors on commas.
func selectorStrings(data []byte, values []css.Token) []string {
	var sb strings.Builder
	sb.Write(data)
	for _, v := range values {
		sb.Write(v.Data)
	}

	var selectors []string
	for s := range strings.SplitSeq(sb.String(), ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			selectors = append(selectors, s)
		}
	}
	return selectors
}

// collectClassNames scans a single selector string for ".name" occurrences.
// Every class mentioned anywhere in the selector counts, combinators and
// pseudo suffixes around it do not matter here.
func collectClassNames(selector string, idx *ClassIndex) {
	for i := 0; i < len(selector); i++ {
		if selector[i] != '.' {
			continue
		}
		j := i + 1
		for j < len(selector) && isClassNameChar(selector[j]) {
			j++
		}
		// class names cannot start with a digit
		if j > i+1 && !(selector[i+1] >= '0' && selector[i+1] <= '9') {
			idx.add(selector[i+1 : j])
		}
		i = j - 1
	}
}

// isClassNameChar reports whether c can be part of a class name. Bytes above
// 0x7f are accepted so multibyte identifiers pass through unharmed.
func isClassNameChar(c byte) bool {
	return c == '-' || c == '_' ||
		(c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		c >= 0x80
}

// extractImportURL extracts the URL from @import tokens.
// Handles: @import "url"; @import url("url"); @import url(url);
func extractImportURL(tokens []css.Token) string {
	for _, t := range tokens {
		switch t.TokenType {
		case css.StringToken:
			return unquote(string(t.Data))
		case css.URLToken:
			// the token data is the full url(...) string
			s := string(t.Data)
			s = strings.TrimPrefix(s, "url(")
			s = strings.TrimSuffix(s, ")")
			return unquote(strings.TrimSpace(s))
		}
	}
	return ""
}

// unquote removes surrounding quotes from a string.
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') ||
		(s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
