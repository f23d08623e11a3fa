// Package reconcile recovers original stylesheet class names for IR nodes.
// The inference step cannot carry source class attributes through, so after
// validation the document is matched back against the original page:
// content nodes by a normalized fingerprint of their content, sections and
// groups by the overlap between their descendant fingerprints and the
// fingerprints found under original wrapper elements. Matching is greedy
// and best effort, an unmatched node simply keeps an empty class name.
package reconcile

import (
	"bytes"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"wpc/css"
	"wpc/ir"
)

type Engine struct {
	log  *zap.Logger
	opts Options
}

func NewEngine(opts Options, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	return &Engine{log: log.Named("reconcile"), opts: opts.sanitized()}
}

// Reconcile returns a copy of doc with class names recovered from the
// original page merged in. When there is no page, no stylesheet classes or
// nothing on the page qualifies, the document passes through untouched. The
// input document is never modified.
func (e *Engine) Reconcile(doc *ir.Document, page []byte, classes *css.ClassIndex) *ir.Document {
	if doc == nil {
		return nil
	}
	if len(page) == 0 || classes.Empty() {
		e.log.Debug("Nothing to reconcile, passing document through")
		return doc
	}

	root, err := html.Parse(bytes.NewReader(page))
	if err != nil {
		e.log.Warn("Unable to parse original page, skipping reconciliation", zap.Error(err))
		return doc
	}

	idx := newIndex(root, classes)
	if idx.empty() {
		e.log.Debug("No qualifying elements on original page")
		return doc
	}

	out := doc.Clone()
	st := newState()
	if out.Header != nil {
		e.reconcileSection(idx, st, out.Header)
	}
	for i := range out.Sections {
		e.reconcileSection(idx, st, &out.Sections[i])
	}
	if out.Footer != nil {
		e.reconcileSection(idx, st, out.Footer)
	}

	e.log.Debug("Reconciliation finished",
		zap.Int("leaves", len(st.usedLeaves)),
		zap.Int("containers", len(st.usedContainers)))
	return out
}

// reconcileSection matches the section as a container first, then its nodes
// in document order.
func (e *Engine) reconcileSection(idx *index, st *state, s *ir.Section) {
	keys := make(map[string]struct{})
	collectNodeKeys(s.Nodes, keys)
	if c := st.matchContainer(idx, e.opts, keys); c != nil {
		s.ClassName = mergeClassNames(s.ClassName, c.classes)
	}
	e.reconcileNodes(idx, st, s.Nodes)
}

func (e *Engine) reconcileNodes(idx *index, st *state, nodes []ir.Node) {
	for i := range nodes {
		e.reconcileNode(idx, st, &nodes[i])
	}
}

func (e *Engine) reconcileNode(idx *index, st *state, n *ir.Node) {
	switch {
	case n.IsContent():
		if leaf := st.matchLeaf(idx, nodeKey(n), n.Kind); leaf != nil {
			n.ClassName = mergeClassNames(n.ClassName, leaf.classes)
		}
	case n.Kind == ir.NodeKindGroup:
		keys := make(map[string]struct{})
		collectNodeKeys(n.Children, keys)
		if c := st.matchContainer(idx, e.opts, keys); c != nil {
			n.ClassName = mergeClassNames(n.ClassName, c.classes)
		}
		e.reconcileNodes(idx, st, n.Children)
	}
}
