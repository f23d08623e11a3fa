// Package css extracts class names from stylesheet text. Reconciliation only
// needs to know which classes the original stylesheet actually defines, so
// parsing stops at the selector level and declarations are never interpreted.
package css

// ClassIndex is the set of class names found in stylesheet selectors,
// remembered in document order of first appearance.
type ClassIndex struct {
	// Imports lists urls of @import rules encountered during the scan.
	// They are reported for diagnostics only, imported sheets are not fetched.
	Imports []string

	classes map[string]struct{}
	order   []string
}

func newClassIndex() *ClassIndex {
	return &ClassIndex{classes: make(map[string]struct{})}
}

func (x *ClassIndex) add(name string) {
	if _, exists := x.classes[name]; exists {
		return
	}
	x.classes[name] = struct{}{}
	x.order = append(x.order, name)
}

// Has reports whether the stylesheet defines the named class.
func (x *ClassIndex) Has(name string) bool {
	if x == nil {
		return false
	}
	_, ok := x.classes[name]
	return ok
}

// Empty reports whether no class selectors were found at all.
func (x *ClassIndex) Empty() bool {
	return x == nil || len(x.classes) == 0
}

// Len returns the number of distinct class names found.
func (x *ClassIndex) Len() int {
	if x == nil {
		return 0
	}
	return len(x.classes)
}

// Names returns all class names in document order of first appearance.
func (x *ClassIndex) Names() []string {
	if x == nil {
		return nil
	}
	tmp := make([]string, len(x.order))
	copy(tmp, x.order)
	return tmp
}
