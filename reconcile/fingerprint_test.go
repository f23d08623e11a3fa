package reconcile

import (
	"testing"

	"wpc/ir"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"collapses runs", "  Hello \t\n  World  ", "hello world"},
		{"lowercases", "HeLLo", "hello"},
		{"empty", "", ""},
		{"only whitespace", " \n\t ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeText(tt.input); got != tt.expected {
				t.Errorf("normalizeText(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestNodeKey(t *testing.T) {
	tests := []struct {
		name     string
		node     ir.Node
		expected string
	}{
		{
			"heading",
			ir.Node{Kind: ir.NodeKindHeading, Level: 1, Text: "  Big  Title "},
			"heading|big title",
		},
		{
			"paragraph",
			ir.Node{Kind: ir.NodeKindParagraph, Text: "Hi"},
			"paragraph|hi",
		},
		{
			"image keyed by source",
			ir.Node{Kind: ir.NodeKindImage, Src: " https://x.test/a.png "},
			"image|https://x.test/a.png",
		},
		{
			"button keyed by text and href",
			ir.Node{Kind: ir.NodeKindButton, Text: "Buy Now", Href: "/buy"},
			"button|buy now|/buy",
		},
		{
			"list keyed by joined items",
			ir.Node{Kind: ir.NodeKindList, Items: []string{"One", " Two "}},
			"list|one|two",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := nodeKey(&tt.node); got != tt.expected {
				t.Errorf("nodeKey() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestCollectNodeKeysDescendsGroups(t *testing.T) {
	nodes := []ir.Node{
		{Kind: ir.NodeKindHeading, Level: 1, Text: "Top"},
		{Kind: ir.NodeKindSpacer},
		{Kind: ir.NodeKindGroup, Children: []ir.Node{
			{Kind: ir.NodeKindParagraph, Text: "Inner"},
			{Kind: ir.NodeKindGroup, Children: []ir.Node{
				{Kind: ir.NodeKindButton, Text: "Go", Href: "/go"},
			}},
		}},
	}

	keys := make(map[string]struct{})
	collectNodeKeys(nodes, keys)

	want := []string{"heading|top", "paragraph|inner", "button|go|/go"}
	if len(keys) != len(want) {
		t.Fatalf("collected %d keys, want %d: %v", len(keys), len(want), keys)
	}
	for _, k := range want {
		if _, ok := keys[k]; !ok {
			t.Errorf("missing key %q", k)
		}
	}
}

func TestMergeClassNames(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		add      []string
		expected string
	}{
		{"into empty", "", []string{"a", "b"}, "a b"},
		{"keeps existing order", "z a", []string{"a", "b"}, "z a b"},
		{"dedups additions", "", []string{"a", "a", "b"}, "a b"},
		{"nothing to add", "a b", nil, "a b"},
		{"all empty", "", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mergeClassNames(tt.existing, tt.add); got != tt.expected {
				t.Errorf("mergeClassNames(%q, %v) = %q, want %q", tt.existing, tt.add, got, tt.expected)
			}
		})
	}
}

func TestMinOverlap(t *testing.T) {
	opts := DefaultOptions()
	tests := []struct {
		want     int
		expected int
	}{
		{1, 1},
		{3, 1},
		{4, 2},
		{7, 3},
		{10, 3},
		{20, 6},
	}

	for _, tt := range tests {
		if got := opts.minOverlap(tt.want); got != tt.expected {
			t.Errorf("minOverlap(%d) = %d, want %d", tt.want, got, tt.expected)
		}
	}
}

func TestOptionsSanitized(t *testing.T) {
	got := Options{}.sanitized()
	if got != DefaultOptions() {
		t.Errorf("sanitized zero value = %+v, want defaults", got)
	}
	kept := Options{SmallSetLimit: 5, OverlapPercent: 50}.sanitized()
	if kept.SmallSetLimit != 5 || kept.OverlapPercent != 50 {
		t.Errorf("sanitized valid options changed: %+v", kept)
	}
}
