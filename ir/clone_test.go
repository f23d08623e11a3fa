package ir

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestCloneNil(t *testing.T) {
	var doc *Document
	if got := doc.Clone(); got != nil {
		t.Errorf("Clone() of nil = %v, want nil", got)
	}
}

func TestCloneDeep(t *testing.T) {
	orig := &Document{
		Title: "Landing",
		Lang:  "en",
		Tokens: DesignTokens{
			Palette:   []PaletteEntry{{Name: "primary", Color: "#3a5fcd"}},
			Fonts:     FontPair{Heading: "Inter", Body: "Georgia"},
			FontSizes: []ScaleEntry{{Name: "md", Size: "18px"}},
			Spacing:   []ScaleEntry{{Name: "md", Size: "32px"}},
		},
		Header: &Section{
			Nodes: []Node{{Kind: NodeKindNavigation, Links: []Link{{Label: "Home", Href: "/"}}}},
		},
		Sections: []Section{
			{
				Layout:     LayoutKindColumns,
				Columns:    2,
				Gap:        PadSizeMd,
				Background: Background{Kind: BackgroundKindColor, Value: "#fff"},
				Nodes: []Node{
					{Kind: NodeKindHeading, Text: "Hello", Level: 1},
					{
						Kind: NodeKindGroup,
						Children: []Node{
							{Kind: NodeKindList, Items: []string{"a", "b"}},
						},
						Style: map[string]string{"display": "flex"},
					},
				},
			},
		},
	}

	clone := orig.Clone()
	if !reflect.DeepEqual(orig, clone) {
		t.Fatalf("Clone() differs from original:\n got %+v\nwant %+v", clone, orig)
	}

	// mutate every shared-looking structure in the clone and verify the
	// original is untouched
	clone.Tokens.Palette[0].Color = "#000"
	clone.Header.Nodes[0].Links[0].Href = "/changed"
	clone.Sections[0].Nodes[0].Text = "Changed"
	clone.Sections[0].Nodes[1].Children[0].Items[0] = "changed"
	clone.Sections[0].Nodes[1].Style["display"] = "grid"

	if orig.Tokens.Palette[0].Color != "#3a5fcd" {
		t.Error("palette leaked between clone and original")
	}
	if orig.Header.Nodes[0].Links[0].Href != "/" {
		t.Error("links leaked between clone and original")
	}
	if orig.Sections[0].Nodes[0].Text != "Hello" {
		t.Error("node text leaked between clone and original")
	}
	if orig.Sections[0].Nodes[1].Children[0].Items[0] != "a" {
		t.Error("list items leaked between clone and original")
	}
	if orig.Sections[0].Nodes[1].Style["display"] != "flex" {
		t.Error("style map leaked between clone and original")
	}
}

func TestDecodePreservesUnknownKind(t *testing.T) {
	var doc Document
	data := []byte(`{"title":"x","sections":[{"nodes":[{"kind":"video","src":"v.mp4"}]}]}`)
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Unmarshal() = %v", err)
	}
	if got := doc.Sections[0].Nodes[0].Kind; got != "video" {
		t.Errorf("unknown kind = %q, want preserved %q", got, "video")
	}
	if doc.Sections[0].Nodes[0].Kind.IsValid() {
		t.Error("IsValid() on unknown kind = true, want false")
	}
}
