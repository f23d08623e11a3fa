package theme

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"wpc/config"
	"wpc/ir"
)

func makePNG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test png: %v", err)
	}
	return buf.Bytes()
}

func makeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatalf("encode test jpeg: %v", err)
	}
	return buf.Bytes()
}

func assetConfig() *config.AssetsConfig {
	return &config.AssetsConfig{Localize: true, MaxWidth: 200, JPEGQuality: 75}
}

func TestLocalizeAssets(t *testing.T) {
	srcDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(srcDir, "photo.png"), makePNG(t, 400, 200), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(srcDir, "remote.jpg"), makeJPEG(t, 100, 50), 0644); err != nil {
		t.Fatal(err)
	}

	doc := &ir.Document{
		Sections: []ir.Section{
			{
				Background: ir.Background{Kind: ir.BackgroundKindImage, Value: "photo.png"},
				Nodes: []ir.Node{
					{Kind: ir.NodeKindImage, Src: "photo.png"},
					{Kind: ir.NodeKindImage, Src: "https://cdn.example.com/path/remote.jpg?v=2"},
					{Kind: ir.NodeKindImage, Src: "missing.png"},
					{Kind: ir.NodeKindImage, Src: "../escape.png"},
					{Kind: ir.NodeKindGroup, Children: []ir.Node{
						{Kind: ir.NodeKindImage, Src: "photo.png"},
					}},
				},
			},
		},
	}

	assets := localizeAssets(doc, srcDir, assetConfig(), setupTestLogger(t))

	if len(assets) != 2 {
		t.Fatalf("localized %d assets, want 2", len(assets))
	}
	if assets[0].Name != "photo.png" || assets[1].Name != "remote.jpg" {
		t.Errorf("asset names = %q, %q", assets[0].Name, assets[1].Name)
	}

	sec := &doc.Sections[0]
	if sec.Background.Value != "assets/images/photo.png" {
		t.Errorf("background not rewritten: %q", sec.Background.Value)
	}
	if sec.Nodes[0].Src != "assets/images/photo.png" {
		t.Errorf("image source not rewritten: %q", sec.Nodes[0].Src)
	}
	if sec.Nodes[1].Src != "assets/images/remote.jpg" {
		t.Errorf("remote image with local copy not rewritten: %q", sec.Nodes[1].Src)
	}
	if sec.Nodes[2].Src != "missing.png" {
		t.Errorf("missing image source rewritten: %q", sec.Nodes[2].Src)
	}
	if sec.Nodes[3].Src != "../escape.png" {
		t.Errorf("traversal image source rewritten: %q", sec.Nodes[3].Src)
	}
	if sec.Nodes[4].Children[0].Src != "assets/images/photo.png" {
		t.Errorf("nested image source not rewritten: %q", sec.Nodes[4].Children[0].Src)
	}

	// 400px wide source must come down to the configured bound
	resized, err := png.DecodeConfig(bytes.NewReader(assets[0].Data))
	if err != nil {
		t.Fatalf("decode localized png: %v", err)
	}
	if resized.Width != 200 || resized.Height != 100 {
		t.Errorf("localized size = %dx%d, want 200x100", resized.Width, resized.Height)
	}

	// jpeg source stays jpeg
	if _, err := jpeg.DecodeConfig(bytes.NewReader(assets[1].Data)); err != nil {
		t.Errorf("localized jpeg does not decode: %v", err)
	}
}

func TestLocalizeAssetsDisabled(t *testing.T) {
	srcDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(srcDir, "photo.png"), makePNG(t, 10, 10), 0644); err != nil {
		t.Fatal(err)
	}

	doc := &ir.Document{
		Sections: []ir.Section{
			{Nodes: []ir.Node{{Kind: ir.NodeKindImage, Src: "photo.png"}}},
		},
	}

	cfg := assetConfig()
	cfg.Localize = false

	if assets := localizeAssets(doc, srcDir, cfg, setupTestLogger(t)); assets != nil {
		t.Errorf("localized %d assets with localization off", len(assets))
	}
	if doc.Sections[0].Nodes[0].Src != "photo.png" {
		t.Errorf("image source rewritten with localization off: %q", doc.Sections[0].Nodes[0].Src)
	}
}

func TestLocalizeAssetsDataURI(t *testing.T) {
	raw := makePNG(t, 10, 10)
	src := "data:image/png;base64," + base64.StdEncoding.EncodeToString(raw)

	doc := &ir.Document{
		Sections: []ir.Section{
			{Nodes: []ir.Node{{Kind: ir.NodeKindImage, Src: src}}},
		},
	}

	assets := localizeAssets(doc, "", assetConfig(), setupTestLogger(t))

	if len(assets) != 1 {
		t.Fatalf("localized %d assets, want 1", len(assets))
	}
	if assets[0].Name != "embedded.png" {
		t.Errorf("asset name = %q, want embedded.png", assets[0].Name)
	}
	if doc.Sections[0].Nodes[0].Src != "assets/images/embedded.png" {
		t.Errorf("data uri not rewritten: %q", doc.Sections[0].Nodes[0].Src)
	}
	if _, err := png.DecodeConfig(bytes.NewReader(assets[0].Data)); err != nil {
		t.Errorf("localized data uri does not decode: %v", err)
	}
}

func TestLocalizeAssetsNoCaptureDir(t *testing.T) {
	doc := &ir.Document{
		Sections: []ir.Section{
			{Nodes: []ir.Node{{Kind: ir.NodeKindImage, Src: "photo.png"}}},
		},
	}

	if assets := localizeAssets(doc, "", assetConfig(), setupTestLogger(t)); len(assets) != 0 {
		t.Errorf("localized %d assets without capture directory", len(assets))
	}
	if doc.Sections[0].Nodes[0].Src != "photo.png" {
		t.Errorf("image source rewritten without capture directory: %q", doc.Sections[0].Nodes[0].Src)
	}
}

func TestLocalizeAssetsHeaderFooter(t *testing.T) {
	srcDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(srcDir, "logo.png"), makePNG(t, 10, 10), 0644); err != nil {
		t.Fatal(err)
	}

	doc := &ir.Document{
		Header: &ir.Section{Nodes: []ir.Node{{Kind: ir.NodeKindImage, Src: "logo.png"}}},
		Footer: &ir.Section{Nodes: []ir.Node{{Kind: ir.NodeKindImage, Src: "logo.png"}}},
	}

	assets := localizeAssets(doc, srcDir, assetConfig(), setupTestLogger(t))

	if len(assets) != 1 {
		t.Fatalf("localized %d assets, want 1 shared", len(assets))
	}
	if doc.Header.Nodes[0].Src != "assets/images/logo.png" || doc.Footer.Nodes[0].Src != "assets/images/logo.png" {
		t.Errorf("region images not rewritten: header %q footer %q", doc.Header.Nodes[0].Src, doc.Footer.Nodes[0].Src)
	}
}

func TestUniqueName(t *testing.T) {
	l := &assetLocalizer{names: make(map[string]int)}

	got := []string{
		l.uniqueName("photo", ".jpg"),
		l.uniqueName("photo", ".jpg"),
		l.uniqueName("photo", ".jpg"),
		l.uniqueName("photo", ".png"),
	}
	want := []string{"photo.jpg", "photo-1.jpg", "photo-2.jpg", "photo.png"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("uniqueName call %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDecodeDataURI(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		want    string
		wantErr bool
	}{
		{
			name: "base64",
			src:  "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("hello")),
			want: "hello",
		},
		{
			name: "percent encoded",
			src:  "data:text/plain,hello%20world",
			want: "hello world",
		},
		{
			name:    "no payload",
			src:     "data:text/plain",
			wantErr: true,
		},
		{
			name:    "broken base64",
			src:     "data:image/png;base64,@@@@",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeDataURI(tt.src)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("decodeDataURI() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("decodeDataURI() = %q, want %q", got, tt.want)
			}
		})
	}
}
