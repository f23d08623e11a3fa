package page

import (
	"bytes"
	"strings"
	"testing"
)

func load(t *testing.T, body string) *Page {
	t.Helper()
	p, err := NewProcessor("", nil)
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}
	pg, err := p.Load("test.html", strings.NewReader(body))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return pg
}

func TestLoadDecodesDeclaredCharset(t *testing.T) {
	// "Привет" encoded in windows-1251
	body := []byte("<html><head><meta charset=\"windows-1251\"><title>\xcf\xf0\xe8\xe2\xe5\xf2</title></head><body><p>\xcf\xf0\xe8\xe2\xe5\xf2</p></body></html>")

	p, err := NewProcessor("", nil)
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}
	pg, err := p.Load("cp1251.html", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if pg.Title != "Привет" {
		t.Errorf("Title = %q, want %q", pg.Title, "Привет")
	}
	if !strings.Contains(string(pg.Clean), "Привет") {
		t.Errorf("clean html lost the decoded text: %s", pg.Clean)
	}
}

func TestLoadForcedCharset(t *testing.T) {
	// no meta declaration, decoding relies on the override
	body := []byte("<html><body><p>\xcf\xf0\xe8\xe2\xe5\xf2</p></body></html>")

	p, err := NewProcessor("windows-1251", nil)
	if err != nil {
		t.Fatalf("NewProcessor: %v", err)
	}
	pg, err := p.Load("forced.html", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !strings.Contains(string(pg.Clean), "Привет") {
		t.Errorf("clean html lost the decoded text: %s", pg.Clean)
	}
}

func TestNewProcessorRejectsUnknownCharset(t *testing.T) {
	if _, err := NewProcessor("klingon-8", nil); err == nil {
		t.Error("expected error for unknown charset")
	}
}

func TestLoadCollectsStylesInOrder(t *testing.T) {
	pg := load(t, `<html><head>
<style>.first{color:red}</style>
<link rel="stylesheet" href="site.css">
</head><body>
<style>.second{color:blue}</style>
<p class="first">Hi</p>
</body></html>`)

	sheet := string(pg.Stylesheet)
	first := strings.Index(sheet, ".first")
	second := strings.Index(sheet, ".second")
	if first < 0 || second < 0 {
		t.Fatalf("stylesheet missing collected blocks: %q", sheet)
	}
	if first > second {
		t.Errorf("style blocks out of document order: %q", sheet)
	}
	if len(pg.SheetLinks) != 1 || pg.SheetLinks[0] != "site.css" {
		t.Errorf("SheetLinks = %v, want [site.css]", pg.SheetLinks)
	}
	if strings.Contains(string(pg.Clean), "color:red") {
		t.Errorf("style element leaked into clean html: %s", pg.Clean)
	}
}

func TestLoadStripsScriptsAndHandlers(t *testing.T) {
	pg := load(t, `<html><body>
<script>alert("x")</script>
<noscript>enable js</noscript>
<iframe src="https://evil.test"></iframe>
<!-- tracking comment -->
<div class="keep" onclick="steal()" data-reactid="42"><p>Visible</p></div>
<div style="display:none"><p>Invisible</p></div>
<div hidden><p>Also invisible</p></div>
</body></html>`)

	clean := string(pg.Clean)
	for _, banned := range []string{"<script", "alert", "<noscript", "enable js", "<iframe", "tracking comment", "onclick", "steal", "data-reactid", "Invisible"} {
		if strings.Contains(clean, banned) {
			t.Errorf("clean html still contains %q:\n%s", banned, clean)
		}
	}
	if !strings.Contains(clean, `class="keep"`) {
		t.Errorf("class attribute lost:\n%s", clean)
	}
	if !strings.Contains(clean, "Visible") {
		t.Errorf("visible content lost:\n%s", clean)
	}
}

func TestLoadKeepsStructureAndImages(t *testing.T) {
	pg := load(t, `<html><body>
<header class="site-head"><nav><a href="#home">Home</a></nav></header>
<section class="hero" style="display:flex">
<h1 class="title">Big</h1>
<img src="https://cdn.test/a.jpg?w=1&h=2" alt="pic" width="640" height="480">
<ul class="perks"><li>One</li><li>Two</li></ul>
</section>
</body></html>`)

	clean := string(pg.Clean)
	for _, want := range []string{"<header", "<nav", "<section", `class="hero"`, "display:flex", `href="#home"`, "cdn.test/a.jpg", `alt="pic"`, "<li>One</li>"} {
		if !strings.Contains(clean, want) {
			t.Errorf("clean html lost %q:\n%s", want, clean)
		}
	}
	if len(pg.Raw) == 0 {
		t.Error("raw bytes not preserved")
	}
}
