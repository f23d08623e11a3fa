package wxr

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"wpc/config"
	"wpc/content"
	"wpc/ir"
	"wpc/page"
	"wpc/state"
)

func setupTestLogger(t *testing.T) *zap.Logger {
	return zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller()))
}

func setupTestContext(t *testing.T) (context.Context, *state.LocalEnv, *zap.Logger) {
	logger := setupTestLogger(t)
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	ctx := state.ContextWithEnv(context.Background())
	env := state.EnvFromContext(ctx)
	env.Log = logger
	env.Cfg = cfg
	return ctx, env, logger
}

func testContent(t *testing.T) *content.Content {
	t.Helper()

	doc := &ir.Document{
		Title: "Acme Landing",
		Lang:  "en",
		Header: &ir.Section{
			Nodes: []ir.Node{{Kind: ir.NodeKindParagraph, Text: "Site chrome"}},
		},
		Sections: []ir.Section{
			{
				Layout: ir.LayoutKindConstrained,
				Nodes: []ir.Node{
					{Kind: ir.NodeKindHeading, Level: 1, Text: "Welcome"},
					{Kind: ir.NodeKindParagraph, Text: "Hello."},
				},
			},
		},
		Footer: &ir.Section{
			Nodes: []ir.Node{{Kind: ir.NodeKindParagraph, Text: "All rights reserved."}},
		},
	}

	return &content.Content{
		SrcName:      "index.html",
		OutputFormat: config.OutputFmtWxr,
		RefID:        "0192aee8-8000-7000-8000-6c4b90250c41",
		Page: &page.Page{
			Name:  "index.html",
			Title: "Captured Title",
		},
		Doc:     doc,
		WorkDir: t.TempDir(),
	}
}

func TestBuildDocument(t *testing.T) {
	c := testContent(t)
	cfg := &config.DocumentConfig{Theme: config.ThemeConfig{Name: "Converted Site"}}
	now := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)

	doc := buildDocument(c, cfg, now, setupTestLogger(t))

	if el := doc.FindElement("//wp:wxr_version"); el == nil || el.Text() != wxrVersion {
		t.Fatalf("wxr_version element = %v", el)
	}
	if el := doc.FindElement("//channel/title"); el == nil || el.Text() != "Converted Site" {
		t.Errorf("channel title = %v", el)
	}
	if el := doc.FindElement("//channel/language"); el == nil || el.Text() != "en" {
		t.Errorf("channel language = %v", el)
	}
	if el := doc.FindElement("//wp:author/wp:author_login"); el == nil || el.Text() != exportAuthor {
		t.Errorf("author login = %v", el)
	}

	item := doc.FindElement("//item")
	if item == nil {
		t.Fatal("no item element")
	}
	if el := item.FindElement("title"); el == nil || el.Text() != "Acme Landing" {
		t.Errorf("item title = %v", el)
	}
	if el := item.FindElement("pubDate"); el == nil || el.Text() != now.Format(time.RFC1123Z) {
		t.Errorf("item pubDate = %v", el)
	}

	guid := item.FindElement("guid")
	if guid == nil || guid.Text() != c.RefID {
		t.Fatalf("guid = %v", guid)
	}
	if v := guid.SelectAttrValue("isPermaLink", ""); v != "false" {
		t.Errorf("guid isPermaLink = %q", v)
	}

	body := item.FindElement("content:encoded")
	if body == nil {
		t.Fatal("no content:encoded element")
	}
	markup := body.Text()
	for _, want := range []string{
		"<!-- wp:heading",
		`<h1 class="wp-block-heading">Welcome</h1>`,
		"Site chrome",
		"All rights reserved.",
	} {
		if !strings.Contains(markup, want) {
			t.Errorf("content:encoded missing %q", want)
		}
	}
	if strings.Contains(markup, "wp:template-part") {
		t.Error("imported content cannot reference template parts")
	}

	if el := item.FindElement("wp:post_type"); el == nil || el.Text() != "page" {
		t.Errorf("post_type = %v", el)
	}
	if el := item.FindElement("wp:status"); el == nil || el.Text() != "publish" {
		t.Errorf("status = %v", el)
	}
	if el := item.FindElement("wp:post_name"); el == nil || el.Text() != "acme-landing" {
		t.Errorf("post_name = %v", el)
	}
	if el := item.FindElement("wp:post_date"); el == nil || el.Text() != "2026-03-10 12:00:00" {
		t.Errorf("post_date = %v", el)
	}
}

func TestBuildDocumentFallbacks(t *testing.T) {
	c := testContent(t)
	c.Doc.Title = ""
	c.Doc.Lang = ""
	cfg := &config.DocumentConfig{Theme: config.ThemeConfig{Name: "Converted Site"}}

	doc := buildDocument(c, cfg, time.Now().UTC(), setupTestLogger(t))

	if el := doc.FindElement("//item/title"); el == nil || el.Text() != "Captured Title" {
		t.Errorf("item title = %v, want captured page title", el)
	}
	if el := doc.FindElement("//channel/language"); el == nil || el.Text() != "en" {
		t.Errorf("channel language = %v, want en fallback", el)
	}
}

func TestGenerate(t *testing.T) {
	ctx, env, logger := setupTestContext(t)

	c := testContent(t)
	outputPath := filepath.Join(t.TempDir(), "acme.xml")

	if err := Generate(ctx, c, outputPath, &env.Cfg.Document, logger); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		"<wp:wxr_version>" + wxrVersion + "</wp:wxr_version>",
		"<![CDATA[",
		c.RefID,
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestGenerateExistingOutput(t *testing.T) {
	ctx, env, logger := setupTestContext(t)

	c := testContent(t)
	outputPath := filepath.Join(t.TempDir(), "acme.xml")
	if err := os.WriteFile(outputPath, []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	err := Generate(ctx, c, outputPath, &env.Cfg.Document, logger)
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Fatalf("Generate() error = %v, want output exists error", err)
	}

	env.Overwrite = true
	if err := Generate(ctx, c, outputPath, &env.Cfg.Document, logger); err != nil {
		t.Fatalf("Generate() with overwrite error = %v", err)
	}
	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<wp:wxr_version>") {
		t.Error("overwritten output is not a WXR document")
	}
}
