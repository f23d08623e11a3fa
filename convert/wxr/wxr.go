// Package wxr emits WordPress eXtended RSS documents the standard importer
// accepts.
package wxr

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/beevik/etree"
	"github.com/gosimple/slug"
	"go.uber.org/zap"

	"wpc/config"
	"wpc/content"
	"wpc/markup"
	"wpc/misc"
	"wpc/state"
)

const wxrVersion = "1.2"

// exportAuthor is attached to every item. The importer maps it to an
// existing account during import.
const exportAuthor = "admin"

// Generate creates the WXR output file for a single prepared page.
func Generate(ctx context.Context, c *content.Content, outputPath string, cfg *config.DocumentConfig, log *zap.Logger) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	env := state.EnvFromContext(ctx)

	if _, err := os.Stat(outputPath); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputPath)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputPath))
		if err = os.Remove(outputPath); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	log.Info("Generating WXR", zap.String("output", outputPath))

	doc := buildDocument(c, cfg, time.Now().UTC(), log)

	_, tmpName := filepath.Split(outputPath)
	tmpName = filepath.Join(c.WorkDir, tmpName)

	f, err := os.Create(tmpName)
	if err != nil {
		return fmt.Errorf("unable to create output file: %w", err)
	}
	defer f.Close()

	doc.Indent(2)
	if _, err := doc.WriteTo(f); err != nil {
		return fmt.Errorf("unable to write output file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("unable to finalize output file: %w", err)
	}
	// clean temporary file
	defer os.Remove(tmpName)

	return copyFile(tmpName, outputPath)
}

// buildDocument assembles the export XML. A single item per file, the
// captured page imports as a standalone WordPress page. Block markup goes
// into content:encoded with header and footer regions rendered inline since
// imported content cannot reference theme template parts.
func buildDocument(c *content.Content, cfg *config.DocumentConfig, now time.Time, log *zap.Logger) *etree.Document {
	title := c.Doc.Title
	if title == "" {
		title = c.Page.Title
	}
	lang := c.Doc.Lang
	if lang == "" {
		lang = "en"
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	rss := doc.CreateElement("rss")
	rss.CreateAttr("version", "2.0")
	rss.CreateAttr("xmlns:excerpt", "http://wordpress.org/export/1.2/excerpt/")
	rss.CreateAttr("xmlns:content", "http://purl.org/rss/1.0/modules/content/")
	rss.CreateAttr("xmlns:wfw", "http://wellformedweb.org/CommentAPI/")
	rss.CreateAttr("xmlns:dc", "http://purl.org/dc/elements/1.1/")
	rss.CreateAttr("xmlns:wp", "http://wordpress.org/export/1.2/")

	channel := rss.CreateElement("channel")
	channel.CreateElement("title").SetText(cfg.Theme.Name)
	channel.CreateElement("link")
	channel.CreateElement("description")
	channel.CreateElement("pubDate").SetText(now.Format(time.RFC1123Z))
	channel.CreateElement("language").SetText(lang)
	channel.CreateElement("wp:wxr_version").SetText(wxrVersion)
	channel.CreateElement("wp:base_site_url")
	channel.CreateElement("wp:base_blog_url")

	author := channel.CreateElement("wp:author")
	author.CreateElement("wp:author_id").SetText("1")
	author.CreateElement("wp:author_login").CreateCData(exportAuthor)
	author.CreateElement("wp:author_email").CreateCData("")
	author.CreateElement("wp:author_display_name").CreateCData(exportAuthor)

	channel.CreateElement("generator").SetText(misc.GetAppName() + " " + misc.GetVersion())

	g := markup.NewGenerator(slug.Make(cfg.Theme.Name), log)

	item := channel.CreateElement("item")
	item.CreateElement("title").CreateCData(title)
	item.CreateElement("link")
	item.CreateElement("pubDate").SetText(now.Format(time.RFC1123Z))
	item.CreateElement("dc:creator").CreateCData(exportAuthor)

	guid := item.CreateElement("guid")
	guid.CreateAttr("isPermaLink", "false")
	guid.SetText(c.RefID)

	item.CreateElement("description")
	item.CreateElement("content:encoded").CreateCData(g.RenderBody(c.Doc))
	item.CreateElement("excerpt:encoded").CreateCData("")

	item.CreateElement("wp:post_id").SetText("1")
	item.CreateElement("wp:post_date").CreateCData(now.Format("2006-01-02 15:04:05"))
	item.CreateElement("wp:post_date_gmt").CreateCData(now.Format("2006-01-02 15:04:05"))
	item.CreateElement("wp:comment_status").CreateCData("closed")
	item.CreateElement("wp:ping_status").CreateCData("closed")
	item.CreateElement("wp:post_name").CreateCData(slug.Make(title))
	item.CreateElement("wp:status").CreateCData("publish")
	item.CreateElement("wp:post_parent").SetText("0")
	item.CreateElement("wp:menu_order").SetText("0")
	item.CreateElement("wp:post_type").CreateCData("page")
	item.CreateElement("wp:post_password").CreateCData("")
	item.CreateElement("wp:is_sticky").SetText("0")

	return doc
}

func copyFile(src, dst string) error {

	sourceFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open source file: %w", err)
	}
	defer sourceFile.Close()

	destinationFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer destinationFile.Close()

	if _, err = io.Copy(destinationFile, sourceFile); err != nil {
		return fmt.Errorf("failed to copy file contents: %w", err)
	}

	if err = destinationFile.Close(); err != nil {
		return fmt.Errorf("failed to close destination file: %w", err)
	}
	return nil
}
