package convert

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"

	"wpc/config"
	"wpc/content"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context    string
	Title      string
	Slug       string
	Language   string
	Date       string
	Format     string
	SourceFile string
	PageID     string
	N          int
}

func expandTemplate(c *content.Content, name config.TemplateFieldName, field string, n int) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	title := c.Doc.Title
	if title == "" {
		title = c.Page.Title
	}

	values := Values{
		Context:    string(name),
		Title:      title,
		Slug:       slug.Make(title),
		Language:   c.Doc.Lang,
		Date:       time.Now().Format("2006-01-02"),
		Format:     c.OutputFormat.String(),
		SourceFile: strings.TrimSuffix(filepath.Base(c.SrcName), filepath.Ext(c.SrcName)),
		PageID:     c.RefID,
		N:          n,
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
