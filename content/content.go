// Package content carries a single captured page through the conversion
// pipeline: decode and clean the source html, obtain the IR document from
// inference or from a pre-computed file, then reconcile class names against
// the captured stylesheet. Generators consume the prepared Content only.
package content

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"wpc/config"
	"wpc/css"
	"wpc/infer"
	"wpc/ir"
	"wpc/misc"
	"wpc/page"
	"wpc/reconcile"
	"wpc/state"
)

// Content is the prepared form of one page.
type Content struct {
	SrcName      string
	OutputFormat config.OutputFmt
	RefID        string

	Page    *page.Page
	Doc     *ir.Document
	Classes *css.ClassIndex

	WorkDir string
}

// Prepare reads, cleans and infers a single page.
func Prepare(ctx context.Context, r io.Reader, srcName string, outputFormat config.OutputFmt, log *zap.Logger) (*Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	env := state.EnvFromContext(ctx)

	forceCharset := env.Cfg.Document.Cleanup.ForceCharset
	if env.ForceCharset != "" {
		forceCharset = env.ForceCharset
	}
	proc, err := page.NewProcessor(forceCharset, log)
	if err != nil {
		return nil, err
	}

	pg, err := proc.Load(srcName, r)
	if err != nil {
		return nil, fmt.Errorf("unable to prepare page: %w", err)
	}

	// Pages have no intrinsic identity, mint one for report naming and GUIDs
	refID, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("unable to generate page UUID: %w", err)
	}

	tmpDir, err := os.MkdirTemp("", misc.GetAppName()+"-")
	if err != nil {
		return nil, fmt.Errorf("unable to create temporary directory: %w", err)
	}
	env.Rpt.Store(fmt.Sprintf("%s-%s", misc.GetAppName(), refID), tmpDir)

	baseSrcName := filepath.Base(srcName)

	// Save source and cleaned page to files for debugging
	if env.Rpt != nil {
		if err := os.WriteFile(filepath.Join(tmpDir, baseSrcName), pg.Raw, 0644); err != nil {
			return nil, fmt.Errorf("unable to write source page for debugging: %w", err)
		}
		if err := os.WriteFile(filepath.Join(tmpDir, baseSrcName+"_clean"), pg.Clean, 0644); err != nil {
			return nil, fmt.Errorf("unable to write cleaned page for debugging: %w", err)
		}
	}

	doc, payload, err := inferDocument(ctx, pg, log)
	if err != nil {
		return nil, err
	}

	// Save raw model payload for debugging
	if env.Rpt != nil && len(payload) > 0 {
		if err := os.WriteFile(filepath.Join(tmpDir, baseSrcName+"_payload"), payload, 0644); err != nil {
			return nil, fmt.Errorf("unable to write inference payload for debugging: %w", err)
		}
	}

	// Harvest class names from the captured stylesheet, operator supplied
	// styles are appended and count the same
	sheet := pg.Stylesheet
	if len(env.ExtraStyle) > 0 {
		sheet = append(append([]byte{}, sheet...), '\n')
		sheet = append(sheet, env.ExtraStyle...)
	}
	classes := css.NewParser(log).Extract(sheet, srcName)
	for _, link := range pg.SheetLinks {
		log.Debug("Linked stylesheet was not captured inline, classes from it cannot be recovered", zap.String("href", link))
	}

	if env.Cfg.Document.Reconcile.Enable {
		opts := reconcile.Options{
			SmallSetLimit:  env.Cfg.Document.Reconcile.SmallSetLimit,
			OverlapPercent: env.Cfg.Document.Reconcile.OverlapPercent,
		}
		doc = reconcile.NewEngine(opts, log).Reconcile(doc, pg.Clean, classes)
	}

	c := &Content{
		SrcName:      srcName,
		OutputFormat: outputFormat,
		RefID:        refID.String(),
		Page:         pg,
		Doc:          doc,
		Classes:      classes,
		WorkDir:      tmpDir,
	}

	// Save prepared document to file for debugging
	if env.Rpt != nil {
		if err := os.WriteFile(filepath.Join(tmpDir, baseSrcName+"_prepared"), []byte(c.String()), 0644); err != nil {
			return nil, fmt.Errorf("unable to write prepared doc for debugging: %w", err)
		}
	}
	return c, nil
}

// inferDocument obtains the IR for a page: from a pre-computed file when one
// was given on the command line, from the inference endpoint otherwise.
func inferDocument(ctx context.Context, pg *page.Page, log *zap.Logger) (*ir.Document, []byte, error) {
	env := state.EnvFromContext(ctx)

	if env.IRPath != "" {
		data, err := os.ReadFile(env.IRPath)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to read ir document from %q: %w", env.IRPath, err)
		}
		doc, err := infer.ParsePayload(data)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to parse ir document from %q: %w", env.IRPath, err)
		}
		log.Debug("Using pre-computed ir document", zap.String("path", env.IRPath))
		return doc, data, nil
	}

	client := infer.NewClient(&env.Cfg.Inference, log)
	defer client.Close()

	doc, payload, err := client.Document(ctx, pg.Title, pg.Clean)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to infer page structure: %w", err)
	}
	return doc, payload, nil
}
