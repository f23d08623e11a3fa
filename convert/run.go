package convert

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"sort"
	"strings"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"golang.org/x/text/encoding/ianaindex"

	"wpc/archive"
	"wpc/config"
	"wpc/content"
	"wpc/convert/theme"
	"wpc/convert/wxr"
	"wpc/state"
)

func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	src, err = filepath.Abs(src)
	if err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Mailformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	format := env.Cfg.Document.Format
	if to := cmd.String("to"); len(to) > 0 {
		f, err := config.ParseOutputFmt(to)
		if err != nil {
			log.Warn("Unknown output format requested, using configured one", zap.Stringer("format", format), zap.Error(err))
		} else {
			format = f
		}
	}

	if env.Cfg.Document.StylesheetPath != "" {
		data, err := os.ReadFile(env.Cfg.Document.StylesheetPath)
		if err != nil {
			return fmt.Errorf("unable to read style css from %q: %w", env.Cfg.Document.StylesheetPath, err)
		}
		env.ExtraStyle = data
		// operator files may change before the report is finalized, copy now
		if err := env.Rpt.StoreCopy("stylesheet.css", env.Cfg.Document.StylesheetPath); err != nil {
			log.Warn("Unable to store stylesheet in the report", zap.Error(err))
		}
	}

	if env.Cfg.Document.Screenshot.TemplatePath != "" {
		data, err := os.ReadFile(env.Cfg.Document.Screenshot.TemplatePath)
		if err != nil {
			return fmt.Errorf("unable to read screenshot template from %q: %w", env.Cfg.Document.Screenshot.TemplatePath, err)
		}
		env.DefaultScreenshot = data
		if err := env.Rpt.StoreCopy("screenshot.svg.tmpl", env.Cfg.Document.Screenshot.TemplatePath); err != nil {
			log.Warn("Unable to store screenshot template in the report", zap.Error(err))
		}
	}

	env.NoDirs, env.Overwrite = cmd.Bool("nodirs"), cmd.Bool("overwrite")
	env.IRPath = cmd.String("ir")

	// Captured pages do not always declare their encoding, or declare it
	// wrong, so we may need to force the character set for the whole run
	if cs := cmd.String("force-charset"); len(cs) > 0 {
		if enc, err := ianaindex.IANA.Encoding(cs); err != nil || enc == nil {
			log.Warn("Unknown character set specification. Ignoring...", zap.String("charset", cs), zap.Error(err))
		} else {
			env.ForceCharset = cs
			log.Debug("Forcefully decoding all captured pages", zap.String("charset", cs))
		}
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst), zap.Stringer("format", format))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, format, log)
}

// process handles the core conversion logic independently of CLI framework. It
// determines the input type (directory, archive, or single file) and processes
// accordingly.
func process(ctx context.Context, src, dst string, format config.OutputFmt, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	var head, tail string
	for head = src; len(head) != 0; head, tail = filepath.Split(head) {
		if err := ctx.Err(); err != nil {
			return err
		}

		head = strings.TrimSuffix(head, string(filepath.Separator))

		fi, err := os.Stat(head)
		if err != nil {
			// does not exists - probably path in archive
			continue
		}

		if fi.Mode().IsDir() {
			if len(tail) != 0 {
				// directory cannot have tail - it would be simple file
				return fmt.Errorf("input source was not found (%s) => (%s)", head, strings.TrimPrefix(src, head))
			}
			// page assets are resolved relative to this root
			env.SrcRoot = head
			if err := processDir(ctx, head, dst, format, log); err != nil {
				return errors.New("unable to process directory")
			}
			break
		}

		if !fi.Mode().IsRegular() {
			return fmt.Errorf("unexpected path mode for (%s) => (%s)", head, strings.TrimPrefix(src, head))
		}

		arc, err := isArchiveFile(head)
		if err != nil {
			// checking format - but cannot open target file
			return fmt.Errorf("unable to check archive type: %w", err)
		}
		if arc {
			// we need to look inside to see if path makes sense
			tail = strings.TrimPrefix(strings.TrimPrefix(src, head), string(filepath.Separator))
			if err := processArchive(ctx, head, tail, "", dst, format, log); err != nil {
				return fmt.Errorf("unable to process archive: %w", err)
			}
			break
		}

		pg, enc, err := isPageFile(head)
		if err != nil {
			// checking format - but cannot open target file
			return fmt.Errorf("unable to check file type: %w", err)
		}
		if pg && len(tail) == 0 {
			// we have a page, it cannot have tail
			// encoding will be handled properly by processPage
			env.SrcRoot = filepath.Dir(head)
			if file, err := os.Open(head); err != nil {
				log.Error("Unable to process file", zap.String("file", head), zap.Error(err))
			} else {
				defer file.Close()
				if err := processPage(ctx, selectReader(file, enc), filepath.Base(head), dst, format, 1, log); err != nil {
					log.Error("Unable to process file", zap.String("file", head), zap.Error(err))
				}
			}
			break
		}
		return fmt.Errorf("input was not recognized as captured page (%s)", head)

	}
	if len(head) == 0 {
		return fmt.Errorf("input source was not found (%s)", src)
	}
	return nil
}

// processDir walks directory tree finding captured pages and archives of
// pages and processes them in natural name order, so "page-2" comes before
// "page-10".
func processDir(ctx context.Context, dir, dst string, format config.OutputFmt, log *zap.Logger) error {
	type candidate struct {
		path    string
		archive bool
		enc     srcEncoding
	}
	var found []candidate

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		arc, err := isArchiveFile(path)
		if err != nil {
			// checking format - but cannot open target file
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if arc {
			found = append(found, candidate{path: path, archive: true})
			return nil
		}

		pg, enc, err := isPageFile(path)
		if err != nil {
			log.Warn("Skipping file", zap.String("file", path), zap.Error(err))
			return nil
		}
		if !pg {
			log.Debug("Skipping file, not recognized as page or archive", zap.String("file", path))
			return nil
		}

		found = append(found, candidate{path: path, enc: enc})
		return nil
	})
	if err != nil {
		return err
	}

	if len(found) == 0 {
		log.Debug("Nothing to process", zap.String("dir", dir))
		return nil
	}

	sort.Slice(found, func(i, j int) bool {
		return natural.Less(found[i].path, found[j].path)
	})

	count := 0
	for _, cand := range found {
		if err := ctx.Err(); err != nil {
			return err
		}

		if cand.archive {
			if err := processArchive(ctx, cand.path, "", filepath.Dir(strings.TrimPrefix(cand.path, dir)), dst, format, log); err != nil {
				log.Error("Unable to process archive", zap.String("file", cand.path), zap.Error(err))
			}
			continue
		}

		count++

		file, err := os.Open(cand.path)
		if err != nil {
			log.Error("Unable to process file", zap.String("file", cand.path), zap.Error(err))
			continue
		}

		src := strings.TrimPrefix(strings.TrimPrefix(cand.path, dir), string(filepath.Separator))
		if err := processPage(ctx, selectReader(file, cand.enc), src, dst, format, count, log); err != nil {
			log.Error("Unable to process file", zap.String("file", cand.path), zap.Error(err))
		}
		file.Close()
	}
	return nil
}

// processArchive walks all files inside archive, finds captured pages under
// "pathIn" and processes them. Walk visits entries in natural name order so
// numbered captures keep their sequence.
func processArchive(ctx context.Context, path, pathIn, pathOut, dst string, format config.OutputFmt, log *zap.Logger) (err error) {
	count := 0
	defer func() {
		if err == nil && count == 0 {
			log.Debug("Nothing to process", zap.String("archive", path))
		}
	}()

	err = archive.Walk(path, pathIn, func(archive string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		pg, enc, err := isPageInArchive(f)
		if err != nil {
			log.Warn("Skipping file in archive",
				zap.String("archive", archive), zap.String("path", f.FileHeader.Name), zap.Error(err))
			return nil
		}
		if !pg {
			log.Debug("Skipping file, not recognized as page", zap.String("archive", archive), zap.String("file", f.FileHeader.Name))
			return nil
		}

		count++

		r, err := f.Open()
		if err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", archive), zap.String("file", f.FileHeader.Name), zap.Error(err))
			return nil
		}
		defer r.Close()

		if err := processPage(ctx, selectReader(r, enc), filepath.Join(pathOut, f.FileHeader.Name), dst, format, count, log); err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", archive), zap.String("file", f.FileHeader.Name), zap.Error(err))
		}
		return nil
	})
	return err
}

// processPage processes single captured page. "src" is part of the source
// path (always including file name) relative to the original path. When
// actual file was specified it will be just base file name without a path.
// When looking inside archive or directory it will be relative path inside
// archive or directory (including base file name). "dst" is the destination
// directory where the converted file should be written. "n" is the position
// of the page within the current run, available to output name templates.
func processPage(ctx context.Context, r io.Reader, src string, dst string, format config.OutputFmt, n int, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	var refID, outputName string

	log.Info("Conversion starting", zap.String("from", src))
	defer func(start time.Time) {
		// NOTE: some of golang graphic processing libraries are not mature
		// enough if multiple pages are being processed we do not want to stop.
		if r := recover(); r != nil {
			log.Error("Conversion ended with panic",
				zap.Any("panic", r), zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("conversion panic: %v", r)
		} else {
			log.Info("Conversion completed", zap.Duration("elapsed", time.Since(start)), zap.String("to", outputName), zap.String("ref_id", refID))
		}
	}(time.Now())

	c, err := content.Prepare(ctx, r, src, format, log)
	if err != nil {
		return fmt.Errorf("unable to prepare captured page (%s): %w", src, err)
	}

	refID = c.RefID

	// Determine output file name and path based on input and configuration.
	outputName = buildOutputPath(c, src, dst, n, env)

	// Check if output file already exists
	if _, err := os.Stat(outputName); err == nil {
		if !env.Overwrite {
			return fmt.Errorf("output file already exists: %s", outputName)
		}
		log.Warn("Overwriting existing file", zap.String("file", outputName))
		if err = os.Remove(outputName); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	} else if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}

	// Generate output in the requested format
	switch c.OutputFormat {
	case config.OutputFmtTheme:
		if err := theme.Generate(ctx, c, outputName, &env.Cfg.Document, log); err != nil {
			return fmt.Errorf("unable to generate output: %w", err)
		}
	case config.OutputFmtWxr:
		if err := wxr.Generate(ctx, c, outputName, &env.Cfg.Document, log); err != nil {
			return fmt.Errorf("unable to generate output: %w", err)
		}
	}

	// Store conversion result for debugging
	if env.Rpt != nil {
		env.Rpt.Store(fmt.Sprintf("result-%s%s", refID, filepath.Ext(outputName)), outputName)
	}

	return nil
}
