package theme

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	_ "image/gif"
	_ "image/jpeg"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"go.uber.org/zap"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"wpc/config"
	"wpc/ir"
	"wpc/utils/images"
)

// asset is a single localized image scheduled for packaging.
type asset struct {
	Name string
	Data []byte
}

// localizeAssets rewrites image sources in the document to theme relative
// paths, collecting image bytes from the capture directory. Nothing is ever
// downloaded: a remote source without a local copy next to the page keeps
// its original URL. Returned assets preserve document order.
func localizeAssets(doc *ir.Document, srcDir string, cfg *config.AssetsConfig, log *zap.Logger) []asset {
	if !cfg.Localize {
		return nil
	}

	l := &assetLocalizer{
		srcDir: srcDir,
		cfg:    cfg,
		log:    log,
		seen:   make(map[string]string),
		names:  make(map[string]int),
	}

	if doc.Header != nil {
		l.section(doc.Header)
	}
	for i := range doc.Sections {
		l.section(&doc.Sections[i])
	}
	if doc.Footer != nil {
		l.section(doc.Footer)
	}
	return l.assets
}

type assetLocalizer struct {
	srcDir string
	cfg    *config.AssetsConfig
	log    *zap.Logger
	assets []asset
	seen   map[string]string // original source -> rewritten path, "" when skipped
	names  map[string]int    // file name -> times taken
}

func (l *assetLocalizer) section(s *ir.Section) {
	if s.Background.Kind == ir.BackgroundKindImage && s.Background.Value != "" {
		if rewritten, ok := l.localize(s.Background.Value); ok {
			s.Background.Value = rewritten
		}
	}
	l.nodes(s.Nodes)
}

func (l *assetLocalizer) nodes(nodes []ir.Node) {
	for i := range nodes {
		n := &nodes[i]
		if n.Kind == ir.NodeKindImage && n.Src != "" {
			if rewritten, ok := l.localize(n.Src); ok {
				n.Src = rewritten
			}
		}
		if len(n.Children) > 0 {
			l.nodes(n.Children)
		}
	}
}

// localize returns the theme relative path for src and true when the image
// was found and packaged. Every distinct source is resolved once, repeated
// references share the packaged file.
func (l *assetLocalizer) localize(src string) (string, bool) {
	if rewritten, ok := l.seen[src]; ok {
		return rewritten, rewritten != ""
	}

	data, base, err := l.load(src)
	if err != nil {
		l.log.Warn("Keeping original image source", zap.String("src", src), zap.Error(err))
		l.seen[src] = ""
		return "", false
	}

	data, ext, err := l.reencode(data)
	if err != nil {
		l.log.Warn("Keeping original image source", zap.String("src", src), zap.Error(err))
		l.seen[src] = ""
		return "", false
	}

	name := l.uniqueName(base, ext)
	l.assets = append(l.assets, asset{Name: name, Data: data})

	rewritten := path.Join(assetsDir, name)
	l.seen[src] = rewritten
	l.log.Debug("Localized image", zap.String("src", src), zap.String("file", rewritten))
	return rewritten, true
}

// load resolves src to image bytes. Data URIs are decoded in place, remote
// URLs are looked up in the capture directory by base name since that is
// where capture tools keep asset copies.
func (l *assetLocalizer) load(src string) ([]byte, string, error) {
	if strings.HasPrefix(src, "data:") {
		data, err := decodeDataURI(src)
		if err != nil {
			return nil, "", err
		}
		return data, "embedded", nil
	}

	u, err := url.Parse(src)
	if err != nil {
		return nil, "", fmt.Errorf("unable to parse image source: %w", err)
	}

	var name string
	if u.Scheme != "" || u.Host != "" {
		name = path.Base(u.Path)
	} else {
		name = u.Path
	}
	if name == "" || name == "." || name == "/" {
		return nil, "", fmt.Errorf("image source has no usable file name (%s)", src)
	}

	if l.srcDir == "" {
		return nil, "", errors.New("no capture directory to resolve image against")
	}

	local := filepath.Join(l.srcDir, filepath.FromSlash(name))
	if !strings.HasPrefix(local, filepath.Clean(l.srcDir)+string(filepath.Separator)) {
		return nil, "", fmt.Errorf("image source escapes capture directory (%s)", src)
	}

	data, err := os.ReadFile(local)
	if err != nil {
		return nil, "", err
	}

	base := filepath.Base(local)
	return data, strings.TrimSuffix(base, filepath.Ext(base)), nil
}

// reencode bounds the image to the configured width and produces the bytes
// for packaging. Formats with transparency stay PNG, everything else becomes
// JPEG.
func (l *assetLocalizer) reencode(data []byte) ([]byte, string, error) {
	if !filetype.IsImage(data) {
		return nil, "", errors.New("not a recognized image format")
	}
	keepAlpha := filetype.Is(data, "png") || filetype.Is(data, "gif") || filetype.Is(data, "webp")

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("unable to decode image: %w", err)
	}

	if l.cfg.MaxWidth > 0 && img.Bounds().Dx() > l.cfg.MaxWidth {
		img = imaging.Resize(img, l.cfg.MaxWidth, 0, imaging.Lanczos)
	}

	if keepAlpha {
		out, err := images.EncodePNG(img)
		if err != nil {
			return nil, "", fmt.Errorf("unable to encode image: %w", err)
		}
		return out, ".png", nil
	}

	out, err := images.EncodeJPEG(img, l.cfg.JPEGQuality)
	if err != nil {
		return nil, "", fmt.Errorf("unable to encode image: %w", err)
	}
	return out, ".jpg", nil
}

// uniqueName keeps distinct files with colliding names apart with a numeric
// suffix, the way output naming does it for result files.
func (l *assetLocalizer) uniqueName(base, ext string) string {
	base = config.CleanFileName(base)

	name := base + ext
	for {
		n, taken := l.names[name]
		if !taken {
			l.names[name] = 1
			return name
		}
		l.names[name] = n + 1
		name = fmt.Sprintf("%s-%d%s", base, n, ext)
	}
}

// decodeDataURI extracts payload bytes from a "data:" URI, base64 or percent
// encoded.
func decodeDataURI(src string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(src, "data:"), ",")
	if !ok {
		return nil, errors.New("malformed data uri")
	}
	if strings.HasSuffix(meta, ";base64") {
		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, fmt.Errorf("unable to decode data uri: %w", err)
		}
		return data, nil
	}
	unescaped, err := url.PathUnescape(payload)
	if err != nil {
		return nil, fmt.Errorf("unable to decode data uri: %w", err)
	}
	return []byte(unescaped), nil
}
