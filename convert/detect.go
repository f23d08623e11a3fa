package convert

import (
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
	"golang.org/x/text/transform"
)

// srcEncoding is the BOM derived encoding of a source page, detected before
// any parsing so the right transform can be put in front of the reader.
type srcEncoding int

const (
	encUnknown srcEncoding = iota
	encUTF8
	encUTF16BigEndian
	encUTF16LittleEndian
	encUTF32BigEndian
	encUTF32LittleEndian
)

// sniffLen bytes from the head of a file decide what it is.
const sniffLen = 1024

// htmlType is registered with the filetype matchers so captured pages are
// recognized by content, not extension alone.
var htmlType = filetype.NewType("html", "text/html")

func init() {
	filetype.AddMatcher(htmlType, looksLikeHTML)
}

// looksLikeHTML sniffs the head of a page for html markers, decoding UTF-16
// and UTF-32 content first so multibyte captures are not rejected.
func looksLikeHTML(buf []byte) bool {
	switch enc := detectUTF(buf); enc {
	case encUTF16BigEndian, encUTF16LittleEndian, encUTF32BigEndian, encUTF32LittleEndian:
		decoded, err := io.ReadAll(selectReader(bytes.NewReader(buf), enc))
		if err != nil {
			return false
		}
		buf = decoded
	case encUTF8:
		buf = buf[3:]
	}

	head := strings.ToLower(string(buf[:min(len(buf), sniffLen)]))
	for _, marker := range []string{"<!doctype html", "<html", "<head", "<body"} {
		if strings.Contains(head, marker) {
			return true
		}
	}
	return false
}

// isArchiveFile checks if file is a zip archive by content.
func isArchiveFile(path string) (bool, error) {
	head, err := readHead(path)
	if err != nil {
		return false, err
	}
	return filetype.Is(head, "zip"), nil
}

// isPageFile checks if file looks like a captured html page and reports its
// BOM derived encoding.
func isPageFile(path string) (bool, srcEncoding, error) {
	if !hasPageExtension(path) {
		return false, encUnknown, nil
	}
	head, err := readHead(path)
	if err != nil {
		return false, encUnknown, err
	}
	return sniffPage(head)
}

// isPageInArchive checks a single archive entry the same way isPageFile
// checks a file on disk.
func isPageInArchive(f *zip.File) (bool, srcEncoding, error) {
	if !hasPageExtension(f.FileHeader.Name) {
		return false, encUnknown, nil
	}
	r, err := f.Open()
	if err != nil {
		return false, encUnknown, err
	}
	defer r.Close()

	head, err := io.ReadAll(io.LimitReader(r, sniffLen))
	if err != nil {
		return false, encUnknown, err
	}
	return sniffPage(head)
}

func sniffPage(head []byte) (bool, srcEncoding, error) {
	if !filetype.IsType(head, htmlType) {
		return false, encUnknown, nil
	}
	return true, detectUTF(head), nil
}

func hasPageExtension(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return true
	default:
		return false
	}
}

func readHead(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(io.LimitReader(f, sniffLen))
}

// detectUTF looks at the byte order mark. UTF-32 little endian shares its
// first two bytes with UTF-16 little endian, so the longer marks go first.
func detectUTF(buf []byte) srcEncoding {
	switch {
	case isUTF32BigEndianBOM4(buf):
		return encUTF32BigEndian
	case isUTF32LittleEndianBOM4(buf):
		return encUTF32LittleEndian
	case isUTF8BOM3(buf):
		return encUTF8
	case isUTF16BigEndianBOM2(buf):
		return encUTF16BigEndian
	case isUTF16LittleEndianBOM2(buf):
		return encUTF16LittleEndian
	default:
		return encUnknown
	}
}

func isUTF8BOM3(buf []byte) bool {
	return len(buf) >= 3 && buf[0] == 0xEF && buf[1] == 0xBB && buf[2] == 0xBF
}

func isUTF16BigEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFE && buf[1] == 0xFF
}

func isUTF16LittleEndianBOM2(buf []byte) bool {
	return len(buf) >= 2 && buf[0] == 0xFF && buf[1] == 0xFE
}

func isUTF32BigEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0x00 && buf[1] == 0x00 && buf[2] == 0xFE && buf[3] == 0xFF
}

func isUTF32LittleEndianBOM4(buf []byte) bool {
	return len(buf) >= 4 && buf[0] == 0xFF && buf[1] == 0xFE && buf[2] == 0x00 && buf[3] == 0x00
}

// selectReader puts the right decoding transform in front of the source so
// downstream always sees UTF-8 without a byte order mark.
func selectReader(r io.Reader, enc srcEncoding) io.Reader {
	switch enc {
	case encUnknown:
		// charset detection downstream handles BOM-less content
		return r
	case encUTF8:
		return transform.NewReader(r, unicode.UTF8BOM.NewDecoder())
	case encUTF16BigEndian:
		return transform.NewReader(r, unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder())
	case encUTF16LittleEndian:
		return transform.NewReader(r, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder())
	case encUTF32BigEndian:
		return transform.NewReader(r, utf32.UTF32(utf32.BigEndian, utf32.ExpectBOM).NewDecoder())
	case encUTF32LittleEndian:
		return transform.NewReader(r, utf32.UTF32(utf32.LittleEndian, utf32.ExpectBOM).NewDecoder())
	default:
		// this should never happen
		panic("unexpected source encoding requested")
	}
}
