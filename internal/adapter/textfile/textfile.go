// Package textfile turns raw bytes into the decoded line sequence the parser
// consumes. Field exports are commonly Windows-1252 or UTF-8; UTF-16 turns
// up when files pass through spreadsheet tools.
package textfile

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"

	"github.com/couchcryptid/infra-ingest/internal/domain"
)

// Auto selects BOM and UTF-8 sniffing with a Windows-1252 fallback.
const Auto = "auto"

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decoder converts file bytes to lines. The zero value is not usable; use NewDecoder.
type Decoder struct {
	enc  encoding.Encoding
	name string
}

// NewDecoder resolves hint, a WHATWG encoding label such as "windows-1252"
// or "utf-8", or Auto (also the empty string).
func NewDecoder(hint string) (*Decoder, error) {
	if hint == "" || strings.EqualFold(hint, Auto) {
		return &Decoder{name: Auto}, nil
	}
	enc, err := htmlindex.Get(hint)
	if err != nil {
		return nil, fmt.Errorf("unsupported encoding %q: %w", hint, err)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		name = strings.ToLower(hint)
	}
	return &Decoder{enc: enc, name: name}, nil
}

// Name returns the configured encoding name, or "auto".
func (d *Decoder) Name() string { return d.name }

// Decode returns the lines of data and the name of the encoding used.
// Blank lines are kept so line numbers match the file.
func (d *Decoder) Decode(data []byte) ([]string, string, error) {
	enc, name := d.enc, d.name
	if enc == nil {
		enc, name = detect(data)
	}

	text, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return nil, "", fmt.Errorf("decode %s: %w", name, err)
	}
	// Explicit charsets pass a byte-order mark through as U+FEFF.
	return splitLines(strings.TrimPrefix(string(text), "\ufeff")), name, nil
}

func detect(data []byte) (encoding.Encoding, string) {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return unicode.UTF8, "utf-8"
	case bytes.HasPrefix(data, bomUTF16LE):
		return unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM), "utf-16le"
	case bytes.HasPrefix(data, bomUTF16BE):
		return unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM), "utf-16be"
	case utf8.Valid(data):
		return unicode.UTF8, "utf-8"
	default:
		return charmap.Windows1252, "windows-1252"
	}
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// Source decodes data into a parser input named path.
func (d *Decoder) Source(path string, data []byte) (domain.Source, error) {
	lines, name, err := d.Decode(data)
	if err != nil {
		return domain.Source{}, fmt.Errorf("read %s: %w", path, err)
	}
	return domain.Source{Path: path, Encoding: name, Lines: lines}, nil
}

// ReadFile reads and decodes the file at path. Files larger than maxBytes
// are rejected when maxBytes is positive.
func (d *Decoder) ReadFile(path string, maxBytes int64) (domain.Source, error) {
	data, err := ReadBytes(path, maxBytes)
	if err != nil {
		return domain.Source{}, err
	}
	return d.Source(path, data)
}

// ReadBytes reads the raw file at path, checking its size against maxBytes
// before reading when maxBytes is positive.
func ReadBytes(path string, maxBytes int64) ([]byte, error) {
	if maxBytes > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if info.Size() > maxBytes {
			return nil, fmt.Errorf("read %s: %d bytes exceeds limit of %d", path, info.Size(), maxBytes)
		}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

// Walk lists the regular files under dir in lexical order, skipping hidden
// files and directories. When exts is non-empty only files with one of
// those extensions (case-insensitive, with the dot) are returned.
func Walk(dir string, exts ...string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, e fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path != dir && strings.HasPrefix(e.Name(), ".") {
			if e.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !e.Type().IsRegular() || !hasExt(path, exts) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}
	sort.Strings(paths)
	return paths, nil
}

func hasExt(path string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := filepath.Ext(path)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
