// Package codec persists catalog collections in four on-disk representations:
// a write-only text report, a lossy delimited format, and lossless
// tree-structured (JSON) and binary formats.
//
// Every decoder reconstructs concrete variants from the record's type tag and
// returns the full collection; callers install it with Catalog.Replace.
package codec

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/murkotick/product-catalog-manager/internal/app/product/domain"
)

// Format names an on-disk representation. Its value doubles as the file extension.
type Format string

const (
	FormatReport    Format = "txt"
	FormatDelimited Format = "csv"
	FormatTree      Format = "json"
	FormatBinary    Format = "bin"
)

var (
	// ErrUnsupportedFormat indicates a format name or file extension no codec handles.
	ErrUnsupportedFormat = errors.New("unsupported catalog format")

	// ErrWriteOnly indicates a decode request for the report format.
	ErrWriteOnly = errors.New("format is write-only")
)

// Encoder writes an ordered collection.
type Encoder interface {
	Encode(w io.Writer, items []domain.Product) error
}

// Decoder reads a full collection, preserving order.
type Decoder interface {
	Decode(r io.Reader) ([]domain.Product, error)
}

// Codec is a format that can be both written and read back.
type Codec interface {
	Encoder
	Decoder
}

var (
	_ Encoder = Report{}
	_ Codec   = Delimited{}
	_ Codec   = Tree{}
	_ Codec   = Binary{}
)

// Formats lists every format in a stable order.
func Formats() []Format {
	return []Format{FormatDelimited, FormatTree, FormatBinary, FormatReport}
}

// ParseFormat resolves a format name such as "csv" or "json".
func ParseFormat(s string) (Format, error) {
	name := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(s), "."))
	switch name {
	case "ser", "dat":
		name = string(FormatBinary)
	}
	for _, f := range Formats() {
		if string(f) == name {
			return f, nil
		}
	}
	return "", errors.Wrapf(ErrUnsupportedFormat, "%q", s)
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return "", errors.Wrapf(ErrUnsupportedFormat, "no extension in %q", path)
	}
	return ParseFormat(ext)
}

// Resolve picks the format named by name, falling back to the extension of path.
func Resolve(name, path string) (Format, error) {
	if strings.TrimSpace(name) != "" {
		return ParseFormat(name)
	}
	return FormatFromPath(path)
}

// For returns the codec of a readable format.
func For(f Format) (Codec, error) {
	switch f {
	case FormatDelimited:
		return Delimited{}, nil
	case FormatTree:
		return Tree{}, nil
	case FormatBinary:
		return Binary{}, nil
	case FormatReport:
		return nil, errors.Wrapf(ErrWriteOnly, "%q", f)
	}
	return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", f)
}

// EncoderFor returns the encoder of f.
func EncoderFor(f Format) (Encoder, error) {
	switch f {
	case FormatReport:
		return Report{}, nil
	case FormatDelimited:
		return Delimited{}, nil
	case FormatTree:
		return Tree{}, nil
	case FormatBinary:
		return Binary{}, nil
	}
	return nil, errors.Wrapf(ErrUnsupportedFormat, "%q", f)
}

// DecoderFor returns the decoder of f. The report format has none.
func DecoderFor(f Format) (Decoder, error) {
	c, err := For(f)
	if err != nil {
		return nil, err
	}
	return c, nil
}
