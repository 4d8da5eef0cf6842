// Package export serializes result sets to self-describing files.
//
// The exporter is schema-agnostic: it only sees positional records, so XML
// element names are synthesized from the zero-based field index (field_0,
// field_1, ...). Downstream consumers depend on those names.
package export

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/renameio/v2"

	"github.com/leapstack-labs/lookup/internal/result"
)

// Format is an export file format.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatXML  Format = "xml"
)

// XML element names and declaration.
const (
	xmlDeclaration = `<?xml version='1.0' encoding='utf-8'?>`
	xmlRoot        = "data"
	xmlItem        = "item"
	xmlFieldPrefix = "field_"
)

// ErrInvalidExtension is returned when a filename has no supported suffix.
var ErrInvalidExtension = errors.New("invalid file extension")

// FormatFromFilename infers the format from the text after the last '.' in name.
func FormatFromFilename(name string) (Format, error) {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return "", fmt.Errorf("%q: %w", name, ErrInvalidExtension)
	}
	switch Format(name[idx+1:]) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatXML:
		return FormatXML, nil
	default:
		return "", fmt.Errorf("%q: %w", name, ErrInvalidExtension)
	}
}

// FieldName returns the synthesized XML element name for a field index.
func FieldName(index int) string {
	return xmlFieldPrefix + strconv.Itoa(index)
}

// Encode writes set to w in the given format.
func Encode(w io.Writer, format Format, set *result.Set) error {
	switch format {
	case FormatJSON:
		return EncodeJSON(w, set)
	case FormatXML:
		return EncodeXML(w, set)
	default:
		return fmt.Errorf("format %q: %w", format, ErrInvalidExtension)
	}
}

// EncodeJSON writes set as a single array of arrays with no trailing newline.
func EncodeJSON(w io.Writer, set *result.Set) error {
	records := make([][]any, 0, set.Len())
	for _, rec := range recordsOf(set) {
		values := []any(rec)
		if values == nil {
			values = []any{}
		}
		records = append(records, values)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	_, err := w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	return err
}

// EncodeXML writes set as <data><item><field_0>...</field_0></item></data>
// preceded by an XML declaration. Nil values produce empty elements.
func EncodeXML(w io.Writer, set *result.Set) error {
	if _, err := io.WriteString(w, xmlDeclaration+"\n"); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	root := xml.StartElement{Name: xml.Name{Local: xmlRoot}}
	if err := enc.EncodeToken(root); err != nil {
		return err
	}
	for _, rec := range recordsOf(set) {
		item := xml.StartElement{Name: xml.Name{Local: xmlItem}}
		if err := enc.EncodeToken(item); err != nil {
			return err
		}
		for i, val := range rec {
			field := xml.StartElement{Name: xml.Name{Local: FieldName(i)}}
			if err := enc.EncodeElement(result.String(val), field); err != nil {
				return err
			}
		}
		if err := enc.EncodeToken(item.End()); err != nil {
			return err
		}
	}
	if err := enc.EncodeToken(root.End()); err != nil {
		return err
	}
	if err := enc.Flush(); err != nil {
		return fmt.Errorf("failed to encode xml: %w", err)
	}
	return nil
}

// defaultPerm is the mode of newly created export files.
const defaultPerm os.FileMode = 0644

// Write encodes set and atomically replaces the file at path with the result.
// An existing file keeps its permission bits. A symlink is followed, so the
// file it points to is replaced and the link stays in place.
func Write(path string, format Format, set *result.Set) error {
	var buf bytes.Buffer
	if err := Encode(&buf, format, set); err != nil {
		return err
	}

	target, perm, err := resolveTarget(path)
	if err != nil {
		return err
	}
	if err := renameio.WriteFile(target, buf.Bytes(), perm, renameio.IgnoreUmask()); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// resolveTarget returns the file Write should replace and the mode it should
// end up with.
func resolveTarget(path string) (string, os.FileMode, error) {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return path, defaultPerm, nil
	}
	if err != nil {
		return "", 0, fmt.Errorf("failed to inspect %s: %w", path, err)
	}

	target := path
	if info.Mode()&os.ModeSymlink != 0 {
		if target, err = filepath.EvalSymlinks(path); err != nil {
			return "", 0, fmt.Errorf("failed to resolve %s: %w", path, err)
		}
		if info, err = os.Stat(target); err != nil {
			return "", 0, fmt.Errorf("failed to inspect %s: %w", target, err)
		}
	}
	if info.IsDir() {
		return "", 0, fmt.Errorf("%s is a directory", path)
	}
	return target, info.Mode().Perm(), nil
}

func recordsOf(set *result.Set) []result.Record {
	if set == nil {
		return nil
	}
	return set.Records
}
