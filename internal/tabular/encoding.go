package tabular

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// LookupEncoding maps a configured encoding name to its x/text implementation.
// Bank exports from Brazilian spreadsheets are typically Latin-1 or CP1252.
// UTF-8 input may start with a byte order mark; it is stripped on decode.
func LookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM, nil
	case "latin-1", "latin1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q (use utf-8, latin-1 or windows-1252)", name)
	}
}

// outputEncoding is LookupEncoding without the byte order mark for UTF-8.
func outputEncoding(name string) (encoding.Encoding, error) {
	enc, err := LookupEncoding(name)
	if err != nil {
		return nil, err
	}
	if enc == unicode.UTF8BOM {
		return unicode.UTF8, nil
	}
	return enc, nil
}
