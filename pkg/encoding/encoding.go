// Package encoding decodes model sources written in legacy text encodings.
//
// OBJ exporters from older toolchains write object names in the host code
// page (Shift-JIS, EUC-KR, Windows-1252). Parsing is byte-oriented, so only
// the names are affected, but they are shown to the user and matched against
// the object filter, which is always UTF-8.
package encoding

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// ErrUnknownEncoding is returned for a label that names no known encoding.
var ErrUnknownEncoding = errors.New("unknown text encoding")

// Lookup resolves a WHATWG encoding label such as "shift_jis" or "euc-kr".
// An empty label or "utf-8" returns nil, meaning no decoding is needed.
func Lookup(label string) (encoding.Encoding, error) {
	label = strings.TrimSpace(strings.ToLower(label))
	if label == "" || label == "utf-8" || label == "utf8" {
		return nil, nil
	}

	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	return enc, nil
}

// NewReader wraps r so that it yields UTF-8 decoded from label.
func NewReader(r io.Reader, label string) (io.Reader, error) {
	enc, err := Lookup(label)
	if err != nil {
		return nil, err
	}
	if enc == nil {
		return r, nil
	}
	return transform.NewReader(r, enc.NewDecoder()), nil
}
