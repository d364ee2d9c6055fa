// Package patch supports merge-patch updates: a PATCH body touches only the
// fields it names, and an explicit JSON null clears a nullable field. Plain
// struct decoding cannot tell "absent" from "null", so handlers decode the
// body once and consult the raw field map for presence.
package patch

import (
	"bytes"
	"encoding/json"
	"io"
)

// Fields is the raw top-level field map of a PATCH body.
type Fields map[string]json.RawMessage

// Decode reads a PATCH body, returning both the raw field map and the body
// bytes for a second typed decode.
func Decode(r io.Reader) (Fields, []byte, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, err
	}
	var f Fields
	if err := json.Unmarshal(body, &f); err != nil {
		return nil, nil, err
	}
	return f, body, nil
}

// Has reports whether the body named the field at all.
func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// IsNull reports whether the body set the field to an explicit null.
func (f Fields) IsNull(key string) bool {
	raw, ok := f[key]
	return ok && bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
