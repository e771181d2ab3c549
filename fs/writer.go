// Package fs provides file-based storage for scrape results.
package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	gmp "github.com/Roshiii-8511/ipo-gmp-scraper"
)

// DefaultPath is the output file, relative to the working directory.
const DefaultPath = "gmp.json"

// FormatEnvelope encodes an envelope as two-space indented JSON with a
// trailing newline. Non-ASCII text such as the rupee glyph is written as is.
func FormatEnvelope(env *gmp.Envelope) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(env); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Ensure EnvelopeWriter implements gmp.EnvelopeWriter at compile time.
var _ gmp.EnvelopeWriter = (*EnvelopeWriter)(nil)

// EnvelopeWriter writes the envelope to a single JSON file, replacing the
// previous contents. The file is written to a temporary sibling and renamed
// into place so readers never observe a partial file.
type EnvelopeWriter struct {
	path string
}

// NewEnvelopeWriter creates a new EnvelopeWriter for the file at path.
func NewEnvelopeWriter(path string) *EnvelopeWriter {
	return &EnvelopeWriter{path: path}
}

// Path returns the output file path.
func (w *EnvelopeWriter) Path() string {
	return w.path
}

// WriteEnvelope validates env and writes it to disk.
func (w *EnvelopeWriter) WriteEnvelope(ctx context.Context, env *gmp.Envelope) error {
	if err := env.Validate(); err != nil {
		return err
	}

	content, err := FormatEnvelope(env)
	if err != nil {
		return err
	}

	// Create parent directories
	if dir := filepath.Dir(w.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmp := w.path + ".tmp"
	if err := os.WriteFile(tmp, content, 0644); err != nil {
		return err
	}
	if err := os.Rename(tmp, w.path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
