package graph

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Encode writes g as 2-space indented JSON. Map keys come out sorted, so
// unchanged input always encodes to the same bytes.
func Encode(w io.Writer, g *Graph) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(g)
}

// Marshal returns the encoded form of g.
func Marshal(g *Graph) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, g); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes g to path, replacing whatever is there.
func Write(path string, g *Graph) error {
	data, err := Marshal(g)
	if err != nil {
		return fmt.Errorf("encoding graph: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// UpToDate reports whether the file at path already holds exactly the
// encoding of g. A missing file is simply out of date.
func UpToDate(path string, g *Graph) (bool, error) {
	want, err := Marshal(g)
	if err != nil {
		return false, fmt.Errorf("encoding graph: %w", err)
	}
	have, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("reading %s: %w", path, err)
	}
	return bytes.Equal(have, want), nil
}
