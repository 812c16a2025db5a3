package repo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// readFile returns the contents of path. The boolean is false when the file
// does not exist, which callers treat as an empty store rather than an error.
func readFile(path string) ([]byte, bool, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return b, true, nil
}

// encodeRecord renders one reservation the way it sits inside the
// reservations array: nested two spaces deep, non-ASCII and HTML characters
// left unescaped.
func encodeRecord(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("  ", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// encodeArray joins records into a two-space indented JSON array. Records are
// copied verbatim, so entries written by other programs keep their exact bytes
// (nulls, zone-less timestamps, extra fields).
func encodeArray(records []json.RawMessage) []byte {
	if len(records) == 0 {
		return []byte("[]\n")
	}
	var buf bytes.Buffer
	buf.WriteString("[\n")
	for i, rec := range records {
		if i > 0 {
			buf.WriteString(",\n")
		}
		buf.WriteString("  ")
		buf.Write(rec)
	}
	buf.WriteString("\n]\n")
	return buf.Bytes()
}

// writeFileAtomic writes b to a temporary file next to path and renames it
// into place, so readers never observe a half-written document.
func writeFileAtomic(path string, b []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}
