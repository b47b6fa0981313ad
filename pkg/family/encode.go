package family

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Encode writes records to w as indented JSON in the raw dataset format:
// absent parents are re-emitted as the Unknown sentinel so output round-trips
// through [Decode]. Lineage markers on annotated records are preserved.
func Encode(w io.Writer, records []Record) error {
	out := make([]Record, len(records))
	for i, r := range records {
		c := r.Clone()
		if c.Father == "" {
			c.Father = Unknown
		}
		if c.Mother == "" {
			c.Mother = Unknown
		}
		if c.Children == nil {
			c.Children = []string{}
		}
		out[i] = c
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// EncodeFile writes records to a JSON file at path.
// This is a convenience wrapper around [Encode] for file-based output.
func EncodeFile(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Encode(f, records)
}
