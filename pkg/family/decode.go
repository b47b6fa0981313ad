package family

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Format identifies a dataset file format.
type Format string

// Supported dataset formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// DetectFormat picks the dataset format from a file extension.
// Unrecognized extensions default to JSON, matching the raw format of the
// reference dataset.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// tomlDataset is the TOML envelope: a [[people]] array of tables.
//
//	[[people]]
//	name = "Bob"
//	father = "Charlie"
//	mother = "Eve"
//	children = []
type tomlDataset struct {
	People []Record `toml:"people"`
}

// Decode reads a dataset from r in the given format and returns canonical
// records: "Unknown" parents are normalized to empty strings, markers are
// stripped, nil children become empty slices, and the dataset is validated.
func Decode(r io.Reader, format Format) ([]Record, error) {
	var records []Record
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&records); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatTOML:
		data, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("read: %w", err)
		}
		var ds tomlDataset
		if err := toml.Unmarshal(data, &ds); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
		records = ds.People
	default:
		return nil, fmt.Errorf("unsupported format: %q", format)
	}

	records = Normalize(records)
	if err := Validate(records); err != nil {
		return nil, err
	}
	return records, nil
}

// DecodeFile reads a dataset file at path, detecting the format from the
// file extension.
func DecodeFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	records, err := Decode(f, DetectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return records, nil
}

// Normalize converts raw records to canonical form: the Unknown sentinel
// becomes the empty string, markers are stripped, and children are never nil.
func Normalize(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		c := r.Canonical()
		if c.Father == Unknown {
			c.Father = ""
		}
		if c.Mother == Unknown {
			c.Mother = ""
		}
		if c.Children == nil {
			c.Children = []string{}
		}
		out[i] = c
	}
	return out
}
