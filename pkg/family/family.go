// Package family defines the family-record data model and dataset boundary.
//
// A dataset is an ordered list of records, one per person. Each record names
// the person's father, mother, and children. Datasets can be decoded from
// JSON or TOML files; the raw formats use the sentinel string "Unknown" for
// an absent parent, which is normalized to the empty string at the decode
// boundary so downstream packages never see the sentinel.
//
// # Lineage markers
//
// Annotated output marks relationship names on the direct lineage with a
// leading "*" (e.g., "*Charlie"). [Strip] and [Marked] operate on that
// convention, and [Record.Canonical] returns a record with all markers
// removed so annotation is idempotent over already-annotated input.
//
// # Raw JSON format
//
//	[
//	  {"Name": "Bob", "Father": "Charlie", "Mother": "Eve", "Children": []},
//	  {"Name": "Hugo", "Father": "Unknown", "Mother": "Unknown", "Children": ["Oliver"]}
//	]
//
// Field matching is case-insensitive, so lowercase keys work as well.
package family

import (
	"slices"
	"strings"

	"github.com/ahertel/kintrace/pkg/errors"
)

// Unknown is the sentinel used by raw datasets for an absent parent.
// It exists only at the encode/decode boundary; canonical records use the
// empty string for "no parent".
const Unknown = "Unknown"

// Marker is the prefix prepended to relationship names on the direct lineage.
const Marker = "*"

// Record represents one person's immediate relations in canonical form.
// Name is the unique key; Father and Mother are empty when unknown.
// Children preserves the input order for output fidelity.
type Record struct {
	Name     string   `json:"Name" toml:"name"`
	Father   string   `json:"Father,omitempty" toml:"father"`
	Mother   string   `json:"Mother,omitempty" toml:"mother"`
	Children []string `json:"Children" toml:"children"`
}

// HasFather reports whether the record names a father.
func (r Record) HasFather() bool { return r.Father != "" }

// HasMother reports whether the record names a mother.
func (r Record) HasMother() bool { return r.Mother != "" }

// Clone returns a deep copy of the record.
// The children slice is copied so the original is never aliased.
func (r Record) Clone() Record {
	r.Children = slices.Clone(r.Children)
	return r
}

// Canonical returns a copy of the record with all lineage markers stripped.
// Records straight from a dataset are unchanged; re-annotating previously
// annotated output yields the same markings because lookups always run on
// canonical names.
func (r Record) Canonical() Record {
	out := r.Clone()
	out.Name = Strip(r.Name)
	out.Father = Strip(r.Father)
	out.Mother = Strip(r.Mother)
	for i, c := range out.Children {
		out.Children[i] = Strip(c)
	}
	return out
}

// Marked reports whether name carries the lineage marker.
func Marked(name string) bool { return strings.HasPrefix(name, Marker) }

// Mark prepends the lineage marker to name.
// Empty names are returned unchanged.
func Mark(name string) string {
	if name == "" {
		return name
	}
	return Marker + name
}

// Strip removes the lineage marker from name, if present.
func Strip(name string) string { return strings.TrimPrefix(name, Marker) }

// Canonicalize returns canonical copies of all records.
func Canonicalize(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.Canonical()
	}
	return out
}

// Validate checks a canonical dataset at the input boundary.
// It verifies that every record has a valid name, that names are unique,
// and that every referenced parent and child name is itself valid.
//
// Dangling references (a parent or child with no record of their own) are
// legal: the graph builder inserts such people as nodes with only the edge
// that introduced them.
func Validate(records []Record) error {
	seen := make(map[string]int, len(records))
	for i, r := range records {
		if err := errors.ValidatePersonName(r.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidRecord, err, "record %d", i)
		}
		if prev, dup := seen[r.Name]; dup {
			return errors.New(errors.ErrCodeInvalidRecord,
				"duplicate record name %q (records %d and %d)", r.Name, prev, i)
		}
		seen[r.Name] = i

		for _, ref := range r.references() {
			if err := errors.ValidatePersonName(ref); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidRecord, err, "record %d (%s)", i, r.Name)
			}
		}
	}
	return nil
}

// references returns all non-empty parent and child names of the record.
func (r Record) references() []string {
	refs := make([]string, 0, len(r.Children)+2)
	if r.HasFather() {
		refs = append(refs, r.Father)
	}
	if r.HasMother() {
		refs = append(refs, r.Mother)
	}
	refs = append(refs, r.Children...)
	return refs
}
