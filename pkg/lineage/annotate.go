package lineage

import (
	"github.com/ahertel/kintrace/pkg/family"
)

// Annotate returns copies of records with every parent/child field on the
// shortest-path tree marked with the lineage marker. The originals are never
// mutated.
//
// A father field is marked when the record's predecessor is the father or
// the father's predecessor is the record; mothers and children follow the
// same dual-direction rule. Lookups run on canonical (stripped) names, so
// annotating already-annotated output with the same root reproduces the
// same markings.
//
// A nil or empty predecessor map (root not found) yields unmarked copies;
// surfacing the not-found condition is the caller's responsibility.
func Annotate(records []family.Record, preds Predecessors) []family.Record {
	out := family.Canonicalize(records)
	if len(preds) == 0 {
		return out
	}
	for i := range out {
		r := &out[i]
		if r.HasFather() && preds.Linked(r.Name, r.Father) {
			r.Father = family.Mark(r.Father)
		}
		if r.HasMother() && preds.Linked(r.Name, r.Mother) {
			r.Mother = family.Mark(r.Mother)
		}
		for j, child := range r.Children {
			if preds.Linked(r.Name, child) {
				r.Children[j] = family.Mark(child)
			}
		}
	}
	return out
}
