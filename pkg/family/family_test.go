package family

import (
	"slices"
	"testing"

	"github.com/ahertel/kintrace/pkg/errors"
)

func TestMarkers(t *testing.T) {
	if got := Mark("Charlie"); got != "*Charlie" {
		t.Errorf("Mark = %q", got)
	}
	if got := Mark(""); got != "" {
		t.Errorf("Mark of empty name = %q, want empty", got)
	}
	if got := Strip("*Charlie"); got != "Charlie" {
		t.Errorf("Strip = %q", got)
	}
	if got := Strip("Charlie"); got != "Charlie" {
		t.Errorf("Strip of unmarked name = %q", got)
	}
	if !Marked("*Eve") || Marked("Eve") {
		t.Error("Marked misclassified a name")
	}
}

func TestCanonical(t *testing.T) {
	r := Record{
		Name:     "Bob",
		Father:   "*Charlie",
		Mother:   "Eve",
		Children: []string{"*Ann", "Ben"},
	}
	c := r.Canonical()

	if c.Father != "Charlie" || c.Mother != "Eve" {
		t.Errorf("Canonical parents = %q/%q", c.Father, c.Mother)
	}
	if !slices.Equal(c.Children, []string{"Ann", "Ben"}) {
		t.Errorf("Canonical children = %v", c.Children)
	}

	// The original must not be touched.
	if r.Father != "*Charlie" || r.Children[0] != "*Ann" {
		t.Error("Canonical mutated its receiver")
	}

	// Repeated canonicalization is a fixed point.
	c2 := c.Canonical()
	if c2.Name != c.Name || c2.Father != c.Father || !slices.Equal(c2.Children, c.Children) {
		t.Error("Canonical is not idempotent")
	}
}

func TestCloneIndependence(t *testing.T) {
	r := Record{Name: "Jack", Children: []string{"Charlie", "Madeline"}}
	c := r.Clone()
	c.Children[0] = "changed"
	if r.Children[0] != "Charlie" {
		t.Error("Clone aliased the children slice")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		records  []Record
		wantErr  bool
		wantCode errors.Code
	}{
		{
			name:    "ValidSample",
			records: Sample(),
		},
		{
			name: "DanglingReferencesAllowed",
			records: []Record{
				{Name: "Alice", Father: "Arlo", Mother: "Madeline"},
			},
		},
		{
			name: "MissingName",
			records: []Record{
				{Father: "Arlo"},
			},
			wantErr:  true,
			wantCode: errors.ErrCodeInvalidRecord,
		},
		{
			name: "DuplicateName",
			records: []Record{
				{Name: "Bob"},
				{Name: "Bob"},
			},
			wantErr:  true,
			wantCode: errors.ErrCodeInvalidRecord,
		},
		{
			name: "InvalidChildName",
			records: []Record{
				{Name: "Rose", Children: []string{"Oliver", "bad\nname"}},
			},
			wantErr:  true,
			wantCode: errors.ErrCodeInvalidRecord,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.records)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !errors.Is(err, tt.wantCode) {
				t.Errorf("error code = %q, want %q", errors.GetCode(err), tt.wantCode)
			}
		})
	}
}

func TestSampleShape(t *testing.T) {
	records := Sample()
	if len(records) != 14 {
		t.Fatalf("sample has %d records, want 14", len(records))
	}
	if err := Validate(records); err != nil {
		t.Fatalf("sample should validate: %v", err)
	}

	// Founders have no recorded parents.
	for _, r := range records {
		if r.Name == "Hugo" || r.Name == "Oscar" {
			if r.HasFather() || r.HasMother() {
				t.Errorf("%s should have no parents", r.Name)
			}
		}
	}
}
