package errors

import (
	"strings"
	"testing"
)

func TestValidatePersonName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Valid", "Madeline", false},
		{"ValidWithSpace", "Mary Rose", false},
		{"ValidUnicode", "Zoë", false},
		{"Empty", "", true},
		{"ControlChar", "Bob\x00", true},
		{"Newline", "Bob\nEve", true},
		{"MarkerPrefix", "*Charlie", true},
		{"TooLong", strings.Repeat("a", 257), true},
		{"MaxLength", strings.Repeat("a", 256), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePersonName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePersonName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPerson) {
				t.Errorf("expected INVALID_PERSON code, got %q", GetCode(err))
			}
		})
	}
}

func TestValidateDatasetPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"Valid", "family.json", false},
		{"ValidNested", "testdata/family.toml", false},
		{"Empty", "", true},
		{"Traversal", "../secrets.json", true},
		{"NullByte", "family\x00.json", true},
		{"TooLong", strings.Repeat("a", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatasetPath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDatasetPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
