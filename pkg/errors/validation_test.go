package errors

import (
	"strings"
	"testing"
)

func TestValidateDegree(t *testing.T) {
	tests := []struct {
		name    string
		input   int
		wantErr bool
	}{
		{"one", 1, false},
		{"typical", 12, false},
		{"max", MaxDegree, false},

		{"zero", 0, true},
		{"negative", -3, true},
		{"too large", MaxDegree + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDegree(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDegree(%d) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidDegree) {
				t.Errorf("ValidateDegree(%d) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidDegree)
			}
		})
	}
}

func TestValidateGroupName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "S5", false},
		{"with dash", "rubik-2x2", false},
		{"with spaces", "dihedral of order 8", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 129), true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"traversal", "..", true},
		{"null byte", "foo\x00bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGroupName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGroupName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidatePoint(t *testing.T) {
	tests := []struct {
		point, degree int
		wantErr       bool
	}{
		{0, 1, false},
		{4, 5, false},
		{5, 5, true},
		{-1, 5, true},
		{0, 0, true},
	}

	for _, tt := range tests {
		err := ValidatePoint(tt.point, tt.degree)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidatePoint(%d, %d) error = %v, wantErr %v", tt.point, tt.degree, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodePointOutOfRange) {
			t.Errorf("ValidatePoint(%d, %d) code = %v", tt.point, tt.degree, GetCode(err))
		}
	}
}
