package length

import (
	"errors"
	"testing"

	lyxerrors "github.com/FocuswithJustin/lyxnorm/core/errors"
)

func TestInBP(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1in", "72"},
		{"-1in", "-72"},
		{"1bp", "1"},
		{"72.27pt", "72"},
		{"2.54cm", "72"},
		{"10mm", "28.3465"},
		{"12pc", "143.462"},
		{"100col%", "350.259"},
		{"0pt", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := InBP(tt.input)
			if err != nil {
				t.Fatalf("InBP(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("InBP(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestInBPErrors(t *testing.T) {
	if _, err := InBP("3px"); !errors.Is(err, lyxerrors.ErrUnknownUnit) {
		t.Errorf("InBP(3px) error = %v, want ErrUnknownUnit", err)
	}
	if _, err := InBP("three pt"); !errors.Is(err, lyxerrors.ErrMalformedLength) {
		t.Errorf("InBP(three pt) error = %v, want ErrMalformedLength", err)
	}
}
