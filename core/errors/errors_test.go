package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	tests := []struct {
		name     string
		err      *NotFoundError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "with ID",
			err:      &NotFoundError{Resource: "ERT inset", ID: `\begin_inset ERT`},
			wantMsg:  `ERT inset not found: \begin_inset ERT`,
			wantBase: ErrNotFound,
		},
		{
			name:     "without ID",
			err:      &NotFoundError{Resource: "header"},
			wantMsg:  "header not found",
			wantBase: ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantBase) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantBase)
			}
		})
	}

	t.Run("with underlying error", func(t *testing.T) {
		underlyingErr := fmt.Errorf("scan aborted")
		err := &NotFoundError{Resource: "ERT inset", Err: underlyingErr}
		if got := err.Unwrap(); got != underlyingErr {
			t.Errorf("Unwrap() = %v, want %v", got, underlyingErr)
		}
	})
}

func TestUnitError(t *testing.T) {
	tests := []struct {
		name    string
		err     *UnitError
		wantMsg string
	}{
		{
			name:    "relative with length",
			err:     NewUnknownUnit("bogus", "10bogus%", true),
			wantMsg: `unknown relative unit "bogus" in length "10bogus%"`,
		},
		{
			name:    "absolute without length",
			err:     &UnitError{Unit: "px"},
			wantMsg: `unknown absolute unit "px"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, ErrUnknownUnit) {
				t.Errorf("errors.Is(%v, ErrUnknownUnit) = false", tt.err)
			}
			if errors.Is(tt.err, ErrMalformedLength) {
				t.Errorf("errors.Is(%v, ErrMalformedLength) = true", tt.err)
			}
		})
	}
}

func TestIOError(t *testing.T) {
	underlyingErr := fmt.Errorf("permission denied")

	tests := []struct {
		name    string
		err     *IOError
		wantMsg string
	}{
		{
			name:    "with path",
			err:     &IOError{Operation: "read", Path: "requests.jsonl", Err: underlyingErr},
			wantMsg: "failed to read requests.jsonl: permission denied",
		},
		{
			name:    "without path",
			err:     &IOError{Operation: "write", Err: underlyingErr},
			wantMsg: "failed to write: permission denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); got != underlyingErr {
				t.Errorf("Unwrap() = %v, want %v", got, underlyingErr)
			}
		})
	}
}

func TestParseError(t *testing.T) {
	tests := []struct {
		name     string
		err      *ParseError
		wantMsg  string
		wantBase error
	}{
		{
			name:     "length format",
			err:      NewParse(FormatLength, "pt12", "unexpected token"),
			wantMsg:  `failed to parse length "pt12": unexpected token`,
			wantBase: ErrMalformedLength,
		},
		{
			name:     "other format",
			err:      NewParse("ERT inset", "", "missing \\end_inset"),
			wantMsg:  `failed to parse ERT inset: missing \end_inset`,
			wantBase: ErrInvalidInput,
		},
		{
			name:     "malformed length helper",
			err:      NewMalformedLength("12", nil),
			wantMsg:  `failed to parse length "12": does not match <sign><magnitude><unit>[%]`,
			wantBase: ErrMalformedLength,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if !errors.Is(tt.err, tt.wantBase) {
				t.Errorf("errors.Is(%v, %v) = false", tt.err, tt.wantBase)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	if got := Wrap(nil, "context"); got != nil {
		t.Errorf("Wrap(nil) = %v, want nil", got)
	}

	base := NewUnknownUnit("bogus", "", true)
	wrapped := Wrap(base, "normalize width")
	if got := wrapped.Error(); got != `normalize width: unknown relative unit "bogus"` {
		t.Errorf("Wrap().Error() = %q", got)
	}
	if !Is(wrapped, ErrUnknownUnit) {
		t.Error("Is(wrapped, ErrUnknownUnit) = false")
	}

	var ue *UnitError
	if !As(wrapped, &ue) || ue.Unit != "bogus" {
		t.Errorf("As(wrapped, *UnitError) failed, got %+v", ue)
	}
}

func TestWrapf(t *testing.T) {
	if got := Wrapf(nil, "request %d", 3); got != nil {
		t.Errorf("Wrapf(nil) = %v, want nil", got)
	}

	wrapped := Wrapf(NewMalformedLength("x", nil), "request %d", 3)
	if !Is(wrapped, ErrMalformedLength) {
		t.Error("Is(wrapped, ErrMalformedLength) = false")
	}
	want := `request 3: failed to parse length "x": does not match <sign><magnitude><unit>[%]`
	if got := wrapped.Error(); got != want {
		t.Errorf("Wrapf().Error() = %q, want %q", got, want)
	}
}
