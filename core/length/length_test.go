package length

import (
	"errors"
	"testing"

	lyxerrors "github.com/FocuswithJustin/lyxnorm/core/errors"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input        string
		wantRelative bool
		wantValue    string
	}{
		{"-30.5col%", true, `-0.305\columnwidth`},
		{"35baselineskip%", true, `0.35\baselineskip`},
		{"11em", false, "11em"},
		{"-0.4pt", false, "-0.4pt"},
		{"100text%", true, `1\textwidth`},
		{"50page%", true, `0.5\paperwidth`},
		{"5line%", true, `0.05\linewidth`},
		{"12.50theight%", true, `0.125\textheight`},
		{".5pheight%", true, `0.005\paperheight`},
		{"+20col%", true, `0.2\columnwidth`},
		{"-0col%", true, `0\columnwidth`},
		{"150col%", true, `1.5\columnwidth`},
		{"33.333333col%", true, `0.33333333\columnwidth`},
		{"+2cm", false, "+2cm"},
		{"0.10in", false, "0.10in"},
		{"3.mm", false, "3.mm"},
		{"65536sp", false, "65536sp"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			relative, value, err := Normalize(tt.input)
			if err != nil {
				t.Fatalf("Normalize(%q) error = %v", tt.input, err)
			}
			if relative != tt.wantRelative || value != tt.wantValue {
				t.Errorf("Normalize(%q) = (%v, %q), want (%v, %q)",
					tt.input, relative, value, tt.wantRelative, tt.wantValue)
			}
		})
	}
}

func TestNormalizeAbsoluteIsIdentity(t *testing.T) {
	for unit := range nativeUnits {
		for _, mag := range []string{"0", "1", "-2.5", "+.75", "10."} {
			in := mag + unit
			relative, value, err := Normalize(in)
			if err != nil {
				t.Errorf("Normalize(%q) error = %v", in, err)
				continue
			}
			if relative || value != in {
				t.Errorf("Normalize(%q) = (%v, %q), want (false, %q)", in, relative, value, in)
			}
		}
	}
}

func TestNormalizeErrors(t *testing.T) {
	tests := []struct {
		input   string
		wantErr error
	}{
		{"10bogus%", lyxerrors.ErrUnknownUnit},
		{"10px", lyxerrors.ErrUnknownUnit},
		{"10pt%", lyxerrors.ErrUnknownUnit},
		{"10col", lyxerrors.ErrUnknownUnit},
		{"", lyxerrors.ErrMalformedLength},
		{"pt", lyxerrors.ErrMalformedLength},
		{"12", lyxerrors.ErrMalformedLength},
		{"12 pt", lyxerrors.ErrMalformedLength},
		{" 12pt", lyxerrors.ErrMalformedLength},
		{"1pt+2pt", lyxerrors.ErrMalformedLength},
		{"--1pt", lyxerrors.ErrMalformedLength},
		{"1.2.3pt", lyxerrors.ErrMalformedLength},
		{"10col%%", lyxerrors.ErrMalformedLength},
		{`\columnwidth`, lyxerrors.ErrMalformedLength},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			relative, value, err := Normalize(tt.input)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Normalize(%q) error = %v, want %v", tt.input, err, tt.wantErr)
			}
			if relative || value != "" {
				t.Errorf("Normalize(%q) = (%v, %q) alongside error", tt.input, relative, value)
			}
		})
	}
}

func TestNormalizeUnitErrorDetails(t *testing.T) {
	_, _, err := Normalize("10bogus%")
	var ue *lyxerrors.UnitError
	if !errors.As(err, &ue) {
		t.Fatalf("Normalize() error = %v, want *UnitError", err)
	}
	if ue.Unit != "bogus" || ue.Length != "10bogus%" || !ue.Relative {
		t.Errorf("UnitError = %+v", ue)
	}
}

func TestEveryRelativeUnitHasBPScale(t *testing.T) {
	for unit := range relativeUnits {
		if _, ok := bpScales[unit+"%"]; !ok {
			t.Errorf("relative unit %q has no bp scale", unit)
		}
	}
	for unit := range nativeUnits {
		if _, ok := bpScales[unit]; !ok {
			t.Errorf("native unit %q has no bp scale", unit)
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Spec
	}{
		{"-30.5col%", Spec{Sign: "-", Magnitude: "30.5", Unit: "col", Percent: true}},
		{"11em", Spec{Magnitude: "11", Unit: "em"}},
		{"+.5in", Spec{Sign: "+", Magnitude: ".5", Unit: "in"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
			if s := got.String(); s != tt.input {
				t.Errorf("Parse(%q).String() = %q", tt.input, s)
			}
		})
	}
}

func TestShiftLeft2(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"30.5", "0.305"},
		{"35", "0.35"},
		{"100", "1"},
		{"5", "0.05"},
		{"0", "0"},
		{"0.0", "0"},
		{"12.50", "0.125"},
		{".5", "0.005"},
		{"5.", "0.05"},
		{"1234.5", "12.345"},
		{"007", "0.07"},
		{"0.1", "0.001"},
		{"1000", "10"},
		{"0.30000000000000004", "0.0030000000000000004"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := shiftLeft2(tt.input); got != tt.want {
				t.Errorf("shiftLeft2(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRelativeMacro(t *testing.T) {
	if m, ok := RelativeMacro("col"); !ok || m != `\columnwidth` {
		t.Errorf("RelativeMacro(col) = %q, %v", m, ok)
	}
	if _, ok := RelativeMacro("pt"); ok {
		t.Error("RelativeMacro(pt) found an entry")
	}
	if !IsNativeUnit("pt") || IsNativeUnit("col") {
		t.Error("IsNativeUnit table mismatch")
	}
}

func BenchmarkNormalize(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _, _ = Normalize("-30.5col%")
	}
}
