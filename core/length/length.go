// Package length normalizes LyX length specifications into LaTeX.
//
// A LyX length is a signed decimal magnitude followed by a unit, e.g.
// "11em" or "-0.4pt". A trailing percent marker makes the length relative
// to a reference dimension named by the unit: "30col%" is 30 percent of
// the column width and becomes "0.3\columnwidth" in LaTeX.
package length

import (
	"github.com/FocuswithJustin/lyxnorm/core/errors"
)

// Spec is a parsed length specification.
type Spec struct {
	Sign      string // "", "+" or "-"
	Magnitude string // decimal digits with an optional point, as written
	Unit      string // unit token without the percent marker
	Percent   bool   // whether the unit was followed by "%"
}

// Negative reports whether the spec carries a minus sign.
func (s Spec) Negative() bool {
	return s.Sign == "-"
}

// String reassembles the spec as it was written.
func (s Spec) String() string {
	out := s.Sign + s.Magnitude + s.Unit
	if s.Percent {
		out += "%"
	}
	return out
}

// relativeUnits maps percentage units to the LaTeX macro of the
// dimension they refer to.
var relativeUnits = map[string]string{
	"col":          `\columnwidth`,
	"text":         `\textwidth`,
	"page":         `\paperwidth`,
	"line":         `\linewidth`,
	"theight":      `\textheight`,
	"pheight":      `\paperheight`,
	"baselineskip": `\baselineskip`,
}

// nativeUnits are the absolute units LaTeX understands as written.
var nativeUnits = map[string]bool{
	"bp": true,
	"cc": true,
	"cm": true,
	"dd": true,
	"em": true,
	"ex": true,
	"in": true,
	"mm": true,
	"mu": true,
	"pc": true,
	"pt": true,
	"sp": true,
}

// RelativeMacro returns the LaTeX macro for a percentage unit.
func RelativeMacro(unit string) (string, bool) {
	m, ok := relativeUnits[unit]
	return m, ok
}

// IsNativeUnit reports whether unit is an absolute LaTeX unit.
func IsNativeUnit(unit string) bool {
	return nativeUnits[unit]
}

// Parse parses a single length specification without validating its unit.
func Parse(s string) (Spec, error) {
	g, err := lengthParser.ParseString("", s)
	if err != nil {
		return Spec{}, errors.NewMalformedLength(s, err)
	}
	return g.spec(), nil
}

// Normalize converts a length specification to its LaTeX form.
//
// Absolute lengths are returned unchanged with relative == false. For a
// percentage the magnitude is divided by 100 by shifting its decimal
// point and joined to the reference macro, so "-30.5col%" becomes
// "-0.305\columnwidth" with relative == true.
//
// The error is a *errors.UnitError when the unit is not known and a
// *errors.ParseError when s is not a length at all.
func Normalize(s string) (relative bool, value string, err error) {
	spec, err := Parse(s)
	if err != nil {
		return false, "", err
	}
	value, err = spec.LaTeX()
	if err != nil {
		return false, "", errors.NewUnknownUnit(spec.Unit, s, spec.Percent)
	}
	return spec.Percent, value, nil
}

// LaTeX renders the spec in LaTeX syntax.
func (s Spec) LaTeX() (string, error) {
	if !s.Percent {
		if !IsNativeUnit(s.Unit) {
			return "", errors.NewUnknownUnit(s.Unit, "", false)
		}
		return s.String(), nil
	}

	macro, ok := RelativeMacro(s.Unit)
	if !ok {
		return "", errors.NewUnknownUnit(s.Unit, "", true)
	}
	frac := shiftLeft2(s.Magnitude)
	if s.Negative() && frac != "0" {
		frac = "-" + frac
	}
	return frac + macro, nil
}
