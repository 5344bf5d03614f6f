package length

import (
	"strings"

	"github.com/FocuswithJustin/lyxnorm/core/errors"
)

type gluePart struct {
	keyword string
	spec    Spec
}

// Glue converts a LyX glue length ("base+stretch-shrink") to LaTeX.
//
// Stretch and shrink are optional; "+-X" gives both the same value.
// Every component is normalized like Normalize, and relative is true when
// any of them is a percentage:
//
//	Glue("1pt+2pt-1pt")  -> false, "1pt plus 2pt minus 1pt"
//	Glue("12pt+-1mm")    -> false, "12pt plus 1mm minus 1mm"
//	Glue("2col%+1mm")    -> true, "0.02\columnwidth plus 1mm"
func Glue(s string) (relative bool, value string, err error) {
	g, err := glueParser.ParseString("", s)
	if err != nil {
		return false, "", errors.NewMalformedLength(s, err)
	}

	stretch, shrink := g.Stretch, g.Shrink
	if g.PlusMinus != nil {
		if shrink != nil {
			return false, "", errors.NewMalformedLength(s, nil)
		}
		stretch, shrink = g.PlusMinus, g.PlusMinus
	}

	parts := []gluePart{{spec: g.Base.spec()}}
	if stretch != nil {
		parts = append(parts, gluePart{keyword: "plus", spec: stretch.spec()})
	}
	if shrink != nil {
		parts = append(parts, gluePart{keyword: "minus", spec: shrink.spec()})
	}

	var b strings.Builder
	for _, p := range parts {
		latex, err := p.spec.LaTeX()
		if err != nil {
			return false, "", errors.NewUnknownUnit(p.spec.Unit, s, p.spec.Percent)
		}
		if p.keyword != "" {
			b.WriteString(" " + p.keyword + " ")
		}
		b.WriteString(latex)
		relative = relative || p.spec.Percent
	}
	return relative, b.String(), nil
}
