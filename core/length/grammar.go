package length

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// lengthGrammar is the participle grammar for a single length.
// Examples: "11em", "-0.4pt", "-30.5col%", "35baselineskip%", ".5in"
//
//nolint:govet // participle grammar tags are not standard struct tags
type lengthGrammar struct {
	Sign      string `@Sign?`
	Magnitude string `@Number`
	Unit      string `@Unit`
	Percent   bool   `@Percent?`
}

// componentGrammar is a glue stretch or shrink component, which takes its
// sign from the surrounding "+" or "-".
//
//nolint:govet // participle grammar tags are not standard struct tags
type componentGrammar struct {
	Magnitude string `@Number`
	Unit      string `@Unit`
	Percent   bool   `@Percent?`
}

// glueGrammar is the participle grammar for glue lengths.
// Examples: "1pt", "1pt+2pt", "1pt-1pt", "1pt+2pt-1pt", "12pt+-1mm"
//
//nolint:govet // participle grammar tags are not standard struct tags
type glueGrammar struct {
	Base      *lengthGrammar    `@@`
	PlusMinus *componentGrammar `( "+" "-" @@`
	Stretch   *componentGrammar `  | "+" @@ )?`
	Shrink    *componentGrammar `( "-" @@ )?`
}

// lengthLexer defines the tokens of LyX length specifications.
// Whitespace is not a token, so any space makes the input malformed.
var lengthLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `[0-9]+(?:\.[0-9]*)?|\.[0-9]+`},
	{Name: "Unit", Pattern: `[A-Za-z]+`},
	{Name: "Percent", Pattern: `%`},
	{Name: "Sign", Pattern: `[+\-]`},
})

var lengthParser = participle.MustBuild[lengthGrammar](
	participle.Lexer(lengthLexer),
)

var glueParser = participle.MustBuild[glueGrammar](
	participle.Lexer(lengthLexer),
	participle.UseLookahead(2),
)

func (g *lengthGrammar) spec() Spec {
	return Spec{Sign: g.Sign, Magnitude: g.Magnitude, Unit: g.Unit, Percent: g.Percent}
}

func (c *componentGrammar) spec() Spec {
	return Spec{Magnitude: c.Magnitude, Unit: c.Unit, Percent: c.Percent}
}
