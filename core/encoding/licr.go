// Package encoding provides the transliteration of non-ASCII text into
// LaTeX internal character representation (LICR) escape sequences.
package encoding

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// licrTable maps precomposed characters to their LaTeX escape sequence.
// Only accented Latin letters, ligatures and a handful of text symbols
// are covered; everything else passes through unchanged.
var licrTable = map[rune]string{
	// Latin-1 supplement symbols
	'\u00a0': `~`,
	'¡':      "!`",
	'£':      `\pounds{}`,
	'§':      `\S{}`,
	'©':      `\copyright{}`,
	'«':      `\guillemotleft{}`,
	'®':      `\textregistered{}`,
	'°':      `\textdegree{}`,
	'¶':      `\P{}`,
	'·':      `\textperiodcentered{}`,
	'»':      `\guillemotright{}`,
	'¿':      "?`",

	// Latin-1 supplement letters
	'À': "\\`{A}", 'Á': `\'{A}`, 'Â': `\^{A}`, 'Ã': `\~{A}`, 'Ä': `\"{A}`, 'Å': `\AA{}`,
	'Æ': `\AE{}`, 'Ç': `\c{C}`,
	'È': "\\`{E}", 'É': `\'{E}`, 'Ê': `\^{E}`, 'Ë': `\"{E}`,
	'Ì': "\\`{I}", 'Í': `\'{I}`, 'Î': `\^{I}`, 'Ï': `\"{I}`,
	'Ð': `\DH{}`, 'Ñ': `\~{N}`,
	'Ò': "\\`{O}", 'Ó': `\'{O}`, 'Ô': `\^{O}`, 'Õ': `\~{O}`, 'Ö': `\"{O}`, 'Ø': `\O{}`,
	'Ù': "\\`{U}", 'Ú': `\'{U}`, 'Û': `\^{U}`, 'Ü': `\"{U}`,
	'Ý': `\'{Y}`, 'Þ': `\TH{}`, 'ß': `\ss{}`,
	'à': "\\`{a}", 'á': `\'{a}`, 'â': `\^{a}`, 'ã': `\~{a}`, 'ä': `\"{a}`, 'å': `\aa{}`,
	'æ': `\ae{}`, 'ç': `\c{c}`,
	'è': "\\`{e}", 'é': `\'{e}`, 'ê': `\^{e}`, 'ë': `\"{e}`,
	'ì': "\\`{\\i}", 'í': `\'{\i}`, 'î': `\^{\i}`, 'ï': `\"{\i}`,
	'ð': `\dh{}`, 'ñ': `\~{n}`,
	'ò': "\\`{o}", 'ó': `\'{o}`, 'ô': `\^{o}`, 'õ': `\~{o}`, 'ö': `\"{o}`, 'ø': `\o{}`,
	'ù': "\\`{u}", 'ú': `\'{u}`, 'û': `\^{u}`, 'ü': `\"{u}`,
	'ý': `\'{y}`, 'þ': `\th{}`, 'ÿ': `\"{y}`,

	// Latin Extended-A
	'Ā': `\={A}`, 'ā': `\={a}`, 'Ă': `\u{A}`, 'ă': `\u{a}`, 'Ą': `\k{A}`, 'ą': `\k{a}`,
	'Ć': `\'{C}`, 'ć': `\'{c}`, 'Č': `\v{C}`, 'č': `\v{c}`,
	'Ď': `\v{D}`, 'ď': `\v{d}`, 'Đ': `\DJ{}`, 'đ': `\dj{}`,
	'Ē': `\={E}`, 'ē': `\={e}`, 'Ė': `\.{E}`, 'ė': `\.{e}`, 'Ę': `\k{E}`, 'ę': `\k{e}`,
	'Ě': `\v{E}`, 'ě': `\v{e}`,
	'Ğ': `\u{G}`, 'ğ': `\u{g}`, 'Ģ': `\c{G}`, 'ģ': `\c{g}`,
	'Ī': `\={I}`, 'ī': `\={\i}`, 'Į': `\k{I}`, 'į': `\k{i}`, 'İ': `\.{I}`, 'ı': `\i{}`,
	'Ķ': `\c{K}`, 'ķ': `\c{k}`,
	'Ĺ': `\'{L}`, 'ĺ': `\'{l}`, 'Ļ': `\c{L}`, 'ļ': `\c{l}`, 'Ľ': `\v{L}`, 'ľ': `\v{l}`,
	'Ł': `\L{}`, 'ł': `\l{}`,
	'Ń': `\'{N}`, 'ń': `\'{n}`, 'Ņ': `\c{N}`, 'ņ': `\c{n}`, 'Ň': `\v{N}`, 'ň': `\v{n}`,
	'Ŋ': `\NG{}`, 'ŋ': `\ng{}`,
	'Ō': `\={O}`, 'ō': `\={o}`, 'Ő': `\H{O}`, 'ő': `\H{o}`, 'Œ': `\OE{}`, 'œ': `\oe{}`,
	'Ŕ': `\'{R}`, 'ŕ': `\'{r}`, 'Ř': `\v{R}`, 'ř': `\v{r}`,
	'Ś': `\'{S}`, 'ś': `\'{s}`, 'Ş': `\c{S}`, 'ş': `\c{s}`, 'Š': `\v{S}`, 'š': `\v{s}`,
	'Ţ': `\c{T}`, 'ţ': `\c{t}`, 'Ť': `\v{T}`, 'ť': `\v{t}`,
	'Ū': `\={U}`, 'ū': `\={u}`, 'Ů': `\r{U}`, 'ů': `\r{u}`, 'Ű': `\H{U}`, 'ű': `\H{u}`,
	'Ų': `\k{U}`, 'ų': `\k{u}`,
	'Ÿ': `\"{Y}`,
	'Ź': `\'{Z}`, 'ź': `\'{z}`, 'Ż': `\.{Z}`, 'ż': `\.{z}`, 'Ž': `\v{Z}`, 'ž': `\v{z}`,

	// General punctuation
	'–': `\textendash{}`,
	'—': `\textemdash{}`,
	'‘': `\textquoteleft{}`,
	'’': `\textquoteright{}`,
	'“': `\textquotedblleft{}`,
	'”': `\textquotedblright{}`,
	'„': `\quotedblbase{}`,
	'†': `\dag{}`,
	'‡': `\ddag{}`,
	'…': `\ldots{}`,
	'€': `\euro{}`,
}

// LookupLICR returns the escape sequence for r, if it has one.
func LookupLICR(r rune) (string, bool) {
	s, ok := licrTable[r]
	return s, ok
}

// Transliterate replaces every character of s that has a LICR escape
// sequence with that sequence. Decomposed accents (base letter followed
// by combining marks) are matched through their NFC composition; text
// without a table entry is copied unchanged.
func Transliterate(s string) string {
	if isASCII(s) {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/2)

	for len(s) > 0 {
		n := norm.NFC.NextBoundaryInString(s, true)
		if n <= 0 {
			n = len(s)
		}
		seg := s[:n]
		s = s[n:]

		writeSegment(&b, seg)
	}
	return b.String()
}

// writeSegment transliterates a single NFC segment. A segment that does
// not compose to one table rune keeps its longest composable prefix and
// maps the remaining runes one at a time.
func writeSegment(b *strings.Builder, seg string) {
	if repl, ok := lookupComposed(seg); ok {
		b.WriteString(repl)
		return
	}
	for end := len(seg); end > 0; {
		_, size := utf8.DecodeLastRuneInString(seg[:end])
		end -= size
		if end == 0 {
			break
		}
		if repl, ok := lookupComposed(seg[:end]); ok {
			b.WriteString(repl)
			writeRunes(b, seg[end:])
			return
		}
	}
	writeRunes(b, seg)
}

func writeRunes(b *strings.Builder, s string) {
	for _, r := range s {
		if repl, ok := LookupLICR(r); ok {
			b.WriteString(repl)
			continue
		}
		b.WriteRune(r)
	}
}

// lookupComposed resolves s when its NFC form is a single rune.
func lookupComposed(s string) (string, bool) {
	r, size := utf8.DecodeRuneInString(s)
	if size == len(s) {
		return LookupLICR(r)
	}
	composed := norm.NFC.String(s)
	r, size = utf8.DecodeRuneInString(composed)
	if size != len(composed) {
		return "", false
	}
	return LookupLICR(r)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
