package lyx

import (
	"fmt"
	"strings"

	"github.com/FocuswithJustin/lyxnorm/core/errors"
)

// Marker lines of the LyX grammar used by this package.
const (
	BeginInsetERT       = `\begin_inset ERT`
	EndInset            = `\end_inset`
	BeginPlainLayout    = `\begin_layout Plain Layout`
	BeginStandardLayout = `\begin_layout Standard`
	EndLayout           = `\end_layout`
	BeginPreamble       = `\begin_preamble`
	EndPreamble         = `\end_preamble`
	EndHeader           = `\end_header`
	TextClassPrefix     = `\textclass `

	// Backslash is the line that stands for one literal backslash in
	// inset text.
	Backslash = `\backslash`

	statusPrefix = "status "
)

// Inset status values.
const (
	StatusCollapsed = "collapsed"
	StatusOpen      = "open"
)

// formatMarkup is the ParseError format for structural problems.
const formatMarkup = "markup"

// markerKind returns the block kind of a begin/end marker line, e.g.
// "inset" for "\begin_inset ERT", and whether the line opens a block.
// ok is false for lines that are not markers.
func markerKind(line string) (kind string, begin bool, ok bool) {
	var rest string
	switch {
	case strings.HasPrefix(line, `\begin_`):
		rest, begin = line[len(`\begin_`):], true
	case strings.HasPrefix(line, `\end_`):
		rest = line[len(`\end_`):]
	default:
		return "", false, false
	}
	if i := strings.IndexByte(rest, ' '); i >= 0 {
		rest = rest[:i]
	}
	if rest == "" {
		return "", false, false
	}
	return rest, begin, true
}

// CheckBalanced verifies that every begin marker in lines has a matching
// end marker of the same kind, that markers nest properly, and that no
// line contains an embedded newline.
func CheckBalanced(lines []string) error {
	type open struct {
		kind string
		line int
	}
	var stack []open

	for i, line := range lines {
		if strings.ContainsAny(line, "\n\r") {
			return errors.NewParse(formatMarkup, "", fmt.Sprintf("line %d contains a line break", i+1))
		}
		kind, begin, ok := markerKind(line)
		if !ok {
			continue
		}
		if begin {
			stack = append(stack, open{kind: kind, line: i + 1})
			continue
		}
		if len(stack) == 0 {
			return errors.NewParse(formatMarkup, line, fmt.Sprintf("line %d closes a block that was never opened", i+1))
		}
		top := stack[len(stack)-1]
		if top.kind != kind {
			return errors.NewParse(formatMarkup, line,
				fmt.Sprintf("line %d closes %q but line %d opened %q", i+1, kind, top.line, top.kind))
		}
		stack = stack[:len(stack)-1]
	}

	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return errors.NewParse(formatMarkup, "", fmt.Sprintf("%q opened at line %d is never closed", top.kind, top.line))
	}
	return nil
}
