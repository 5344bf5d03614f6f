package lyx

import (
	"strings"

	"github.com/FocuswithJustin/lyxnorm/core/encoding"
	"github.com/FocuswithJustin/lyxnorm/core/errors"
)

// ERTRequest describes raw LaTeX to embed as an ERT inset.
type ERTRequest struct {
	// Content holds the raw LaTeX. Several elements are joined as
	// successive source lines.
	Content []string `json:"content"`

	// Open sets the inset status to "open"; the default is "collapsed".
	Open bool `json:"open,omitempty"`

	// AsParagraph wraps the inset in its own Standard paragraph.
	AsParagraph bool `json:"as_paragraph,omitempty"`
}

// Status returns the inset status line value.
func (r ERTRequest) Status() string {
	if r.Open {
		return StatusOpen
	}
	return StatusCollapsed
}

// lineBreaks folds CRLF and bare CR line endings into LF.
var lineBreaks = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// Lines renders the request as a LyX line sequence.
func (r ERTRequest) Lines() []string {
	cmd := encoding.Transliterate(lineBreaks.Replace(strings.Join(r.Content, "\n")))
	frags := strings.Split(cmd, `\`)

	out := make([]string, 0, 2*len(frags)+14)
	if r.AsParagraph {
		out = append(out, BeginStandardLayout)
	}
	out = append(out,
		BeginInsetERT,
		statusPrefix+r.Status(),
		"",
		BeginPlainLayout,
		"",
		"",
	)

	last := len(frags) - 1
	for i, frag := range frags {
		if i > 0 {
			out = append(out, Backslash)
		}
		// The fragment before a leading backslash and the one after a
		// trailing backslash carry no text.
		if frag == "" && (i == 0 || i == last) {
			continue
		}
		if i == last {
			frag = strings.TrimSuffix(frag, "\n")
		}
		out = append(out, strings.Split(frag, "\n")...)
	}

	out = append(out, EndLayout, "", EndInset)
	if r.AsParagraph {
		out = append(out, "", "", EndLayout, "")
	}
	return out
}

// PutCmdInERT returns cmd wrapped in an ERT inset. open selects the
// "open" status instead of "collapsed"; asParagraph wraps the inset in a
// Standard paragraph so it can stand on its own in the body.
func PutCmdInERT(cmd string, open, asParagraph bool) []string {
	return ERTRequest{Content: []string{cmd}, Open: open, AsParagraph: asParagraph}.Lines()
}

// PutLinesInERT is PutCmdInERT for a command already broken across lines.
func PutLinesInERT(lines []string, open, asParagraph bool) []string {
	return ERTRequest{Content: lines, Open: open, AsParagraph: asParagraph}.Lines()
}

// ERTText returns the raw LaTeX held by the first ERT inset in lines.
// Within a Plain Layout paragraph, "\backslash" lines become backslashes,
// blank lines are dropped and the remaining lines are concatenated.
// Paragraphs are separated by newlines.
func ERTText(lines []string) (string, error) {
	start := -1
	for i, line := range lines {
		if line == BeginInsetERT {
			start = i
			break
		}
	}
	if start < 0 {
		return "", errors.NewNotFound("ERT inset", BeginInsetERT)
	}

	var (
		paras  []string
		cur    strings.Builder
		inPara bool
		depth  int
	)
	for _, line := range lines[start+1:] {
		switch {
		case line == EndInset && depth == 0:
			return strings.Join(paras, "\n"), nil
		case strings.HasPrefix(line, `\begin_inset`):
			depth++
		case line == EndInset:
			depth--
		case depth > 0:
			// Nested insets are not part of the raw text.
		case strings.HasPrefix(line, `\begin_layout`):
			inPara = true
			cur.Reset()
		case line == EndLayout:
			if inPara {
				paras = append(paras, cur.String())
			}
			inPara = false
		case !inPara:
			// Inset parameters such as the status line.
		case line == Backslash:
			cur.WriteByte('\\')
		case line == "":
		default:
			cur.WriteString(line)
		}
	}
	return "", errors.NewParse("ERT inset", "", "missing "+EndInset)
}
