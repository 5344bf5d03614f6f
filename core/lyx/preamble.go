package lyx

import (
	"slices"
	"strings"

	"github.com/FocuswithJustin/lyxnorm/core/errors"
)

// AddedComment marks preamble code inserted by a conversion.
const AddedComment = "% Added by lyx2lyx"

// AddToPreamble returns a copy of the document header with code appended
// to the user preamble. If code already appears as a contiguous run in
// the preamble the header is returned unchanged. A missing preamble block
// is created after the \textclass line, or before \end_header when there
// is no \textclass line.
func AddToPreamble(header, code []string) ([]string, error) {
	out := slices.Clone(header)
	if len(code) == 0 {
		return out, nil
	}

	begin := slices.Index(header, BeginPreamble)
	if begin < 0 {
		at, err := preambleInsertPoint(header)
		if err != nil {
			return nil, err
		}
		block := make([]string, 0, len(code)+3)
		block = append(block, BeginPreamble, AddedComment)
		block = append(block, code...)
		block = append(block, EndPreamble)
		return slices.Insert(out, at, block...), nil
	}

	end := slices.Index(header[begin+1:], EndPreamble)
	if end < 0 {
		return nil, errors.NewParse("header", "", "missing "+EndPreamble)
	}
	end += begin + 1

	if containsRun(header[begin+1:end], code) {
		return out, nil
	}
	block := make([]string, 0, len(code)+1)
	block = append(block, AddedComment)
	block = append(block, code...)
	return slices.Insert(out, end, block...), nil
}

func preambleInsertPoint(header []string) (int, error) {
	for i, line := range header {
		if strings.HasPrefix(line, TextClassPrefix) {
			return i + 1, nil
		}
	}
	if i := slices.Index(header, EndHeader); i >= 0 {
		return i, nil
	}
	return 0, errors.NewNotFound("header", EndHeader)
}

// containsRun reports whether run occurs as a contiguous slice of lines.
func containsRun(lines, run []string) bool {
	if len(run) > len(lines) {
		return false
	}
	for i := 0; i+len(run) <= len(lines); i++ {
		if slices.Equal(lines[i:i+len(run)], run) {
			return true
		}
	}
	return false
}
