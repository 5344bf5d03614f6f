// Package lyx builds and inspects fragments of the LyX file format.
//
// A LyX document is handled as an ordered sequence of lines. Structural
// blocks are delimited by marker lines such as "\begin_inset ERT" and
// "\end_inset", or "\begin_layout Standard" and "\end_layout", and must
// nest properly.
//
// The main entry point is PutCmdInERT, which wraps a raw LaTeX command in
// an ERT inset (LyX's raw-markup inset), escaping every backslash onto its
// own "\backslash" line and transliterating non-ASCII characters to their
// LaTeX escape sequences. ERTText performs the reverse for the inset body.
//
// All functions are pure and safe for concurrent use.
package lyx
