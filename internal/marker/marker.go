// Package marker recognizes markypond blocks in markdown text.
//
// A block starts with an opening marker line such as
//
//	{{markypond output_file="scale.png" output_fmt="png"}}
//
// and ends with a closing marker line such as {{/markypond}}. Brace counts are
// free and need not match between the two markers, and the keyword is case
// insensitive. A marker is only recognized when it sits entirely on one line.
package marker

import (
	"bytes"
	"regexp"
)

var (
	openPattern  = regexp.MustCompile(`(?i)^[ \t]*\{+[ \t]*markypond(.*?)\}+[ \t]*$`)
	closePattern = regexp.MustCompile(`(?i)^[ \t]*\{+[ \t]*/markypond[ \t]*\}+[ \t]*$`)
)

// MatchOpen reports whether line is an opening marker and returns its raw
// argument list. A trailing line terminator is ignored.
func MatchOpen(line []byte) (string, bool) {
	m := openPattern.FindSubmatch(trimEOL(line))
	if m == nil {
		return "", false
	}
	return string(m[1]), true
}

// MatchClose reports whether line is a closing marker. A trailing line
// terminator is ignored.
func MatchClose(line []byte) bool {
	return closePattern.Match(trimEOL(line))
}

// trimEOL strips one trailing "\n" or "\r\n".
func trimEOL(line []byte) []byte {
	line = bytes.TrimSuffix(line, []byte("\n"))
	return bytes.TrimSuffix(line, []byte("\r"))
}

// HasClose reports whether any line of src is a closing marker, ignoring
// leading blockquote markers. It is a lookahead only: whether that line closes
// a given block depends on the container the block sits in.
func HasClose(src []byte) bool {
	for _, l := range splitLines(src) {
		if MatchClose(bytes.TrimLeft(src[l.start:l.end], " \t>")) {
			return true
		}
	}
	return false
}
