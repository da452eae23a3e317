package marker

import (
	"bytes"

	"git.home.luguber.info/inful/markypond/internal/options"
)

// Block is one recognized markypond span.
type Block struct {
	// Start and End delimit the span in the scanned input, End exclusive. The
	// span runs from the first byte of the opening marker line to the last byte
	// of the closing marker line; the closing line terminator is not included.
	Start int
	End   int

	// Line is the 1-based line number of the opening marker.
	Line int

	// Args is the raw argument list of the most recent opening marker.
	Args string

	// Source is the payload between the markers, exactly as it appears in the
	// input minus the line terminator preceding the closing marker.
	Source string
}

// Options parses the block's argument list.
func (b Block) Options() options.BlockOptions {
	return ParseArgs(b.Args)
}

type line struct {
	start int // first byte
	end   int // one past the last byte, terminator included
}

func splitLines(src []byte) []line {
	var out []line
	for pos := 0; pos < len(src); {
		i := bytes.IndexByte(src[pos:], '\n')
		if i < 0 {
			out = append(out, line{start: pos, end: len(src)})
			break
		}
		out = append(out, line{start: pos, end: pos + i + 1})
		pos += i + 1
	}
	return out
}

// Scan returns the blocks of input in document order.
//
// A closing marker without a preceding opening marker is ordinary text. A
// second opening marker before the closing one does not start a new block:
// its arguments replace the retained ones and its line becomes payload. An
// opening marker that is never closed yields no block.
func Scan(input []byte) []Block {
	var (
		blocks  []Block
		open    bool
		current Block
		payload int
	)
	for n, l := range splitLines(input) {
		text := input[l.start:l.end]
		if !open {
			if args, ok := MatchOpen(text); ok {
				open = true
				current = Block{Start: l.start, Line: n + 1, Args: args}
				payload = l.end
			}
			continue
		}
		if MatchClose(text) {
			current.End = l.start + len(trimEOL(text))
			current.Source = string(trimEOL(input[payload:l.start]))
			blocks = append(blocks, current)
			open = false
			continue
		}
		if args, ok := MatchOpen(text); ok {
			current.Args = args
		}
	}
	return blocks
}
