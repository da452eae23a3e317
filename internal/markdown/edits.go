package markdown

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"slices"
)

// ErrOverlappingEdits is returned when two edits claim the same bytes.
var ErrOverlappingEdits = errors.New("invalid edits: overlapping ranges")

// Edit replaces source[Start:End] with Replacement. Offsets always refer to
// the original source; End is exclusive.
type Edit struct {
	Start       int
	End         int
	Replacement []byte
}

// ApplyEdits applies non-overlapping edits to source. Edits may be given in
// any order. Bytes outside every edit range are copied unchanged.
func ApplyEdits(source []byte, edits []Edit) ([]byte, error) {
	if len(edits) == 0 {
		return source, nil
	}

	sorted := slices.Clone(edits)
	slices.SortFunc(sorted, func(a, b Edit) int {
		if c := cmp.Compare(a.Start, b.Start); c != 0 {
			return c
		}
		return cmp.Compare(a.End, b.End)
	})

	grow := 0
	for i, e := range sorted {
		switch {
		case e.Start < 0 || e.End < 0:
			return nil, fmt.Errorf("invalid edit[%d]: negative range", i)
		case e.End < e.Start:
			return nil, fmt.Errorf("invalid edit[%d]: end before start", i)
		case e.End > len(source):
			return nil, fmt.Errorf("invalid edit[%d]: range out of bounds", i)
		case i > 0 && e.Start < sorted[i-1].End:
			return nil, ErrOverlappingEdits
		}
		grow += len(e.Replacement) - (e.End - e.Start)
	}

	var out bytes.Buffer
	out.Grow(len(source) + max(grow, 0))
	pos := 0
	for _, e := range sorted {
		out.Write(source[pos:e.Start])
		out.Write(e.Replacement)
		pos = e.End
	}
	out.Write(source[pos:])
	return out.Bytes(), nil
}
