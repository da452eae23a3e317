package markypond

import (
	"context"
	"fmt"

	"git.home.luguber.info/inful/markypond/internal/logfields"
	"git.home.luguber.info/inful/markypond/internal/markdown"
	"git.home.luguber.info/inful/markypond/internal/marker"
	"git.home.luguber.info/inful/markypond/internal/options"
	"git.home.luguber.info/inful/markypond/internal/transforms"
)

// Name identifies the filter in a transforms.Registry.
const Name = "markypond"

// DefaultPriority places the filter among the host's preprocessors.
const DefaultPriority = 50

// BlockError attributes a failure to the block that caused it.
type BlockError struct {
	Line int
	Err  error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("markypond block at line %d: %v", e.Line, e.Err)
}

func (e *BlockError) Unwrap() error { return e.Err }

// Filter replaces every closed block of a document with its fragment.
type Filter struct {
	proc     *Processor
	priority int
}

var _ transforms.Transformer = (*Filter)(nil)

// NewFilter returns a filter running proc at priority.
func NewFilter(proc *Processor, priority int) *Filter {
	return &Filter{proc: proc, priority: priority}
}

func (f *Filter) Name() string  { return Name }
func (f *Filter) Priority() int { return f.priority }

// Transform processes blocks in document order. The first failing block
// aborts the whole document; text outside blocks is copied unchanged.
func (f *Filter) Transform(ctx context.Context, input []byte) ([]byte, error) {
	blocks := marker.Scan(input)
	if len(blocks) == 0 {
		return input, nil
	}
	edits := make([]markdown.Edit, 0, len(blocks))
	for _, b := range blocks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		frag, err := f.proc.Process(ctx, b.Args, b.Source)
		if err != nil {
			return nil, &BlockError{Line: b.Line, Err: err}
		}
		edits = append(edits, markdown.Edit{Start: b.Start, End: b.End, Replacement: []byte(frag.HTML())})
	}
	f.proc.logger.Debug("Replaced markypond blocks", logfields.Blocks(len(blocks)))
	return markdown.ApplyEdits(input, edits)
}

// Settings configures Register.
type Settings struct {
	Defaults options.Defaults
	// Priority orders the filter in the registry; zero selects DefaultPriority.
	Priority int
}

// Register builds a Processor from s and opts, installs its Filter in reg
// and returns the Processor for hosts that also want the goldmark extension.
func Register(reg *transforms.Registry, s Settings, opts ...Option) *Processor {
	proc := NewProcessor(s.Defaults, opts...)
	priority := s.Priority
	if priority == 0 {
		priority = DefaultPriority
	}
	reg.Register(NewFilter(proc, priority))
	return proc
}
