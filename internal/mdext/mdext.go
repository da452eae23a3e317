// Package mdext is a goldmark extension that renders markypond blocks while
// goldmark parses the document, for hosts that convert Markdown with goldmark
// directly instead of running the text filter first.
package mdext

import (
	"bytes"
	"context"
	"strconv"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"git.home.luguber.info/inful/markypond/internal/htmltag"
	"git.home.luguber.info/inful/markypond/internal/marker"
	"git.home.luguber.info/inful/markypond/internal/markypond"
)

// Processor turns one block into its fragment. *markypond.Processor
// satisfies it.
type Processor interface {
	Process(ctx context.Context, args, payload string) (htmltag.Fragment, error)
}

// KindBlock is the node kind of a markypond block.
var KindBlock = ast.NewNodeKind("MarkypondBlock")

// Block is a markypond span. Its lines are the payload. A block whose
// container ends before its closing marker is rendered back as text.
type Block struct {
	ast.BaseBlock
	// Args is the argument list of the most recent opening marker.
	Args string
	// Line is the 1-based line number of the first opening marker.
	Line int

	opener []byte
	closed bool
}

// Closed reports whether the closing marker was seen inside the block's container.
func (b *Block) Closed() bool { return b.closed }

func (b *Block) Kind() ast.NodeKind { return KindBlock }
func (b *Block) IsRaw() bool        { return true }

func (b *Block) Dump(source []byte, level int) {
	ast.DumpHelper(b, source, level, map[string]string{
		"Args":   b.Args,
		"Line":   strconv.Itoa(b.Line),
		"Closed": strconv.FormatBool(b.closed),
	}, nil)
}

// Payload returns the block body without the line terminator preceding the
// closing marker.
func (b *Block) Payload(source []byte) string {
	var buf bytes.Buffer
	lines := b.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		buf.Write(seg.Value(source))
	}
	out := buf.Bytes()
	out = bytes.TrimSuffix(out, []byte("\n"))
	out = bytes.TrimSuffix(out, []byte("\r"))
	return string(out)
}

type blockParser struct{}

func (p *blockParser) Trigger() []byte { return []byte{'{'} }

func (p *blockParser) Open(_ ast.Node, reader text.Reader, _ parser.Context) (ast.Node, parser.State) {
	line, segment := reader.PeekLine()
	args, ok := marker.MatchOpen(line)
	if !ok {
		return nil, parser.NoChildren
	}
	// Openers with no closer anywhere after them stay ordinary text.
	if !marker.HasClose(reader.Source()[segment.Stop:]) {
		return nil, parser.NoChildren
	}
	lineNum, _ := reader.Position()
	opener := bytes.TrimRight(line, "\r\n")
	return &Block{Args: args, Line: lineNum + 1, opener: bytes.Clone(opener)}, parser.NoChildren
}

func (p *blockParser) Continue(node ast.Node, reader text.Reader, _ parser.Context) parser.State {
	line, segment := reader.PeekLine()
	if marker.MatchClose(line) {
		newline := 1
		if line[len(line)-1] != '\n' {
			newline = 0
		}
		reader.Advance(segment.Len() - newline)
		node.(*Block).closed = true
		return parser.Close
	}
	if args, ok := marker.MatchOpen(line); ok {
		node.(*Block).Args = args
	}
	node.Lines().Append(segment)
	reader.Advance(segment.Len() - 1)
	return parser.Continue | parser.NoChildren
}

func (p *blockParser) Close(ast.Node, text.Reader, parser.Context) {}

func (p *blockParser) CanInterruptParagraph() bool { return true }
func (p *blockParser) CanAcceptIndentedLine() bool { return true }

type nodeRenderer struct {
	ext *Extension
}

func (r *nodeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindBlock, r.render)
}

func (r *nodeRenderer) render(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	b := node.(*Block)
	if !b.closed {
		renderAsText(w, b, source)
		return ast.WalkSkipChildren, nil
	}
	frag, err := r.ext.proc.Process(r.ext.ctx, b.Args, b.Payload(source))
	if err != nil {
		return ast.WalkStop, &markypond.BlockError{Line: b.Line, Err: err}
	}
	_, _ = w.WriteString(frag.HTML())
	_ = w.WriteByte('\n')
	return ast.WalkSkipChildren, nil
}

// renderAsText writes an unclosed block as the paragraph its text would have
// formed.
func renderAsText(w util.BufWriter, b *Block, source []byte) {
	_, _ = w.WriteString("<p>")
	_, _ = w.Write(util.EscapeHTML(b.opener))
	if payload := b.Payload(source); payload != "" {
		_ = w.WriteByte('\n')
		_, _ = w.Write(util.EscapeHTML([]byte(payload)))
	}
	_, _ = w.WriteString("</p>\n")
}

// DefaultPriority is the parser and renderer priority used when none is given.
const DefaultPriority = 50

// Extension installs the markypond block parser and renderer.
type Extension struct {
	proc     Processor
	priority int
	ctx      context.Context
}

// Option configures an Extension.
type Option func(*Extension)

// WithContext sets the context passed to the processor for every block.
func WithContext(ctx context.Context) Option {
	return func(e *Extension) {
		if ctx != nil {
			e.ctx = ctx
		}
	}
}

// New returns an extension rendering blocks through proc. Lower priorities
// are tried first; zero selects DefaultPriority.
func New(proc Processor, priority int, opts ...Option) *Extension {
	if priority == 0 {
		priority = DefaultPriority
	}
	e := &Extension{proc: proc, priority: priority, ctx: context.Background()}
	for _, o := range opts {
		o(e)
	}
	return e
}

var _ goldmark.Extender = (*Extension)(nil)

// Extend implements goldmark.Extender.
func (e *Extension) Extend(md goldmark.Markdown) {
	md.Parser().AddOptions(
		parser.WithBlockParsers(
			util.Prioritized(&blockParser{}, e.priority),
		),
	)
	md.Renderer().AddOptions(
		renderer.WithNodeRenderers(
			util.Prioritized(&nodeRenderer{ext: e}, e.priority),
		),
	)
}
