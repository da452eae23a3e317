package mdext

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/markypond/internal/cache"
	"git.home.luguber.info/inful/markypond/internal/htmltag"
	"git.home.luguber.info/inful/markypond/internal/lilypond"
	"git.home.luguber.info/inful/markypond/internal/markdown"
	"git.home.luguber.info/inful/markypond/internal/marker"
	"git.home.luguber.info/inful/markypond/internal/markypond"
	"git.home.luguber.info/inful/markypond/internal/options"
	"git.home.luguber.info/inful/markypond/internal/pipeline"
)

type call struct {
	args, payload string
}

type recordingProcessor struct {
	calls []call
	err   error
}

func (r *recordingProcessor) Process(_ context.Context, args, payload string) (htmltag.Fragment, error) {
	r.calls = append(r.calls, call{args, payload})
	if r.err != nil {
		return htmltag.Fragment{}, r.err
	}
	return htmltag.Fragment{Kind: htmltag.KindImage, URL: "/x.png"}, nil
}

func convert(t *testing.T, proc Processor, src string) (string, error) {
	t.Helper()
	out, err := markdown.ToHTML(markdown.New(markdown.DefaultOptions(), New(proc, 0)), []byte(src))
	return string(out), err
}

func TestBlockReplacedByFragment(t *testing.T) {
	p := &recordingProcessor{}
	out, err := convert(t, p, "# Song\n\n{markypond output_file=\"x.png\"}\n{ c d e }\n{/markypond}\n\nDone.\n")
	require.NoError(t, err)
	require.Equal(t, "<h1>Song</h1>\n<img class=\"lilypond-img\" src=\"/x.png\">\n<p>Done.</p>\n", out)
	require.Equal(t, []call{{args: ` output_file="x.png"`, payload: "{ c d e }"}}, p.calls)
}

func TestPayloadKeepsInnerLines(t *testing.T) {
	p := &recordingProcessor{}
	_, err := convert(t, p, "{{{markypond a=\"1\"}}\n\\relative {\n\n  c'4 d\n}\n{{/markypond}}")
	require.NoError(t, err)
	require.Len(t, p.calls, 1)
	require.Equal(t, "\\relative {\n\n  c'4 d\n}", p.calls[0].payload)
}

func TestEmptyPayload(t *testing.T) {
	p := &recordingProcessor{}
	_, err := convert(t, p, "{markypond}\n{/markypond}\n")
	require.NoError(t, err)
	require.Equal(t, []call{{args: "", payload: ""}}, p.calls)
}

func TestInterruptsParagraph(t *testing.T) {
	p := &recordingProcessor{}
	out, err := convert(t, p, "Intro line\n{markypond}\n{ c }\n{/markypond}\n")
	require.NoError(t, err)
	require.Contains(t, out, "<p>Intro line</p>")
	require.Contains(t, out, `<img class="lilypond-img" src="/x.png">`)
}

func TestNestedOpenerUsesLatestArgs(t *testing.T) {
	p := &recordingProcessor{}
	_, err := convert(t, p, "{markypond a=\"1\"}\n{ c }\n{markypond a=\"2\"}\n{ d }\n{/markypond}\n")
	require.NoError(t, err)
	require.Len(t, p.calls, 1)
	require.Equal(t, ` a="2"`, p.calls[0].args)
	require.Equal(t, "{ c }\n{markypond a=\"2\"}\n{ d }", p.calls[0].payload)
}

func TestUnclosedMarkerIsText(t *testing.T) {
	p := &recordingProcessor{}
	out, err := convert(t, p, "{markypond output_file=\"a.png\"}\n{ c }\n")
	require.NoError(t, err)
	require.Empty(t, p.calls)
	require.Contains(t, out, "{markypond output_file=&quot;a.png&quot;}")
}

func TestSplitMarkerIsText(t *testing.T) {
	p := &recordingProcessor{}
	_, err := convert(t, p, "{markypond output_file=\"a.png\"\n}\n{ c }\n{/markypond}\n")
	require.NoError(t, err)
	require.Empty(t, p.calls)
}

func TestProcessorErrorStopsConversion(t *testing.T) {
	boom := errors.New("boom")
	_, err := convert(t, &recordingProcessor{err: boom}, "text\n\n{markypond}\nx\n{/markypond}\n")
	require.ErrorIs(t, err, boom)
	require.ErrorContains(t, err, "line 3")

	var blockErr *markypond.BlockError
	require.ErrorAs(t, err, &blockErr)
	require.Equal(t, 3, blockErr.Line)
}

func TestBlockInsideBlockquote(t *testing.T) {
	p := &recordingProcessor{}
	out, err := convert(t, p, "> {markypond a=\"1\"}\n> c d\n> {/markypond}\n")
	require.NoError(t, err)
	require.Equal(t, []call{{args: ` a="1"`, payload: "c d"}}, p.calls)
	require.Equal(t, "<blockquote>\n<img class=\"lilypond-img\" src=\"/x.png\">\n</blockquote>\n", out)
}

func TestBlockquoteEndingBeforeCloserIsText(t *testing.T) {
	p := &recordingProcessor{}
	out, err := convert(t, p, "> {markypond a=\"1\"}\n> c d\n\ntext\n{/markypond}\n")
	require.NoError(t, err)
	require.Empty(t, p.calls)
	require.Equal(t, "<blockquote>\n<p>{markypond a=&quot;1&quot;}\nc d</p>\n</blockquote>\n<p>text\n{/markypond}</p>\n", out)
}

// goldmark strips list item indentation before the block parser sees the
// lines, while the text filter works on raw text. The two paths therefore key
// the cache differently for blocks nested in list items.
func TestListItemPayloadIsDedented(t *testing.T) {
	src := "- item\n\n  {markypond}\n  c d\n  {/markypond}\n"
	p := &recordingProcessor{}
	_, err := convert(t, p, src)
	require.NoError(t, err)
	require.Equal(t, []call{{args: "", payload: "c d"}}, p.calls)

	blocks := marker.Scan([]byte(src))
	require.Len(t, blocks, 1)
	require.Equal(t, "  c d", blocks[0].Source)
}

// The goldmark path and the text filter must hash the same payload bytes.
func TestSharesCacheWithTextFilter(t *testing.T) {
	dir := t.TempDir()
	var targets []string
	r := lilypond.RendererFunc(func(_ context.Context, req lilypond.Request) error {
		targets = append(targets, req.Target)
		return os.WriteFile(req.Target, []byte(req.Source), 0o600)
	})
	proc := markypond.NewProcessor(options.Defaults{
		CacheDir:  filepath.Join(dir, "cache"),
		OutputDir: filepath.Join(dir, "site"),
	}, markypond.WithRenderer(r))

	src := "{markypond output_file=\"s.svg\" output_fmt=\"svg\"}\n{ c d }\n{ e f }\n{/markypond}\n"
	out, err := convert(t, proc, src)
	require.NoError(t, err)
	require.Contains(t, out, `<img class="lilypond-img" src="/s.svg">`)
	require.Equal(t, []string{filepath.Join(dir, "cache", cache.Digest("{ c d }\n{ e f }")+".svg")}, targets)

	_, err = markypond.NewFilter(proc, markypond.DefaultPriority).Transform(t.Context(), []byte(src))
	require.NoError(t, err)
	require.Len(t, targets, 1, "text filter must hit the cache entry written by the extension")
}

func TestPipelineErrorsSurfaceFromConvert(t *testing.T) {
	dir := t.TempDir()
	proc := markypond.NewProcessor(options.Defaults{CacheDir: dir, OutputDir: dir},
		markypond.WithRenderer(lilypond.RendererFunc(func(context.Context, lilypond.Request) error {
			t.Fatal("renderer must not run")
			return nil
		})))

	_, err := convert(t, proc, "{markypond output_file=\"a\" output_fmt=\"qsdf\"}\nx\n{/markypond}\n")
	var unsupported *pipeline.UnsupportedFormatError
	require.ErrorAs(t, err, &unsupported)
}
