package marker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const simpleSource = `\score{
  \relative c'' {
    % some notes
    c d e f g
  }
  \layout{}
}`

func TestMatchOpen(t *testing.T) {
	cases := []struct {
		line string
		args string
		ok   bool
	}{
		{`{markypond}`, "", true},
		{`{markypond output_file="a.png"}`, ` output_file="a.png"`, true},
		{`  { markypond output_file =  "lol.png" }  `, ` output_file =  "lol.png" `, true},
		{`{{{markypond output_file="lol.png" }}` + "\n", ` output_file="lol.png" `, true},
		{`{MARKYPOND output_file="LOL.png" }` + "\r\n", ` output_file="LOL.png" `, true},
		{`{/markypond}`, "", false},
		{`markypond output_file="a.png"}`, "", false},
		{`{markypond output_file="a.png"`, "", false},
		{`{markypond} trailing`, "", false},
		{`text {markypond}`, "", false},
	}
	for _, tc := range cases {
		args, ok := MatchOpen([]byte(tc.line))
		require.Equal(t, tc.ok, ok, "line %q", tc.line)
		require.Equal(t, tc.args, args, "line %q", tc.line)
	}
}

func TestMatchClose(t *testing.T) {
	require.True(t, MatchClose([]byte(`{/markypond}`)))
	require.True(t, MatchClose([]byte(`{/markypond    }`+"\n")))
	require.True(t, MatchClose([]byte(`  {{ /MarkyPond }}}  `)))
	require.False(t, MatchClose([]byte(`{/markypond`)))
	require.False(t, MatchClose([]byte(`{markypond}`)))
	require.False(t, MatchClose([]byte(`see {/markypond}`)))
}

func TestScan_SimpleBlock(t *testing.T) {
	input := "# Title\n\n{markypond output_file=\"out.svg\" output_fmt=\"svg\"}\n" + simpleSource + "\n{/markypond}\n\nafter\n"
	blocks := Scan([]byte(input))
	require.Len(t, blocks, 1)

	b := blocks[0]
	require.Equal(t, simpleSource, b.Source)
	require.Equal(t, 3, b.Line)
	require.Equal(t, "out.svg", b.Options()["output_file"])
	require.Equal(t, "svg", b.Options()["output_fmt"])
	require.Equal(t, "{markypond", input[b.Start:b.Start+len("{markypond")])
	require.Equal(t, "{/markypond}", input[b.End-len("{/markypond}"):b.End])
	require.Equal(t, "\n\nafter\n", input[b.End:])
}

func TestScan_BraceCountMismatch(t *testing.T) {
	input := "{{{markypond output_file=\"lol.png\" }}\n" + simpleSource + "\n{{/markypond}}"
	blocks := Scan([]byte(input))
	require.Len(t, blocks, 1)
	require.Equal(t, simpleSource, blocks[0].Source)
	require.Equal(t, len(input), blocks[0].End)
}

func TestScan_SplitMarkersAreText(t *testing.T) {
	cases := map[string]string{
		"open split":  "{\nmarkypond output_file=\"lol.png\" }\n" + simpleSource + "\n{/markypond}",
		"close split": "{markypond output_file=\"lol.png\" }\n" + simpleSource + "\n{/markypond\n}",
	}
	for name, input := range cases {
		t.Run(name, func(t *testing.T) {
			require.Empty(t, Scan([]byte(input)))
		})
	}
}

func TestScan_UnclosedBlockYieldsNothing(t *testing.T) {
	input := "{markypond output_file=\"a.png\"}\nc d e\n"
	require.Empty(t, Scan([]byte(input)))
}

func TestScan_StrayCloseIgnored(t *testing.T) {
	input := "{/markypond}\n{markypond output_file=\"a.png\"}\nc d e\n{/markypond}\n"
	blocks := Scan([]byte(input))
	require.Len(t, blocks, 1)
	require.Equal(t, "c d e", blocks[0].Source)
	require.Equal(t, len("{/markypond}\n"), blocks[0].Start)
}

func TestScan_NestedOpenKeepsLatestArgs(t *testing.T) {
	input := "{markypond output_file=\"outer.png\"}\nc\n{markypond output_file=\"inner.png\"}\nd\n{/markypond}\n"
	blocks := Scan([]byte(input))
	require.Len(t, blocks, 1)
	require.Equal(t, 0, blocks[0].Start)
	require.Equal(t, "inner.png", blocks[0].Options()["output_file"])
	require.Equal(t, "c\n{markypond output_file=\"inner.png\"}\nd", blocks[0].Source)
}

func TestScan_SeveralBlocks(t *testing.T) {
	input := "{markypond output_file=\"first.png\" }\n" + simpleSource + "\n{/markypond}\n" +
		"{markypond output_file=\"second.svg\" output_fmt=\"svg\" }\ndummy src\n{/markypond}"
	blocks := Scan([]byte(input))
	require.Len(t, blocks, 2)
	require.Equal(t, "first.png", blocks[0].Options()["output_file"])
	require.Equal(t, "second.svg", blocks[1].Options()["output_file"])
	require.Equal(t, "dummy src", blocks[1].Source)
	require.Less(t, blocks[0].End, blocks[1].Start)
}

func TestScan_EmptyPayload(t *testing.T) {
	blocks := Scan([]byte("{markypond output_file=\"a.png\"}\n{/markypond}\n"))
	require.Len(t, blocks, 1)
	require.Empty(t, blocks[0].Source)
}

func TestScan_CRLFPayloadKeepsInnerTerminators(t *testing.T) {
	input := "{markypond output_file=\"a.png\"}\r\nc d\r\ne f\r\n{/markypond}\r\n"
	blocks := Scan([]byte(input))
	require.Len(t, blocks, 1)
	require.Equal(t, "c d\r\ne f", blocks[0].Source)
	require.Equal(t, "\r\n", input[blocks[0].End:])
}

func TestHasClose(t *testing.T) {
	require.True(t, HasClose([]byte("a\n{/markypond}\nb")))
	require.False(t, HasClose([]byte("a\n{/markypond\n}\nb")))
	require.True(t, HasClose([]byte("> a\n> > {/markypond}\n")))
	require.False(t, HasClose([]byte("a {/markypond}\n")))
}
