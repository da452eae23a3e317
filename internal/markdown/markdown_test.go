package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestToHTML_GFMTable(t *testing.T) {
	src := []byte("| a | b |\n|---|---|\n| 1 | 2 |\n")

	out, err := ToHTML(New(DefaultOptions()), src)
	require.NoError(t, err)
	require.Contains(t, string(out), "<table>")

	out, err = ToHTML(New(Options{}), src)
	require.NoError(t, err)
	require.NotContains(t, string(out), "<table>")
}

func TestToHTML_RawHTML(t *testing.T) {
	src := []byte("<img class=\"lilypond-img\" src=\"/a.png\">\n")

	out, err := ToHTML(New(Options{Unsafe: true}), src)
	require.NoError(t, err)
	require.Contains(t, string(out), `<img class="lilypond-img" src="/a.png">`)

	out, err = ToHTML(New(Options{}), src)
	require.NoError(t, err)
	require.Contains(t, string(out), "raw HTML omitted")
}
