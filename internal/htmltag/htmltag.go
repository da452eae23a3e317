// Package htmltag builds the HTML fragment that replaces a rendered block:
// an image for raster and vector output, a link for documents.
package htmltag

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"git.home.luguber.info/inful/markypond/internal/options"
)

// CSS classes applied to generated fragments.
const (
	ImageClass = "lilypond-img"
	LinkClass  = "lilypond-link"
)

// Kind is the fragment variant.
type Kind int

const (
	KindImage Kind = iota + 1
	KindLink
)

func (k Kind) String() string {
	switch k {
	case KindImage:
		return "image"
	case KindLink:
		return "link"
	default:
		return "unknown"
	}
}

var kindByFormat = map[options.Format]Kind{
	options.FormatPNG: KindImage,
	options.FormatSVG: KindImage,
	options.FormatPDF: KindLink,
}

// KindFor returns the fragment variant used for f.
func KindFor(f options.Format) (Kind, bool) {
	k, ok := kindByFormat[f]
	return k, ok
}

// UnsupportedTagError reports a format with no fragment variant.
type UnsupportedTagError struct {
	Format options.Format
}

func (e *UnsupportedTagError) Error() string {
	return fmt.Sprintf("no tag generator for output format %q", string(e.Format))
}

// Fragment references a published artifact.
type Fragment struct {
	Kind Kind
	// URL is the src of an image or the href of a link.
	URL string
	// Text is the link label; unused for images.
	Text string
}

// Generate returns the fragment for opts.
func Generate(opts options.Resolved) (Fragment, error) {
	kind, ok := KindFor(opts.OutputFmt)
	if !ok {
		return Fragment{}, &UnsupportedTagError{Format: opts.OutputFmt}
	}
	frag := Fragment{Kind: kind, URL: JoinURL(opts.BaseURL, opts.OutputFile)}
	if kind == KindLink {
		frag.Text = opts.LinkName
	}
	return frag, nil
}

// JoinURL strips trailing slashes from base and appends a single slash and
// path. path is used as is.
func JoinURL(base, path string) string {
	return strings.TrimRight(base, "/") + "/" + path
}

// HTML serializes the fragment. Attribute values and link text are escaped.
func (f Fragment) HTML() string {
	switch f.Kind {
	case KindImage:
		return startTag(atom.Img, ImageClass, "src", f.URL).String()
	case KindLink:
		var b strings.Builder
		b.WriteString(startTag(atom.A, LinkClass, "href", f.URL).String())
		b.WriteString(html.EscapeString(f.Text))
		b.WriteString(html.Token{Type: html.EndTagToken, DataAtom: atom.A, Data: atom.A.String()}.String())
		return b.String()
	default:
		return ""
	}
}

func (f Fragment) String() string { return f.HTML() }

func startTag(a atom.Atom, class, urlAttr, url string) html.Token {
	return html.Token{
		Type:     html.StartTagToken,
		DataAtom: a,
		Data:     a.String(),
		Attr: []html.Attribute{
			{Key: "class", Val: class},
			{Key: urlAttr, Val: url},
		},
	}
}
