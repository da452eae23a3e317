// Package markypond ties the block recognizer, the cache-and-render pipeline
// and the tag generator together.
//
// A Processor turns one block (argument list plus LilyPond payload) into an
// HTML fragment, rendering and publishing the artifact on the way. A Filter
// applies the Processor to every block of a Markdown document as a text
// transform, and Register installs that Filter in a transforms.Registry.
package markypond
