// Package normalize repairs environment-variable definition files whose
// values were split across several physical lines.
//
// The normalizer is a pure function over the document text. It walks the
// document line by line with a two-state machine:
//
//   - scanningForKey: lines are copied through until one starts, at column 0,
//     with an identifier ([A-Za-z0-9_]+) followed by '='.
//   - accumulatingValue: following lines are continuations of that value
//     until the next key line, a comment line, a blank line or the end of
//     the document.
//
// Every entry is re-emitted on a single line with its line breaks removed,
// surrounding whitespace trimmed and one trailing '%' marker dropped.
//
// # Usage
//
//	out := normalize.Normalize("FOO=hello\nworld%\nBAR=42\n")
//	// out == "FOO=helloworld\nBAR=42\n"
//
// Use [Apply] to also get the entries found and the number of markers removed.
//
// # Version
//
// Current version: 1.0.0
// Minimum compatible version: 1.0.0
//
// See version.go for version constants that can be used programmatically.
package normalize
