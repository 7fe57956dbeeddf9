// Package fuzztests houses Go fuzz harnesses for the document pipeline
// (source -> scan -> directive parsing). They guard against panics, hangs
// and nondeterminism on arbitrary Markdown and directive content.
package fuzztests
