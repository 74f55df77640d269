// Package wire implements the length-delimited request/response framing
// and operation dispatch table that sit in front of a stringspace.Engine.
//
// spec.md treats this transport as an external collaborator of the core
// engine, specified only by the operation table it must honor (prefix,
// substring, similar, fuzzy-subsequence, best-completions, insert,
// data-file). This package is the concrete, minimal realization of that
// table: it owns no search or ranking logic of its own.
package wire
