// Package stringspace implements the StringSpace engine: a page-aligned,
// growable byte arena holding short UTF-8 strings, a content-sorted index
// over that arena, four primitive search algorithms (prefix, substring,
// Jaro-Winkler, fuzzy subsequence), and the BestCompletions ranker that
// fuses all four into a single relevance-ordered result set.
//
// The engine is not internally synchronized; callers that share an Engine
// across goroutines must serialize access themselves (see internal/wire).
package stringspace
