// Package coursechat answers natural-language questions about a corpus of
// course transcripts. It parses structured course documents into addressable
// chunks, indexes them for semantic search with fuzzy course-name resolution,
// and drives a bounded tool-calling protocol that lets the model decide
// whether and how to search before answering.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, mem/).
package coursechat

// Default configuration values consumed by the ingestion and retrieval
// pipeline. Callers may override any of these through the CLI surface.
const (
	// DefaultChunkSize is the maximum chunk body length in characters.
	DefaultChunkSize = 800

	// DefaultChunkOverlap is the number of trailing characters of a chunk
	// re-included at the start of the next chunk.
	DefaultChunkOverlap = 100

	// DefaultMaxResults is the number of chunks returned by a search.
	DefaultMaxResults = 5

	// DefaultMaxHistory is the number of exchange pairs retained per session.
	DefaultMaxHistory = 2
)
