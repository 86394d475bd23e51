// Package knowledge defines the optional RAG knowledge-base contract
// (spec.md §6). Embedding back-ends and vector stores are external
// collaborators, out of scope for the core.
package knowledge

import "context"

// Document is a unit of content indexed into a Base.
type Document struct {
	ID       string
	Text     string
	Metadata map[string]any
}

// Result is a single ranked retrieval hit.
type Result struct {
	Document Document
	Score    float64
}

// RetrieveConfig bounds a single retrieval call.
type RetrieveConfig struct {
	Limit          int
	ScoreThreshold float64
}

// Base is the knowledge-base contract used by RAG integration (spec.md
// §4.3: GENERIC and AGENTIC modes).
type Base interface {
	AddDocuments(ctx context.Context, docs []Document) error
	Retrieve(ctx context.Context, query string, cfg RetrieveConfig) ([]Result, error)
}
