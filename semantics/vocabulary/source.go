package vocabulary

import "time"

// Source is one ingested ontology document. Sources are immutable once
// created; re-adding a source under the same name replaces the whole record.
type Source struct {
	// Name uniquely identifies the source within a vocabulary. For
	// file-based ingestion this is the filename without extension.
	Name string `json:"name"`

	// Content is the raw ontology text.
	Content string `json:"content"`

	// Format is the serialization format name (see the rdf package).
	Format string `json:"format"`

	// Timestamp records when the source was ingested.
	Timestamp time.Time `json:"timestamp"`
}
