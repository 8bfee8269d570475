package legalrights

import (
	"time"
)

// TitleSectionTitle is the section title carried by a document's title chunk.
const TitleSectionTitle = "标题"

// Chunk represents a piece of a document optimized for embedding and retrieval.
type Chunk struct {
	ID           string        `json:"id"`
	Content      string        `json:"content"`
	SourceURL    string        `json:"sourceUrl"`
	SectionTitle string        `json:"sectionTitle,omitempty"`
	Metadata     ChunkMetadata `json:"metadata"`

	// Embedding is set once during indexing and never mutated afterward.
	// It is persisted in the index vector file, not with the chunk record.
	Embedding []float32 `json:"-"`

	// Placeholder marks a chunk whose embedding could not be computed and
	// was replaced with a zero vector.
	Placeholder bool `json:"placeholder,omitempty"`
}

// ChunkMetadata contains contextual information about a chunk.
type ChunkMetadata struct {
	// Heading level of the enclosing section, 0 for the title chunk.
	Level int `json:"level"`

	// Position of the chunk among the pieces of its section.
	ChunkIndex  int `json:"chunkIndex"`
	TotalChunks int `json:"totalChunks"`

	IsTitle   bool      `json:"isTitle,omitempty"`
	ScrapedAt time.Time `json:"scrapedAt,omitzero"`

	// Extra holds free-form attributes such as the source category.
	Extra map[string]string `json:"extra,omitempty"`
}

// Validate returns an error if the chunk contains invalid fields.
func (c *Chunk) Validate() error {
	if c.ID == "" {
		return Errorf(EINVALID, "chunk ID required")
	}
	if c.Content == "" {
		return Errorf(EINVALID, "chunk content required")
	}
	return nil
}

// SearchResult represents a scored chunk.
type SearchResult struct {
	Chunk *Chunk  `json:"chunk"`
	Score float64 `json:"score"`
}
