package legalrights

import (
	"strconv"
	"strings"
)

// Default chunking parameters, in characters.
const (
	DefaultChunkSize    = 512
	DefaultChunkOverlap = 50
)

// isSentenceEnd reports whether r ends a sentence for chunking purposes.
func isSentenceEnd(r rune) bool {
	switch r {
	case '.', '。', '!', '！', '?', '？', '\n':
		return true
	}
	return false
}

// ChunkText splits text into overlapping pieces of at most size characters.
//
// A window that does not reach the end of the text is cut right after the
// last sentence-ending character found in its second half, or at the raw
// window boundary when there is none. The next window starts overlap
// characters before the previous cut, and always past the previous start.
// Empty pieces are dropped. A size of zero or less disables splitting.
func ChunkText(text string, size, overlap int) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	runes := []rune(text)
	if size <= 0 || len(runes) <= size {
		return []string{text}
	}
	if overlap < 0 {
		overlap = 0
	}

	var chunks []string
	start := 0
	for start < len(runes) {
		end := start + size
		if end < len(runes) {
			floor := start + size/2
			for cut := end; cut > floor; cut-- {
				if isSentenceEnd(runes[cut-1]) {
					end = cut
					break
				}
			}
		} else {
			end = len(runes)
		}

		if piece := strings.TrimSpace(string(runes[start:end])); piece != "" {
			chunks = append(chunks, piece)
		}

		if end >= len(runes) {
			break
		}

		next := end - overlap
		if next <= start {
			next = end
		}
		start = next
	}

	return chunks
}

// Chunker converts section trees into flat, ordered lists of chunks.
type Chunker struct {
	Size    int
	Overlap int
}

// NewChunker returns a Chunker with the given size and overlap.
func NewChunker(size, overlap int) *Chunker {
	return &Chunker{Size: size, Overlap: overlap}
}

// Validate returns an error if the chunking parameters cannot make progress.
func (c *Chunker) Validate() error {
	if c.Size <= 0 {
		return Errorf(ECONFIG, "chunk size must be positive, got %d", c.Size)
	}
	if c.Overlap < 0 || c.Overlap >= c.Size {
		return Errorf(ECONFIG, "chunk overlap must be in [0, %d), got %d", c.Size, c.Overlap)
	}
	return nil
}

// ChunkSection chunks the subtree rooted at id. Chunk ids are the
// section title path joined with "/" under baseID, suffixed with
// "#chunk<i>". Each section's own chunks come before those of its
// children, children in order.
func (c *Chunker) ChunkSection(tree *SectionTree, id SectionID, sourceURL, baseID string) []*Chunk {
	var chunks []*Chunk
	seen := make(map[string]int)
	tree.Walk(id, func(v SectionVisit) {
		chunks = append(chunks, c.chunkNode(v, sourceURL, baseID, seen)...)
	})
	return chunks
}

// ChunkDocument chunks a structured document: a title chunk first when the
// document has a title, then every root section in order.
func (c *Chunker) ChunkDocument(doc *Document) []*Chunk {
	var chunks []*Chunk

	if title := strings.TrimSpace(doc.Title); title != "" {
		chunks = append(chunks, &Chunk{
			ID:           doc.URL + "#title",
			Content:      title,
			SourceURL:    doc.URL,
			SectionTitle: TitleSectionTitle,
			Metadata: ChunkMetadata{
				Level:       0,
				TotalChunks: 1,
				IsTitle:     true,
				ScrapedAt:   doc.ScrapedAt,
			},
		})
	}

	seen := make(map[string]int)
	doc.Sections.WalkAll(func(v SectionVisit) {
		chunks = append(chunks, c.chunkNode(v, doc.URL, doc.URL, seen)...)
	})

	if doc.Category != "" {
		for _, chunk := range chunks {
			chunk.Metadata.Extra = map[string]string{"category": doc.Category}
		}
	}

	return chunks
}

// ChunkDocuments chunks each document in order and concatenates the results.
func (c *Chunker) ChunkDocuments(docs []*Document) []*Chunk {
	var chunks []*Chunk
	for _, doc := range docs {
		chunks = append(chunks, c.ChunkDocument(doc)...)
	}
	return chunks
}

// chunkNode chunks the content of a single visited section. Repeated
// section paths within one document get numeric suffixes so chunk ids
// stay unique.
func (c *Chunker) chunkNode(v SectionVisit, sourceURL, baseID string, seen map[string]int) []*Chunk {
	node := v.Node
	if strings.TrimSpace(node.Content) == "" {
		return nil
	}

	sectionID := strings.Join(v.Path, "/")
	if baseID != "" {
		sectionID = baseID + "/" + sectionID
	}
	if n, ok := seen[sectionID]; ok {
		seen[sectionID] = n + 1
		sectionID = sectionID + "-" + strconv.Itoa(n)
	} else {
		seen[sectionID] = 1
	}

	pieces := ChunkText(node.Content, c.Size, c.Overlap)
	chunks := make([]*Chunk, 0, len(pieces))
	for i, piece := range pieces {
		chunks = append(chunks, &Chunk{
			ID:           sectionID + "#chunk" + strconv.Itoa(i),
			Content:      piece,
			SourceURL:    sourceURL,
			SectionTitle: node.Title,
			Metadata: ChunkMetadata{
				Level:       node.Level,
				ChunkIndex:  i,
				TotalChunks: len(pieces),
			},
		})
	}
	return chunks
}
