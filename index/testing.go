package index

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"go.uber.org/zap"
)

// Document is a field→value mapping to load into an in-memory index.
// The library's document shape uses the fields text, reference, topics,
// title, filePath, segment, and isPdf, but any fields are accepted.
type Document struct {
	ID     string
	Fields map[string]interface{}
}

// NewMemHandle builds an in-memory index holding the given documents
// and returns a read handle to it. Intended for tests and embedded
// use; the production index is built by a separate ingestion pipeline
// and opened from disk with Open.
func NewMemHandle(docs ...Document) (*Handle, error) {
	idx, err := bleve.NewMemOnly(LibraryMapping())
	if err != nil {
		return nil, fmt.Errorf("create in-memory index: %w", err)
	}

	batch := idx.NewBatch()
	for _, doc := range docs {
		if err := batch.Index(doc.ID, doc.Fields); err != nil {
			return nil, fmt.Errorf("index document %s: %w", doc.ID, err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		return nil, fmt.Errorf("commit batch: %w", err)
	}

	return &Handle{idx: idx, logger: zap.NewNop()}, nil
}

// LibraryMapping returns the index mapping the library's documents are
// indexed with: the default dynamic mapping, which analyzes text with
// the standard analyzer (Unicode-aware, so Hebrew terms tokenize) and
// stores field values for retrieval.
func LibraryMapping() mapping.IndexMapping {
	return bleve.NewIndexMapping()
}
