package index

import (
	"context"
	"fmt"
	"time"

	"github.com/blevesearch/bleve/v2"
	bquery "github.com/blevesearch/bleve/v2/search/query"
)

// Searcher is a point-in-time read view over the index, used for one
// parse/execute/fetch cycle. Consistency is per execution: bleve pins
// an index snapshot for each search it runs.
type Searcher struct {
	idx bleve.Index
	at  time.Time
}

// At reports when the searcher was obtained.
func (s *Searcher) At() time.Time {
	return s.at
}

// Search executes q and returns up to limit hits in descending score
// order. A limit of zero or less yields no hits.
func (s *Searcher) Search(ctx context.Context, q bquery.Query, limit int) ([]Hit, error) {
	if limit <= 0 {
		return nil, nil
	}

	req := bleve.NewSearchRequestOptions(q, limit, 0, false)
	res, err := s.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	hits := make([]Hit, 0, len(res.Hits))
	for _, hit := range res.Hits {
		hits = append(hits, Hit{ID: hit.ID, Score: hit.Score})
	}
	return hits, nil
}

// Fetch retrieves the stored fields of a single document by its hit
// address. Missing documents are an error; missing fields are not,
// absent keys simply do not appear in the map.
func (s *Searcher) Fetch(ctx context.Context, id string) (map[string]interface{}, error) {
	q := bquery.NewDocIDQuery([]string{id})
	req := bleve.NewSearchRequestOptions(q, 1, 0, false)
	req.Fields = []string{"*"}

	res, err := s.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("fetch document %s: %w", id, err)
	}
	if len(res.Hits) == 0 {
		return nil, fmt.Errorf("fetch document %s: not found", id)
	}
	return res.Hits[0].Fields, nil
}
