package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/bookgenie/bookgenie-cli/internal/client/api"
	"github.com/bookgenie/bookgenie-cli/internal/client/models"
)

// Searcher performs semantic searches with last-writer-wins sequencing:
// when responses arrive out of issuance order, the stale ones are flagged so
// the view keeps the results of the most recently issued query.
type Searcher struct {
	api Doer

	mu      sync.Mutex
	nextSeq uint64
	applied uint64
}

func NewSearcher(apiClient Doer) *Searcher {
	return &Searcher{api: apiClient}
}

// Search runs one query. The stale return is true when a search issued later
// has already completed; callers must then discard the results.
//
// Hits with a non-positive relevance score are dropped, matching the
// long-standing client behavior.
func (s *Searcher) Search(ctx context.Context, token, query string, topK int) (results []models.SearchResult, stale bool, err error) {
	if topK <= 0 {
		topK = 10
	}

	s.mu.Lock()
	s.nextSeq++
	seq := s.nextSeq
	s.mu.Unlock()

	body := map[string]any{"query": query, "top_k": topK}
	raw, err := s.api.Request(ctx, "/search", api.Options{Method: http.MethodPost, Token: token, Body: body})
	if err != nil {
		return nil, false, err
	}

	var resp models.SearchResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, false, fmt.Errorf("decoding search response: %w", err)
	}

	kept := make([]models.SearchResult, 0, len(resp.Results))
	for _, r := range resp.Results {
		if r.Score() > 0 {
			kept = append(kept, r)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if seq < s.applied {
		return kept, true, nil
	}
	s.applied = seq
	return kept, false, nil
}
