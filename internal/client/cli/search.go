package cli

import (
	"context"
	"fmt"
)

// Search runs a semantic search and renders the hits. A response flagged as
// stale lost the race against a newer query and is silently discarded.
func (a *App) Search(ctx context.Context, query string) error {
	results, stale, err := a.searcher.Search(ctx, a.token(), query, defaultTopK)
	if err != nil {
		a.fail("Search failed", err)
		return err
	}
	if stale {
		return nil
	}

	if len(results) == 0 {
		fmt.Fprintf(a.out, "No matches for %q.\n", query)
		return nil
	}

	for _, r := range results {
		book := r.Item()
		score := r.Score()
		if score <= 1 {
			// similarity scores come back as a 0..1 fraction
			score *= 100
		}
		fmt.Fprintf(a.out, "%4d  %-40s %s (%.0f%%)\n", book.ID, book.Title, book.Author, score)
	}
	fmt.Fprintf(a.out, "%d matches for %q\n", len(results), query)
	return nil
}
