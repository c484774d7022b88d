// Package resources implements the paginated CRUD collections (books, users,
// categories, subscription requests) on top of the API client. Collections
// never patch cached state after a mutation; callers re-list so the server
// stays the single source of truth. API errors bubble up unwrapped.
package resources

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"strconv"

	"github.com/bookgenie/bookgenie-cli/internal/client/api"
)

// ErrNotCreated is returned when an attachment upload is attempted for a
// resource that has no server-assigned ID yet. Create must complete first.
var ErrNotCreated = errors.New("resource must be created before attachments can be uploaded")

// Doer is the API client surface collections depend on.
type Doer interface {
	Request(ctx context.Context, endpoint string, opts api.Options) (json.RawMessage, error)
	Upload(ctx context.Context, endpoint, token, fieldName, fileName string, content io.Reader) (json.RawMessage, error)
}

// ListQuery carries pagination plus resource-specific filters.
type ListQuery struct {
	Page    int
	PerPage int
	Filters url.Values
}

// Encode renders the query string ("" when empty), leading '?' included.
func (q ListQuery) Encode() string {
	values := url.Values{}
	for k, vs := range q.Filters {
		for _, v := range vs {
			if v != "" {
				values.Add(k, v)
			}
		}
	}
	if q.Page > 0 {
		values.Set("page", strconv.Itoa(q.Page))
	}
	if q.PerPage > 0 {
		values.Set("per_page", strconv.Itoa(q.PerPage))
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

// PageAfterDelete returns the page to re-fetch after deleting one item from
// a page holding itemsOnPage items. Removing the sole item of a page past
// the first lands on the previous page instead of an empty one.
func PageAfterDelete(page, itemsOnPage int) int {
	if page > 1 && itemsOnPage <= 1 {
		return page - 1
	}
	if page < 1 {
		return 1
	}
	return page
}

// decodeConfirmation parses a mutation confirmation payload ({"success":...,
// "message":..., ...}).
func decodeConfirmation(raw json.RawMessage) (map[string]any, error) {
	confirmation := map[string]any{}
	if len(raw) == 0 {
		return confirmation, nil
	}
	if err := json.Unmarshal(raw, &confirmation); err != nil {
		return nil, err
	}
	return confirmation, nil
}
