package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Pagination mirrors the server's pagination block on list responses.
type Pagination struct {
	Page       int `json:"page"`
	PerPage    int `json:"per_page"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// Page is one page of a listed collection. Pagination is nil when the server
// returned a legacy bare array; the items then form a single page.
type Page[T any] struct {
	Items      []T
	Pagination *Pagination
}

// DecodePage decodes a list response that is either a paginated object
// ({"<itemsKey>": [...], "pagination": {...}}) or a legacy bare array.
// Items is never nil on success.
func DecodePage[T any](data []byte, itemsKey string) (Page[T], error) {
	var page Page[T]

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &page.Items); err != nil {
			return page, fmt.Errorf("decoding %s list: %w", itemsKey, err)
		}
		if page.Items == nil {
			page.Items = []T{}
		}
		return page, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return page, fmt.Errorf("decoding %s response: %w", itemsKey, err)
	}

	if raw, ok := envelope[itemsKey]; ok {
		if err := json.Unmarshal(raw, &page.Items); err != nil {
			return page, fmt.Errorf("decoding %s items: %w", itemsKey, err)
		}
	}
	if page.Items == nil {
		page.Items = []T{}
	}

	if raw, ok := envelope["pagination"]; ok && !bytes.Equal(raw, []byte("null")) {
		var p Pagination
		if err := json.Unmarshal(raw, &p); err != nil {
			return page, fmt.Errorf("decoding %s pagination: %w", itemsKey, err)
		}
		page.Pagination = &p
	}

	return page, nil
}
