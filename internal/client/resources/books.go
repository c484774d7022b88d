package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"

	"github.com/bookgenie/bookgenie-cli/internal/client/api"
	"github.com/bookgenie/bookgenie-cli/internal/client/models"
)

// Books is the book collection. Listing is available to every authenticated
// user; mutations go through the admin endpoints.
type Books struct {
	api      Doer
	validate *validator.Validate
}

func NewBooks(apiClient Doer) *Books {
	return &Books{api: apiClient, validate: validator.New()}
}

// BookFilter holds the book-specific list filters.
type BookFilter struct {
	Genre         string
	AcademicLevel string
}

// BookForm is the create/update payload. Zero-valued optional fields are
// omitted so partial updates do not blank server fields.
type BookForm struct {
	Title             string   `json:"title" validate:"required"`
	Author            string   `json:"author" validate:"required"`
	Abstract          string   `json:"abstract,omitempty"`
	Genre             string   `json:"genre,omitempty"`
	AcademicLevel     string   `json:"academic_level,omitempty"`
	SubscriptionLevel string   `json:"subscription_level,omitempty" validate:"omitempty,oneof=free basic premium"`
	Tags              []string `json:"tags,omitempty"`
	Pages             int      `json:"pages,omitempty" validate:"omitempty,gt=0"`
}

// List fetches one page of books. A legacy bare-array response is wrapped as
// a single unpaginated page.
func (b *Books) List(ctx context.Context, token string, page, perPage int, filter BookFilter) (models.Page[models.Book], error) {
	q := ListQuery{Page: page, PerPage: perPage, Filters: url.Values{}}
	if filter.Genre != "" {
		q.Filters.Set("genre", filter.Genre)
	}
	if filter.AcademicLevel != "" {
		q.Filters.Set("academic_level", filter.AcademicLevel)
	}

	raw, err := b.api.Request(ctx, "/books"+q.Encode(), api.Options{Token: token})
	if err != nil {
		return models.Page[models.Book]{}, err
	}
	return models.DecodePage[models.Book](raw, "books")
}

// Get fetches the full record; list payloads may be summarized.
func (b *Books) Get(ctx context.Context, id int64, token string) (*models.Book, error) {
	raw, err := b.api.Request(ctx, fmt.Sprintf("/books/%d", id), api.Options{Token: token})
	if err != nil {
		return nil, err
	}
	var book models.Book
	if err := json.Unmarshal(raw, &book); err != nil {
		return nil, fmt.Errorf("decoding book: %w", err)
	}
	return &book, nil
}

// Create submits a new book and returns the created record, ID included.
// Attachments can only be uploaded after this resolves.
func (b *Books) Create(ctx context.Context, form BookForm, token string) (*models.Book, error) {
	if err := b.validate.Struct(form); err != nil {
		return nil, fmt.Errorf("invalid book: %w", err)
	}

	raw, err := b.api.Request(ctx, "/books", api.Options{Method: http.MethodPost, Token: token, Body: form})
	if err != nil {
		return nil, err
	}

	var created struct {
		Success bool         `json:"success"`
		Book    *models.Book `json:"book"`
		ID      int64        `json:"id"`
	}
	if err := json.Unmarshal(raw, &created); err != nil {
		return nil, fmt.Errorf("decoding create response: %w", err)
	}
	if created.Book != nil {
		return created.Book, nil
	}
	return &models.Book{ID: created.ID, Title: form.Title, Author: form.Author}, nil
}

// Update replaces mutable fields of an existing book. Callers re-list the
// affected page afterwards.
func (b *Books) Update(ctx context.Context, id int64, form BookForm, token string) (map[string]any, error) {
	if err := b.validate.Struct(form); err != nil {
		return nil, fmt.Errorf("invalid book: %w", err)
	}

	raw, err := b.api.Request(ctx, fmt.Sprintf("/admin/books/%d", id), api.Options{Method: http.MethodPut, Token: token, Body: form})
	if err != nil {
		return nil, err
	}
	return decodeConfirmation(raw)
}

func (b *Books) Delete(ctx context.Context, id int64, token string) (map[string]any, error) {
	raw, err := b.api.Request(ctx, fmt.Sprintf("/admin/books/%d", id), api.Options{Method: http.MethodDelete, Token: token})
	if err != nil {
		return nil, err
	}
	return decodeConfirmation(raw)
}

// UploadFile attaches the book's content file. The owning record must exist.
func (b *Books) UploadFile(ctx context.Context, id int64, fileName string, content io.Reader, token string) (map[string]any, error) {
	if id <= 0 {
		return nil, ErrNotCreated
	}
	raw, err := b.api.Upload(ctx, fmt.Sprintf("/books/%d/upload", id), token, "file", fileName, content)
	if err != nil {
		return nil, err
	}
	return decodeConfirmation(raw)
}

// UploadCover attaches the cover image. The owning record must exist.
func (b *Books) UploadCover(ctx context.Context, id int64, fileName string, content io.Reader, token string) (map[string]any, error) {
	if id <= 0 {
		return nil, ErrNotCreated
	}
	raw, err := b.api.Upload(ctx, fmt.Sprintf("/books/%d/upload-cover", id), token, "file", fileName, content)
	if err != nil {
		return nil, err
	}
	return decodeConfirmation(raw)
}

// RecordRead logs a download/read event. Best-effort: callers may ignore the
// error.
func (b *Books) RecordRead(ctx context.Context, id int64, token string) error {
	_, err := b.api.Request(ctx, fmt.Sprintf("/books/%d/read", id), api.Options{Method: http.MethodPost, Token: token})
	return err
}

// RecordInteraction logs an interaction event (view, like). Best-effort.
func (b *Books) RecordInteraction(ctx context.Context, id int64, kind string, token string) error {
	body := map[string]string{"interaction_type": kind}
	_, err := b.api.Request(ctx, fmt.Sprintf("/books/%d/interact", id), api.Options{Method: http.MethodPost, Token: token, Body: body})
	return err
}
