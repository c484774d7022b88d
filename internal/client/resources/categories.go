package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/bookgenie/bookgenie-cli/internal/client/api"
	"github.com/bookgenie/bookgenie-cli/internal/client/models"
)

// Categories is the category collection. The list endpoint predates
// pagination and returns a bare array; book_count in each row is computed
// server-side and never recomputed here.
type Categories struct {
	api      Doer
	validate *validator.Validate
}

func NewCategories(apiClient Doer) *Categories {
	return &Categories{api: apiClient, validate: validator.New()}
}

type CategoryForm struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description,omitempty"`
	Color       string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Icon        string `json:"icon,omitempty"`
}

func (c *Categories) List(ctx context.Context, token string) (models.Page[models.Category], error) {
	raw, err := c.api.Request(ctx, "/categories", api.Options{Token: token})
	if err != nil {
		return models.Page[models.Category]{}, err
	}
	return models.DecodePage[models.Category](raw, "categories")
}

func (c *Categories) Create(ctx context.Context, form CategoryForm, token string) (*models.Category, error) {
	if err := c.validate.Struct(form); err != nil {
		return nil, fmt.Errorf("invalid category: %w", err)
	}

	raw, err := c.api.Request(ctx, "/admin/categories", api.Options{Method: http.MethodPost, Token: token, Body: form})
	if err != nil {
		return nil, err
	}

	var created struct {
		Category *models.Category `json:"category"`
	}
	if err := json.Unmarshal(raw, &created); err != nil {
		return nil, fmt.Errorf("decoding category: %w", err)
	}
	if created.Category == nil {
		return &models.Category{Name: form.Name}, nil
	}
	return created.Category, nil
}

func (c *Categories) Update(ctx context.Context, id int64, form CategoryForm, token string) (map[string]any, error) {
	if err := c.validate.Struct(form); err != nil {
		return nil, fmt.Errorf("invalid category: %w", err)
	}
	raw, err := c.api.Request(ctx, fmt.Sprintf("/admin/categories/%d", id), api.Options{Method: http.MethodPut, Token: token, Body: form})
	if err != nil {
		return nil, err
	}
	return decodeConfirmation(raw)
}

func (c *Categories) Delete(ctx context.Context, id int64, token string) (map[string]any, error) {
	raw, err := c.api.Request(ctx, fmt.Sprintf("/admin/categories/%d", id), api.Options{Method: http.MethodDelete, Token: token})
	if err != nil {
		return nil, err
	}
	return decodeConfirmation(raw)
}
