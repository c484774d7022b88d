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

// Users is the admin user-management collection.
type Users struct {
	api      Doer
	validate *validator.Validate
}

func NewUsers(apiClient Doer) *Users {
	return &Users{api: apiClient, validate: validator.New()}
}

// UserForm is the admin edit payload.
type UserForm struct {
	FirstName     string `json:"firstName,omitempty"`
	LastName      string `json:"lastName,omitempty"`
	AcademicLevel string `json:"academicLevel,omitempty"`
	Department    string `json:"department,omitempty"`
	Role          string `json:"role,omitempty" validate:"omitempty,oneof=student admin"`
}

func (u *Users) List(ctx context.Context, token string, page, perPage int) (models.Page[models.User], error) {
	q := ListQuery{Page: page, PerPage: perPage}
	raw, err := u.api.Request(ctx, "/admin/users"+q.Encode(), api.Options{Token: token})
	if err != nil {
		return models.Page[models.User]{}, err
	}
	return models.DecodePage[models.User](raw, "users")
}

func (u *Users) Get(ctx context.Context, id int64, token string) (*models.User, error) {
	raw, err := u.api.Request(ctx, fmt.Sprintf("/admin/users/%d", id), api.Options{Token: token})
	if err != nil {
		return nil, err
	}

	// The detail endpoint wraps the record: {"user": {...}, ...}
	var detail struct {
		User *models.User `json:"user"`
	}
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil, fmt.Errorf("decoding user: %w", err)
	}
	if detail.User != nil {
		return detail.User, nil
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("decoding user: %w", err)
	}
	return &user, nil
}

func (u *Users) Update(ctx context.Context, id int64, form UserForm, token string) (map[string]any, error) {
	if err := u.validate.Struct(form); err != nil {
		return nil, fmt.Errorf("invalid user: %w", err)
	}
	raw, err := u.api.Request(ctx, fmt.Sprintf("/admin/users/%d", id), api.Options{Method: http.MethodPut, Token: token, Body: form})
	if err != nil {
		return nil, err
	}
	return decodeConfirmation(raw)
}

func (u *Users) Delete(ctx context.Context, id int64, token string) (map[string]any, error) {
	raw, err := u.api.Request(ctx, fmt.Sprintf("/admin/users/%d", id), api.Options{Method: http.MethodDelete, Token: token})
	if err != nil {
		return nil, err
	}
	return decodeConfirmation(raw)
}

// UpdateSubscription sets a user's subscription level directly.
func (u *Users) UpdateSubscription(ctx context.Context, id int64, level models.SubscriptionLevel, token string) (map[string]any, error) {
	body := map[string]string{"subscription_level": string(level)}
	raw, err := u.api.Request(ctx, fmt.Sprintf("/admin/users/%d/subscription", id), api.Options{Method: http.MethodPut, Token: token, Body: body})
	if err != nil {
		return nil, err
	}
	return decodeConfirmation(raw)
}

// Traffic returns the per-user activity report as a loose payload; the CLI
// renders only a few headline numbers from it.
func (u *Users) Traffic(ctx context.Context, id int64, token string) (map[string]any, error) {
	raw, err := u.api.Request(ctx, fmt.Sprintf("/admin/users/%d/traffic", id), api.Options{Token: token})
	if err != nil {
		return nil, err
	}
	return decodeConfirmation(raw)
}
