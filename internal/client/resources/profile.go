package resources

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/bookgenie/bookgenie-cli/internal/client/api"
	"github.com/bookgenie/bookgenie-cli/internal/client/models"
)

// Profile covers the signed-in user's own record: viewing/updating profile
// fields and managing the avatar attachment.
type Profile struct {
	api Doer
}

func NewProfile(apiClient Doer) *Profile {
	return &Profile{api: apiClient}
}

type ProfileForm struct {
	FirstName     string `json:"firstName,omitempty"`
	LastName      string `json:"lastName,omitempty"`
	AcademicLevel string `json:"academicLevel,omitempty"`
	Department    string `json:"department,omitempty"`
}

func decodeUserPayload(raw json.RawMessage) (*models.User, error) {
	var detail struct {
		User *models.User `json:"user"`
	}
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	if detail.User != nil {
		return detail.User, nil
	}

	var user models.User
	if err := json.Unmarshal(raw, &user); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	return &user, nil
}

func (p *Profile) Get(ctx context.Context, token string) (*models.User, error) {
	raw, err := p.api.Request(ctx, "/user/profile", api.Options{Token: token})
	if err != nil {
		return nil, err
	}
	return decodeUserPayload(raw)
}

// Update saves profile fields and returns the server's refreshed record.
func (p *Profile) Update(ctx context.Context, form ProfileForm, token string) (*models.User, error) {
	raw, err := p.api.Request(ctx, "/user/profile", api.Options{Method: http.MethodPut, Token: token, Body: form})
	if err != nil {
		return nil, err
	}
	return decodeUserPayload(raw)
}

// UploadAvatar attaches a new avatar image for the signed-in user.
func (p *Profile) UploadAvatar(ctx context.Context, fileName string, content io.Reader, token string) (map[string]any, error) {
	raw, err := p.api.Upload(ctx, "/user/profile/avatar", token, "file", fileName, content)
	if err != nil {
		return nil, err
	}
	return decodeConfirmation(raw)
}

func (p *Profile) DeleteAvatar(ctx context.Context, token string) (map[string]any, error) {
	raw, err := p.api.Request(ctx, "/user/profile/avatar", api.Options{Method: http.MethodDelete, Token: token})
	if err != nil {
		return nil, err
	}
	return decodeConfirmation(raw)
}

// Analytics fetches the admin analytics summary.
func Analytics(ctx context.Context, apiClient Doer, token string) (*models.Analytics, error) {
	raw, err := apiClient.Request(ctx, "/admin/analytics", api.Options{Token: token})
	if err != nil {
		return nil, err
	}
	var a models.Analytics
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, fmt.Errorf("decoding analytics: %w", err)
	}
	return &a, nil
}
