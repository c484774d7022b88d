package resources

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/bookgenie/bookgenie-cli/internal/client/api"
	"github.com/bookgenie/bookgenie-cli/internal/client/models"
)

// ErrRejectionMessageRequired is returned when a reject is attempted without
// an explanation for the user.
var ErrRejectionMessageRequired = errors.New("a rejection message is required")

// SubscriptionRequests is the admin queue of pending upgrade requests. The
// server only lists pending entries; approved/rejected requests drop out of
// the queue and are never re-queried.
type SubscriptionRequests struct {
	api Doer
}

func NewSubscriptionRequests(apiClient Doer) *SubscriptionRequests {
	return &SubscriptionRequests{api: apiClient}
}

func (s *SubscriptionRequests) List(ctx context.Context, token string) (models.Page[models.SubscriptionRequest], error) {
	raw, err := s.api.Request(ctx, "/admin/subscription-requests", api.Options{Token: token})
	if err != nil {
		return models.Page[models.SubscriptionRequest]{}, err
	}
	return models.DecodePage[models.SubscriptionRequest](raw, "requests")
}

// Approve grants the requested level. The queue must be re-listed afterwards.
func (s *SubscriptionRequests) Approve(ctx context.Context, id int64, token string) (map[string]any, error) {
	raw, err := s.api.Request(ctx, fmt.Sprintf("/admin/subscription-requests/%d/approve", id), api.Options{Method: http.MethodPost, Token: token})
	if err != nil {
		return nil, err
	}
	return decodeConfirmation(raw)
}

// Reject declines the request with a mandatory message shown to the user.
func (s *SubscriptionRequests) Reject(ctx context.Context, id int64, message, token string) (map[string]any, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrRejectionMessageRequired
	}
	body := map[string]string{"rejection_message": message}
	raw, err := s.api.Request(ctx, fmt.Sprintf("/admin/subscription-requests/%d/reject", id), api.Options{Method: http.MethodPost, Token: token, Body: body})
	if err != nil {
		return nil, err
	}
	return decodeConfirmation(raw)
}

// RequestUpgrade files an upgrade request on behalf of the signed-in student.
func (s *SubscriptionRequests) RequestUpgrade(ctx context.Context, level models.SubscriptionLevel, token string) (map[string]any, error) {
	body := map[string]string{"subscription_level": string(level)}
	raw, err := s.api.Request(ctx, "/user/subscription/request", api.Options{Method: http.MethodPost, Token: token, Body: body})
	if err != nil {
		return nil, err
	}
	return decodeConfirmation(raw)
}
