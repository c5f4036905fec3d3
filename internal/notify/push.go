package notify

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/bytedance/sonic"
	"github.com/nearwave/nearwave/internal/setup/config"
	"go.uber.org/zap"
)

// TokenStore resolves the device token push messages are addressed to.
type TokenStore interface {
	GetToken(ctx context.Context, userID string) (string, error)
}

// pushMessage is the JSON body the push gateway expects.
type pushMessage struct {
	To    string            `json:"to"`
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data,omitempty"`
}

// PushClient delivers notifications through an Expo-compatible push gateway.
type PushClient struct {
	endpoint    string
	accessToken string
	httpClient  *http.Client
	tokens      TokenStore
	logger      *zap.Logger
}

// NewPushClient creates a push client from the push configuration.
func NewPushClient(cfg *config.Push, tokens TokenStore, logger *zap.Logger) *PushClient {
	return &PushClient{
		endpoint:    cfg.Endpoint,
		accessToken: cfg.AccessToken,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Millisecond,
		},
		tokens: tokens,
		logger: logger.Named("push"),
	}
}

// RequestPermission verifies the gateway is configured. Device-level
// permission prompts happen in the mobile client; a missing endpoint is
// the service-side equivalent of a denied permission.
func (c *PushClient) RequestPermission(_ context.Context) error {
	if c.endpoint == "" {
		return fmt.Errorf("%w: push gateway endpoint not configured", ErrPermissionDenied)
	}

	return nil
}

// Send delivers a notification to the user's registered device immediately.
func (c *PushClient) Send(ctx context.Context, userID string, notification Notification) error {
	token, err := c.tokens.GetToken(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to resolve device token: %w", err)
	}

	payload, err := sonic.Marshal(pushMessage{
		To:    token,
		Title: notification.Title,
		Body:  notification.Body,
		Data:  notification.Data,
	})
	if err != nil {
		return fmt.Errorf("failed to encode push message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build push request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.accessToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver push: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("push gateway returned status %d", resp.StatusCode)
	}

	c.logger.Debug("Delivered push notification",
		zap.String("userID", userID),
		zap.String("title", notification.Title))

	return nil
}
