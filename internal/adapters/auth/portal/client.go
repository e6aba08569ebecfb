package portal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"procurement-timeline/internal/platform/httpclient"
	"procurement-timeline/internal/ports/auth"
)

var (
	ErrPortalNotConfigured = errors.New("portal client not configured")
	ErrPortalUnauthorized  = errors.New("portal unauthorized")
	ErrPortalUpstream      = errors.New("portal upstream error")
)

// Config del cliente del portal de autenticación (el SSO del órgano).
// BaseURL y APIKey normalmente vienen de la config del servicio.
type Config struct {
	BaseURL string
	APIKey  string

	// Opcional: header de la API key. Default "X-Api-Key".
	APIKeyHeader string

	Timeout time.Duration
}

type Client struct {
	http         *httpclient.Client
	apiKey       string
	apiKeyHeader string
	configured   bool
}

func NewClient(cfg Config) (*Client, error) {
	header := strings.TrimSpace(cfg.APIKeyHeader)
	if header == "" {
		header = "X-Api-Key"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	baseURL := strings.TrimSpace(cfg.BaseURL)
	hc, err := httpclient.NewWithBaseURL(baseURL, timeout)
	if err != nil {
		return nil, err
	}

	return &Client{
		http:         hc,
		apiKey:       strings.TrimSpace(cfg.APIKey),
		apiKeyHeader: header,
		configured:   baseURL != "" && strings.TrimSpace(cfg.APIKey) != "",
	}, nil
}

func (c *Client) IsConfigured() bool {
	return c != nil && c.configured
}

// VerifyToken llama al portal para verificar un token y traer claims.
func (c *Client) VerifyToken(ctx context.Context, token string) (auth.Claims, error) {
	if !c.IsConfigured() {
		return auth.Claims{}, ErrPortalNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrPortalUnauthorized
	}

	var out struct {
		UserID string `json:"user_id"`
		Email  string `json:"email"`
		OrgID  string `json:"org_id"`
	}

	err := c.http.DoJSON(ctx, http.MethodPost, "/v1/tokens/verify",
		map[string]string{
			c.apiKeyHeader:  c.apiKey,
			"Authorization": "Bearer " + token,
		},
		map[string]string{"token": token},
		&out,
	)
	if err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) {
			if httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden {
				return auth.Claims{}, ErrPortalUnauthorized
			}
			return auth.Claims{}, fmt.Errorf("%w: status=%d", ErrPortalUpstream, httpErr.StatusCode)
		}
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrPortalUpstream, err)
	}

	out.UserID = strings.TrimSpace(out.UserID)
	if out.UserID == "" {
		return auth.Claims{}, errors.New("portal response missing user_id")
	}

	return auth.Claims{
		UserID: out.UserID,
		Email:  strings.TrimSpace(out.Email),
		OrgID:  strings.TrimSpace(out.OrgID),
	}, nil
}
