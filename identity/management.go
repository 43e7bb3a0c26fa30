package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"
)

// Role as reported by the identity provider's management API.
type Role struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
	TokenType   string `json:"token_type"`
}

// ManagementClient talks to the identity provider's management API. It owns
// an explicit {token, expiresAt} cache refreshed lazily via the
// client-credentials grant; inject it where needed rather than sharing a
// package-level singleton.
type ManagementClient struct {
	BaseURL string

	clientID     string
	clientSecret string
	httpClient   *http.Client

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

func NewManagementClient(domain, clientID, clientSecret string) *ManagementClient {
	return &ManagementClient{
		BaseURL:      "https://" + domain,
		clientID:     clientID,
		clientSecret: clientSecret,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
}

// GetValidToken returns the cached management token, fetching a fresh one if
// the cache is empty or expired. Expiry is recorded a minute early so a
// token is never used at the edge of its lifetime.
func (m *ManagementClient) GetValidToken(ctx context.Context) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.token != "" && time.Now().Before(m.expiresAt) {
		return m.token, nil
	}

	payload, err := json.Marshal(map[string]string{
		"client_id":     m.clientID,
		"client_secret": m.clientSecret,
		"audience":      m.BaseURL + "/api/v2/",
		"grant_type":    "client_credentials",
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.BaseURL+"/oauth/token", bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("management token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("management token request: unexpected status %d", resp.StatusCode)
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", fmt.Errorf("management token decode: %w", err)
	}

	m.token = tr.AccessToken
	m.expiresAt = time.Now().Add(time.Duration(tr.ExpiresIn)*time.Second - time.Minute)
	return m.token, nil
}

// GetUserRoles fetches the roles assigned to a user.
func (m *ManagementClient) GetUserRoles(ctx context.Context, userID string) ([]Role, error) {
	token, err := m.GetValidToken(ctx)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf("%s/api/v2/users/%s/roles", m.BaseURL, url.PathEscape(userID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching user roles: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching user roles: unexpected status %d", resp.StatusCode)
	}

	var roles []Role
	if err := json.NewDecoder(resp.Body).Decode(&roles); err != nil {
		return nil, fmt.Errorf("decoding user roles: %w", err)
	}
	return roles, nil
}
