package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// FacebookProfile is the subset of Graph API profile fields the login flow
// needs.
type FacebookProfile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// FacebookClient fetches a user's profile from the Graph API using the access
// token the client obtained during its own Facebook login.
type FacebookClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewFacebookClient(baseURL string) *FacebookClient {
	return &FacebookClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    baseURL,
	}
}

// Profile returns the profile the access token grants access to. A token that
// does not belong to userID makes the Graph API reject the request, so a
// successful response proves the caller controls that account.
func (c *FacebookClient) Profile(ctx context.Context, userID, accessToken string) (*FacebookProfile, error) {
	endpoint := fmt.Sprintf("%s/%s?fields=id,name,email&access_token=%s",
		c.baseURL, url.PathEscape(userID), url.QueryEscape(accessToken))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build Graph API request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach Graph API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Graph API returned status %d", resp.StatusCode)
	}

	var profile FacebookProfile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode Graph API response: %w", err)
	}
	return &profile, nil
}
