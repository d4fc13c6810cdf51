package tfcloud

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

// OAuthClient is a stored VCS integration in an organization.
type OAuthClient struct {
	ID         string                `json:"id"`
	Attributes OAuthClientAttributes `json:"attributes"`
}

type OAuthClientAttributes struct {
	Name            string `json:"name"`
	ServiceProvider string `json:"service-provider"`
	HTTPURL         string `json:"http-url"`
}

// OAuthToken is the credential referenced by a workspace's VCS link.
type OAuthToken struct {
	ID         string               `json:"id"`
	Attributes OAuthTokenAttributes `json:"attributes"`
}

type OAuthTokenAttributes struct {
	CreatedAt           time.Time `json:"created-at"`
	ServiceProviderUser string    `json:"service-provider-user"`
}

type oauthClientListPayload struct {
	Data []*OAuthClient `json:"data"`
}

type oauthTokenListPayload struct {
	Data []*OAuthToken `json:"data"`
}

// ListOAuthClients returns the organization's VCS OAuth clients.
func (c *Client) ListOAuthClients(ctx context.Context, org string) ([]*OAuthClient, error) {
	org, err := c.organization(org)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/organizations/%s/oauth-clients", org), nil)
	if err != nil {
		return nil, err
	}

	payload := oauthClientListPayload{}

	if _, err := c.do(req, &payload); err != nil {
		return nil, err
	}

	return payload.Data, nil
}

// ListOAuthTokens returns the tokens belonging to an OAuth client.
func (c *Client) ListOAuthTokens(ctx context.Context, clientID string) ([]*OAuthToken, error) {
	if err := requireNonEmpty("OAuth client id", clientID); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/oauth-clients/%s/oauth-tokens", clientID), nil)
	if err != nil {
		return nil, err
	}

	payload := oauthTokenListPayload{}

	if _, err := c.do(req, &payload); err != nil {
		return nil, err
	}

	return payload.Data, nil
}

// getVCSClientByType looks for an OAuth client of the passed service provider
// type among the organization's VCS clients.
func (c *Client) getVCSClientByType(ctx context.Context, org string, vcsType string) (*OAuthClient, error) {
	list, err := c.ListOAuthClients(ctx, org)
	if err != nil {
		return nil, err
	}

	for _, v := range list {
		if v.Attributes.ServiceProvider == vcsType {
			return v, nil
		}
	}

	return nil, fmt.Errorf("no VCS client found of type %s", vcsType)
}

// GetVCSTokenIDByClientType returns an OAuth token ID for the passed VCS type.
func (c *Client) GetVCSTokenIDByClientType(ctx context.Context, org string, vcsType string) (string, error) {
	if err := requireNonEmpty("VCS type", vcsType); err != nil {
		return "", err
	}

	vcsClient, err := c.getVCSClientByType(ctx, org, vcsType)
	if err != nil {
		return "", err
	}

	tokens, err := c.ListOAuthTokens(ctx, vcsClient.ID)
	if err != nil {
		return "", err
	}

	if len(tokens) == 0 {
		return "", fmt.Errorf("no VCS tokens found for client %s:%s", vcsClient.Attributes.ServiceProvider, vcsClient.ID)
	}

	return tokens[0].ID, nil
}
