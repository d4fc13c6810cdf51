package tfcloud

import (
	"context"
	"net/http"
	"time"
)

// Organization is a Terraform Cloud organization as returned by the API.
type Organization struct {
	ID         string                 `json:"id"`
	Attributes OrganizationAttributes `json:"attributes"`
}

type OrganizationAttributes struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created-at"`
}

type organizationCreateRequest struct {
	Data organizationCreateData `json:"data"`
}

type organizationCreateData struct {
	Type       string                       `json:"type"`
	Attributes organizationCreateAttributes `json:"attributes"`
}

type organizationCreateAttributes struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type organizationPayload struct {
	Data *Organization `json:"data"`
}

// CreateOrganization creates an organization. Name uniqueness is enforced
// server-side.
func (c *Client) CreateOrganization(ctx context.Context, name string, email string) (*Organization, error) {
	if err := requireNonEmpty("organization name", name); err != nil {
		return nil, err
	}

	if err := requireNonEmpty("organization email", email); err != nil {
		return nil, err
	}

	body := organizationCreateRequest{
		Data: organizationCreateData{
			Type: "organizations",
			Attributes: organizationCreateAttributes{
				Name:  name,
				Email: email,
			},
		},
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/organizations", body)
	if err != nil {
		return nil, err
	}

	payload := organizationPayload{}

	if _, err := c.do(req, &payload); err != nil {
		return nil, err
	}

	return payload.Data, nil
}

// organization resolves an organization name: explicit argument first, then
// the configured default.
func (c *Client) organization(name string) (string, error) {
	if name != "" {
		return name, nil
	}

	if c.config.Organization != "" {
		return c.config.Organization, nil
	}

	return "", &ValidationError{Err: errMissingOrganization}
}
