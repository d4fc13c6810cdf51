package tfcloud

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// DefaultWorkingDirectory is applied when a workspace is created without one.
const DefaultWorkingDirectory = "/src"

// Workspace is a Terraform Cloud workspace as returned by the API.
type Workspace struct {
	ID         string              `json:"id"`
	Attributes WorkspaceAttributes `json:"attributes"`
}

type WorkspaceAttributes struct {
	Name              string   `json:"name"`
	WorkingDirectory  string   `json:"working-directory"`
	GlobalRemoteState bool     `json:"global-remote-state"`
	VCSRepo           *VCSRepo `json:"vcs-repo,omitempty"`
}

type VCSRepo struct {
	Identifier   string `json:"identifier"`
	OAuthTokenID string `json:"oauth-token-id"`
}

// WorkspaceCreateOptions holds caller-supplied fields for a new workspace.
// Name is required; the server enforces its character restrictions (letters,
// digits, - and _). Everything else has a fallback.
type WorkspaceCreateOptions struct {
	Name string

	// WorkingDirectory defaults to /src.
	WorkingDirectory string

	// VCSIdentifier is the org/repo (or org/project/_git/repo) path. When a
	// VCSTokenID is passed without an identifier, the configured VCS defaults
	// build one from the workspace name.
	VCSIdentifier string
	VCSTokenID    string

	// GlobalRemoteState defaults to true.
	GlobalRemoteState *bool
}

type workspaceCreateRequest struct {
	Data workspaceCreateData `json:"data"`
}

type workspaceCreateData struct {
	Type       string                    `json:"type"`
	Attributes workspaceCreateAttributes `json:"attributes"`
}

type workspaceCreateAttributes struct {
	Name              string   `json:"name"`
	WorkingDirectory  string   `json:"working-directory"`
	GlobalRemoteState bool     `json:"global-remote-state"`
	VCSRepo           *VCSRepo `json:"vcs-repo,omitempty"`
}

type workspacePayload struct {
	Data *Workspace `json:"data"`
}

type workspaceListPayload struct {
	Data []*Workspace `json:"data"`
}

// CreateWorkspace creates a workspace in the passed organization, falling
// back to the configured default organization when org is empty.
func (c *Client) CreateWorkspace(ctx context.Context, org string, opts WorkspaceCreateOptions) (*Workspace, error) {
	org, err := c.organization(org)
	if err != nil {
		return nil, err
	}

	if err := requireNonEmpty("workspace name", opts.Name); err != nil {
		return nil, err
	}

	attrs := workspaceCreateAttributes{
		Name:              opts.Name,
		WorkingDirectory:  opts.WorkingDirectory,
		GlobalRemoteState: true,
	}

	if attrs.WorkingDirectory == "" {
		attrs.WorkingDirectory = DefaultWorkingDirectory
	}

	if opts.GlobalRemoteState != nil {
		attrs.GlobalRemoteState = *opts.GlobalRemoteState
	}

	if opts.VCSTokenID != "" {
		identifier := opts.VCSIdentifier
		if identifier == "" {
			identifier = c.config.DefaultVCSIdentifier(opts.Name)
		}

		if identifier == "" {
			return nil, &ValidationError{Err: errors.New("a VCS repository identifier must be passed or resolvable from VCS defaults when a VCS token ID is passed")}
		}

		attrs.VCSRepo = &VCSRepo{
			Identifier:   identifier,
			OAuthTokenID: opts.VCSTokenID,
		}
	}

	body := workspaceCreateRequest{
		Data: workspaceCreateData{
			Type:       "workspaces",
			Attributes: attrs,
		},
	}

	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/organizations/%s/workspaces", org), body)
	if err != nil {
		return nil, err
	}

	payload := workspacePayload{}

	if _, err := c.do(req, &payload); err != nil {
		return nil, err
	}

	return payload.Data, nil
}

// ListWorkspaces returns all workspaces in the organization.
func (c *Client) ListWorkspaces(ctx context.Context, org string) ([]*Workspace, error) {
	org, err := c.organization(org)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/organizations/%s/workspaces", org), nil)
	if err != nil {
		return nil, err
	}

	payload := workspaceListPayload{}

	if _, err := c.do(req, &payload); err != nil {
		return nil, err
	}

	return payload.Data, nil
}

// GetWorkspaceID translates a workspace name to its id by listing the
// organization's workspaces and filtering client-side on an exact name match.
// No match returns "", not an error.
func (c *Client) GetWorkspaceID(ctx context.Context, org string, name string) (string, error) {
	if err := requireNonEmpty("workspace name", name); err != nil {
		return "", err
	}

	workspaces, err := c.ListWorkspaces(ctx, org)
	if err != nil {
		return "", err
	}

	for _, ws := range workspaces {
		if ws.Attributes.Name == name {
			return ws.ID, nil
		}
	}

	return "", nil
}

// DeleteWorkspace deletes a workspace by id and returns the transport
// response unmodified.
func (c *Client) DeleteWorkspace(ctx context.Context, id string) ([]byte, error) {
	if err := requireNonEmpty("workspace id", id); err != nil {
		return nil, err
	}

	return c.delete(ctx, fmt.Sprintf("/workspaces/%s", id))
}
