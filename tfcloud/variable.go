package tfcloud

import (
	"context"
	"fmt"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	sigsyaml "sigs.k8s.io/yaml"
)

// Variable categories accepted by the API.
const (
	CategoryTerraform = "terraform"
	CategoryEnv       = "env"
)

// Variable is a workspace variable's value object. It is constructed once,
// validated, and only ever serialized into a create or update request body.
type Variable struct {
	Key         string `json:"key"`
	Value       string `json:"value"`
	Description string `json:"description"`
	Category    string `json:"category"`

	// HCL marks Value as a structured literal rather than a plain string.
	HCL bool `json:"hcl"`

	// Sensitive variables are write-only; the server never echoes the value
	// back in plaintext.
	Sensitive bool `json:"sensitive"`
}

// Validate checks the two-member category enum and the required key. Key
// uniqueness within a workspace is a server-side concern.
func (v Variable) Validate() error {
	err := validation.ValidateStruct(&v,
		validation.Field(&v.Key, validation.Required),
		validation.Field(&v.Category, validation.Required, validation.In(CategoryTerraform, CategoryEnv)),
	)
	if err != nil {
		return &ValidationError{Err: err}
	}

	return nil
}

// NewVariable fills defaults and validates the result before anything touches
// the network.
func NewVariable(v Variable) (*Variable, error) {
	if v.Category == "" {
		v.Category = CategoryTerraform
	}

	if err := v.Validate(); err != nil {
		return nil, err
	}

	return &v, nil
}

// ParseVariableRecords decodes a YAML or JSON document of variable records
// into validated Variable values. Decode and validation errors surface here,
// not at first use.
func ParseVariableRecords(b []byte) ([]*Variable, error) {
	records := []Variable{}

	if err := sigsyaml.Unmarshal(b, &records); err != nil {
		return nil, fmt.Errorf("failed to decode variable records: %w", err)
	}

	vars := make([]*Variable, len(records))

	for i, r := range records {
		v, err := NewVariable(r)
		if err != nil {
			return nil, err
		}

		vars[i] = v
	}

	return vars, nil
}

// WorkspaceVariable is a stored variable as returned by the API.
type WorkspaceVariable struct {
	ID         string   `json:"id"`
	Attributes Variable `json:"attributes"`
}

type variableRequest struct {
	Data variableData `json:"data"`
}

type variableData struct {
	ID         string   `json:"id,omitempty"`
	Type       string   `json:"type"`
	Attributes Variable `json:"attributes"`
}

type variablePayload struct {
	Data *WorkspaceVariable `json:"data"`
}

type variableListPayload struct {
	Data []*WorkspaceVariable `json:"data"`
}

// CreateVariable stores a variable against the workspace.
func (c *Client) CreateVariable(ctx context.Context, workspaceID string, v Variable) (*WorkspaceVariable, error) {
	if err := requireNonEmpty("workspace id", workspaceID); err != nil {
		return nil, err
	}

	validated, err := NewVariable(v)
	if err != nil {
		return nil, err
	}

	body := variableRequest{
		Data: variableData{
			Type:       "vars",
			Attributes: *validated,
		},
	}

	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/workspaces/%s/vars", workspaceID), body)
	if err != nil {
		return nil, err
	}

	payload := variablePayload{}

	if _, err := c.do(req, &payload); err != nil {
		return nil, err
	}

	return payload.Data, nil
}

// ListVariables returns the workspace's variables. Sensitive values come back
// empty.
func (c *Client) ListVariables(ctx context.Context, workspaceID string) ([]*WorkspaceVariable, error) {
	if err := requireNonEmpty("workspace id", workspaceID); err != nil {
		return nil, err
	}

	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/workspaces/%s/vars", workspaceID), nil)
	if err != nil {
		return nil, err
	}

	payload := variableListPayload{}

	if _, err := c.do(req, &payload); err != nil {
		return nil, err
	}

	return payload.Data, nil
}

// UpdateVariable replaces a stored variable's attributes.
func (c *Client) UpdateVariable(ctx context.Context, workspaceID string, variableID string, v Variable) (*WorkspaceVariable, error) {
	if err := requireNonEmpty("workspace id", workspaceID); err != nil {
		return nil, err
	}

	if err := requireNonEmpty("variable id", variableID); err != nil {
		return nil, err
	}

	validated, err := NewVariable(v)
	if err != nil {
		return nil, err
	}

	body := variableRequest{
		Data: variableData{
			ID:         variableID,
			Type:       "vars",
			Attributes: *validated,
		},
	}

	req, err := c.newRequest(ctx, http.MethodPatch, fmt.Sprintf("/workspaces/%s/vars/%s", workspaceID, variableID), body)
	if err != nil {
		return nil, err
	}

	payload := variablePayload{}

	if _, err := c.do(req, &payload); err != nil {
		return nil, err
	}

	return payload.Data, nil
}

// DeleteVariable deletes a stored variable and returns the transport response
// unmodified.
func (c *Client) DeleteVariable(ctx context.Context, workspaceID string, variableID string) ([]byte, error) {
	if err := requireNonEmpty("workspace id", workspaceID); err != nil {
		return nil, err
	}

	if err := requireNonEmpty("variable id", variableID); err != nil {
		return nil, err
	}

	return c.delete(ctx, fmt.Sprintf("/workspaces/%s/vars/%s", workspaceID, variableID))
}
