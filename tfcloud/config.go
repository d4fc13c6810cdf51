package tfcloud

import (
	"fmt"
	"os"
)

// DefaultAddress is the Terraform Cloud API root used when no address is
// configured.
const DefaultAddress = "https://app.terraform.io"

// ContentType is sent with every API request, per the JSON:API spec.
const ContentType = "application/vnd.api+json"

// Config carries everything a Client needs. It is resolved once and passed
// explicitly; the package keeps no global state.
type Config struct {
	// Address is the service root, e.g. https://app.terraform.io
	Address string

	// Token is the bearer credential. Required by NewClient.
	Token string

	// Organization is used when an operation is called without an explicit
	// organization name.
	Organization string

	// VCSOrganization and VCSProject build an Azure DevOps repository
	// identifier (org/project/_git/repo) when a workspace is created with a
	// VCS token but no explicit identifier.
	VCSOrganization string
	VCSProject      string
}

// ConfigFromEnv resolves a Config from the process environment. A missing
// token is tolerated here; NewClient enforces it.
func ConfigFromEnv() *Config {
	cfg := &Config{
		Address:         os.Getenv("TFE_ADDRESS"),
		Token:           os.Getenv("TFE_TOKEN"),
		Organization:    os.Getenv("TFE_ORGANIZATION"),
		VCSOrganization: os.Getenv("VCS_ORGANIZATION_NAME"),
		VCSProject:      os.Getenv("VCS_PROJECT_NAME"),
	}

	if cfg.Address == "" {
		cfg.Address = DefaultAddress
	}

	return cfg
}

// DefaultVCSIdentifier returns the fallback repository identifier for repo,
// or "" when no VCS defaults are configured.
func (c *Config) DefaultVCSIdentifier(repo string) string {
	if c.VCSOrganization == "" || c.VCSProject == "" {
		return ""
	}

	return fmt.Sprintf("%s/%s/_git/%s", c.VCSOrganization, c.VCSProject, repo)
}
