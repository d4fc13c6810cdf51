package importer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/hashicorp/go-version"
	install "github.com/hashicorp/hc-install"
	"github.com/hashicorp/hc-install/product"
	"github.com/hashicorp/hc-install/releases"
	"github.com/hashicorp/hc-install/src"
	"github.com/hashicorp/terraform-exec/tfexec"
	tfjson "github.com/hashicorp/terraform-json"
)

// TerraformCLI is the slice of terraform-exec the orchestrator needs.
// Satisfied by *tfexec.Terraform.
type TerraformCLI interface {
	Init(ctx context.Context, opts ...tfexec.InitOption) error
	Import(ctx context.Context, address string, id string, opts ...tfexec.ImportOption) error
	Show(ctx context.Context, opts ...tfexec.ShowOption) (*tfjson.State, error)
}

// NewTerraformExec installs the requested Terraform version and returns an
// executor rooted at workDir.
func NewTerraformExec(ctx context.Context, workDir string, tfVersion string) (*tfexec.Terraform, error) {
	v, err := version.NewVersion(tfVersion)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Terraform version: %w", err)
	}

	installer := install.NewInstaller()
	execPath, err := installer.Ensure(ctx, []src.Source{
		&releases.ExactVersion{
			Product: product.Terraform,
			Version: v,
		},
	})

	if err != nil {
		return nil, err
	}

	return tfexec.NewTerraform(workDir, execPath)
}

// ScratchDir creates a fresh working directory for one import session. The
// caller removes it when done.
func ScratchDir() (string, error) {
	dir := filepath.Join(os.TempDir(), fmt.Sprintf("tf-import-%s", uuid.New().String()))

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create working directory: %w", err)
	}

	return dir, nil
}
