// Package importer reconciles existing Azure resources into local Terraform
// state by driving the terraform binary through init, import, and show.
package importer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	multierror "github.com/hashicorp/go-multierror"
)

// ErrUnsupportedResourceType is returned when the requested type is not in
// the supported azurerm set. The check runs before any filesystem or process
// activity.
var ErrUnsupportedResourceType = errors.New("unsupported resource type")

// ExternalToolError is a non-zero exit from the terraform binary, carrying
// the sub-command that failed. ExitCode is -1 when no exit status is
// available.
type ExternalToolError struct {
	Subcommand string
	ExitCode   int
	Err        error
}

func (e *ExternalToolError) Error() string {
	return fmt.Sprintf("terraform %s failed (exit %d): %s", e.Subcommand, e.ExitCode, e.Err)
}

func (e *ExternalToolError) Unwrap() error {
	return e.Err
}

func toolError(subcommand string, err error) *ExternalToolError {
	code := -1

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}

	return &ExternalToolError{Subcommand: subcommand, ExitCode: code, Err: err}
}

// Options controls the optional steps of an import cycle.
type Options struct {
	// ShowOutput streams the post-import rendering to Stdout.
	ShowOutput bool

	// RemoveState deletes the accumulated local state file after the cycle.
	RemoveState bool

	// Stdout receives streamed show output. Defaults to os.Stdout.
	Stdout io.Writer

	// Logger defaults to hclog.Default().
	Logger hclog.Logger
}

// Importer runs import cycles inside a single working directory. Cycles run
// strictly in sequence.
type Importer struct {
	tf      TerraformCLI
	workDir string
	opts    Options
	log     hclog.Logger
}

func New(tf TerraformCLI, workDir string, opts Options) *Importer {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	log := opts.Logger
	if log == nil {
		log = hclog.Default().Named("importer")
	}

	return &Importer{
		tf:      tf,
		workDir: workDir,
		opts:    opts,
		log:     log,
	}
}

// Run imports every resource identifier in arrival order. A failed cycle
// keeps its completed side effects and does not stop the remaining
// identifiers; failures are aggregated into the returned error.
func (im *Importer) Run(ctx context.Context, resourceType string, resourceIDs ...string) error {
	if _, ok := supportedResourceTypes[resourceType]; !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedResourceType, resourceType)
	}

	var result *multierror.Error

	for _, id := range resourceIDs {
		if err := im.runCycle(ctx, resourceType, id); err != nil {
			im.log.Error("import failed", "resource", id, "error", err)
			result = multierror.Append(result, fmt.Errorf("import of %q: %w", id, err))
		}
	}

	return result.ErrorOrNil()
}

func (im *Importer) runCycle(ctx context.Context, resourceType string, resourceID string) error {
	base := baseName(resourceID, resourceType)
	templatePath := filepath.Join(im.workDir, base+"-temp.tf")
	outputPath := filepath.Join(im.workDir, base+"-output.txt")

	// Reruns for the same (id, type) pair overwrite, never duplicate.
	removeIfExists(templatePath)
	removeIfExists(outputPath)

	label := resourceLabel(resourceID)

	if err := ioutil.WriteFile(templatePath, []byte(template(resourceType, label)), 0644); err != nil {
		return fmt.Errorf("failed to write import template: %w", err)
	}

	im.log.Info("initializing", "resource", resourceID)

	if err := im.tf.Init(ctx); err != nil {
		return toolError("init", err)
	}

	address := fmt.Sprintf("azurerm_%s.%s", resourceType, label)

	im.log.Info("importing", "address", address, "resource", resourceID)

	if err := im.tf.Import(ctx, address, resourceID); err != nil {
		return toolError("import", err)
	}

	if im.opts.ShowOutput {
		rendered, err := im.show(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintln(im.opts.Stdout, string(rendered))
	}

	rendered, err := im.show(ctx)
	if err != nil {
		return err
	}

	if err := ioutil.WriteFile(outputPath, rendered, 0644); err != nil {
		return fmt.Errorf("failed to write import output: %w", err)
	}

	removeIfExists(templatePath)

	if im.opts.RemoveState {
		removeIfExists(filepath.Join(im.workDir, "terraform.tfstate"))
	}

	return nil
}

func (im *Importer) show(ctx context.Context) ([]byte, error) {
	state, err := im.tf.Show(ctx)
	if err != nil {
		return nil, toolError("show", err)
	}

	b, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to render state: %w", err)
	}

	return b, nil
}

// baseName derives the file-name stem for an import cycle: path separators in
// the identifier become underscores, the resource type is appended.
func baseName(resourceID string, resourceType string) string {
	id := strings.Trim(resourceID, "/\\")
	id = strings.ReplaceAll(id, "/", "_")
	id = strings.ReplaceAll(id, "\\", "_")

	return id + "-" + resourceType
}

// resourceLabel turns an identifier into a valid Terraform resource label.
// Labels cannot start with a digit.
func resourceLabel(resourceID string) string {
	label := strings.Trim(resourceID, "/\\")
	label = strings.ReplaceAll(label, "/", "_")
	label = strings.ReplaceAll(label, "\\", "_")
	label = strings.ReplaceAll(label, ".", "_")
	label = strings.ReplaceAll(label, "-", "_")

	if label == "" || label[0] >= '0' && label[0] <= '9' {
		label = "r" + label
	}

	return label
}

// template declares an empty resource block of the computed type under a
// fixed azurerm provider block, ready for terraform import to fill in.
func template(resourceType string, label string) string {
	return fmt.Sprintf(`provider "azurerm" {
  features {}
}

resource "azurerm_%s" %q {}
`, resourceType, label)
}

// removeIfExists deletes best-effort; a missing file is not an error.
func removeIfExists(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		hclog.Default().Warn("failed to remove file", "path", path, "error", err)
	}
}
