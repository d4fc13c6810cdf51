package importer

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/terraform-exec/tfexec"
	tfjson "github.com/hashicorp/terraform-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ImportArgs struct {
	Address string
	ID      string
}

type TestTFExec struct {
	State     *tfjson.State
	InitErr   error
	ImportErr error
	ShowErr   error

	InitCalls  int
	ShowCalls  int
	ImportArgs []*ImportArgs
}

func (tf *TestTFExec) Init(ctx context.Context, opts ...tfexec.InitOption) error {
	tf.InitCalls++
	return tf.InitErr
}

func (tf *TestTFExec) Import(ctx context.Context, address string, id string, opts ...tfexec.ImportOption) error {
	tf.ImportArgs = append(tf.ImportArgs, &ImportArgs{
		Address: address,
		ID:      id,
	})

	return tf.ImportErr
}

func (tf *TestTFExec) Show(ctx context.Context, opts ...tfexec.ShowOption) (*tfjson.State, error) {
	tf.ShowCalls++

	if tf.ShowErr != nil {
		return nil, tf.ShowErr
	}

	return tf.State, nil
}

func quietOptions(opts Options) Options {
	opts.Logger = hclog.NewNullLogger()

	if opts.Stdout == nil {
		opts.Stdout = bytes.NewBuffer(nil)
	}

	return opts
}

func testState() *tfjson.State {
	return &tfjson.State{
		Values: &tfjson.StateValues{
			RootModule: &tfjson.StateModule{
				Resources: []*tfjson.StateResource{
					{Address: "azurerm_storage_account.subscriptions_x_resourceGroups_rg_sa1"},
				},
			},
		},
	}
}

func dirEntries(t *testing.T, dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name()
	}

	return names
}

func TestRunRejectsUnsupportedType(t *testing.T) {
	ctx := context.Background()
	workDir := t.TempDir()

	tf := &TestTFExec{State: testState()}
	im := New(tf, workDir, quietOptions(Options{}))

	err := im.Run(ctx, "managed_database", "/subscriptions/x/db1")

	assert.True(t, errors.Is(err, ErrUnsupportedResourceType))

	// rejected before any filesystem or process activity
	assert.Empty(t, dirEntries(t, workDir))
	assert.Equal(t, 0, tf.InitCalls)
	assert.Len(t, tf.ImportArgs, 0)
}

func TestRunCycle(t *testing.T) {
	ctx := context.Background()

	resourceID := "/subscriptions/x/resourceGroups/rg/sa1"
	base := "subscriptions_x_resourceGroups_rg_sa1-storage_account"

	t.Run("import, capture output, clean up the template", func(t *testing.T) {
		workDir := t.TempDir()
		tf := &TestTFExec{State: testState()}
		im := New(tf, workDir, quietOptions(Options{}))

		require.NoError(t, im.Run(ctx, "storage_account", resourceID))

		assert.Equal(t, 1, tf.InitCalls)
		require.Len(t, tf.ImportArgs, 1)
		assert.Equal(t, "azurerm_storage_account.subscriptions_x_resourceGroups_rg_sa1", tf.ImportArgs[0].Address)
		assert.Equal(t, resourceID, tf.ImportArgs[0].ID)

		// template is deleted after the capture step, output persists
		assert.NoFileExists(t, filepath.Join(workDir, base+"-temp.tf"))

		out, err := os.ReadFile(filepath.Join(workDir, base+"-output.txt"))
		require.NoError(t, err)
		assert.Contains(t, string(out), "azurerm_storage_account.subscriptions_x_resourceGroups_rg_sa1")
	})

	t.Run("rerun overwrites rather than duplicates", func(t *testing.T) {
		workDir := t.TempDir()
		tf := &TestTFExec{State: testState()}
		im := New(tf, workDir, quietOptions(Options{}))

		require.NoError(t, im.Run(ctx, "storage_account", resourceID))
		require.NoError(t, im.Run(ctx, "storage_account", resourceID))

		assert.Equal(t, []string{base + "-output.txt"}, dirEntries(t, workDir))
	})

	t.Run("stream the rendering when requested", func(t *testing.T) {
		workDir := t.TempDir()
		tf := &TestTFExec{State: testState()}

		stdout := bytes.NewBuffer(nil)
		im := New(tf, workDir, quietOptions(Options{ShowOutput: true, Stdout: stdout}))

		require.NoError(t, im.Run(ctx, "storage_account", resourceID))

		assert.Contains(t, stdout.String(), "azurerm_storage_account")
		// one show for display, one for capture
		assert.Equal(t, 2, tf.ShowCalls)
	})

	t.Run("remove the state file when requested", func(t *testing.T) {
		workDir := t.TempDir()
		statePath := filepath.Join(workDir, "terraform.tfstate")

		require.NoError(t, os.WriteFile(statePath, []byte("{}"), 0644))

		tf := &TestTFExec{State: testState()}
		im := New(tf, workDir, quietOptions(Options{RemoveState: true}))

		require.NoError(t, im.Run(ctx, "storage_account", resourceID))

		assert.NoFileExists(t, statePath)
	})

	t.Run("keep the state file by default", func(t *testing.T) {
		workDir := t.TempDir()
		statePath := filepath.Join(workDir, "terraform.tfstate")

		require.NoError(t, os.WriteFile(statePath, []byte("{}"), 0644))

		tf := &TestTFExec{State: testState()}
		im := New(tf, workDir, quietOptions(Options{}))

		require.NoError(t, im.Run(ctx, "storage_account", resourceID))

		assert.FileExists(t, statePath)
	})
}

func TestRunToolFailures(t *testing.T) {
	ctx := context.Background()

	resourceID := "/subscriptions/x/resourceGroups/rg/sa1"

	t.Run("init failure aborts before import", func(t *testing.T) {
		workDir := t.TempDir()
		tf := &TestTFExec{InitErr: errors.New("exit status 1")}
		im := New(tf, workDir, quietOptions(Options{}))

		err := im.Run(ctx, "storage_account", resourceID)

		var toolErr *ExternalToolError

		require.True(t, errors.As(err, &toolErr))
		assert.Equal(t, "init", toolErr.Subcommand)
		assert.Len(t, tf.ImportArgs, 0)
	})

	t.Run("import failure leaves init side effects in place", func(t *testing.T) {
		workDir := t.TempDir()
		tf := &TestTFExec{ImportErr: errors.New("exit status 1")}
		im := New(tf, workDir, quietOptions(Options{}))

		err := im.Run(ctx, "storage_account", resourceID)

		var toolErr *ExternalToolError

		require.True(t, errors.As(err, &toolErr))
		assert.Equal(t, "import", toolErr.Subcommand)

		// the cleanup step never ran, the template survives
		assert.FileExists(t, filepath.Join(workDir, "subscriptions_x_resourceGroups_rg_sa1-storage_account-temp.tf"))
	})

	t.Run("one failed identifier does not stop the rest", func(t *testing.T) {
		workDir := t.TempDir()

		// the fake fails every import, both identifiers are still attempted
		tf := &TestTFExec{ImportErr: errors.New("exit status 1")}
		im := New(tf, workDir, quietOptions(Options{}))

		err := im.Run(ctx, "storage_account", "/subscriptions/x/a", "/subscriptions/x/b")

		require.Error(t, err)
		assert.Len(t, tf.ImportArgs, 2)
	})
}

func TestTemplate(t *testing.T) {
	got := template("storage_account", "sa1")

	assert.Contains(t, got, `provider "azurerm"`)
	assert.Contains(t, got, `resource "azurerm_storage_account" "sa1" {}`)
}

func TestBaseName(t *testing.T) {
	cases := []struct {
		Name         string
		ResourceID   string
		ResourceType string
		AssertEqual  string
	}{
		{
			Name:         "replace path separators and append the type",
			ResourceID:   "/subscriptions/x/resourceGroups/rg/sa1",
			ResourceType: "storage_account",
			AssertEqual:  "subscriptions_x_resourceGroups_rg_sa1-storage_account",
		},
		{
			Name:         "handle backslash separators",
			ResourceID:   `corp\platform\vm1`,
			ResourceType: "virtual_machine",
			AssertEqual:  "corp_platform_vm1-virtual_machine",
		},
		{
			Name:         "pass through plain identifiers",
			ResourceType: "resource_group",
			ResourceID:   "rg-app",
			AssertEqual:  "rg-app-resource_group",
		},
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.AssertEqual, baseName(tc.ResourceID, tc.ResourceType))
		})
	}
}

func TestResourceLabel(t *testing.T) {
	assert.Equal(t, "subscriptions_x_sa1", resourceLabel("/subscriptions/x/sa1"))
	assert.Equal(t, "r10_0_0_0", resourceLabel("10.0.0.0"))
}

func TestSupportedResourceType(t *testing.T) {
	assert.True(t, SupportedResourceType("storage_account"))
	assert.False(t, SupportedResourceType("kitchen_sink"))
}
