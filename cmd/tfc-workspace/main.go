package main

import (
	"context"
	"os"
	"strings"

	"github.com/sethvargo/go-githubactions"
	yaml "gopkg.in/yaml.v2"

	"github.com/takescoop/terraform-cloud-client/importer"
	"github.com/takescoop/terraform-cloud-client/internal/inputs"
	"github.com/takescoop/terraform-cloud-client/tfcloud"
)

func main() {
	ctx := context.Background()

	cfg := tfcloud.ConfigFromEnv()

	if token := inputs.Get("terraform_token", "TFE_TOKEN"); token != "" {
		cfg.Token = token
	}

	if host := githubactions.GetInput("terraform_host"); host != "" {
		cfg.Address = "https://" + host
	}

	if org := githubactions.GetInput("terraform_organization"); org != "" {
		cfg.Organization = org
	}

	client, err := tfcloud.NewClient(cfg)
	if err != nil {
		githubactions.Fatalf("Failed to create Terraform Cloud client: %s", err)
	}

	name := strings.TrimSpace(githubactions.GetInput("name"))
	if name == "" {
		githubactions.Fatalf("A workspace name is required")
	}

	id, err := client.GetWorkspaceID(ctx, "", name)
	if err != nil {
		githubactions.Fatalf("Failed to look up workspace %q: %s", name, err)
	}

	if id == "" {
		vcsTokenID := githubactions.GetInput("vcs_token_id")

		if vcsTokenID == "" {
			if vcsType := githubactions.GetInput("vcs_type"); vcsType != "" {
				vcsTokenID, err = client.GetVCSTokenIDByClientType(ctx, "", vcsType)
				if err != nil {
					githubactions.Fatalf("Failed to resolve a VCS token: %s", err)
				}
			}
		}

		ws, err := client.CreateWorkspace(ctx, "", tfcloud.WorkspaceCreateOptions{
			Name:              name,
			WorkingDirectory:  githubactions.GetInput("working_directory"),
			VCSIdentifier:     githubactions.GetInput("vcs_repo"),
			VCSTokenID:        vcsTokenID,
			GlobalRemoteState: inputs.GetBoolPtr("global_remote_state"),
		})
		if err != nil {
			githubactions.Fatalf("Failed to create workspace %q: %s", name, err)
		}

		id = ws.ID

		githubactions.Infof("Created workspace %q (%s)\n", name, id)
	} else {
		githubactions.Infof("Workspace %q already exists (%s)\n", name, id)
	}

	githubactions.SetOutput("workspace_id", id)

	if raw := githubactions.GetInput("variables"); raw != "" {
		vars, err := tfcloud.ParseVariableRecords([]byte(raw))
		if err != nil {
			githubactions.Fatalf("Failed to parse variables: %s", err)
		}

		for _, v := range vars {
			if _, err := client.CreateVariable(ctx, id, *v); err != nil {
				githubactions.Fatalf("Failed to create variable %q: %s", v.Key, err)
			}

			githubactions.Infof("Created variable %q\n", v.Key)
		}
	}

	if inputs.GetBool("import") {
		resourceType := githubactions.GetInput("import_resource_type")

		var resourceIDs []string

		if err := yaml.Unmarshal([]byte(githubactions.GetInput("import_resource_ids")), &resourceIDs); err != nil {
			githubactions.Fatalf("Failed to decode import resource ids: %s", err)
		}

		workDir, err := importer.ScratchDir()
		if err != nil {
			githubactions.Fatalf("Failed to create import working directory: %s", err)
		}

		defer os.RemoveAll(workDir)

		tf, err := importer.NewTerraformExec(ctx, workDir, githubactions.GetInput("runner_terraform_version"))
		if err != nil {
			githubactions.Fatalf("Failed to create tfexec instance: %s", err)
		}

		im := importer.New(tf, workDir, importer.Options{
			ShowOutput:  inputs.GetBool("show_output"),
			RemoveState: inputs.GetBool("remove_state"),
		})

		if err := im.Run(ctx, resourceType, resourceIDs...); err != nil {
			githubactions.Fatalf("Failed to import resources: %s", err)
		}

		githubactions.Infof("Imported %d resource(s)\n", len(resourceIDs))
	}
}
