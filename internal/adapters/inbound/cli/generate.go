package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kubefold/kubefold/internal/adapters/outbound/tui"
	"github.com/kubefold/kubefold/internal/application"
	"github.com/kubefold/kubefold/internal/domain"
	"github.com/kubefold/kubefold/internal/domain/manifest"
)

func newGenerateCmd() *cobra.Command {
	var (
		tag       string
		namespace string
		storage   string
		output    string
		nodePort  bool
		idleCLI   bool
	)

	cmd := &cobra.Command{
		Use:   "generate [path]",
		Short: "Generate Kubernetes manifests for a project",
		Long: "Scan the project tree and write one YAML manifest per resource: namespace, " +
			"config, secret, an optional Postgres trio, and a Deployment+Service pair per Dockerfile.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			svc := application.NewGenerateService(newScanService())
			result, err := svc.Generate(path, domain.ProjectConfig{
				Tag:         tag,
				Namespace:   namespace,
				StorageSize: storage,
				OutputDir:   output,
			}, manifest.Options{NodePort: nodePort, IdleCLI: idleCLI})
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderInventory(result.Inventory))
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprint(cmd.OutOrStdout(), tui.RenderGeneration(result.OutputDir, result.Files, result.Set.Warnings))
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "Image tag used in generated Deployments")
	cmd.Flags().StringVar(&namespace, "namespace", "", "Target namespace")
	cmd.Flags().StringVar(&storage, "storage", "", "Database PVC size (e.g. 10Gi)")
	cmd.Flags().StringVar(&output, "output", "", "Output directory for manifests")
	cmd.Flags().BoolVar(&nodePort, "node-port", false, "Expose Services as NodePort on the container port")
	cmd.Flags().BoolVar(&idleCLI, "idle-cli", false, "Give CLI-flavored units a keepalive command")
	return cmd
}
