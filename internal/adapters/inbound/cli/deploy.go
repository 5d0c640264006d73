package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/kubefold/kubefold/internal/adapters/outbound/gitclone"
	"github.com/kubefold/kubefold/internal/adapters/outbound/imagebuild"
	"github.com/kubefold/kubefold/internal/adapters/outbound/kube"
	"github.com/kubefold/kubefold/internal/adapters/outbound/tui"
	"github.com/kubefold/kubefold/internal/application"
	"github.com/kubefold/kubefold/internal/domain"
	"github.com/kubefold/kubefold/internal/domain/manifest"
)

func newDeployCmd() *cobra.Command {
	var (
		interactive bool
		yes         bool
		skipBuild   bool
		tag         string
		namespace   string
		storage     string
		output      string
		nodePort    bool
		idleCLI     bool
		kindCluster string
		kubeconfig  string
	)

	cmd := &cobra.Command{
		Use:   "deploy [path] [tag]",
		Short: "Build, generate, and apply in one run",
		Long: "The full pipeline: build every discovered image, generate the manifest set, " +
			"and (after confirmation) apply it to the cluster and wait for readiness. " +
			"With --interactive the project is cloned from a remote repository first.",
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			path := "."
			if len(args) > 0 {
				path = args[0]
			}
			if len(args) > 1 {
				tag = args[1]
			}

			overrides := domain.ProjectConfig{
				Tag:         tag,
				Namespace:   namespace,
				StorageSize: storage,
				OutputDir:   output,
				KindCluster: kindCluster,
			}

			if interactive {
				answers, err := promptRemoteDeploy()
				if err != nil {
					return err
				}
				cloner := gitclone.New()
				dir, err := cloner.Clone(cmd.Context(), domain.CloneOptions{
					URL:    answers.URL,
					Branch: answers.Branch,
					Token:  answers.Token,
				})
				if err != nil {
					return err
				}
				defer os.RemoveAll(filepath.Dir(dir))
				path = dir
				overrides = overrides.Merge(domain.ProjectConfig{
					Tag:         answers.Tag,
					Namespace:   answers.Namespace,
					StorageSize: answers.StorageSize,
				})
			}

			scanSvc := newScanService()

			if !skipBuild {
				buildSvc := application.NewBuildService(scanSvc, imagebuild.New())
				result, err := buildSvc.Build(cmd.Context(), path, overrides)
				if err != nil {
					return err
				}
				for _, img := range result.Images {
					fmt.Fprintf(out, "built %s\n", img)
				}
				if result.KindCluster == "" {
					fmt.Fprintln(out, "no kind cluster detected, skipping image load")
				}
			}

			genSvc := application.NewGenerateService(scanSvc)
			result, err := genSvc.Generate(path, overrides, manifest.Options{NodePort: nodePort, IdleCLI: idleCLI})
			if err != nil {
				return err
			}

			fmt.Fprint(out, tui.RenderInventory(result.Inventory))
			fmt.Fprintln(out)
			fmt.Fprint(out, tui.RenderGeneration(result.OutputDir, result.Files, result.Set.Warnings))

			if !yes {
				apply := false
				prompt := &survey.Confirm{
					Message: fmt.Sprintf("Apply manifests to namespace %q?", result.Set.Namespace.Name),
				}
				if err := survey.AskOne(prompt, &apply); err != nil {
					return err
				}
				if !apply {
					fmt.Fprintln(out, "skipping apply")
					return nil
				}
			}

			driver, err := kube.NewFromKubeconfig(kubeconfig)
			if err != nil {
				return err
			}
			deploySvc := application.NewDeployService(driver)
			statuses, err := deploySvc.Deploy(cmd.Context(), result.Set)
			if err != nil {
				return err
			}

			fmt.Fprintln(out)
			fmt.Fprint(out, tui.RenderDeployStatuses(statuses))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Prompt for a remote repository and deploy settings")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Apply without confirmation")
	cmd.Flags().BoolVar(&skipBuild, "skip-build", false, "Skip the image build step")
	cmd.Flags().StringVar(&tag, "tag", "", "Image tag")
	cmd.Flags().StringVar(&namespace, "namespace", "", "Target namespace")
	cmd.Flags().StringVar(&storage, "storage", "", "Database PVC size (e.g. 10Gi)")
	cmd.Flags().StringVar(&output, "output", "", "Output directory for manifests")
	cmd.Flags().BoolVar(&nodePort, "node-port", false, "Expose Services as NodePort on the container port")
	cmd.Flags().BoolVar(&idleCLI, "idle-cli", false, "Give CLI-flavored units a keepalive command")
	cmd.Flags().StringVar(&kindCluster, "kind-cluster", "", "kind cluster to load images into")
	cmd.Flags().StringVar(&kubeconfig, "kubeconfig", "", "Path to kubeconfig (default: ~/.kube/config, then in-cluster)")
	return cmd
}

type remoteDeployAnswers struct {
	URL         string
	Branch      string
	Token       string
	Tag         string
	Namespace   string
	StorageSize string
}

// promptRemoteDeploy collects the interactive-mode inputs. The URL is
// validated immediately so a typo fails before any cloning or building.
func promptRemoteDeploy() (remoteDeployAnswers, error) {
	var a remoteDeployAnswers

	qs := []*survey.Question{
		{
			Name:   "url",
			Prompt: &survey.Input{Message: "Repository URL:"},
			Validate: func(ans interface{}) error {
				s, _ := ans.(string)
				return gitclone.ValidateURL(s)
			},
		},
		{
			Name:   "branch",
			Prompt: &survey.Input{Message: "Branch:", Default: "main"},
		},
		{
			Name:   "token",
			Prompt: &survey.Password{Message: "Access token (empty for public repos):"},
		},
		{
			Name:   "tag",
			Prompt: &survey.Input{Message: "Image tag:", Default: "latest"},
		},
		{
			Name:   "namespace",
			Prompt: &survey.Input{Message: "Namespace:", Default: domain.DefaultNamespace},
		},
		{
			Name:   "storagesize",
			Prompt: &survey.Input{Message: "Database storage size:", Default: domain.DefaultStorageSize},
		},
	}

	if err := survey.Ask(qs, &a); err != nil {
		return remoteDeployAnswers{}, err
	}
	return a, nil
}
