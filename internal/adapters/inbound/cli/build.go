package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kubefold/kubefold/internal/adapters/outbound/imagebuild"
	"github.com/kubefold/kubefold/internal/application"
	"github.com/kubefold/kubefold/internal/domain"
)

func newBuildCmd() *cobra.Command {
	var (
		tag         string
		kindCluster string
	)

	cmd := &cobra.Command{
		Use:   "build [path]",
		Short: "Build an image per discovered Dockerfile",
		Long: "Discover every Dockerfile in the project, build one image per owning " +
			"directory, and load the images into a local kind cluster when one is running.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			svc := application.NewBuildService(newScanService(), imagebuild.New())
			result, err := svc.Build(cmd.Context(), path, domain.ProjectConfig{
				Tag:         tag,
				KindCluster: kindCluster,
			})
			if err != nil {
				return err
			}

			for _, img := range result.Images {
				fmt.Fprintf(cmd.OutOrStdout(), "built %s\n", img)
			}
			if result.KindCluster == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "no kind cluster detected, images stay in the local daemon")
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "loaded %d image(s) into kind cluster %q\n", len(result.Images), result.KindCluster)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&tag, "tag", "", "Image tag")
	cmd.Flags().StringVar(&kindCluster, "kind-cluster", "", "kind cluster to load images into (default: first running cluster)")
	return cmd
}
