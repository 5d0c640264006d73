package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kubefold/kubefold/internal/adapters/outbound/tui"
)

var (
	version = "dev"
	commit  = "none"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kubefold",
		Short: "Fold a project directory into Kubernetes manifests",
		Long: "Kubefold scans a project for .env files, SQL schemas, and Dockerfiles, " +
			"then synthesizes a consistent set of Kubernetes manifests and optionally " +
			"builds the images and applies everything to a cluster.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newScanCmd())
	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newBuildCmd())
	cmd.AddCommand(newDeployCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	err := newRootCmd().Execute()
	if err != nil {
		fmt.Fprint(os.Stderr, tui.RenderError(err))
	}
	return err
}
