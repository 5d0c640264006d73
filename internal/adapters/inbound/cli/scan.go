package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kubefold/kubefold/internal/adapters/outbound/config"
	"github.com/kubefold/kubefold/internal/adapters/outbound/dockerscan"
	"github.com/kubefold/kubefold/internal/adapters/outbound/envscan"
	"github.com/kubefold/kubefold/internal/adapters/outbound/schemascan"
	"github.com/kubefold/kubefold/internal/adapters/outbound/tui"
	"github.com/kubefold/kubefold/internal/application"
)

func newScanCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Inspect a project and report what kubefold would generate",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			svc := newScanService()
			inv, _, err := svc.Scan(path)
			if err != nil {
				return fmt.Errorf("scanning project: %w", err)
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(inv)
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderInventory(inv))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the inventory as JSON")
	return cmd
}

// newScanService wires the standard set of outbound scanners.
func newScanService() *application.ScanService {
	return application.NewScanService(
		envscan.New(),
		schemascan.New(),
		dockerscan.New(),
		config.New(),
	)
}
