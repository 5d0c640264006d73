// Package tui renders scan, generation, and deploy summaries for the
// terminal.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kubefold/kubefold/internal/domain"
	"github.com/kubefold/kubefold/internal/domain/manifest"
)

var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(fg)
	dimStyle    = lipgloss.NewStyle().Foreground(dim)
	okStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle   = lipgloss.NewStyle().Foreground(danger)
	warnStyle   = lipgloss.NewStyle().Foreground(warning)
)

// RenderInventory summarizes what the scanners found.
func RenderInventory(inv domain.Inventory) string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("kubefold"))
	b.WriteString(dimStyle.Render("  project scan\n\n"))
	b.WriteString(titleStyle.Render(inv.ProjectName))
	b.WriteString(dimStyle.Render("  " + inv.RootPath))
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "  %s %d config, %d secret\n",
		dimStyle.Render("env:"), len(inv.Env.Config()), len(inv.Env.Secrets()))

	if inv.HasDatabase() {
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render("schema:"), inv.Schema.Path)
	} else {
		fmt.Fprintf(&b, "  %s %s\n", dimStyle.Render("schema:"), "none found")
	}

	fmt.Fprintf(&b, "  %s %d\n", dimStyle.Render("units:"), len(inv.Units))
	for _, u := range inv.Units {
		flavor := ""
		if u.CLI {
			flavor = dimStyle.Render("  (cli, no probes)")
		}
		fmt.Fprintf(&b, "    %s %s %s%s\n",
			okStyle.Render("•"), u.Name, dimStyle.Render(fmt.Sprintf("port %d", u.Port)), flavor)
	}

	return b.String()
}

// RenderGeneration lists the written manifest files and any soft warnings.
func RenderGeneration(outputDir string, files []manifest.File, warnings []string) string {
	var b strings.Builder

	for _, w := range warnings {
		fmt.Fprintf(&b, "%s %s\n", warnStyle.Render("warning:"), w)
	}
	fmt.Fprintf(&b, "%s %s\n", titleStyle.Render("wrote"), dimStyle.Render(outputDir+"/"))
	for _, f := range files {
		fmt.Fprintf(&b, "  %s %s\n", okStyle.Render("✓"), f.Name)
	}
	return b.String()
}

// RenderDeployStatuses reports per-deployment readiness after an apply.
func RenderDeployStatuses(rows []domain.DeployStatus) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("deployments") + "\n")
	for _, r := range rows {
		mark := okStyle.Render("✓")
		if !r.Ready {
			mark = warnStyle.Render("⚠")
		}
		fmt.Fprintf(&b, "  %s %s %s\n", mark, r.Name, dimStyle.Render(r.Message))
	}
	return b.String()
}

// RenderError formats a fatal error the same way everywhere.
func RenderError(err error) string {
	return failStyle.Render("error: ") + err.Error() + "\n"
}
