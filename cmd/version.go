package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/deckindex/pkg/ui"
)

// Version information - these can be set during build with ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Short:   "Display version information",
	Aliases: []string{"v"},
	Run:     runVersion,
}

func runVersion(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.StyleTitle.Render("deckindex")+" - presentation index builder")
	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.RenderKeyValue("Version", Version))
	fmt.Fprintln(out, ui.RenderKeyValue("Commit", GitCommit))
	fmt.Fprintln(out, ui.RenderKeyValue("Build Date", BuildDate))
	fmt.Fprintln(out, ui.RenderKeyValue("Go", runtime.Version()))
}
