package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/deckindex/pkg/ui"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the generated index page",
	Long: `Delete the generated index page so the next build starts from scratch.

Presentations, the template and the config are never touched.

Examples:
  deckindex clean`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

func runClean(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	rel := appWorkspace.Rel(appWorkspace.OutputPath)

	err := os.Remove(appWorkspace.OutputPath)
	if os.IsNotExist(err) {
		fmt.Fprintln(out, ui.FormatInfo("Nothing to clean: "+rel+" does not exist"))
		return nil
	}
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.FormatError("Failed to remove "+rel))
		return fmt.Errorf("failed to remove index page: %w", err)
	}

	fmt.Fprintln(out, ui.FormatSuccess("Removed "+rel))
	return nil
}
