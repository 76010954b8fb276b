package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/deckindex/pkg/ui"
)

var (
	openWith    string
	openRebuild bool
)

// openCmd represents the open command
var openCmd = &cobra.Command{
	Use:   "open",
	Short: "Open the generated index page in a browser",
	Long: `Open the generated index page with the system default application.

Examples:
  deckindex open
  deckindex open --build
  deckindex open --with firefox`,
	Args: cobra.NoArgs,
	RunE: runOpen,
}

func init() {
	openCmd.Flags().StringVar(&openWith, "with", "", "Program to open the page with")
	openCmd.Flags().BoolVarP(&openRebuild, "build", "b", false, "Rebuild the index page before opening it")
}

func runOpen(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	if openRebuild {
		if err := runBuild(cmd, nil); err != nil {
			return err
		}
	}

	path := appWorkspace.OutputPath
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.FormatWarning("Index page not built yet. Run 'deckindex build' or use --build."))
		return fmt.Errorf("index page not found: %s", appWorkspace.Rel(path))
	}

	if err := OpenFile(path, openWith); err != nil {
		return err
	}
	fmt.Fprintln(out, ui.FormatSuccess("Opened "+appWorkspace.Rel(path)))
	return nil
}
