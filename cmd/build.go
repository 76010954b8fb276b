package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/deckindex/internal/adapters/repository"
	"github.com/kamal-hamza/deckindex/internal/core/services"
	"github.com/kamal-hamza/deckindex/pkg/ui"
)

var buildDryRun bool

// buildCmd represents the build command
var buildCmd = &cobra.Command{
	Use:     "build",
	Short:   "Build the presentation index page",
	Aliases: []string{"b"},
	Long: `Scan the presentations directory and write the index page.

Every subdirectory holding a descriptor (metadata.json by default) becomes
one card on the page, newest first. Directories without a descriptor are
skipped with a warning; descriptors that fail to parse are reported and
skipped. A missing template or a failed write stops the build.

Examples:
  deckindex
  deckindex build
  deckindex build --dry-run > preview.html
  deckindex -C ~/talks build`,
	Args: cobra.NoArgs,
	RunE: runBuild,
}

func addBuildFlags(c *cobra.Command) {
	c.Flags().BoolVar(&buildDryRun, "dry-run", false, "Print the page instead of writing it")
}

func runBuild(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	out := cmd.OutOrStdout()
	start := time.Now()

	if !quiet && !buildDryRun {
		fmt.Fprintln(out, ui.FormatStep(ui.IconScan, "Scanning "+appWorkspace.Rel(appWorkspace.PresentationsPath)+"..."))
	}

	resp, err := indexService.Execute(ctx, services.BuildRequest{DryRun: buildDryRun})
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.FormatError("Build failed"))
		switch {
		case errors.Is(err, repository.ErrTemplateNotFound):
			fmt.Fprintln(cmd.ErrOrStderr(), ui.FormatInfo("Create a starter template with: deckindex init"))
		case errors.Is(err, services.ErrPlaceholderMissing):
			fmt.Fprintln(cmd.ErrOrStderr(), ui.FormatInfo("Add "+appConfig.Placeholder+" where the presentations should go"))
		}
		return err
	}

	if buildDryRun {
		fmt.Fprint(out, resp.Document)
		return nil
	}

	if !quiet {
		fmt.Fprintln(out, ui.FormatSuccess(fmt.Sprintf("Found %d presentation(s)", resp.Total)))
	}
	fmt.Fprintln(out, ui.FormatStep(ui.IconDone, "Index page written: "+appWorkspace.Rel(resp.OutputPath)))

	if !quiet {
		warnings, errs := console.Counts()
		if warnings+errs > 0 {
			fmt.Fprintln(out, ui.FormatMuted(fmt.Sprintf("%d warning(s), %d error(s)", warnings, errs)))
		}
		fmt.Fprintln(out, ui.FormatMuted("Took "+time.Since(start).Round(time.Millisecond).String()))
	}

	return nil
}
