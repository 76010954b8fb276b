package cmd

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/deckindex/pkg/ui"
)

//go:embed starter/index-template.html
var starterTemplate string

var initForce bool

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the presentations folder, a starter template and a config file",
	Long: `Prepare a directory for deckindex.

This creates:
  - presentations/                  : one subdirectory per presentation
  - templates/index-template.html   : page template with the placeholder token
  - deckindex.yaml                  : configuration with every default spelled out

Existing files are left alone unless --force is given.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing template and config")
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, ui.FormatStep(ui.IconBuild, "Initializing "+appWorkspace.BaseDir+"..."))
	fmt.Fprintln(out)

	if err := appWorkspace.Initialize(); err != nil {
		fmt.Fprintln(out, ui.FormatError("Failed to create directories"))
		return err
	}
	fmt.Fprintln(out, ui.FormatSuccess("Presentations folder ready: "+appWorkspace.Rel(appWorkspace.PresentationsPath)))

	template := strings.Replace(starterTemplate, "{{PRESENTATIONS}}", appConfig.Placeholder, 1)
	if templateRepo.Exists(ctx) && !initForce {
		fmt.Fprintln(out, ui.FormatWarning("Template already exists, keeping it: "+appWorkspace.Rel(appWorkspace.TemplatePath)))
	} else {
		if err := templateRepo.Create(ctx, template, true); err != nil {
			fmt.Fprintln(out, ui.FormatError("Failed to write template"))
			return err
		}
		fmt.Fprintln(out, ui.FormatSuccess("Template created: "+appWorkspace.Rel(appWorkspace.TemplatePath)))
	}

	if _, err := os.Stat(appWorkspace.ConfigPath); err == nil && !initForce {
		fmt.Fprintln(out, ui.FormatWarning("Config already exists, keeping it: "+appWorkspace.Rel(appWorkspace.ConfigPath)))
	} else {
		if err := appConfig.Save(appWorkspace.ConfigPath); err != nil {
			// The defaults work without a file
			fmt.Fprintln(out, ui.FormatWarning("Failed to write config: "+err.Error()))
		} else {
			fmt.Fprintln(out, ui.FormatSuccess("Config created: "+appWorkspace.Rel(appWorkspace.ConfigPath)))
		}
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.FormatInfo(fmt.Sprintf("Add a folder with a %s under %s/, then run: deckindex build",
		appConfig.Descriptor, appConfig.PresentationsDir)))
	return nil
}
