package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/deckindex/internal/adapters/repository"
	"github.com/kamal-hamza/deckindex/pkg/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the health of your presentations workspace",
	Long: `Diagnose issues that would break or degrade the index page.

Checks for:
  - Presentations directory
  - Template file and its placeholder
  - Configuration file
  - Descriptor problems in each presentation`,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	ctx := getContext()

	fmt.Fprintln(out, ui.StyleTitle.Render("🩺 deckindex doctor"))
	fmt.Fprintln(out)

	failed := 0
	check := func(name string, fn func() error) {
		if !checkStep(out, name, fn) {
			failed++
		}
	}

	check("Presentations Directory", func() error {
		info, err := os.Stat(appWorkspace.PresentationsPath)
		if os.IsNotExist(err) {
			return fmt.Errorf("missing at %s (run 'deckindex init')", appWorkspace.Rel(appWorkspace.PresentationsPath))
		}
		if err != nil {
			return err
		}
		if !info.IsDir() {
			return fmt.Errorf("%s is not a directory", appWorkspace.Rel(appWorkspace.PresentationsPath))
		}
		return nil
	})

	check("Template File", func() error {
		tmpl, err := templateRepo.Load(ctx)
		if errors.Is(err, repository.ErrTemplateNotFound) {
			return fmt.Errorf("missing at %s (run 'deckindex init')", appWorkspace.Rel(appWorkspace.TemplatePath))
		}
		if err != nil {
			return err
		}
		if !strings.Contains(tmpl, appConfig.Placeholder) {
			return fmt.Errorf("does not contain %s", appConfig.Placeholder)
		}
		return nil
	})

	// A missing config only means defaults are in use
	checkStep(out, "Configuration File", func() error {
		if _, err := os.Stat(appWorkspace.ConfigPath); os.IsNotExist(err) {
			return fmt.Errorf("not found, using defaults")
		}
		return nil
	})

	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.FormatInfo("Checking descriptors..."))

	check("Descriptors", func() error {
		console.Reset()
		presentations, err := presentationRepo.List(ctx)
		if err != nil {
			return err
		}
		warnings, errs := console.Counts()
		if errs > 0 {
			return fmt.Errorf("%d presentation(s) could not be read", errs)
		}
		if warnings > 0 {
			fmt.Fprintln(out, ui.FormatMuted(fmt.Sprintf("    %d warning(s) across %d presentation(s)", warnings, len(presentations))))
		}
		return nil
	})

	fmt.Fprintln(out)
	if failed > 0 {
		return fmt.Errorf("doctor found %d problem(s)", failed)
	}
	fmt.Fprintln(out, ui.FormatSuccess("Everything looks good"))
	return nil
}

// checkStep runs a check and prints its outcome, reporting whether it passed
func checkStep(out io.Writer, name string, check func() error) bool {
	err := check()
	if err == nil {
		fmt.Fprintf(out, "%s %s\n", ui.FormatSuccess(""), ui.FormatBold(name))
		return true
	}
	fmt.Fprintf(out, "%s %s\n", ui.FormatError(""), ui.FormatBold(name))
	fmt.Fprintf(out, "    %s\n", ui.StyleMuted.Render(err.Error()))
	return false
}
