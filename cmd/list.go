package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/deckindex/internal/core/domain"
	"github.com/kamal-hamza/deckindex/internal/core/services"
	"github.com/kamal-hamza/deckindex/pkg/ui"
)

var (
	listTagFilter string
	listPick      bool
	listCopy      bool
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:     "list [query]",
	Short:   "List discovered presentations in index order",
	Aliases: []string{"ls"},
	Long: `List the presentations the index page would show, newest first.

A query fuzzy-matches titles, directory names and tags.

Examples:
  deckindex list
  deckindex list --tag go
  deckindex list kubernetes
  deckindex list --pick --copy`,
	Args: cobra.MaximumNArgs(1),
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listTagFilter, "tag", "", "Only show presentations with this tag")
	listCmd.Flags().BoolVarP(&listPick, "pick", "p", false, "Choose one presentation interactively and print its link")
	listCmd.Flags().BoolVar(&listCopy, "copy", false, "With --pick, copy the link to the clipboard")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	out := cmd.OutOrStdout()

	req := services.ListRequest{TagFilter: listTagFilter}
	if len(args) == 1 {
		req.Query = args[0]
	}

	resp, err := listService.Execute(ctx, req)
	if err != nil {
		fmt.Fprintln(out, ui.FormatError("Failed to list presentations"))
		return err
	}

	if resp.Total == 0 {
		fmt.Fprintln(out, ui.FormatWarning("No presentations found"))
		return nil
	}

	if listPick {
		return pickPresentation(cmd, resp.Presentations)
	}

	fmt.Fprint(out, renderPresentationTable(resp.Presentations, appConfig.SlidesPlaceholder))
	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.FormatMuted(fmt.Sprintf("%d presentation(s)", resp.Total)))
	return nil
}

func renderPresentationTable(presentations []domain.Presentation, slidesPlaceholder string) string {
	table := ui.NewTable([]ui.TableColumn{
		{Header: "DATE"},
		{Header: "TITLE", MaxWidth: 40},
		{Header: "SLIDES", Align: "right"},
		{Header: "TAGS", MaxWidth: 30},
		{Header: "DIRECTORY"},
	})

	for i := range presentations {
		p := &presentations[i]
		date := p.Date
		if date == "" {
			date = "-"
		}
		table.AddRow(date, p.Title, p.SlidesLabel(slidesPlaceholder), p.GetTagsString(), p.Dir)
	}

	return table.Render()
}

func pickPresentation(cmd *cobra.Command, presentations []domain.Presentation) error {
	out := cmd.OutOrStdout()

	idx, err := fuzzyfinder.Find(
		presentations,
		func(i int) string {
			return presentations[i].Title + "  " + presentations[i].Dir
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			p := presentations[i]
			var b strings.Builder
			fmt.Fprintf(&b, "Title: %s\nDate: %s\nSlides: %s\nLink: %s\n",
				p.Title, p.GetDisplayDate(), p.SlidesLabel(appConfig.SlidesPlaceholder), p.Path)
			if p.HasTags() {
				fmt.Fprintf(&b, "Tags: %s\n", p.GetTagsString())
			}
			if p.Description != "" {
				fmt.Fprintf(&b, "\n%s\n", p.Description)
			}
			return b.String()
		}),
	)
	if errors.Is(err, fuzzyfinder.ErrAbort) {
		fmt.Fprintln(out, ui.FormatInfo("Selection cancelled."))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to pick a presentation: %w", err)
	}

	selected := presentations[idx]
	fmt.Fprintln(out, selected.Path)

	if listCopy {
		if err := clipboard.WriteAll(selected.Path); err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.FormatWarning("Failed to copy to clipboard: "+err.Error()))
			return nil
		}
		fmt.Fprintln(cmd.ErrOrStderr(), ui.FormatSuccess("Link copied to clipboard"))
	}

	return nil
}
