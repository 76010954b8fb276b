package cmd

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/spf13/cobra"

	"github.com/kamal-hamza/deckindex/internal/core/services"
	"github.com/kamal-hamza/deckindex/pkg/ui"
)

var (
	statsChart   string
	statsTopTags int
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show presentation statistics",
	Long: `Summarise the discovered presentations: totals, slide counts,
presentations per year and the most used tags.

With --chart, also write an HTML page with bar charts of the same data.`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsChart, "chart", "", "Write an HTML chart page to this file")
	statsCmd.Flags().IntVar(&statsTopTags, "top", 5, "Number of tags to show")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := getContext()
	out := cmd.OutOrStdout()

	resp, err := statsService.Execute(ctx)
	if err != nil {
		fmt.Fprintln(out, ui.FormatError("Failed to gather statistics"))
		return err
	}

	fmt.Fprintln(out, ui.StyleTitle.Render("Presentation Statistics"))
	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.RenderKeyValue("Presentations", fmt.Sprintf("%d", resp.TotalPresentations)))
	fmt.Fprintln(out, ui.RenderKeyValue("Slides", fmt.Sprintf("%d", resp.TotalSlides)))
	if resp.WithoutSlides > 0 {
		fmt.Fprintln(out, ui.RenderKeyValue("Without slide count", fmt.Sprintf("%d", resp.WithoutSlides)))
	}
	if resp.Undated > 0 {
		fmt.Fprintln(out, ui.RenderKeyValue("Undated", fmt.Sprintf("%d", resp.Undated)))
	}

	if len(resp.Years) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, ui.StyleHeader.Render("Per Year"))
		fmt.Fprint(out, renderBars(resp.Years, 0))
	}

	if len(resp.Tags) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, ui.StyleHeader.Render("Top Tags"))
		fmt.Fprint(out, renderBars(resp.Tags, statsTopTags))
	}

	if statsChart != "" {
		f, err := os.Create(statsChart)
		if err != nil {
			return fmt.Errorf("failed to create chart file: %w", err)
		}
		defer f.Close()

		if err := writeStatsChart(f, resp); err != nil {
			return fmt.Errorf("failed to render chart: %w", err)
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, ui.FormatSuccess("Chart written: "+statsChart))
	}

	return nil
}

// renderBars draws one scaled bar per count; limit <= 0 shows all
func renderBars(counts []services.Count, limit int) string {
	if limit <= 0 || limit > len(counts) {
		limit = len(counts)
	}

	maxCount := 0
	for _, c := range counts[:limit] {
		if c.Count > maxCount {
			maxCount = c.Count
		}
	}
	if maxCount == 0 {
		return ""
	}

	const barWidth = 20
	var b strings.Builder
	for _, c := range counts[:limit] {
		length := int(math.Ceil(float64(c.Count) / float64(maxCount) * barWidth))
		fmt.Fprintf(&b, "%s %-15s %s\n",
			ui.StyleAccent.Render(padRight(strings.Repeat("█", length), barWidth)),
			c.Label,
			ui.StyleMuted.Render(fmt.Sprintf("%d", c.Count)),
		)
	}
	return b.String()
}

func padRight(s string, width int) string {
	if n := width - len([]rune(s)); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// writeStatsChart renders per-tag and per-year bar charts as one HTML page
func writeStatsChart(w io.Writer, resp *services.StatsResponse) error {
	page := components.NewPage()
	page.AddCharts(
		countsBar("Presentations per tag", resp.Tags),
		countsBar("Presentations per year", resp.Years),
	)
	return page.Render(w)
}

func countsBar(title string, counts []services.Count) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
	)

	labels := make([]string, len(counts))
	data := make([]opts.BarData, len(counts))
	for i, c := range counts {
		labels[i] = c.Label
		data[i] = opts.BarData{Value: c.Count}
	}

	bar.SetXAxis(labels).AddSeries("presentations", data)
	return bar
}
