package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kamal-hamza/deckindex/internal/adapters/reporter"
	"github.com/kamal-hamza/deckindex/internal/adapters/repository"
	"github.com/kamal-hamza/deckindex/internal/core/services"
	"github.com/kamal-hamza/deckindex/pkg/config"
	"github.com/kamal-hamza/deckindex/pkg/ui"
	"github.com/kamal-hamza/deckindex/pkg/workspace"
)

var (
	// Global flags
	workDir    string
	configFile string
	quiet      bool

	appConfig    *config.Config
	appWorkspace *workspace.Workspace
	console      *reporter.Console

	// Repositories
	presentationRepo *repository.PresentationRepository
	templateRepo     *repository.TemplateRepository
	pageWriter       *repository.PageWriter

	// Services
	indexService *services.IndexService
	listService  *services.ListService
	statsService *services.StatsService
)

// rootCmd builds the index page when called without a subcommand
var rootCmd = &cobra.Command{
	Use:   "deckindex",
	Short: "Build a static index page for a folder of presentations",
	Long: ui.StyleTitle.Render("deckindex") + " - presentation index builder\n\n" +
		"Scans every subdirectory of the presentations folder for a metadata\n" +
		"descriptor, orders the presentations newest first and writes an HTML\n" +
		"index page from a template.\n\n" +
		"Running deckindex with no subcommand is the same as 'deckindex build'.",
	SilenceUsage:      true,
	PersistentPreRunE: initializeApp,
	RunE:              runBuild,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&workDir, "dir", "C", ".", "Directory to build in")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: <dir>/"+config.DefaultFileName+")")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Only print warnings, errors and the result")

	addBuildFlags(rootCmd)
	addBuildFlags(buildCmd)

	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp loads configuration and wires repositories and services
func initializeApp(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	path := configFile
	if path == "" {
		path = filepath.Join(workDir, config.DefaultFileName)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	appConfig = cfg
	ui.SetTheme(cfg.ColorTheme)

	ws, err := workspace.New(workDir, cfg)
	if err != nil {
		return err
	}
	if configFile != "" {
		ws.ConfigPath = configFile
	}
	appWorkspace = ws

	console = reporter.NewConsole(cmd.ErrOrStderr(), quiet)

	presentationRepo = repository.NewPresentationRepository(ws, cfg, console)
	templateRepo = repository.NewTemplateRepository(ws)
	pageWriter = repository.NewPageWriter(ws)

	indexService = services.NewIndexService(presentationRepo, templateRepo, pageWriter, cfg.Placeholder, renderOptions(cfg))
	listService = services.NewListService(presentationRepo)
	statsService = services.NewStatsService(presentationRepo)

	return nil
}

func renderOptions(cfg *config.Config) services.RenderOptions {
	return services.RenderOptions{
		FallbackImage:     cfg.FallbackImage,
		SlidesPlaceholder: cfg.SlidesPlaceholder,
		EscapeHTML:        cfg.EscapeHTML,
		PresentationsDir:  cfg.PresentationsDir,
	}
}

// getContext returns a context for operations
func getContext() context.Context {
	return context.Background()
}
