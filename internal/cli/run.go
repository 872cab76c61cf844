// internal/cli/run.go
package cli

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/shelfwatch/harvest/internal/app"
	"github.com/shelfwatch/harvest/internal/catalog"
	"github.com/shelfwatch/harvest/internal/config"
	"github.com/shelfwatch/harvest/internal/extract"
	"github.com/shelfwatch/harvest/internal/ui"
	"github.com/shelfwatch/harvest/pkg/models"
)

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Harvest the catalog pages into per-page CSV files",
	Long: `Renders each configured catalog page in one shared headless Chrome
session, clicks "load more" until the control is gone, and extracts every
product listing into <output-dir>/<page>.csv.

Pages that fail to render are logged and skipped; the run continues with
the remaining pages.`,
	Example: `  # Harvest every catalog page with defaults
  harvest run

  # Only laptops and tablets, into a custom directory
  harvest run --pages laptops,tablets -o /tmp/catalog

  # Watch the browser work
  harvest run --headless=false -v`,
	RunE: runHarvest,
}

func init() {
	rootCmd.AddCommand(runCmd)
	config.RegisterRunFlags(runCmd)
}

func runHarvest(cmd *cobra.Command, args []string) error {
	application := GetApp()
	if application == nil {
		return fmt.Errorf("application not initialized")
	}
	cfg := application.Config

	// Build the page map before anything expensive
	targets, err := catalog.DefaultTargets(cfg.CatalogURL)
	if err != nil {
		return err
	}
	targets, err = catalog.FilterTargets(targets, cfg.Pages)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if cfg.MetricsAddr != "" {
		startMetricsServer(application)
	}

	// The shared browser session is created once here. Closing it happens
	// exactly once, in the application shutdown after the command returns.
	if err := application.EnsureSession(cmd.Context()); err != nil {
		return fmt.Errorf("failed to start browser: %w", err)
	}

	// No progress bar when the output is for machines or explicitly quiet
	showProgress := !cfg.NoProgress && !cfg.JSONLog && cfg.LogLevel != "error"

	runner := catalog.NewRunner(
		application.Session,
		extract.New(extract.DefaultSelectors()),
		cfg.OutputDir,
		application.Metrics,
		showProgress,
	)

	log.Info().Int("pages", len(targets)).Str("output_dir", cfg.OutputDir).Msg("Starting harvest")
	summary, err := runner.Run(cmd.Context(), targets)
	printSummary(summary, cfg.OutputDir)
	return err
}

// startMetricsServer exposes the Prometheus registry for the rest of the
// process lifetime.
func startMetricsServer(application *app.Application) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(application.Metrics.Registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: application.Config.MetricsAddr, Handler: mux}

	go func() {
		log.Info().Str("addr", application.Config.MetricsAddr).Msg("Metrics endpoint listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn().Err(err).Msg("Metrics endpoint stopped")
		}
	}()
}

// printSummary prints the human-facing run report to stdout
func printSummary(s *models.Summary, outDir string) {
	if s == nil {
		return
	}

	fmt.Printf("\n%s\n", ui.Success("✓ Harvest complete"))
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")
	fmt.Printf("Pages:     %d\n", s.Pages)
	if s.PagesFailed > 0 {
		fmt.Printf("Failed:    %s\n", ui.Error(fmt.Sprintf("%d", s.PagesFailed)))
	}
	fmt.Printf("Products:  %d\n", s.Products)
	if s.Dropped > 0 {
		fmt.Printf("Dropped:   %s\n", ui.Warn(fmt.Sprintf("%d listings", s.Dropped)))
	}
	fmt.Printf("Clicks:    %d\n", s.Clicks)
	fmt.Printf("Files:     %d in %s\n", s.FilesWritten, ui.Dim(outDir))
	fmt.Printf("Elapsed:   %s\n", s.Elapsed.Round(time.Millisecond))
	fmt.Println()
}
