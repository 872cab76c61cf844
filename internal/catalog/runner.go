// internal/catalog/runner.go
package catalog

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"

	"github.com/shelfwatch/harvest/internal/metrics"
	"github.com/shelfwatch/harvest/internal/output"
	"github.com/shelfwatch/harvest/pkg/models"
)

// Renderer drives the shared browser session. The chromedp session
// satisfies it; tests substitute a fake.
type Renderer interface {
	Open(url string) error
	DismissConsent()
	ExhaustPagination() (int, models.StopReason)
	HTML() (string, error)
}

// Extractor turns a rendered document into product records
type Extractor interface {
	Products(html string) ([]models.Product, int, error)
}

// Runner walks the configured page targets sequentially over one shared
// renderer session.
//
// The Runner borrows the session, it never owns it: the application layer
// opens the session before the run and closes it exactly once afterwards,
// however many individual pages fail.
type Runner struct {
	renderer  Renderer
	extractor Extractor
	outDir    string
	metrics   *metrics.Metrics
	progress  bool
}

// NewRunner creates a new Runner with dependency injection
func NewRunner(r Renderer, e Extractor, outDir string, m *metrics.Metrics, progress bool) *Runner {
	return &Runner{
		renderer:  r,
		extractor: e,
		outDir:    outDir,
		metrics:   m,
		progress:  progress,
	}
}

// Run processes every target in order and returns the aggregated summary.
//
// Page failures are folded into the summary and the loop moves on; only
// context cancellation stops the run early.
func (r *Runner) Run(ctx context.Context, targets []models.PageTarget) (*models.Summary, error) {
	start := time.Now()
	summary := &models.Summary{}
	defer func() { summary.Elapsed = time.Since(start) }()

	var bar *progressbar.ProgressBar
	if r.progress {
		bar = progressbar.NewOptions(len(targets),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("pages"),
			progressbar.OptionShowCount(),
			progressbar.OptionOnCompletion(func() { fmt.Fprintln(os.Stderr) }),
		)
	}

	for _, target := range targets {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		if bar != nil {
			bar.Describe(target.Label)
		}

		result := r.processPage(target)
		r.record(summary, result)

		if bar != nil {
			bar.Add(1)
		}
	}

	return summary, nil
}

// processPage drives one catalog page through render and extract. Failures
// are captured on the result instead of propagated, so one bad page never
// stops the loop, and the session is left as-is for the next target.
func (r *Runner) processPage(target models.PageTarget) (result models.PageResult) {
	start := time.Now()
	result.Target = target
	defer func() { result.Duration = time.Since(start) }()

	log.Info().Str("page", target.Label).Str("url", target.URL).Msg("Harvesting page")

	if err := r.renderer.Open(target.URL); err != nil {
		result.Err = fmt.Errorf("open: %w", err)
		return result
	}

	r.renderer.DismissConsent()

	result.Clicks, result.StopReason = r.renderer.ExhaustPagination()

	html, err := r.renderer.HTML()
	if err != nil {
		result.Err = fmt.Errorf("document: %w", err)
		return result
	}

	products, dropped, err := r.extractor.Products(html)
	if err != nil {
		result.Err = fmt.Errorf("extract: %w", err)
		return result
	}

	result.Products = products
	result.Dropped = dropped
	return result
}

// record folds one page outcome into the summary, persisting records and
// counting metrics along the way.
func (r *Runner) record(summary *models.Summary, result models.PageResult) {
	summary.Pages++
	summary.Clicks += result.Clicks
	r.metrics.AddClicks(result.Clicks)
	r.metrics.ObservePageDuration(result.Duration.Seconds())

	if result.Failed() {
		summary.PagesFailed++
		r.metrics.IncPage(metrics.PageFailed)
		log.Error().
			Err(result.Err).
			Str("page", result.Target.Label).
			Str("url", result.Target.URL).
			Msg("Page failed, continuing with remaining pages")
		return
	}

	summary.Products += len(result.Products)
	summary.Dropped += result.Dropped
	r.metrics.IncPage(metrics.PageOK)
	r.metrics.AddProducts(len(result.Products))
	r.metrics.AddDropped(result.Dropped)

	log.Info().
		Str("page", result.Target.Label).
		Int("products", len(result.Products)).
		Int("dropped", result.Dropped).
		Int("clicks", result.Clicks).
		Str("stop_reason", string(result.StopReason)).
		Dur("duration", result.Duration).
		Msg("Page harvested")

	if len(result.Products) == 0 {
		log.Info().Str("page", result.Target.Label).Msg("No records extracted, skipping file")
		return
	}

	path := filepath.Join(r.outDir, result.Target.Label+".csv")
	if err := output.SaveProducts(path, result.Products); err != nil {
		r.metrics.IncWriteFailure()
		log.Error().
			Err(err).
			Str("page", result.Target.Label).
			Str("file", path).
			Msg("Failed to write output, continuing with remaining pages")
		return
	}

	summary.FilesWritten++
	log.Debug().Str("file", path).Int("records", len(result.Products)).Msg("Output saved")
}
