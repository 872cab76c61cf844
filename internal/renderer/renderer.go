// internal/renderer/renderer.go
package renderer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog/log"

	"github.com/shelfwatch/harvest/internal/config"
	"github.com/shelfwatch/harvest/internal/pacer"
	"github.com/shelfwatch/harvest/pkg/models"
)

// Selector defaults for the storefront. The load-more class is spelled the
// way the site spells it.
const (
	DefaultConsentSelector  = ".acceptCookies"
	DefaultLoadMoreSelector = ".ecomerce-items-scroll-more"
)

// Clickability states reported by the polled predicate. The empty string
// keeps the poll running.
const (
	stateClickable   = "clickable"
	stateIntercepted = "intercepted"
)

// clickableJS checks that the element exists, is displayed and enabled, and
// that a hit test at its center lands on the element itself rather than on
// an overlay. The element is scrolled into view first so the hit test is
// meaningful below the fold.
const clickableJS = `(function(sel) {
	var el = document.querySelector(sel);
	if (!el || el.disabled) return "";
	var style = window.getComputedStyle(el);
	if (style.display === "none" || style.visibility === "hidden") return "";
	var rect = el.getBoundingClientRect();
	if (rect.width === 0 || rect.height === 0) return "";
	el.scrollIntoView({block: "center"});
	rect = el.getBoundingClientRect();
	var hit = document.elementFromPoint(rect.left + rect.width / 2, rect.top + rect.height / 2);
	if (!hit) return "";
	if (hit === el || el.contains(hit) || hit.contains(el)) return "clickable";
	return "intercepted";
})(%q)`

// Options configures a browser session
type Options struct {
	Headless      bool
	ChromePath    string
	UserAgent     string
	NavTimeout    time.Duration // budget for navigation and document serialization
	WaitTimeout   time.Duration // budget for a control to become clickable
	ClickInterval time.Duration // minimum spacing between load-more clicks

	ConsentSelector  string
	LoadMoreSelector string
}

func (o *Options) setDefaults() {
	if o.UserAgent == "" {
		o.UserAgent = config.DefaultUserAgent
	}
	if o.NavTimeout <= 0 {
		o.NavTimeout = config.DefaultNavTimeout
	}
	if o.WaitTimeout <= 0 {
		o.WaitTimeout = config.DefaultWaitTimeout
	}
	if o.ClickInterval <= 0 {
		o.ClickInterval = config.DefaultClickInterval
	}
	if o.ConsentSelector == "" {
		o.ConsentSelector = DefaultConsentSelector
	}
	if o.LoadMoreSelector == "" {
		o.LoadMoreSelector = DefaultLoadMoreSelector
	}
}

// Session owns a single headless Chrome instance that is reused across all
// catalog pages of a run.
//
// It is created once at the start of a run and must be released with Close.
// Close is safe to call more than once; only the first call tears the
// browser down.
type Session struct {
	opts Options

	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	clickPacer pacer.Pacer
	closeOnce  sync.Once
}

// NewSession starts a browser and verifies it responds.
//
// A broken or missing Chrome install fails here, before any page work
// starts. The caller owns the returned session and is responsible for
// closing it exactly once after the run.
func NewSession(opts Options) (*Session, error) {
	opts.setDefaults()

	chromePath := opts.ChromePath
	if chromePath == "" {
		chromePath = FindChrome()
	}

	allocOpts := []chromedp.ExecAllocatorOption{
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-breakpad", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-hang-monitor", true),
		chromedp.Flag("disable-prompt-on-repost", true),
		chromedp.Flag("disable-renderer-backgrounding", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("mute-audio", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("window-size", "1366,900"),
		chromedp.UserAgent(opts.UserAgent),
	}

	// Set Chrome path if found
	if chromePath != "" {
		allocOpts = append([]chromedp.ExecAllocatorOption{chromedp.ExecPath(chromePath)}, allocOpts...)
	}

	// Configure headless mode
	if opts.Headless {
		allocOpts = append(allocOpts, chromedp.Flag("headless", "new"))
	} else {
		allocOpts = append(allocOpts, chromedp.Flag("headless", false))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Warm up the browser by loading a blank page. The warm-up runs on the
	// session context itself so the browser lifetime stays tied to Close,
	// not to a per-operation timeout.
	if err := chromedp.Run(browserCtx, chromedp.Navigate("about:blank")); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	log.Info().
		Bool("headless", opts.Headless).
		Str("chrome", chromePath).
		Msg("Browser session ready")

	return &Session{
		opts:          opts,
		allocCtx:      allocCtx,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
		clickPacer:    pacer.NewInterval(opts.ClickInterval),
	}, nil
}

// Open navigates the session to the given URL and waits for the document to
// load. The main document's HTTP status is captured from network events and
// logged; navigation errors are returned for the caller to handle.
func (s *Session) Open(url string) error {
	ctx, cancel := context.WithTimeout(s.browserCtx, s.opts.NavTimeout)
	defer cancel()

	start := time.Now()

	// Listen for network events to capture the main document status code
	var statusCode int64
	chromedp.ListenTarget(ctx, func(ev interface{}) {
		if resp, ok := ev.(*network.EventResponseReceived); ok {
			if resp.Type == network.ResourceTypeDocument && statusCode == 0 {
				statusCode = resp.Response.Status
			}
		}
	})

	err := chromedp.Run(ctx,
		network.Enable(),
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}

	log.Debug().
		Str("url", url).
		Int64("status", statusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Page opened")
	return nil
}

// DismissConsent clicks the cookie consent control when it shows up.
//
// Pages without the overlay are normal, so a wait timeout only gets a debug
// log. Nothing here is fatal: whatever happens, the caller proceeds with the
// page as-is.
func (s *Session) DismissConsent() {
	state, err := s.waitClickable(s.opts.ConsentSelector)
	if err != nil {
		if errors.Is(err, chromedp.ErrPollingTimeout) {
			log.Debug().Str("selector", s.opts.ConsentSelector).Msg("No consent overlay within wait window")
		} else {
			log.Debug().Err(err).Msg("Consent wait failed")
		}
		return
	}
	if state == stateIntercepted {
		log.Debug().Str("selector", s.opts.ConsentSelector).Msg("Consent control obscured, leaving it")
		return
	}

	if err := s.click(s.opts.ConsentSelector); err != nil {
		log.Debug().Err(err).Msg("Consent click failed")
		return
	}
	log.Debug().Msg("Consent dismissed")
}

// ExhaustPagination clicks the load-more control until it stops being
// clickable, pacing consecutive clicks by the configured interval.
//
// A wait timeout and an intercepted click both end the loop the same way:
// there is no reliable signal to tell "catalog exhausted" from "control
// permanently obscured", so the returned reason is informational only and
// must not change how the caller proceeds.
func (s *Session) ExhaustPagination() (int, models.StopReason) {
	clicks := 0
	for {
		if err := s.clickPacer.Wait(s.browserCtx); err != nil {
			log.Debug().Err(err).Msg("Click pacing interrupted")
			return clicks, models.StopExhausted
		}

		state, err := s.waitClickable(s.opts.LoadMoreSelector)
		if err != nil {
			if !errors.Is(err, chromedp.ErrPollingTimeout) {
				log.Debug().Err(err).Msg("Load-more wait failed")
			}
			return clicks, models.StopExhausted
		}
		if state == stateIntercepted {
			return clicks, models.StopIntercepted
		}

		if err := s.click(s.opts.LoadMoreSelector); err != nil {
			log.Debug().Err(err).Int("clicks", clicks).Msg("Load-more click failed")
			return clicks, models.StopIntercepted
		}
		clicks++
		log.Debug().Int("clicks", clicks).Msg("Load more clicked")
	}
}

// HTML returns the serialized markup of the current document
func (s *Session) HTML() (string, error) {
	ctx, cancel := context.WithTimeout(s.browserCtx, s.opts.NavTimeout)
	defer cancel()

	var html string
	if err := chromedp.Run(ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("failed to serialize document: %w", err)
	}
	return html, nil
}

// Close shuts the browser down. Only the first call does the work.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		log.Debug().Msg("Closing browser session")
		s.browserCancel()
		s.allocCancel()
		log.Info().Msg("Browser session closed")
	})
	return nil
}

// waitClickable polls the clickability predicate for the given selector
// until it reports a state or the wait timeout elapses. Timeouts surface as
// chromedp.ErrPollingTimeout.
func (s *Session) waitClickable(sel string) (string, error) {
	// The outer context gets headroom beyond the poll timeout so timeouts
	// surface as ErrPollingTimeout rather than context.DeadlineExceeded.
	ctx, cancel := context.WithTimeout(s.browserCtx, s.opts.WaitTimeout+5*time.Second)
	defer cancel()

	var state string
	err := chromedp.Run(ctx, chromedp.Poll(
		fmt.Sprintf(clickableJS, sel),
		&state,
		chromedp.WithPollingInterval(100*time.Millisecond),
		chromedp.WithPollingTimeout(s.opts.WaitTimeout),
	))
	if err != nil {
		return "", err
	}
	return state, nil
}

func (s *Session) click(sel string) error {
	ctx, cancel := context.WithTimeout(s.browserCtx, s.opts.WaitTimeout)
	defer cancel()
	return chromedp.Run(ctx, chromedp.Click(sel, chromedp.ByQuery))
}
