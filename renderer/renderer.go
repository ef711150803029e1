// Package renderer captures a selected element from a live page.
//
// The extraction pipeline needs computed-style facts that a parsed HTML
// snapshot cannot carry (stylesheet-driven display:none, for example).
// The renderer bridges that gap: before serialising the selected subtree
// it stamps data-uic-display and data-uic-visibility attributes on every
// hidden element, so extract.AttrLayout can answer visibility queries
// against the snapshot exactly as the browser rendered it.
//
// Usage:
//
//	r := renderer.New(renderer.Config{})
//	if err := r.Start(ctx); err != nil { ... }
//	defer r.Close()
//	snap, err := r.Capture(ctx, "https://example.com/pricing", "#plans")
//	res, err := extract.ExtractHTML(snap.HTML, extract.Options{Hostname: snap.Hostname})
package renderer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Config configures the renderer.
type Config struct {
	// RemoteURL is the WebSocket URL of an external Chrome instance.
	// Empty = launch a local headless Chrome via launcher.
	RemoteURL string `yaml:"remote_url"`

	// NavTimeout bounds navigation and page load. Default: 30s.
	NavTimeout time.Duration `yaml:"nav_timeout"`

	Logger *slog.Logger `yaml:"-"`
}

func (c *Config) defaults() {
	if c.NavTimeout <= 0 {
		c.NavTimeout = 30 * time.Second
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// Snapshot is one captured element with its page context.
type Snapshot struct {
	HTML     []byte // outer HTML of the selected element, style-annotated
	URL      string
	Hostname string
	Title    string
}

// Renderer drives a headless browser for element capture.
type Renderer struct {
	cfg     Config
	mu      sync.Mutex
	browser *rod.Browser
	lnch    *launcher.Launcher
}

// New creates a Renderer. Call Start before Capture.
func New(cfg Config) *Renderer {
	cfg.defaults()
	return &Renderer{cfg: cfg}
}

// Start connects to the configured remote Chrome or launches a local one.
func (r *Renderer) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.browser != nil {
		return nil
	}

	wsURL := r.cfg.RemoteURL
	if wsURL == "" {
		l := launcher.New().Headless(true)
		u, err := l.Launch()
		if err != nil {
			return fmt.Errorf("renderer: launch: %w", err)
		}
		r.lnch = l
		wsURL = u
		r.cfg.Logger.Info("renderer: launched local chrome", "url", wsURL)
	} else {
		r.cfg.Logger.Info("renderer: connecting to remote", "url", wsURL)
	}

	b := rod.New().ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		return fmt.Errorf("renderer: connect: %w", err)
	}
	r.browser = b
	return nil
}

// Close shuts down the browser (and the local Chrome if we launched it).
func (r *Renderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.browser == nil {
		return nil
	}
	err := r.browser.Close()
	if r.lnch != nil {
		r.lnch.Cleanup()
	}
	r.browser = nil
	return err
}

// annotateJS stamps computed-style annotations on the selected subtree
// and returns its outer HTML. Runs inside the page.
const annotateJS = `(sel) => {
	const root = sel ? document.querySelector(sel) : document.documentElement;
	if (!root) return null;
	const els = [root, ...root.querySelectorAll('*')];
	for (const el of els) {
		const cs = getComputedStyle(el);
		if (cs.display === 'none') el.setAttribute('data-uic-display', 'none');
		if (cs.visibility === 'hidden') el.setAttribute('data-uic-visibility', 'hidden');
	}
	return {
		html: root.outerHTML,
		hostname: location.hostname,
		title: document.title,
	};
}`

// Capture navigates to pageURL and snapshots the element matching
// selector (the whole document when selector is empty).
func (r *Renderer) Capture(ctx context.Context, pageURL, selector string) (*Snapshot, error) {
	r.mu.Lock()
	b := r.browser
	r.mu.Unlock()
	if b == nil {
		return nil, fmt.Errorf("renderer: not started")
	}

	page, err := b.Page(proto.TargetCreateTarget{URL: ""})
	if err != nil {
		return nil, fmt.Errorf("renderer: create page: %w", err)
	}
	defer page.Close()

	navCtx, cancel := context.WithTimeout(ctx, r.cfg.NavTimeout)
	defer cancel()

	if err := page.Context(navCtx).Navigate(pageURL); err != nil {
		return nil, fmt.Errorf("renderer: navigate %s: %w", pageURL, err)
	}
	if err := page.Context(navCtx).WaitLoad(); err != nil {
		r.cfg.Logger.Warn("renderer: wait load timeout", "url", pageURL, "error", err)
	}

	res, err := page.Context(ctx).Eval(annotateJS, selector)
	if err != nil {
		return nil, fmt.Errorf("renderer: annotate %s: %w", pageURL, err)
	}
	if res.Value.Nil() {
		return nil, fmt.Errorf("renderer: selector %q matched nothing on %s", selector, pageURL)
	}

	return &Snapshot{
		HTML:     []byte(res.Value.Get("html").Str()),
		URL:      pageURL,
		Hostname: res.Value.Get("hostname").Str(),
		Title:    res.Value.Get("title").Str(),
	}, nil
}
