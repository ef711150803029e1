// Command uicontext extracts readable Markdown from a DOM subtree.
//
// Usage:
//
//	uicontext page.html                          # extract a saved HTML file
//	cat page.html | uicontext                    # extract from stdin
//	uicontext -url https://a.com -selector "#x"  # capture a live element
//	uicontext -config uicontext.yaml page.html   # with site adapters
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/yaml.v3"

	"github.com/andyrewlee/uicontext/adapters"
	"github.com/andyrewlee/uicontext/extract"
	"github.com/andyrewlee/uicontext/renderer"
)

func main() {
	configPath := flag.String("config", "", "path to uicontext.yaml config file")
	pageURL := flag.String("url", "", "capture a live page instead of reading a file")
	selector := flag.String("selector", "", "CSS selector of the element to capture (with -url)")
	hostname := flag.String("host", "", "hostname for adapter matching (file/stdin input)")
	jsonOut := flag.Bool("json", false, "emit the full result as JSON")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn, error")
	flag.Parse()

	var level slog.Level
	switch *logLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger, *configPath, *pageURL, *selector, *hostname, *jsonOut); err != nil {
		logger.Error("uicontext: fatal", "error", err)
		os.Exit(1)
	}
}

// fileConfig is the on-disk config: adapter allow-list plus renderer knobs.
type fileConfig struct {
	Adapters []adapters.Rule `yaml:"adapters"`
	Renderer renderer.Config `yaml:"renderer"`
}

func run(ctx context.Context, logger *slog.Logger, configPath, pageURL, selector, hostname string, jsonOut bool) error {
	var cfg fileConfig
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return fmt.Errorf("parse config %s: %w", configPath, err)
		}
	}

	hooks, err := adapters.Build(&adapters.Config{Adapters: cfg.Adapters})
	if err != nil {
		return fmt.Errorf("adapters: %w", err)
	}

	var rawHTML []byte
	if pageURL != "" {
		cfg.Renderer.Logger = logger
		r := renderer.New(cfg.Renderer)
		if err := r.Start(ctx); err != nil {
			return err
		}
		defer r.Close()

		snap, err := r.Capture(ctx, pageURL, selector)
		if err != nil {
			return err
		}
		rawHTML = snap.HTML
		if hostname == "" {
			hostname = snap.Hostname
		}
		logger.Debug("captured element", "url", pageURL, "title", snap.Title, "bytes", len(rawHTML))
	} else {
		rawHTML, err = readInput(flag.Arg(0))
		if err != nil {
			return err
		}
	}

	res, err := extract.ExtractHTML(rawHTML, extract.Options{
		Hostname: hostname,
		Adapters: hooks,
	})
	if err != nil {
		return err
	}
	logger.Debug("extracted", "strategy", res.Strategy, "chars", len(res.Text))

	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	fmt.Println(res.Text)
	return nil
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}
