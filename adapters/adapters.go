// Package adapters builds hostname-keyed extraction overrides from a YAML
// config. An adapter bypasses the generic pipeline for pages whose
// structure is known in advance; it is a best-effort hook, and any adapter
// failure silently falls back to the generic pipeline.
//
// Three modes are supported:
//   - markdown: sanitise the subtree and convert it with html-to-markdown
//   - selector: collect text matching simple CSS selectors
//   - density:  pick the subtree with the best text-to-markup ratio
//
// Usage:
//
//	cfg, err := adapters.LoadConfigFile("uicontext.yaml")
//	hooks, err := adapters.Build(cfg)
//	res := extract.Extract(root, extract.Options{Hostname: host, Adapters: hooks})
package adapters

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/andyrewlee/uicontext/extract"
)

// Config holds the adapter allow-list.
type Config struct {
	Adapters []Rule `yaml:"adapters"`
}

// Rule declares one adapter: which hosts it matches and how it extracts.
type Rule struct {
	Name         string   `yaml:"name"`
	HostContains string   `yaml:"host_contains"`
	Mode         string   `yaml:"mode"`                // markdown, selector, density
	Selectors    []string `yaml:"selectors,omitempty"` // selector mode only
	MinTextLen   int      `yaml:"min_text_len,omitempty"`
}

func (r *Rule) defaults() {
	if r.Mode == "" {
		r.Mode = "markdown"
	}
	if r.MinTextLen <= 0 {
		r.MinTextLen = 50
	}
	if r.Name == "" {
		r.Name = r.HostContains
	}
}

// LoadConfigFile reads an adapter config from a YAML file.
func LoadConfigFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return &cfg, nil
}

// Build turns config rules into extract adapters, tried first-match-wins.
func Build(cfg *Config) ([]extract.Adapter, error) {
	if cfg == nil {
		return nil, nil
	}
	var hooks []extract.Adapter
	for i := range cfg.Adapters {
		r := cfg.Adapters[i]
		r.defaults()
		if r.HostContains == "" {
			return nil, fmt.Errorf("adapter %q: host_contains is required", r.Name)
		}
		a, err := build(r)
		if err != nil {
			return nil, err
		}
		hooks = append(hooks, a)
	}
	return hooks, nil
}

func build(r Rule) (extract.Adapter, error) {
	a := extract.Adapter{
		Name: r.Name,
		Match: func(host string) bool {
			return host != "" && strings.Contains(strings.ToLower(host), strings.ToLower(r.HostContains))
		},
	}
	switch r.Mode {
	case "markdown":
		a.Extract = markdownExtractor()
	case "selector":
		if len(r.Selectors) == 0 {
			return extract.Adapter{}, fmt.Errorf("adapter %q: selector mode needs selectors", r.Name)
		}
		a.Extract = selectorExtractor(r.Selectors, r.MinTextLen)
	case "density":
		a.Extract = densityExtractor(r.MinTextLen)
	default:
		return extract.Adapter{}, fmt.Errorf("adapter %q: unknown mode %q", r.Name, r.Mode)
	}
	return a, nil
}
