// Package ocr provides text recognition for scanned PDFs through a set
// of interchangeable engines backed by external tools and services.
//
// Engines are expensive to initialize, so instances live in a Cache
// keyed by (engine, device). The cache is an explicit object owned by
// the caller rather than hidden package state, which keeps engine
// selection testable and resettable.
package ocr

import (
	"fmt"
	"sort"
	"sync"
)

const (
	// DefaultDPI is the render resolution for OCR page images.
	DefaultDPI = 250
	// DefaultMaxPages bounds how many pages are OCRed per document.
	DefaultMaxPages = 3
)

// Engine recognizes text in a PDF.
type Engine interface {
	// Name identifies the engine ("tesseract", "remote", ...).
	Name() string
	// Available reports whether the engine's external dependencies are
	// usable on this system.
	Available() bool
	// Extract OCRs the first maxPages pages rendered at dpi and returns
	// the recognized text.
	Extract(path string, maxPages, dpi int) (string, error)
}

// Factory builds an engine for a device preference ("auto", "cpu",
// "gpu").
type Factory func(device string) (Engine, error)

// priority orders engines for auto-selection.
var priority = []string{EngineTesseract, EngineRemote}

type cacheKey struct {
	name   string
	device string
}

// Cache lazily constructs engines and reuses them per (name, device).
type Cache struct {
	mu        sync.Mutex
	factories map[string]Factory
	engines   map[cacheKey]Engine
}

// NewCache returns a Cache with the built-in engines registered.
func NewCache() *Cache {
	c := &Cache{
		factories: make(map[string]Factory),
		engines:   make(map[cacheKey]Engine),
	}
	c.Register(EngineTesseract, func(device string) (Engine, error) {
		return NewTesseract(), nil
	})
	c.Register(EngineRemote, func(device string) (Engine, error) {
		return NewRemote(device), nil
	})
	return c
}

// Register adds or replaces an engine factory. Cached instances of the
// same name are dropped.
func (c *Cache) Register(name string, f Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.factories[name] = f
	for k := range c.engines {
		if k.name == name {
			delete(c.engines, k)
		}
	}
}

// Engine returns the cached engine instance for (name, device),
// constructing it on first use.
func (c *Cache) Engine(name, device string) (Engine, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey{name, device}
	if e, ok := c.engines[key]; ok {
		return e, nil
	}
	f, ok := c.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown ocr engine %q", name)
	}
	e, err := f(device)
	if err != nil {
		return nil, fmt.Errorf("initializing ocr engine %s: %w", name, err)
	}
	c.engines[key] = e
	return e, nil
}

// Auto returns the first available engine in priority order.
func (c *Cache) Auto(device string) (Engine, error) {
	for _, name := range priority {
		e, err := c.Engine(name, device)
		if err != nil {
			continue
		}
		if e.Available() {
			return e, nil
		}
	}
	return nil, fmt.Errorf("no ocr engine available")
}

// Reset drops all cached engine instances. Intended for tests.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engines = make(map[cacheKey]Engine)
}

// EngineStatus describes one registered engine for display.
type EngineStatus struct {
	Name      string `json:"name"`
	Available bool   `json:"available"`
}

// Statuses reports every registered engine and its availability, in
// name order.
func (c *Cache) Statuses(device string) []EngineStatus {
	c.mu.Lock()
	names := make([]string, 0, len(c.factories))
	for name := range c.factories {
		names = append(names, name)
	}
	c.mu.Unlock()
	sort.Strings(names)

	out := make([]EngineStatus, 0, len(names))
	for _, name := range names {
		s := EngineStatus{Name: name}
		if e, err := c.Engine(name, device); err == nil {
			s.Available = e.Available()
		}
		out = append(out, s)
	}
	return out
}

// Run OCRs a PDF with the named engine ("auto" selects by priority) and
// returns best-effort text: any failure yields "".
func (c *Cache) Run(name, device, path string, maxPages, dpi int) string {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	if dpi <= 0 {
		dpi = DefaultDPI
	}

	var (
		e   Engine
		err error
	)
	if name == "" || name == "auto" {
		e, err = c.Auto(device)
	} else {
		e, err = c.Engine(name, device)
	}
	if err != nil || !e.Available() {
		return ""
	}
	text, err := e.Extract(path, maxPages, dpi)
	if err != nil {
		return ""
	}
	return text
}
