// Package prompt renders model prompt templates from files.
package prompt

import (
	"bytes"
	"fmt"
	"os"
	"sync"
	"text/template"
)

// Engine loads, caches, and renders prompt templates.
type Engine struct {
	mu    sync.RWMutex
	cache map[string]*template.Template
}

// NewEngine creates a template engine with an empty cache.
func NewEngine() *Engine {
	return &Engine{cache: make(map[string]*template.Template)}
}

// Render executes the template at path with the given variables.
func (e *Engine) Render(path string, data any) (string, error) {
	tmpl, err := e.getTemplate(path)
	if err != nil {
		return "", fmt.Errorf("load template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}
	return buf.String(), nil
}

// Reload forces the template at path to be re-read on next use.
func (e *Engine) Reload(path string) {
	e.mu.Lock()
	delete(e.cache, path)
	e.mu.Unlock()
}

func (e *Engine) getTemplate(path string) (*template.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.cache[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	tmpl, err = template.New(path).Parse(string(content))
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	e.cache[path] = tmpl
	e.mu.Unlock()
	return tmpl, nil
}
