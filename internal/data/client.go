// Package data fetches the analysis output consumed by the inspector. The
// resources are static files produced externally; this client only reads
// them, either from a local directory or over HTTP from a base URL.
package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ikari-pl/borrowscope/internal/mir"
	"github.com/ikari-pl/borrowscope/internal/overlay"
)

// ErrNotFound marks a missing resource. Missing resources are an expected
// condition (no point/path existence is validated ahead of a request) and
// callers substitute an empty dataset.
var ErrNotFound = errors.New("resource not found")

// Function is one catalog entry.
type Function struct {
	ID   string
	Name string
}

// Client reads analysis resources by path convention.
type Client struct {
	base   string
	remote bool
	hc     *http.Client
	logger *slog.Logger
}

// NewClient creates a client for base, which is either a local directory or
// an http(s) base URL.
func NewClient(base string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	remote := strings.HasPrefix(base, "http://") || strings.HasPrefix(base, "https://")
	return &Client{
		base:   strings.TrimRight(base, "/"),
		remote: remote,
		hc:     &http.Client{},
		logger: logger,
	}
}

// Functions fetches the function catalog, sorted by identifier.
func (c *Client) Functions(ctx context.Context) ([]Function, error) {
	var raw map[string]string
	if err := c.getJSON(ctx, functionsPath(), &raw); err != nil {
		return nil, err
	}
	out := make([]Function, 0, len(raw))
	for id, name := range raw {
		out = append(out, Function{ID: id, Name: name})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Graph fetches the function's control-flow graph.
func (c *Client) Graph(ctx context.Context, fn string) (*mir.Graph, error) {
	var g mir.Graph
	if err := c.getJSON(ctx, graphPath(fn), &g); err != nil {
		return nil, err
	}
	return &g, nil
}

// Paths fetches the enumerated execution paths for the function.
func (c *Client) Paths(ctx context.Context, fn string) ([]mir.Path, error) {
	var raw [][]int
	if err := c.getJSON(ctx, pathsPath(fn), &raw); err != nil {
		return nil, err
	}
	out := make([]mir.Path, len(raw))
	for i, p := range raw {
		out[i] = mir.Path(p)
	}
	return out, nil
}

// Assertions fetches the function's assertion list.
func (c *Client) Assertions(ctx context.Context, fn string) ([]overlay.Assertion, error) {
	var out []overlay.Assertion
	if err := c.getJSON(ctx, assertionsPath(fn), &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Bundle fetches the per-point overlay bundle for the key. The result is
// normalized at this boundary so no caller sees partially-absent fields.
func (c *Client) Bundle(ctx context.Context, key overlay.BundleKey) (*overlay.Bundle, error) {
	var b overlay.Bundle
	if err := c.getJSON(ctx, bundlePath(key), &b); err != nil {
		return nil, err
	}
	b.Normalize()
	return &b, nil
}

// Dot fetches the auxiliary DOT graph text for the key.
func (c *Client) Dot(ctx context.Context, key overlay.DotKey) (string, error) {
	raw, err := c.get(ctx, dotPath(key))
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (c *Client) getJSON(ctx context.Context, rel string, v any) error {
	raw, err := c.get(ctx, rel)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decoding %s: %w", rel, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, rel string) ([]byte, error) {
	if c.remote {
		return c.getHTTP(ctx, rel)
	}
	return c.getFile(rel)
}

func (c *Client) getFile(rel string) ([]byte, error) {
	path := filepath.Join(c.base, filepath.FromSlash(rel))
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", rel, ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", rel, err)
	}
	return raw, nil
}

func (c *Client) getHTTP(ctx context.Context, rel string) ([]byte, error) {
	url := c.base + "/" + rel
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", rel, err)
	}
	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", rel, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%s: %w", rel, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %s", rel, resp.Status)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", rel, err)
	}
	return raw, nil
}
