package tui

import (
	"github.com/ikari-pl/borrowscope/internal/data"
	"github.com/ikari-pl/borrowscope/internal/mir"
	"github.com/ikari-pl/borrowscope/internal/overlay"
)

// Completion messages for asynchronous fetches. Every message carries the
// issue token captured when its command was dispatched; Update drops any
// message whose token is no longer the newest for its class, so results
// apply in issue order regardless of completion order.

type functionsLoadedMsg struct {
	functions []data.Function
	err       error
}

type graphLoadedMsg struct {
	fn    string
	graph *mir.Graph
	token uint64
	err   error
}

type pathsLoadedMsg struct {
	fn    string
	paths []mir.Path
	token uint64
	err   error
}

type assertionsLoadedMsg struct {
	fn         string
	assertions []overlay.Assertion
	token      uint64
	err        error
}

type bundleLoadedMsg struct {
	key    overlay.BundleKey
	bundle *overlay.Bundle
	token  uint64
	err    error
}

type dotLoadedMsg struct {
	key   overlay.DotKey
	dot   string
	token uint64
	err   error
}
