package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ikari-pl/borrowscope/internal/data"
	"github.com/ikari-pl/borrowscope/internal/overlay"
)

// Fetch commands. Each command performs one request and reports back as a
// message; nothing here touches model state. Requests are not cancelled
// when superseded, their results are discarded on arrival instead.

func loadFunctionsCmd(client *data.Client) tea.Cmd {
	return func() tea.Msg {
		fns, err := client.Functions(context.Background())
		return functionsLoadedMsg{functions: fns, err: err}
	}
}

func loadGraphCmd(client *data.Client, fn string, token uint64) tea.Cmd {
	return func() tea.Msg {
		g, err := client.Graph(context.Background(), fn)
		return graphLoadedMsg{fn: fn, graph: g, token: token, err: err}
	}
}

func loadPathsCmd(client *data.Client, fn string, token uint64) tea.Cmd {
	return func() tea.Msg {
		paths, err := client.Paths(context.Background(), fn)
		return pathsLoadedMsg{fn: fn, paths: paths, token: token, err: err}
	}
}

func loadAssertionsCmd(client *data.Client, fn string, token uint64) tea.Cmd {
	return func() tea.Msg {
		as, err := client.Assertions(context.Background(), fn)
		return assertionsLoadedMsg{fn: fn, assertions: as, token: token, err: err}
	}
}

func loadBundleCmd(client *data.Client, key overlay.BundleKey, token uint64) tea.Cmd {
	return func() tea.Msg {
		b, err := client.Bundle(context.Background(), key)
		return bundleLoadedMsg{key: key, bundle: b, token: token, err: err}
	}
}

func loadDotCmd(client *data.Client, key overlay.DotKey, token uint64) tea.Cmd {
	return func() tea.Msg {
		dot, err := client.Dot(context.Background(), key)
		return dotLoadedMsg{key: key, dot: dot, token: token, err: err}
	}
}
