package tui

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func cmdRefreshConfig(deps Deps) tea.Cmd {
	return func() tea.Msg {
		wd, err := os.Getwd()
		if err != nil {
			return configRefreshedMsg{err: fmt.Errorf("getwd: %w", err)}
		}
		if deps.ConfigLocator == nil {
			return configRefreshedMsg{cwd: wd, err: errors.New("ConfigLocator is nil")}
		}

		root, findErr := deps.ConfigLocator.FindRoot(wd)
		if findErr != nil {
			return configRefreshedMsg{cwd: wd, err: findErr}
		}
		return configRefreshedMsg{cwd: wd, found: true, root: root}
	}
}

// cmdInitConfigHere writes brix.yaml into root, keeping an existing file.
func cmdInitConfigHere(deps Deps, root string) tea.Cmd {
	return func() tea.Msg {
		if deps.ConfigInitializer == nil {
			return configInitDoneMsg{err: errors.New("ConfigInitializer is nil")}
		}
		path, err := deps.ConfigInitializer.Init(root, false)
		return configInitDoneMsg{path: path, err: err}
	}
}
