package tui

import (
	"log/slog"

	"github.com/aalvaropc/brixbalance/internal/ports"
	"github.com/aalvaropc/brixbalance/internal/usecase"
)

type Deps struct {
	Solver    *usecase.SolveBalance
	Precision int

	ConfigPath        string // empty when running on built-in defaults
	ConfigLocator     ports.ConfigLocator
	ConfigInitializer ports.ConfigInitializer

	Logger  *slog.Logger
	LogPath string // shown under the banner when Debug is set
	Debug   bool
}
