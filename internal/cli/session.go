package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/brixbalance/internal/domain"
	"github.com/aalvaropc/brixbalance/internal/infra/config"
	"github.com/aalvaropc/brixbalance/internal/infra/configfinder"
)

// session is the configuration a command runs with.
type session struct {
	root string // directory holding the config file; empty for built-in defaults
	path string
	cfg  domain.Config
}

// loadSession reads the config named by configFlag, or the nearest brix.yaml
// above the working directory. With neither, the built-in defaults apply.
func loadSession(configFlag string) (session, error) {
	p := strings.TrimSpace(configFlag)
	if p != "" {
		abs, err := filepath.Abs(p)
		if err != nil {
			return session{}, fmt.Errorf("invalid config path: %w", err)
		}
		cfg, err := config.LoadConfig(abs)
		if err != nil {
			return session{}, err
		}
		return session{root: filepath.Dir(abs), path: abs, cfg: cfg}, nil
	}

	path, err := configfinder.NewFinder().FindConfig(workingDir())
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return session{cfg: domain.DefaultConfig()}, nil
		}
		return session{}, err
	}

	cfg, err := config.LoadConfig(path)
	if err != nil {
		return session{}, err
	}
	return session{root: filepath.Dir(path), path: path, cfg: cfg}, nil
}

func workingDir() string {
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	wd, _ = filepath.Abs(wd)
	return wd
}
