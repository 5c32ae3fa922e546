package ports

import "github.com/aalvaropc/brixbalance/internal/domain"

// ConfigLoader loads a brix.yaml file, applying defaults for missing keys.
type ConfigLoader interface {
	LoadConfig(path string) (domain.Config, error)
}
