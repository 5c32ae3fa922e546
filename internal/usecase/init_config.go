package usecase

import "github.com/aalvaropc/brixbalance/internal/ports"

type InitConfig struct {
	initializer ports.ConfigInitializer
}

func NewInitConfig(initializer ports.ConfigInitializer) *InitConfig {
	return &InitConfig{initializer: initializer}
}

// Execute writes a default brix.yaml into root and returns its path.
func (uc *InitConfig) Execute(root string, force bool) (string, error) {
	return uc.initializer.Init(root, force)
}
