package ports

// ConfigLocator finds the directory holding brix.yaml starting from an arbitrary directory.
type ConfigLocator interface {
	FindRoot(startDir string) (string, error)
}
