package ports

// ConfigInitializer writes a default brix.yaml under root.
type ConfigInitializer interface {
	Init(root string, force bool) (path string, err error)
}
