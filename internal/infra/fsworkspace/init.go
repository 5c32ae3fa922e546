package fsworkspace

import (
	"embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/aalvaropc/brixbalance/internal/domain"
	"github.com/aalvaropc/brixbalance/internal/infra/config"
	"github.com/aalvaropc/brixbalance/internal/ports"
)

//go:embed templates/brix.yaml
var templatesFS embed.FS

const templatePath = "templates/brix.yaml"

type Initializer struct{}

func NewInitializer() *Initializer {
	return &Initializer{}
}

var _ ports.ConfigInitializer = (*Initializer)(nil)

// Template returns the default brix.yaml contents.
func Template() []byte {
	b, err := templatesFS.ReadFile(templatePath)
	if err != nil {
		panic(err)
	}
	return b
}

// Init writes brix.yaml under root. An existing file is kept unless force is set.
func (i *Initializer) Init(root string, force bool) (string, error) {
	root = filepath.Clean(root)
	path := filepath.Join(root, config.FileName)

	if err := os.MkdirAll(filepath.Join(root, ".brix", "logs"), 0o755); err != nil {
		return path, execErr("fsworkspace.mkdir", root, err)
	}

	if err := ensureGitignore(root); err != nil {
		return path, execErr("fsworkspace.gitignore", filepath.Join(root, ".gitignore"), err)
	}

	if !force {
		if _, statErr := os.Stat(path); statErr == nil {
			return path, nil
		}
	}

	if err := os.WriteFile(path, Template(), 0o644); err != nil {
		return path, execErr("fsworkspace.write", path, err)
	}
	return path, nil
}

func execErr(op, path string, err error) error {
	return &domain.OpError{
		Op:   op,
		Kind: domain.KindExecution,
		Path: path,
		Err:  err,
	}
}

func ensureGitignore(root string) error {
	const header = "# brixbalance"
	entries := []string{
		".brix/",
	}

	path := filepath.Join(root, ".gitignore")
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			lines := append([]string{header}, entries...)
			lines = append(lines, "")
			return os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0o644)
		}
		return err
	}

	existing := string(b)
	present := map[string]bool{}
	for _, line := range strings.Split(existing, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		present[trimmed] = true
	}

	var missing []string
	for _, e := range entries {
		if !present[e] {
			missing = append(missing, e)
		}
	}
	if len(missing) == 0 {
		return nil
	}

	var out strings.Builder
	out.Grow(len(existing) + 32)

	out.WriteString(existing)
	if existing != "" && !strings.HasSuffix(existing, "\n") {
		out.WriteByte('\n')
	}
	out.WriteByte('\n')
	if !present[header] {
		out.WriteString(header)
		out.WriteByte('\n')
	}
	for _, e := range missing {
		out.WriteString(e)
		out.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(out.String()), 0o644)
}
