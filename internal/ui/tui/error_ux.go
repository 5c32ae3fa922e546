package tui

import (
	"errors"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aalvaropc/brixbalance/internal/domain"
)

var reLine = regexp.MustCompile(`(?i)\bline\s+(\d+)\b`)

// userMessage turns err into a short message without any computed figures.
func userMessage(err error) string {
	if err == nil {
		return ""
	}

	var oe *domain.OpError
	if errors.As(err, &oe) {
		switch oe.Kind {
		case domain.KindInvalidConcentrationOrder:
			return "Target concentration must be higher than the initial concentration"

		case domain.KindUnreachableTarget:
			return "A 100% target cannot be reached by adding sugar"

		case domain.KindInvalidInput:
			label := fieldLabel(err.Error())
			if strings.Contains(err.Error(), "finite") || strings.Contains(err.Error(), "not a number") {
				return label + " is not a valid number"
			}
			return label + " is out of range"

		case domain.KindNotFound:
			if strings.Contains(oe.Op, "configfinder") {
				return "brix.yaml not found"
			}
			return "Not found"

		case domain.KindInvalidConfig:
			base := "config"
			if strings.TrimSpace(oe.Path) != "" {
				base = filepath.Base(oe.Path)
			}

			line := extractLine(err.Error())
			if line != "" {
				return "Invalid YAML at " + base + " line " + line
			}
			if looksLikeYAMLProblem(err.Error()) {
				return "Invalid YAML at " + base
			}
			return "Invalid config"

		default:
			return "Unexpected error (see logs)"
		}
	}

	if looksLikeYAMLProblem(err.Error()) {
		line := extractLine(err.Error())
		if line != "" {
			return "Invalid YAML line " + line
		}
		return "Invalid YAML"
	}

	return "Unexpected error (see logs)"
}

func fieldLabel(s string) string {
	switch {
	case strings.Contains(s, domain.FieldInitialMass):
		return "Initial mass"
	case strings.Contains(s, domain.FieldInitialPercent):
		return "Initial concentration"
	case strings.Contains(s, domain.FieldTargetPercent):
		return "Target concentration"
	default:
		return "Input"
	}
}

func looksLikeYAMLProblem(s string) bool {
	ls := strings.ToLower(s)
	return strings.Contains(ls, "yaml:") || strings.Contains(ls, "did not find expected") || strings.Contains(ls, "cannot unmarshal")
}

func extractLine(s string) string {
	m := reLine.FindStringSubmatch(s)
	if len(m) == 2 {
		return m[1]
	}
	return ""
}
