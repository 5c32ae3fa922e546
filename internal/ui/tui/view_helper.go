package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/aalvaropc/brixbalance/internal/domain"
	"github.com/aalvaropc/brixbalance/internal/infra/numfmt"
)

func clampString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))

	n := 0
	for _, r := range s {
		if n >= maxLen {
			break
		}
		b.WriteRune(r)
		n++
	}
	return b.String() + "…"
}

func metricPanel(t Theme, label, value string) string {
	return t.Metric.Render(t.Subtitle.Render(label) + "\n" + t.Value.Render(value))
}

func renderSteps(t Theme, b domain.Balance, precision int) string {
	var sb strings.Builder
	sb.WriteString(t.Title.Render("How it is computed"))
	sb.WriteString("\n\n")

	for _, s := range b.Steps(func(v float64) string { return numfmt.Fixed(v, precision) }) {
		sb.WriteString(t.Value.Render(s.Title))
		sb.WriteString("\n  ")
		sb.WriteString(s.Equation)
		sb.WriteString("\n")
		if s.Substituted != "" {
			sb.WriteString("  ")
			sb.WriteString(s.Substituted)
			sb.WriteString("\n")
		}
		if s.Note != "" {
			sb.WriteString("  ")
			sb.WriteString(t.Subtitle.Render(s.Note))
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	for _, g := range domain.Glossary {
		sb.WriteString(t.Help.Render(g.Symbol + ": " + g.Meaning))
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
