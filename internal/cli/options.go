package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/brixbalance/internal/domain"
	"github.com/aalvaropc/brixbalance/internal/infra/jsonview"
	"github.com/aalvaropc/brixbalance/internal/infra/numfmt"
)

func optionsCmd(opts *rootOptions) *cobra.Command {
	var configPath string
	var format string

	c := &cobra.Command{
		Use:   "options",
		Short: "Show the effective input options",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := loadSession(configPath)
			if err != nil {
				return err
			}
			opts.setupLogging(sess.root, sess.cfg.Log, false)

			return printOptions(cmd.OutOrStdout(), sess, format)
		},
	}

	c.Flags().StringVar(&configPath, "config", "", "Path to brix.yaml (optional; autodetected if omitted)")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json")
	return c
}

func printOptions(w io.Writer, sess session, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(jsonview.FromOptions(sess.cfg.Inputs, sess.cfg.Output.Precision))
	case "pretty", "":
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json)", format)
	}

	src := sess.path
	if src == "" {
		src = "(built-in defaults)"
	}
	fmt.Fprintf(w, "Config:    %s\n", src)
	fmt.Fprintf(w, "Precision: %d\n\n", sess.cfg.Output.Precision)

	fmt.Fprintf(w, "%-16s %8s %8s %8s %8s\n", "FIELD", "MIN", "MAX", "DEFAULT", "STEP")
	rows := []struct {
		name string
		f    domain.FieldOptions
	}{
		{domain.FieldInitialMass, sess.cfg.Inputs.InitialMass},
		{domain.FieldInitialPercent, sess.cfg.Inputs.InitialPercent},
		{domain.FieldTargetPercent, sess.cfg.Inputs.TargetPercent},
	}
	for _, r := range rows {
		maxCol := "-"
		if r.f.HasMax {
			maxCol = fmtOption(r.f.Max)
		}
		fmt.Fprintf(w, "%-16s %8s %8s %8s %8s\n", r.name, fmtOption(r.f.Min), maxCol, fmtOption(r.f.Default), fmtOption(r.f.Step))
	}
	return nil
}

func fmtOption(v float64) string {
	return numfmt.Fixed(v, 2)
}
