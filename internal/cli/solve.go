package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aalvaropc/brixbalance/internal/domain"
	"github.com/aalvaropc/brixbalance/internal/infra/httpclient"
	"github.com/aalvaropc/brixbalance/internal/infra/jsonview"
	"github.com/aalvaropc/brixbalance/internal/infra/logger"
	"github.com/aalvaropc/brixbalance/internal/infra/numfmt"
	"github.com/aalvaropc/brixbalance/internal/usecase"
	"github.com/aalvaropc/brixbalance/internal/usecase/extract"
)

func solveCmd(opts *rootOptions) *cobra.Command {
	var configPath string
	var mass, initial, target float64
	var format string
	var jsonPath string
	var server string

	c := &cobra.Command{
		Use:   "solve",
		Short: "Compute the sugar to add to reach the target concentration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := loadSession(configPath)
			if err != nil {
				return err
			}
			opts.setupLogging(sess.root, sess.cfg.Log, false)

			ucOpts := []usecase.SolveOption{usecase.WithLogger(logger.L())}
			if strings.TrimSpace(server) != "" {
				remote, err := httpclient.NewRemoteSolver(server, logger.L())
				if err != nil {
					return err
				}
				ucOpts = append(ucOpts, usecase.WithSolver(remote))
			}
			uc := usecase.NewSolveBalance(sess.cfg.Inputs, ucOpts...)

			in := uc.Defaults()
			if cmd.Flags().Changed("mass") {
				in.InitialMass = mass
			}
			if cmd.Flags().Changed("initial") {
				in.InitialPercent = initial
			}
			if cmd.Flags().Changed("target") {
				in.TargetPercent = target
			}

			b, err := uc.Execute(cmd.Context(), in)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if strings.TrimSpace(jsonPath) != "" {
				v, err := extract.SelectValue(jsonview.FromBalance(b, nil), jsonPath)
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(out, v)
				return err
			}
			return printBalance(out, b, format, sess.cfg.Output.Precision)
		},
	}

	c.Flags().StringVar(&configPath, "config", "", "Path to brix.yaml (optional; autodetected if omitted)")
	c.Flags().Float64VarP(&mass, "mass", "m", 0, "Initial pulp mass M1 in kg (default from config)")
	c.Flags().Float64VarP(&initial, "initial", "i", 0, "Initial concentration X1 in °Brix percent (default from config)")
	c.Flags().Float64VarP(&target, "target", "t", 0, "Target concentration X3 in °Brix percent (default from config)")
	c.Flags().StringVar(&format, "format", "pretty", "Output format: pretty|json|explain")
	c.Flags().StringVar(&server, "server", "", "Solve on a running brixbalance API instead of locally (e.g. http://127.0.0.1:8080)")
	c.Flags().StringVar(&jsonPath, "jsonpath", "", "Print only the value selected from the JSON result (e.g. $.sugar_mass_kg)")

	return c
}

func printBalance(w io.Writer, b domain.Balance, format string, precision int) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(jsonview.FromBalance(b, nil))
	case "pretty", "":
		printPrettyBalance(w, b, precision)
		return nil
	case "explain":
		printPrettyBalance(w, b, precision)
		fmt.Fprintln(w)
		printSteps(w, b, precision)
		return nil
	default:
		return fmt.Errorf("unsupported format %q (expected pretty|json|explain)", format)
	}
}

func printPrettyBalance(w io.Writer, b domain.Balance, p int) {
	fmt.Fprintf(w, "Initial pulp (M1):  %s at %s\n", numfmt.Kg(b.Inputs.InitialMass, p), numfmt.Percent(b.Inputs.InitialPercent, p))
	fmt.Fprintf(w, "Target:             %s\n", numfmt.Percent(b.Inputs.TargetPercent, p))
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Sugar to add (M2):  %s\n", numfmt.Kg(b.SugarMass, p))
	fmt.Fprintf(w, "Final pulp (M3):    %s\n", numfmt.Kg(b.FinalMass, p))
}

func printSteps(w io.Writer, b domain.Balance, p int) {
	steps := b.Steps(func(v float64) string { return numfmt.Fixed(v, p) })
	for i, s := range steps {
		fmt.Fprintf(w, "%d. %s\n", i+1, s.Title)
		fmt.Fprintf(w, "   %s\n", s.Equation)
		if s.Substituted != "" {
			fmt.Fprintf(w, "   %s\n", s.Substituted)
		}
		if s.Note != "" {
			fmt.Fprintf(w, "   %s\n", s.Note)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Where:")
	for _, g := range domain.Glossary {
		fmt.Fprintf(w, "  %-10s %s\n", g.Symbol, g.Meaning)
	}
}
