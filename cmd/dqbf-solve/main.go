package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/fslivovsky/pedantic/internal/dqbf"
	"github.com/fslivovsky/pedantic/internal/dqcir"
	"github.com/fslivovsky/pedantic/internal/ids"
	"github.com/fslivovsky/pedantic/internal/signalctx"
	"github.com/fslivovsky/pedantic/internal/version"
)

type options struct {
	info        bool
	detectEquiv bool
	verbose     bool
	showVersion bool
}

func newRootCmd() *cobra.Command {
	o := options{}

	cmd := &cobra.Command{
		Use:          "dqbf-solve [flags] FILE",
		Short:        "Decides a DQBF instance given in DQCIR format",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if o.showVersion {
				fmt.Print(version.String())
				return nil
			}
			if len(args) != 1 {
				return fmt.Errorf("exactly one DQCIR file argument is required")
			}

			logger := logrus.New()
			if o.verbose {
				logger.SetLevel(logrus.DebugLevel)
			}

			ctx, cancel := context.WithCancel(signalctx.Context())
			defer cancel()

			code, err := run(ctx, args[0], o, logger)
			if err != nil {
				logger.WithError(err).Error("run failed")
			}
			os.Exit(code)
			return nil
		},
	}

	cmd.Flags().BoolVar(&o.info, "info", false, "parse only and print a summary of the instance")
	cmd.Flags().BoolVar(&o.detectEquiv, "detect-equiv", false, "probe existentials for equivalence before solving")
	cmd.Flags().BoolVarP(&o.verbose, "verbose", "v", false, "enable debug-level logging")
	cmd.Flags().BoolVar(&o.showVersion, "version", false, "print version information and exit")

	return cmd
}

// run implements the CLI body: parse, optionally summarize, translate
// to CNF, and decide. It returns the process exit code spec.md §6
// names (10 SAT, 20 UNSAT, 1 error) rather than calling os.Exit
// itself, so it stays testable.
func run(ctx context.Context, path string, o options, logger *logrus.Logger) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 1, err
	}
	defer f.Close()

	doc, err := dqcir.Parse(f, nil)
	if err != nil {
		return 1, err
	}

	if o.info {
		printSummary(doc)
		return 0, nil
	}

	input, err := buildInput(doc)
	if err != nil {
		return 1, err
	}

	controller, err := dqbf.New(input, dqbf.WithLogger(logger))
	if err != nil {
		return 1, err
	}

	if o.detectEquiv {
		for _, class := range controller.EquivalenceClasses() {
			logger.WithField("class", varNames(doc.Names, class)).Debug("equivalence class")
		}
	}

	result, err := controller.Run(ctx, o.verbose)
	if err != nil {
		return 1, err
	}

	fmt.Println(result.Verdict.String())
	logger.WithField("iterations", result.Iterations).
		WithField("expansion_vars", result.ExpansionVars).
		Info("done")

	if o.verbose && result.Model != nil {
		printModel(doc, result)
	}

	return result.Verdict.ExitCode(), nil
}

func buildInput(doc *dqcir.Document) (*dqbf.Input, error) {
	matrix, err := doc.Tseitin()
	if err != nil {
		return nil, err
	}

	existentials := make([]*dqbf.Existential, 0, len(doc.Existentials))
	for _, v := range doc.Existentials {
		deps := make(map[ids.Var]struct{}, len(doc.Dependencies[v]))
		for _, u := range doc.Dependencies[v] {
			deps[u] = struct{}{}
		}
		existentials = append(existentials, &dqbf.Existential{Var: v, Deps: deps})
	}

	return &dqbf.Input{
		Names:        doc.Names,
		Universals:   doc.Universals,
		Existentials: existentials,
		Matrix:       matrix,
		Counter:      doc.Counter,
	}, nil
}

func printSummary(doc *dqcir.Document) {
	fmt.Printf("universals: %d\n", len(doc.Universals))
	fmt.Printf("existentials: %d\n", len(doc.Existentials))
	fmt.Printf("output: %s\n", doc.Names.Name(doc.Output()))
}

func varNames(names *ids.Names, vars []ids.Var) []string {
	out := make([]string, len(vars))
	for i, v := range vars {
		out[i] = names.Name(v)
	}
	return out
}

func printModel(doc *dqcir.Document, result *dqbf.Result) {
	for _, row := range result.Model {
		fmt.Printf("universals=%v existentials=%v\n", row.Universals, row.Existentials)
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
