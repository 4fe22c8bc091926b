package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/toyz/thinobj/internal/cli"
	"github.com/toyz/thinobj/internal/utils"
)

func newGenerateCmd(a *app) *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:   "generate [directories...]",
		Short: "Write the companion of every annotated source file",
		Long: `Generate parses every Go package under the given directories (default: the
current one) and writes <file>_thin.go next to each file declaring annotated
interfaces. A file whose interfaces fail keeps its previous companion.

With --check nothing is written; the command fails when a companion is
missing or out of date.`,
		Example: `  thinobj generate ./...
  thinobj generate --experimental-inheritance ./shapes
  thinobj generate --check ./...`,
		RunE: func(cmd *cobra.Command, args []string) error {
			config := cli.Config{
				Directories:             args,
				ModuleName:              a.config.GetString(keyModule),
				Suffix:                  a.config.GetString(keySuffix),
				ExperimentalInheritance: a.config.GetBool(keyInheritance),
				Check:                   check,
				Verbose:                 a.config.GetBool(keyVerbose),
			}
			if len(config.Directories) == 0 {
				config.Directories = []string{"."}
			}

			diagnostics := a.diagnostics(cmd)
			diagnostics.ThinHeader("generating companions")
			diagnostics.Verbose("directories: %s", strings.Join(config.Directories, ", "))
			if config.ModuleName != "" {
				diagnostics.Verbose("custom module: %s", config.ModuleName)
			}

			reporter := cli.NewDiagnosticReporter(config.Verbose)
			reporter.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())

			generator := cli.NewGenerator(config, diagnostics)
			if err := generator.Run(); err != nil {
				reporter.ReportError(err)
				return errReported
			}
			if diagnostics.Level() >= utils.DiagnosticInfo {
				reporter.ReportSuccess(generator.GetSummary())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "fail when a companion is missing or stale instead of writing it")
	return cmd
}
