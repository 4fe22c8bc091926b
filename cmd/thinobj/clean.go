package main

import (
	"github.com/spf13/cobra"

	"github.com/toyz/thinobj/internal/cli"
	"github.com/toyz/thinobj/internal/generator"
	"github.com/toyz/thinobj/internal/utils"
)

func newCleanCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clean [directories...]",
		Short: "Remove generated companions",
		Long: `Clean deletes the companions under the given directories. Only files that
start with the generated header are removed; hand-written files sharing the
suffix are kept.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			suffix := a.config.GetString(keySuffix)
			if suffix == "" {
				suffix = generator.DefaultSuffix
			}

			diagnostics := a.diagnostics(cmd)
			fp := utils.NewFileProcessor(suffix, generator.GeneratedHeader)
			removed, err := cli.NewCleaner(fp, diagnostics).CleanGeneratedFiles(args)
			if err != nil {
				diagnostics.Error("clean failed: %v", err)
				return errReported
			}
			if len(removed) == 0 {
				diagnostics.Info("no generated companions found")
				return nil
			}
			diagnostics.Success("removed %d generated companions", len(removed))
			return nil
		},
	}
}
