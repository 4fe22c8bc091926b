package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/toyz/thinobj/internal/utils"
)

// app carries the state shared by every subcommand
type app struct {
	configFile string
	config     *viper.Viper
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "thinobj",
		Short: "Generate thin object companions for annotated Go interfaces",
		Long: `thinobj scans Go packages for interfaces annotated with //thin::object and
writes a companion file next to each source holding the vtable, the boxed
object and the handle of every annotated interface.

Directory arguments follow go tool conventions: ./... scans recursively.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			v, err := loadConfig(a.configFile, cmd)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			a.config = v
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default: ./.thinobj.yaml)")
	flags.BoolP("verbose", "v", false, "enable verbose output and detailed error reporting")
	flags.BoolP("quiet", "q", false, "only show errors and final results")
	flags.String("module", "", "module path for imports (defaults to go.mod)")
	flags.String("suffix", "", "companion file suffix (default: _thin)")
	flags.Bool("experimental-inheritance", false, "enable the inheritance(...) option")

	root.AddCommand(
		newGenerateCmd(a),
		newCleanCmd(a),
		newServeCmd(a),
		newVersionCmd(),
	)
	return root
}

// diagnostics builds the diagnostic system for the configured verbosity
func (a *app) diagnostics(cmd *cobra.Command) *utils.DiagnosticSystem {
	var d *utils.DiagnosticSystem
	switch {
	case a.config.GetBool(keyQuiet):
		d = utils.NewQuietDiagnostics()
	case a.config.GetBool(keyVerbose):
		d = utils.NewVerboseDiagnostics()
	default:
		d = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	d.SetOutput(cmd.OutOrStdout(), cmd.ErrOrStderr())
	return d
}
