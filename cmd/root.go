// Package cmd provides the root command and CLI setup for recase.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"recase.dev/pkg/recase/internal/adapter"
	"recase.dev/pkg/recase/internal/controller"
	"recase.dev/pkg/recase/internal/domain"
	m "recase.dev/pkg/recase/internal/model"
)

var sourceFS adapter.SourceFS
var backupStore adapter.BackupStore
var reportStore adapter.ReportStore
var ui controller.UI
var workflow domain.Workflow

// reportsOutputDirFlag is a root-level flag shared by commands that read or
// write reports.
var reportsOutputDirFlag string

// excludeDirs is a root-level flag adding directory names the scanner skips.
var excludeDirs []string

// verboseFlag raises file logging to Debug.
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	sourceFS = adapter.NewLocalSourceFS()
	backupStore = adapter.NewLocalBackupStore(sourceFS)
	reportStore = adapter.NewLocalReportStore(sourceFS)
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	workflow = domain.NewWorkflow(
		sourceFS,
		backupStore,
		reportStore,
		ui,
		func(command string) adapter.SyntaxChecker {
			return adapter.NewLocalSyntaxChecker(command)
		},
		func(path m.Path) adapter.RunLock {
			return adapter.NewFileRunLock(path)
		},
	)
}

const rootLongDescription = `Recase scans a source tree for snake_case identifiers, converts them to
camelCase, and rewrites the files safely: every file is backed up before it
is touched, and a fatal error rolls the whole run back.

Use 'recase scan' first to see what a run would do, or 'recase run
--dry-run' for the full report without any mutation.`

const runLongDescription = `Run the batch rename against a source tree (default: current directory).

Live runs back up every file before rewriting it and restore the entire tree
if anything goes wrong mid-run. Pass --dry-run to compute the change report
without touching the disk.`

const scanLongDescription = `List candidate files with their classification and the number of
convention-violating identifiers in each. Analysis only; nothing is written.`

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "recase",
		Short: "Batch snake_case to camelCase source refactoring",
		Long:  rootLongDescription,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), verboseFlag)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().
		StringVarP(
			&reportsOutputDirFlag, outputFlagName, "o",
			viper.GetString(outputFlagName),
			"output directory for run reports",
		)
	bindFlagToConfig(cmd.PersistentFlags().Lookup(outputFlagName), outputFlagName)

	cmd.PersistentFlags().StringArrayVarP(&excludeDirs, excludeFlagName, "x", viper.GetStringSlice(excludeConfigKey), "exclude directories by name (can be repeated)")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(excludeFlagName), excludeConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", false, "enable debug logging")
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values
// feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// parseRoot resolves the optional positional root argument.
func parseRoot(args []string) m.Path {
	if len(args) == 0 {
		return m.Path(".")
	}

	return m.Path(args[0])
}
