package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"recase.dev/pkg/recase/internal/domain"
	m "recase.dev/pkg/recase/internal/model"
)

var runDryRunFlag bool
var runBatchSizeFlag int
var runParallelFlag bool
var runWorkersFlag int
var runBackupDirFlag string

// runCmd represents the run command.
var runCmd = newRunCmd()

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [root]",
		Short: "Rename snake_case identifiers across a source tree",
		Long:  runLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Run(cmd.Context(), domain.RunArgs{
				Root:             parseRoot(args),
				DryRun:           runDryRunFlag,
				BatchSize:        viper.GetInt(batchSizeConfigKey),
				Parallel:         viper.GetBool(parallelConfigKey),
				Workers:          viper.GetInt(workersConfigKey),
				BackupDir:        m.Path(viper.GetString(backupDirConfigKey)),
				Reports:          m.Path(viper.GetString(outputFlagName)),
				Exclude:          viper.GetStringSlice(excludeConfigKey),
				Extensions:       viper.GetStringSlice(extensionsConfigKey),
				CheckerCommand:   viper.GetString(checkerCommandKey),
				ValidationSample: viper.GetInt(validateSampleKey),
				GraceTimeout:     graceTimeout(),
			})
		},
	}

	configureRunFlags(cmd)

	return cmd
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func configureRunFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&runDryRunFlag, dryRunFlagName, "n", false, "compute and report changes without mutating any file")
	cmd.Flags().IntVarP(&runBatchSizeFlag, batchSizeFlagName, "b", viper.GetInt(batchSizeConfigKey), "number of files per batch")
	bindFlagToConfig(cmd.Flags().Lookup(batchSizeFlagName), batchSizeConfigKey)
	cmd.Flags().BoolVarP(&runParallelFlag, parallelFlagName, "p", viper.GetBool(parallelConfigKey), "process batches with a worker pool")
	bindFlagToConfig(cmd.Flags().Lookup(parallelFlagName), parallelConfigKey)
	cmd.Flags().IntVarP(&runWorkersFlag, workersFlagName, "w", viper.GetInt(workersConfigKey), "number of parallel workers")
	bindFlagToConfig(cmd.Flags().Lookup(workersFlagName), workersConfigKey)
	cmd.Flags().StringVar(&runBackupDirFlag, backupDirFlagName, viper.GetString(backupDirConfigKey), "directory for pre-mutation backups")
	bindFlagToConfig(cmd.Flags().Lookup(backupDirFlagName), backupDirConfigKey)
}
