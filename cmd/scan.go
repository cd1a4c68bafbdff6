package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"recase.dev/pkg/recase/internal/domain"
)

// scanCmd represents the scan command.
var scanCmd = newScanCmd()

func newScanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scan [root]",
		Short: "List candidate files and violation counts",
		Long:  scanLongDescription,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return workflow.Scan(cmd.Context(), domain.ScanArgs{
				Root:       parseRoot(args),
				Exclude:    viper.GetStringSlice(excludeConfigKey),
				Extensions: viper.GetStringSlice(extensionsConfigKey),
			})
		},
	}
}

func init() {
	rootCmd.AddCommand(scanCmd)
}
