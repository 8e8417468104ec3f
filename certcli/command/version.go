package command

import (
	"github.com/spf13/cobra"
	"go.jetpack.io/kubecert/pkg/buildstamp"
	"go.jetpack.io/kubecert/pkg/jetlog"
)

func versionCmd() *cobra.Command {
	verboseFlag := false
	shortFlag := false

	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Prints the version number",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			v := buildstamp.Get().Version()
			if shortFlag {
				jetlog.Logger(ctx).Println(v)
				return nil
			}
			jetlog.Logger(ctx).Printf("%v %v\n", binaryName, v)
			if verboseFlag {
				buildstamp.PrintVerboseVersion(jetlog.Logger(ctx))
			}
			return nil
		},
	}
	versionCmd.Flags().BoolVarP(
		&verboseFlag,
		"verbose",
		"v",
		false, // value
		"Set to true for verbose output",
	)
	versionCmd.Flags().BoolVarP(
		&shortFlag,
		"short",
		"s",
		false, // value
		"Set to true for short output",
	)
	return versionCmd
}
