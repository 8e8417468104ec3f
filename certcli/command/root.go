package command

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/MakeNowJust/heredoc"
	"github.com/fatih/color"
	"github.com/getsentry/sentry-go"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.jetpack.io/kubecert/certcli/flags"
	"go.jetpack.io/kubecert/certcli/provider"
	"go.jetpack.io/kubecert/goutil/errorutil"
	"golang.org/x/sys/unix"
)

const binaryName = "kubecert"

type cmdOptions interface {
	ErrorLogger() provider.ErrorLogger
	Fs() afero.Fs
	RootCommand() *cobra.Command
	RootFlags() *flags.RootCmdFlags
}

// This is global for now (for expediency). We could pass these options down
// to every function that needs them.
var cmdOpts cmdOptions

func registerRootCmdFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVarP(
		&cmdOpts.RootFlags().Debug,
		"debug",
		"d",
		false,
		"print debug output",
	)
}

func NewRootCmd(opts cmdOptions) *cobra.Command {
	cmdOpts = opts
	extractFlags := &flags.ExtractCmdFlags{}
	rootCmd := &cobra.Command{
		Use:   binaryName + " <kubeconfig>",
		Short: "Extract the client certificate and key of a kubeconfig user",
		Long: heredoc.Doc(`
			Reads a kubeconfig, finds the user entry named by --user (admin by
			default) and writes its base64 decoded client-certificate-data and
			client-key-data to two files, k8s.crt and k8s.key by default.

			The files can be used as TLS client credentials, for example:

			  curl --cert k8s.crt --key k8s.key -k https://localhost:8443/metrics
		`),
		// If an error occurs then cobra will print the Usage (i.e. --help)
		// but we don't want that. This still prints usage if user types
		// --help, or `kubecert help <cmd>`.
		SilenceUsage: true,
		// We print the error via special handling in the Execute() function
		// so we silence it here. If this were false, then we would
		// double-print the error message.
		SilenceErrors:     true,
		Args:              cobra.MaximumNArgs(1),
		PersistentPreRunE: persistentPreRunE,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				if err := cmd.Usage(); err != nil {
					return errors.WithStack(err)
				}
				return errMissingKubeconfig
			}
			return runExtract(cmd.Context(), extractFlags, args[0])
		},
	}

	registerExtractFlags(rootCmd, extractFlags)

	rootCmd.AddCommand(
		usersCmd(),
		versionCmd(),
	)

	registerRootCmdFlags(rootCmd)

	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	return rootCmd
}

// Execute is the entry point for CLI app.
func Execute(ctx context.Context, opts cmdOptions) {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, unix.SIGTERM)
	defer stop()

	if h, ok := opts.ErrorLogger().(interface{ Hub() *sentry.Hub }); ok {
		ctx = sentry.SetHubOnContext(ctx, h.Hub())
	}
	span := sentry.StartSpan(ctx, "cliCommand")
	err := opts.RootCommand().ExecuteContext(ctx)
	span.Finish()

	if err == nil {
		return
	}

	// For now log all errors. If this gets too noisy, we can log only for stuff
	// that is not a user error.
	cmdOpts.ErrorLogger().CaptureException(err)
	if opts.RootFlags().Debug {
		stackTrace := errorutil.EarliestStackTrace(err)
		errChainMsg := fmt.Sprintf("Error chain is:\n\t %s.\n\n", err.Error())
		if stackTrace != nil {
			log.Fatalf("%sStacktrace:\n%+v\n", errChainMsg, stackTrace)
		}
		log.Fatalf(
			"%sFailed to get Stacktrace:\n%+v\n",
			errChainMsg,
			errors.Cause(err),
		)
	}

	if cmdOpts.ErrorLogger().DisplayException(err) {
		// Error was displayed, but we still want to exit with non-zero code.
		os.Exit(1)
	}

	// user interrupt signals (ctrl+c) are not errors, so they get a clean
	// message instead of a cause chain.
	if errors.Is(err, context.Canceled) {
		fmt.Println("ABORT: Operation cancelled by user interruption.")
		os.Exit(1)
	}

	// This logic allows us to handle errors, combined errors and user errors.
	// errors: normal golang errors
	// combined: golang error + user friendly error to display
	// user: no golang error cause, just a user error we created.
	if msg := errorutil.GetUserErrorMessage(err); msg != "" {
		color.Red(
			"\nError: %s\n\nCaused by:\n\n %s\n\nRun with --debug for more information",
			msg,
			err,
		)
		os.Exit(1)
	}
	log.Fatalf(
		"ABORT: There was an error. The cause is:\n\t %s. \n"+
			"Run with --debug for more information",
		errors.Cause(err),
	)
}

func persistentPreRunE(cmd *cobra.Command, args []string) error {
	if err := applyEnvironment(cmd, cmdOpts.Fs()); err != nil {
		return errors.WithStack(err)
	}
	if cmdOpts.RootFlags().Debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	logrus.Debugf("running %s", cmd.CommandPath())
	return nil
}
