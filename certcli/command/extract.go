package command

import (
	"context"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.jetpack.io/kubecert/certcli/flags"
	"go.jetpack.io/kubecert/goutil/errorutil"
	"go.jetpack.io/kubecert/pkg/jetlog"
	"go.jetpack.io/kubecert/pkg/kubecreds"
)

var errMissingKubeconfig = errorutil.NewUserError(
	"Missing kubeconfig path. Usage: kubecert <kubeconfig>",
)

func registerExtractFlags(cmd *cobra.Command, f *flags.ExtractCmdFlags) {
	cmd.Flags().StringVarP(
		&f.User,
		"user",
		"u",
		kubecreds.DefaultUser,
		"Name of the kubeconfig user whose credentials are extracted",
	)
	cmd.Flags().StringVar(
		&f.CertFile,
		"cert-out",
		kubecreds.DefaultCertFile,
		"File name for the decoded client certificate",
	)
	cmd.Flags().StringVar(
		&f.KeyFile,
		"key-out",
		kubecreds.DefaultKeyFile,
		"File name for the decoded client key",
	)
	cmd.Flags().StringVarP(
		&f.OutputDir,
		"output-dir",
		"o",
		".",
		"Directory the certificate and key files are written to",
	)
}

func runExtract(ctx context.Context, f *flags.ExtractCmdFlags, path string) error {
	if err := validateExtractFlags(f); err != nil {
		return err
	}
	extractor := kubecreds.NewWithFs(cmdOpts.Fs(), kubecreds.Options{
		User:      f.User,
		CertFile:  f.CertFile,
		KeyFile:   f.KeyFile,
		OutputDir: f.OutputDir,
	})

	var result *kubecreds.Result
	err := jetlog.Logger(ctx).WithSpinnerFuncPrint(func() error {
		var err error
		result, err = extractor.Run(ctx, path)
		return err
	}, "Extracting credentials of user "+extractor.Options().User)
	if err != nil {
		return withUserMessage(err, path, extractor.Options().User)
	}

	if result.Skipped {
		jetlog.Logger(ctx).WarningPrintf("%s is empty, no files were written", path)
		return nil
	}
	jetlog.Logger(ctx).IndentedPrintln("certificate: %s", result.CertPath)
	jetlog.Logger(ctx).IndentedPrintln("key:         %s", result.KeyPath)
	return nil
}

// validateExtractFlags rejects values that were set but left empty. Defaults
// only apply to flags that were not set at all.
func validateExtractFlags(f *flags.ExtractCmdFlags) error {
	values := []struct{ flag, value string }{
		{"user", f.User},
		{"cert-out", f.CertFile},
		{"key-out", f.KeyFile},
		{"output-dir", f.OutputDir},
	}
	for _, v := range values {
		if strings.TrimSpace(v.value) == "" {
			return errorutil.NewUserErrorf("--%s must not be empty", v.flag)
		}
	}
	return nil
}

func withUserMessage(err error, path, user string) error {
	switch {
	case errors.Is(err, kubecreds.ErrParse):
		return errorutil.AddUserMessagef(err, "%s is not a valid kubeconfig", path)
	case errors.Is(err, kubecreds.ErrMissingField):
		return errorutil.AddUserMessagef(
			err,
			"%s does not contain embedded client credentials for user %q. "+
				"Run `kubecert users %s` to list the users it defines",
			path,
			user,
			path,
		)
	case errors.Is(err, kubecreds.ErrDecode):
		return errorutil.AddUserMessagef(
			err,
			"The credentials of user %q in %s are not base64 encoded text",
			user,
			path,
		)
	}
	return errors.WithStack(err)
}
