package command

import (
	"strings"

	"github.com/spf13/cobra"
	"go.jetpack.io/kubecert/pkg/jetlog"
	"go.jetpack.io/kubecert/pkg/kubecreds"
)

func usersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "users <kubeconfig>",
		Short: "Lists the users of a kubeconfig and whether their credentials can be extracted",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			users, err := kubecreds.NewWithFs(cmdOpts.Fs(), kubecreds.Options{}).ListUsers(args[0])
			if err != nil {
				return withUserMessage(err, args[0], "")
			}

			if len(users) == 0 {
				jetlog.Logger(ctx).WarningPrintf("%s defines no users", args[0])
				return nil
			}

			jetlog.Logger(ctx).HeaderPrintf("Users in %s", args[0])
			for _, u := range users {
				jetlog.Logger(ctx).IndentedPrintln(
					"%s\textractable: %s\tcontexts: %s",
					u.Name,
					describeExtractable(u),
					strings.Join(u.Contexts, ","),
				)
			}
			return nil
		},
	}
}

func describeExtractable(u kubecreds.UserSummary) string {
	switch {
	case u.Extractable():
		return "yes"
	case u.HasCertificateData:
		return "no (missing " + kubecreds.KeyDataKey + ")"
	case u.HasKeyData:
		return "no (missing " + kubecreds.CertificateDataKey + ")"
	}
	return "no"
}
