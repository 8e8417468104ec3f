package command

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.jetpack.io/kubecert/goutil/errorutil"
	"go.jetpack.io/kubecert/goutil/fileutil"
)

const (
	envPrefix  = "KUBECERT"
	dotEnvFile = ".env"
)

// applyEnvironment sets every flag the user did not pass explicitly from its
// KUBECERT_<FLAG> environment variable, falling back to the same variable in
// a .env file in the working directory. Precedence: flag, environment, .env,
// flag default.
func applyEnvironment(cmd *cobra.Command, fs afero.Fs) error {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	dotEnv, err := readDotEnv(fs)
	if err != nil {
		return err
	}
	for name, value := range dotEnv {
		if key, ok := flagKey(name); ok {
			v.SetDefault(key, value)
		}
	}

	var applyErr error
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if applyErr != nil || f.Changed || !v.IsSet(f.Name) {
			return
		}
		value := v.GetString(f.Name)
		if err := cmd.Flags().Set(f.Name, value); err != nil {
			applyErr = errorutil.AddUserMessagef(
				err,
				"Invalid value %q for %s_%s",
				value,
				envPrefix,
				strings.ToUpper(strings.ReplaceAll(f.Name, "-", "_")),
			)
		}
	})
	return applyErr
}

func readDotEnv(fs afero.Fs) (map[string]string, error) {
	exists, err := fileutil.FileExists(fs, dotEnvFile)
	if err != nil || !exists {
		return nil, err
	}
	f, err := fs.Open(dotEnvFile)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer f.Close()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return nil, errorutil.AddUserMessagef(err, "Could not parse %s", dotEnvFile)
	}
	return vars, nil
}

// flagKey maps KUBECERT_CERT_OUT to cert-out.
func flagKey(envName string) (string, bool) {
	if !strings.HasPrefix(envName, envPrefix+"_") {
		return "", false
	}
	name := strings.TrimPrefix(envName, envPrefix+"_")
	return strings.ToLower(strings.ReplaceAll(name, "_", "-")), name != ""
}
