package command

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"
	"go.jetpack.io/kubecert/certcli/command/mock"
	"go.jetpack.io/kubecert/goutil/errorutil"
	"go.jetpack.io/kubecert/pkg/jetlog"
	"go.jetpack.io/kubecert/pkg/kubecreds"
)

const kubeconfig = `
apiVersion: v1
kind: Config
contexts:
- context:
    cluster: ocp
    user: admin
  name: admin
users:
- name: admin
  user:
    client-certificate-data: QUJD
    client-key-data: WFlj
- name: ops
  user:
    client-certificate-data: b3BzLWNlcnQ=
    client-key-data: b3BzLWtleQ==
- name: reader
  user:
    token: abc
`

type Suite struct {
	suite.Suite
	opts   *mock.MockCmdOptions
	stdout *bytes.Buffer
}

func TestSuite(t *testing.T) {
	suite.Run(t, &Suite{})
}

func (s *Suite) SetupTest() {
	color.NoColor = true
	s.opts = mock.NewCmdOptions()
	s.stdout = &bytes.Buffer{}
	jetlog.SetOutput(s.stdout)
	s.Require().NoError(afero.WriteFile(s.opts.Fs(), "kubeconfig.yaml", []byte(kubeconfig), 0600))
}

func (s *Suite) execute(args ...string) (string, error) {
	cmd := NewRootCmd(s.opts)
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (s *Suite) readFile(path string) string {
	data, err := afero.ReadFile(s.opts.Fs(), path)
	s.Require().NoError(err)
	return string(data)
}

func (s *Suite) TestExtractDefaults() {
	req := s.Require()
	_, err := s.execute("kubeconfig.yaml")
	req.NoError(err)
	req.Equal("ABC", s.readFile(kubecreds.DefaultCertFile))
	req.Equal("XYc", s.readFile(kubecreds.DefaultKeyFile))
	req.Contains(s.stdout.String(), "certificate: k8s.crt")
}

func (s *Suite) TestExtractFlags() {
	req := s.Require()
	_, err := s.execute("kubeconfig.yaml", "--user", "ops", "--cert-out", "ops.crt", "--key-out", "ops.key", "-o", "creds")
	req.NoError(err)
	req.Equal("ops-cert", s.readFile("creds/ops.crt"))
	req.Equal("ops-key", s.readFile("creds/ops.key"))
}

func (s *Suite) TestExtractFromEnvironment() {
	req := s.Require()
	s.T().Setenv("KUBECERT_USER", "ops")
	s.T().Setenv("KUBECERT_CERT_OUT", "env.crt")

	_, err := s.execute("kubeconfig.yaml")
	req.NoError(err)
	req.Equal("ops-cert", s.readFile("env.crt"))
	req.Equal("ops-key", s.readFile(kubecreds.DefaultKeyFile))
}

func (s *Suite) TestExplicitFlagBeatsEnvironment() {
	req := s.Require()
	s.T().Setenv("KUBECERT_USER", "ops")

	_, err := s.execute("kubeconfig.yaml", "--user", "admin")
	req.NoError(err)
	req.Equal("ABC", s.readFile(kubecreds.DefaultCertFile))
}

func (s *Suite) TestExtractFromDotEnv() {
	req := s.Require()
	req.NoError(afero.WriteFile(s.opts.Fs(), ".env", []byte("KUBECERT_USER=ops\nUNRELATED=1\n"), 0600))

	_, err := s.execute("kubeconfig.yaml")
	req.NoError(err)
	req.Equal("ops-cert", s.readFile(kubecreds.DefaultCertFile))
}

func (s *Suite) TestMissingArgumentPrintsUsage() {
	req := s.Require()
	out, err := s.execute()
	req.ErrorIs(err, errMissingKubeconfig)
	req.Contains(out, "kubecert <kubeconfig>")
}

func (s *Suite) TestTooManyArguments() {
	_, err := s.execute("a.yaml", "b.yaml")
	s.Require().Error(err)
}

func (s *Suite) TestEmptyKubeconfig() {
	req := s.Require()
	req.NoError(afero.WriteFile(s.opts.Fs(), "empty.yaml", nil, 0600))

	_, err := s.execute("empty.yaml")
	req.NoError(err)
	req.Contains(s.stdout.String(), "WARNING: empty.yaml is empty")
	exists, err := afero.Exists(s.opts.Fs(), kubecreds.DefaultCertFile)
	req.NoError(err)
	req.False(exists)
}

func (s *Suite) TestExtractErrorsHaveUserMessages() {
	cases := []struct {
		name string
		args []string
		want error
		msg  string
	}{
		{"unknown user", []string{"kubeconfig.yaml", "--user", "nobody"}, kubecreds.ErrMissingField, `user "nobody"`},
		{"no certificate", []string{"kubeconfig.yaml", "--user", "reader"}, kubecreds.ErrMissingField, "kubecert users kubeconfig.yaml"},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.execute(tc.args...)
			s.Require().ErrorIs(err, tc.want)
			s.Contains(errorutil.GetUserErrorMessage(err), tc.msg)
		})
	}
}

func (s *Suite) TestUsers() {
	req := s.Require()
	_, err := s.execute("users", "kubeconfig.yaml")
	req.NoError(err)
	out := s.stdout.String()
	req.Contains(out, "# Users in kubeconfig.yaml")
	req.Contains(out, "admin\textractable: yes\tcontexts: admin")
	req.Contains(out, "reader\textractable: no\tcontexts: ")
}

func (s *Suite) TestVersion() {
	req := s.Require()
	_, err := s.execute("version", "--short")
	req.NoError(err)
	req.Equal("0.0.0\n", s.stdout.String())
}

func (s *Suite) TestEmptyFlagValuesAreRejected() {
	cases := []struct {
		name string
		args []string
		msg  string
	}{
		{"user", []string{"kubeconfig.yaml", "--user", ""}, "--user must not be empty"},
		{"blank user", []string{"kubeconfig.yaml", "--user", "  "}, "--user must not be empty"},
		{"cert-out", []string{"kubeconfig.yaml", "--cert-out", ""}, "--cert-out must not be empty"},
		{"output-dir", []string{"kubeconfig.yaml", "-o", ""}, "--output-dir must not be empty"},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.SetupTest()
			_, err := s.execute(tc.args...)
			s.Require().Error(err)
			s.Equal(tc.msg, errorutil.GetUserErrorMessage(err))
			exists, err := afero.Exists(s.opts.Fs(), kubecreds.DefaultCertFile)
			s.Require().NoError(err)
			s.False(exists)
		})
	}
}

func (s *Suite) TestEmptyUserFromDotEnvIsRejected() {
	req := s.Require()
	req.NoError(afero.WriteFile(s.opts.Fs(), ".env", []byte("KUBECERT_USER=\n"), 0600))

	_, err := s.execute("kubeconfig.yaml")
	req.Error(err)
	req.Equal("--user must not be empty", errorutil.GetUserErrorMessage(err))
}
