package mock

import (
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.jetpack.io/kubecert/certcli/flags"
	"go.jetpack.io/kubecert/certcli/provider"
)

type MockCmdOptions struct {
	Filesystem   afero.Fs
	RootCMDFlags *flags.RootCmdFlags
}

// NewCmdOptions returns options backed by an in-memory filesystem.
func NewCmdOptions() *MockCmdOptions {
	return &MockCmdOptions{
		Filesystem:   afero.NewMemMapFs(),
		RootCMDFlags: &flags.RootCmdFlags{},
	}
}

func (*MockCmdOptions) ErrorLogger() provider.ErrorLogger {
	return &provider.NoOpLogger{}
}

func (m *MockCmdOptions) Fs() afero.Fs {
	return m.Filesystem
}

func (m *MockCmdOptions) RootFlags() *flags.RootCmdFlags {
	return m.RootCMDFlags
}

func (m *MockCmdOptions) RootCommand() *cobra.Command {
	return &cobra.Command{}
}
