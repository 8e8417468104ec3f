// Copyright 2022 Jetpack Technologies Inc and contributors. All rights reserved.
// Use of this source code is governed by the license in the LICENSE file.

package certcli

import (
	"context"
	"os"

	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.jetpack.io/kubecert/certcli/command"
	"go.jetpack.io/kubecert/certcli/flags"
	"go.jetpack.io/kubecert/certcli/provider"
	"go.jetpack.io/kubecert/pkg/buildstamp"
)

const sentryDSNEnv = "KUBECERT_SENTRY_DSN"

type Certcli struct {
	errorLogger provider.ErrorLogger
	fs          afero.Fs
	rootCommand *cobra.Command
	rootFlags   *flags.RootCmdFlags
}
type certcliOption func(*Certcli)

func New(opts ...certcliOption) *Certcli {
	c := &Certcli{
		errorLogger: defaultErrorLogger(),
		fs:          afero.NewOsFs(),
		rootFlags:   &flags.RootCmdFlags{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// defaultErrorLogger reports to the Sentry DSN in KUBECERT_SENTRY_DSN, if any.
func defaultErrorLogger() provider.ErrorLogger {
	logger, err := provider.NewSentryLogger(sentry.ClientOptions{
		Dsn:     os.Getenv(sentryDSNEnv),
		Release: buildstamp.Get().Version(),
	})
	if err != nil {
		logrus.WithError(err).Warn("error reporting is disabled")
		return &provider.NoOpLogger{}
	}
	return logger
}

func (c *Certcli) Run(ctx context.Context) {
	command.Execute(ctx, c)
}

func (c *Certcli) ErrorLogger() provider.ErrorLogger {
	return c.errorLogger
}

func (c *Certcli) Fs() afero.Fs {
	return c.fs
}

func (c *Certcli) RootFlags() *flags.RootCmdFlags {
	return c.rootFlags
}

func (c *Certcli) RootCommand() *cobra.Command {
	if c.rootCommand == nil {
		c.rootCommand = command.NewRootCmd(c)
	}
	return c.rootCommand
}

// Options

func WithErrorLogger(logger provider.ErrorLogger) certcliOption {
	return func(c *Certcli) {
		c.errorLogger = logger
	}
}

// WithFs replaces the filesystem the kubeconfig is read from and the
// credentials are written to.
func WithFs(fs afero.Fs) certcliOption {
	return func(c *Certcli) {
		c.fs = fs
	}
}
