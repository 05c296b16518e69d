package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"crmdash/internal/app"
	"crmdash/internal/client"
	"crmdash/internal/config"
)

type commandWiring struct {
	stdout     io.Writer
	stderr     io.Writer
	loadConfig func() (config.Config, error)
	newClient  func(cfg config.Config) (*client.Client, error)
	runUI      func(ctx context.Context, opts app.Options) error
	version    string
}

func defaultCommandWiring(stdout, stderr io.Writer) commandWiring {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}
	return commandWiring{
		stdout:     stdout,
		stderr:     stderr,
		loadConfig: config.Load,
		newClient:  client.FromConfig,
		runUI:      app.Run,
		version:    buildVersion(),
	}
}

func newRootCmd(wiring commandWiring) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "crmdash",
		Short:         "Terminal CRM dashboard",
		Long:          "crmdash is a terminal dashboard for a CRM backend: a responsive navigation shell with a polled notification feed.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(wiring.stdout)
	cmd.SetErr(wiring.stderr)
	cmd.AddCommand(newUICmd(wiring))
	cmd.AddCommand(newDaemonCmd(wiring))
	cmd.AddCommand(newNotifyCmd(wiring))
	cmd.AddCommand(newNotificationsCmd(wiring))
	cmd.AddCommand(newListCmd(wiring))
	cmd.AddCommand(newConfigCmd(wiring))
	cmd.AddCommand(newVersionCmd(wiring))
	return cmd
}

func (w commandWiring) clientFromConfig() (config.Config, *client.Client, error) {
	cfg, err := w.loadConfig()
	if err != nil {
		return config.Config{}, nil, err
	}
	c, err := w.newClient(cfg)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, c, nil
}
