/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package ctlv1

import (
	"time"

	"github.com/ortuman/rabber/cmd/rabberctl/ctlv1/command"
	"github.com/spf13/cobra"
)

const (
	cliName        = "rabberctl"
	cliDescription = "A simple command line client for rabber."

	defaultConfigFile     = "/etc/rabber/rabber.yml"
	defaultCommandTimeOut = 5 * time.Second
)

var (
	globalFlags = command.GlobalFlags{}
)

var (
	rootCmd = &cobra.Command{
		Use:           cliName,
		Short:         cliDescription,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	cobra.EnablePrefixMatching = true

	rootCmd.PersistentFlags().StringVarP(&globalFlags.ConfigFile, "config", "c", defaultConfigFile, "server configuration file")
	rootCmd.PersistentFlags().DurationVar(&globalFlags.CommandTimeOut, "command-timeout", defaultCommandTimeOut, "timeout for running command")

	rootCmd.AddCommand(
		command.NewUserCommand(),
		command.NewVersionCommand(),
	)
}

// Start executes the command line client.
func Start() error {
	// Make help just show the usage
	rootCmd.SetHelpTemplate(`{{.UsageString}}`)
	return rootCmd.Execute()
}

// MustStart executes the command line client exiting the process on failure.
func MustStart() {
	if err := Start(); err != nil {
		command.ExitWithError(command.ExitError, err)
	}
}
