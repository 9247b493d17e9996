/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package command

import (
	"fmt"

	"github.com/ortuman/rabber/version"
	"github.com/spf13/cobra"
)

// NewVersionCommand prints out the version of rabberctl.
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Prints the version of rabberctl",
		Run:   versionCommandFunc,
	}
}

func versionCommandFunc(cmd *cobra.Command, _ []string) {
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "rabberctl version:", version.ApplicationVersion)
}
