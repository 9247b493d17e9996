/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package command

import (
	"context"
	"time"

	"github.com/ortuman/rabber/app"
	"github.com/ortuman/rabber/storage"
	"github.com/ortuman/rabber/storage/repository"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// GlobalFlags are flags that defined globally and are inherited to all sub-commands.
type GlobalFlags struct {
	ConfigFile     string
	CommandTimeOut time.Duration
}

// repositoryProvider opens the storage described by a server configuration file,
// returning it along with the configured server domain.
var repositoryProvider = func(configFile string) (repository.Container, string, error) {
	var cfg app.Config
	if err := cfg.FromFile(configFile); err != nil {
		return nil, "", errors.Wrap(err, "load configuration")
	}
	rep, err := storage.New(&cfg.Storage)
	if err != nil {
		return nil, "", err
	}
	return rep, cfg.C2S.Domain, nil
}

func repositoryFromCmd(cmd *cobra.Command) (repository.Container, string, error) {
	configFile, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, "", err
	}
	return repositoryProvider(configFile)
}

func commandCtx(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	timeOut, err := cmd.Flags().GetDuration("command-timeout")
	if err != nil || timeOut <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeOut)
}
