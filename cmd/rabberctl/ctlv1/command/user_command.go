/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bgentry/speakeasy"
	"github.com/ortuman/rabber/model"
	"github.com/ortuman/rabber/storage/repository"
	"github.com/ortuman/rabber/xmpp/jid"
	"github.com/spf13/cobra"
)

var readPassword = speakeasy.Ask

type userFlags struct {
	password    string
	interactive bool
}

// NewUserCommand returns the cobra command for "user".
func NewUserCommand() *cobra.Command {
	ac := &cobra.Command{
		Use:   "user <subcommand>",
		Short: "User related commands",
	}

	ac.AddCommand(newUserAddCommand())
	ac.AddCommand(newUserChangePasswordCommand())
	ac.AddCommand(newUserDeleteCommand())

	return ac
}

func newUserAddCommand() *cobra.Command {
	var fl userFlags
	cmd := cobra.Command{
		Use:   "add <user name or user:password> [options]",
		Short: "Adds a new user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return userAddCommandFunc(cmd, args, &fl)
		},
	}
	cmd.Flags().BoolVar(&fl.interactive, "interactive", true, "read password from an interactive terminal")
	cmd.Flags().StringVar(&fl.password, "new-user-password", "", "supply password from the command line flag")
	return &cmd
}

func newUserChangePasswordCommand() *cobra.Command {
	var fl userFlags
	cmd := cobra.Command{
		Use:   "passwd <user name> [options]",
		Short: "Changes password of user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return userChangePasswordCommandFunc(cmd, args, &fl)
		},
	}
	cmd.Flags().BoolVar(&fl.interactive, "interactive", true, "read password from an interactive terminal")
	cmd.Flags().StringVar(&fl.password, "new-user-password", "", "supply password from the command line flag")
	return &cmd
}

func newUserDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <user name>",
		Short: "Deletes a user",
		Args:  cobra.ExactArgs(1),
		RunE:  userDeleteCommandFunc,
	}
}

// userAddCommandFunc executes the "user add" command.
func userAddCommandFunc(cmd *cobra.Command, args []string, fl *userFlags) error {
	username, password := args[0], fl.password
	if len(password) == 0 {
		if splitted := strings.SplitN(args[0], ":", 2); len(splitted) == 2 {
			username, password = splitted[0], splitted[1]
		}
	}
	if len(username) == 0 {
		return errors.New("empty user name is not allowed")
	}
	return withUserRepository(cmd, username, func(users repository.User, username string) error {
		if len(password) == 0 {
			pwd, err := readUserPassword(cmd, username, fl)
			if err != nil {
				return err
			}
			password = pwd
		}
		ctx, cancel := commandCtx(cmd)
		defer cancel()

		exists, err := users.UserExists(ctx, username)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("user %s already exists", username)
		}
		if err := users.UpsertUser(ctx, &model.User{Username: username, Password: password}); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "User %s created\n", username)
		return nil
	})
}

// userChangePasswordCommandFunc executes the "user passwd" command.
func userChangePasswordCommandFunc(cmd *cobra.Command, args []string, fl *userFlags) error {
	return withUserRepository(cmd, args[0], func(users repository.User, username string) error {
		ctx, cancel := commandCtx(cmd)
		defer cancel()

		usr, err := users.FetchUser(ctx, username)
		if err != nil {
			return err
		}
		if usr == nil {
			return fmt.Errorf("user %s not found", username)
		}
		password := fl.password
		if len(password) == 0 {
			if password, err = readUserPassword(cmd, username, fl); err != nil {
				return err
			}
		}
		// a new password invalidates any previously negotiated digest nonce
		usr.Password = password
		usr.DigestMD5Nonce = ""
		usr.DigestMD5NC = 0
		if err := users.UpsertUser(ctx, usr); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Password updated")
		return nil
	})
}

// userDeleteCommandFunc executes the "user delete" command.
func userDeleteCommandFunc(cmd *cobra.Command, args []string) error {
	return withUserRepository(cmd, args[0], func(users repository.User, username string) error {
		ctx, cancel := commandCtx(cmd)
		defer cancel()

		exists, err := users.UserExists(ctx, username)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("user %s not found", username)
		}
		if err := users.DeleteUser(ctx, username); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "User %s deleted\n", username)
		return nil
	})
}

func withUserRepository(cmd *cobra.Command, name string, fn func(users repository.User, username string) error) error {
	rep, domain, err := repositoryFromCmd(cmd)
	if err != nil {
		return err
	}
	defer func() {
		ctx, cancel := commandCtx(cmd)
		defer cancel()
		_ = rep.Close(ctx)
	}()

	j, err := jid.New(name, domain, "", false)
	if err != nil {
		return fmt.Errorf("invalid user name %s: %v", name, err)
	}
	return fn(rep.User(), j.Node())
}

func readUserPassword(cmd *cobra.Command, username string, fl *userFlags) (string, error) {
	if !fl.interactive {
		var password string
		if _, err := fmt.Fscanf(cmd.InOrStdin(), "%s", &password); err != nil {
			return "", fmt.Errorf("failed to read password: %v", err)
		}
		return password, nil
	}
	prompt1 := fmt.Sprintf("Password of %s: ", username)
	password1, err := readPassword(prompt1)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %v", err)
	}
	if len(password1) == 0 {
		return "", errors.New("empty password")
	}
	prompt2 := fmt.Sprintf("Type password of %s again for confirmation: ", username)
	password2, err := readPassword(prompt2)
	if err != nil {
		return "", fmt.Errorf("failed to read password: %v", err)
	}
	if password1 != password2 {
		return "", errors.New("given passwords are different")
	}
	return password1, nil
}
