/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package repository

import (
	"context"

	"github.com/ortuman/rabber/model"
)

// User defines user repository operations
type User interface {
	// UpsertUser inserts a new user entity into storage, or updates it in case it's been previously inserted.
	UpsertUser(ctx context.Context, user *model.User) error

	// DeleteUser deletes a user entity from storage.
	DeleteUser(ctx context.Context, username string) error

	// FetchUser retrieves from storage a user entity.
	// A nil user is returned if the user does not exist.
	FetchUser(ctx context.Context, username string) (*model.User, error)

	// UserExists returns whether or not a user exists within storage.
	UserExists(ctx context.Context, username string) (bool, error)
}
