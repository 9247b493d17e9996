/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package repository

import (
	"context"

	"github.com/ortuman/rabber/model/rostermodel"
)

// Roster defines storage operations for user's roster.
type Roster interface {
	// FindOrCreateRosterGroup returns the user roster group named after name,
	// creating it in case it didn't exist.
	FindOrCreateRosterGroup(ctx context.Context, username, name string) (*rostermodel.Group, error)

	// InsertRosterEntry inserts a new roster entry into storage.
	// Entry ID is assigned on success.
	InsertRosterEntry(ctx context.Context, entry *rostermodel.Entry) error

	// FetchRosterGroups retrieves all groups associated to a user roster.
	FetchRosterGroups(ctx context.Context, username string) ([]rostermodel.Group, error)

	// FetchRosterEntries retrieves all roster entries associated to a user roster.
	FetchRosterEntries(ctx context.Context, username string) ([]rostermodel.Entry, error)
}
