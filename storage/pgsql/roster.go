/*
 * Copyright (c) 2019 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package pgsql

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/ortuman/rabber/model/rostermodel"
)

type pgSQLRoster struct {
	*pgSQLStorage
}

func newRoster(db *sql.DB) *pgSQLRoster {
	return &pgSQLRoster{pgSQLStorage: newStorage(db)}
}

// FindOrCreateRosterGroup returns the user roster group named after name, creating it if needed.
func (r *pgSQLRoster) FindOrCreateRosterGroup(ctx context.Context, username, name string) (*rostermodel.Group, error) {
	q := psql.Insert("roster_groups").
		Columns("username", "name").
		Values(username, name).
		Suffix("ON CONFLICT (username, name) DO UPDATE SET updated_at = NOW() RETURNING id")

	g := rostermodel.Group{Username: username, Name: name}
	if err := q.RunWith(r.db).QueryRowContext(ctx).Scan(&g.ID); err != nil {
		return nil, err
	}
	return &g, nil
}

// InsertRosterEntry inserts a new roster entry into storage.
func (r *pgSQLRoster) InsertRosterEntry(ctx context.Context, entry *rostermodel.Entry) error {
	q := psql.Insert("roster_entries").
		Columns("roster_group_id", "jid", "name", "subscription").
		Values(entry.GroupID, entry.JID, entry.Name, int(entry.Subscription)).
		Suffix("RETURNING id")

	return q.RunWith(r.db).QueryRowContext(ctx).Scan(&entry.ID)
}

// FetchRosterGroups retrieves all groups associated to a user roster.
func (r *pgSQLRoster) FetchRosterGroups(ctx context.Context, username string) ([]rostermodel.Group, error) {
	q := psql.Select("id", "username", "name").
		From("roster_groups").
		Where(sq.Eq{"username": username}).
		OrderBy("id")

	rows, err := q.RunWith(r.db).QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ret []rostermodel.Group
	for rows.Next() {
		var g rostermodel.Group
		if err := rows.Scan(&g.ID, &g.Username, &g.Name); err != nil {
			return nil, err
		}
		ret = append(ret, g)
	}
	return ret, rows.Err()
}

// FetchRosterEntries retrieves all roster entries associated to a user roster.
func (r *pgSQLRoster) FetchRosterEntries(ctx context.Context, username string) ([]rostermodel.Entry, error) {
	q := psql.Select("e.id", "e.roster_group_id", "e.jid", "e.name", "e.subscription").
		From("roster_entries e").
		Join("roster_groups g ON e.roster_group_id = g.id").
		Where(sq.Eq{"g.username": username}).
		OrderBy("e.id")

	rows, err := q.RunWith(r.db).QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ret []rostermodel.Entry
	for rows.Next() {
		var e rostermodel.Entry
		var subscription int
		if err := rows.Scan(&e.ID, &e.GroupID, &e.JID, &e.Name, &subscription); err != nil {
			return nil, err
		}
		e.Subscription = rostermodel.Subscription(subscription)
		ret = append(ret, e)
	}
	return ret, rows.Err()
}
