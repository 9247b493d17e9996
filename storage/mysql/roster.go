/*
 * Copyright (c) 2019 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package mysql

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/ortuman/rabber/model/rostermodel"
)

type mySQLRoster struct {
	*mySQLStorage
}

func newRoster(db *sql.DB) *mySQLRoster {
	return &mySQLRoster{mySQLStorage: newStorage(db)}
}

// FindOrCreateRosterGroup returns the user roster group named after name, creating it if needed.
func (r *mySQLRoster) FindOrCreateRosterGroup(ctx context.Context, username, name string) (*rostermodel.Group, error) {
	// LAST_INSERT_ID(id) makes an existing row id available through LastInsertId
	res, err := sq.Insert("roster_groups").
		Columns("username", "name", "updated_at", "created_at").
		Values(username, name, nowExpr, nowExpr).
		Suffix("ON DUPLICATE KEY UPDATE id = LAST_INSERT_ID(id), updated_at = NOW()").
		RunWith(r.db).ExecContext(ctx)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return &rostermodel.Group{ID: id, Username: username, Name: name}, nil
}

// InsertRosterEntry inserts a new roster entry into storage.
func (r *mySQLRoster) InsertRosterEntry(ctx context.Context, entry *rostermodel.Entry) error {
	res, err := sq.Insert("roster_entries").
		Columns("roster_group_id", "jid", "name", "subscription", "updated_at", "created_at").
		Values(entry.GroupID, entry.JID, entry.Name, int(entry.Subscription), nowExpr, nowExpr).
		RunWith(r.db).ExecContext(ctx)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	entry.ID = id
	return nil
}

// FetchRosterGroups retrieves all groups associated to a user roster.
func (r *mySQLRoster) FetchRosterGroups(ctx context.Context, username string) ([]rostermodel.Group, error) {
	q := sq.Select("id", "username", "name").
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
func (r *mySQLRoster) FetchRosterEntries(ctx context.Context, username string) ([]rostermodel.Entry, error) {
	q := sq.Select("e.id", "e.roster_group_id", "e.jid", "e.name", "e.subscription").
		From("roster_entries e").
		Join("roster_groups g ON e.roster_group_id = g.id").
		Where(sq.Eq{"g.username": username}).
		OrderBy("e.id")

	rows, err := q.RunWith(r.db).QueryContext(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanRosterEntryEntities(rows)
}

func scanRosterEntryEntity(e *rostermodel.Entry, scanner rowScanner) error {
	var subscription int
	if err := scanner.Scan(&e.ID, &e.GroupID, &e.JID, &e.Name, &subscription); err != nil {
		return err
	}
	e.Subscription = rostermodel.Subscription(subscription)
	return nil
}

func scanRosterEntryEntities(scanner rowsScanner) ([]rostermodel.Entry, error) {
	var ret []rostermodel.Entry
	for scanner.Next() {
		var e rostermodel.Entry
		if err := scanRosterEntryEntity(&e, scanner); err != nil {
			return nil, err
		}
		ret = append(ret, e)
	}
	return ret, scanner.Err()
}
