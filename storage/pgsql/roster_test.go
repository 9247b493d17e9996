/*
 * Copyright (c) 2019 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package pgsql

import (
	"context"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/ortuman/rabber/model/rostermodel"
	"github.com/stretchr/testify/require"
)

func TestFindOrCreateRosterGroup(t *testing.T) {
	s, mock := newRosterMock()
	mock.ExpectQuery("INSERT INTO roster_groups (.+) ON CONFLICT \\(username, name\\) (.+) RETURNING id").
		WithArgs("romeo", "Friends").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(5))

	g, err := s.FindOrCreateRosterGroup(context.Background(), "romeo", "Friends")
	require.Nil(t, mock.ExpectationsWereMet())
	require.Nil(t, err)
	require.Equal(t, &rostermodel.Group{ID: 5, Username: "romeo", Name: "Friends"}, g)

	s, mock = newRosterMock()
	mock.ExpectQuery("INSERT INTO roster_groups (.+)").
		WithArgs("romeo", "Friends").
		WillReturnError(errMocked)

	_, err = s.FindOrCreateRosterGroup(context.Background(), "romeo", "Friends")
	require.Nil(t, mock.ExpectationsWereMet())
	require.Equal(t, errMocked, err)
}

func TestInsertRosterEntry(t *testing.T) {
	e := rostermodel.Entry{GroupID: 5, JID: "juliet@capulet.lit", Name: "Juliet", Subscription: rostermodel.SubscriptionTo}

	s, mock := newRosterMock()
	mock.ExpectQuery("INSERT INTO roster_entries (.+) RETURNING id").
		WithArgs(int64(5), "juliet@capulet.lit", "Juliet", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))

	err := s.InsertRosterEntry(context.Background(), &e)
	require.Nil(t, mock.ExpectationsWereMet())
	require.Nil(t, err)
	require.Equal(t, int64(9), e.ID)

	s, mock = newRosterMock()
	mock.ExpectQuery("INSERT INTO roster_entries (.+)").
		WillReturnError(errMocked)

	err = s.InsertRosterEntry(context.Background(), &e)
	require.Nil(t, mock.ExpectationsWereMet())
	require.Equal(t, errMocked, err)
}

func TestFetchRosterGroups(t *testing.T) {
	s, mock := newRosterMock()
	mock.ExpectQuery("SELECT id, username, name FROM roster_groups WHERE username = \\$1 ORDER BY id").
		WithArgs("romeo").
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "name"}).AddRow(1, "romeo", "Friends"))

	groups, err := s.FetchRosterGroups(context.Background(), "romeo")
	require.Nil(t, mock.ExpectationsWereMet())
	require.Nil(t, err)
	require.Equal(t, []rostermodel.Group{{ID: 1, Username: "romeo", Name: "Friends"}}, groups)
}

func TestFetchRosterEntries(t *testing.T) {
	s, mock := newRosterMock()
	mock.ExpectQuery("SELECT (.+) FROM roster_entries e JOIN roster_groups g ON (.+) WHERE g.username = \\$1").
		WithArgs("romeo").
		WillReturnRows(sqlmock.NewRows([]string{"id", "roster_group_id", "jid", "name", "subscription"}).
			AddRow(3, 1, "juliet@capulet.lit", "Juliet", 2))

	entries, err := s.FetchRosterEntries(context.Background(), "romeo")
	require.Nil(t, mock.ExpectationsWereMet())
	require.Nil(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, rostermodel.SubscriptionFrom, entries[0].Subscription)

	s, mock = newRosterMock()
	mock.ExpectQuery("SELECT (.+) FROM roster_entries (.+)").
		WithArgs("romeo").
		WillReturnError(errMocked)

	_, err = s.FetchRosterEntries(context.Background(), "romeo")
	require.Nil(t, mock.ExpectationsWereMet())
	require.Equal(t, errMocked, err)
}

func newRosterMock() (*pgSQLRoster, sqlmock.Sqlmock) {
	s, sqlMock := newStorageMock()
	return &pgSQLRoster{pgSQLStorage: s}, sqlMock
}
