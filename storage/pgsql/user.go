/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package pgsql

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/ortuman/rabber/model"
)

type pgSQLUser struct {
	*pgSQLStorage
}

func newUser(db *sql.DB) *pgSQLUser {
	return &pgSQLUser{pgSQLStorage: newStorage(db)}
}

// UpsertUser inserts a new user entity into storage, or updates it in case it's been previously inserted.
func (u *pgSQLUser) UpsertUser(ctx context.Context, usr *model.User) error {
	q := psql.Insert("users").
		Columns("username", "password", "digest_md5_nonce", "digest_md5_nc").
		Values(usr.Username, usr.Password, usr.DigestMD5Nonce, usr.DigestMD5NC).
		Suffix("ON CONFLICT (username) DO UPDATE SET password = $2, digest_md5_nonce = $3, digest_md5_nc = $4, updated_at = NOW()")

	_, err := q.RunWith(u.db).ExecContext(ctx)
	return err
}

// FetchUser retrieves from storage a user entity.
func (u *pgSQLUser) FetchUser(ctx context.Context, username string) (*model.User, error) {
	q := psql.Select("username", "password", "digest_md5_nonce", "digest_md5_nc").
		From("users").
		Where(sq.Eq{"username": username})

	var usr model.User
	err := q.RunWith(u.db).QueryRowContext(ctx).Scan(&usr.Username, &usr.Password, &usr.DigestMD5Nonce, &usr.DigestMD5NC)
	switch err {
	case nil:
		return &usr, nil
	case sql.ErrNoRows:
		return nil, nil
	default:
		return nil, err
	}
}

// DeleteUser deletes a user entity along with its roster from storage.
func (u *pgSQLUser) DeleteUser(ctx context.Context, username string) error {
	return u.inTransaction(ctx, func(tx *sql.Tx) error {
		_, err := psql.Delete("roster_entries").
			Where("roster_group_id IN (SELECT id FROM roster_groups WHERE username = ?)", username).
			RunWith(tx).ExecContext(ctx)
		if err != nil {
			return err
		}
		_, err = psql.Delete("roster_groups").Where(sq.Eq{"username": username}).RunWith(tx).ExecContext(ctx)
		if err != nil {
			return err
		}
		_, err = psql.Delete("users").Where(sq.Eq{"username": username}).RunWith(tx).ExecContext(ctx)
		return err
	})
}

// UserExists returns whether or not a user exists within storage.
func (u *pgSQLUser) UserExists(ctx context.Context, username string) (bool, error) {
	var count int

	q := psql.Select("COUNT(*)").From("users").Where(sq.Eq{"username": username})
	err := q.RunWith(u.db).QueryRowContext(ctx).Scan(&count)
	switch err {
	case nil:
		return count > 0, nil
	default:
		return false, err
	}
}
