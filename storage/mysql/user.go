/*
 * Copyright (c) 2019 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package mysql

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	"github.com/ortuman/rabber/model"
)

type mySQLUser struct {
	*mySQLStorage
}

func newUser(db *sql.DB) *mySQLUser {
	return &mySQLUser{mySQLStorage: newStorage(db)}
}

// UpsertUser inserts a new user entity into storage, or updates it in case it's been previously inserted.
func (u *mySQLUser) UpsertUser(ctx context.Context, usr *model.User) error {
	q := sq.Insert("users").
		Columns("username", "password", "digest_md5_nonce", "digest_md5_nc", "updated_at", "created_at").
		Values(usr.Username, usr.Password, usr.DigestMD5Nonce, usr.DigestMD5NC, nowExpr, nowExpr).
		Suffix("ON DUPLICATE KEY UPDATE password = ?, digest_md5_nonce = ?, digest_md5_nc = ?, updated_at = NOW()",
			usr.Password, usr.DigestMD5Nonce, usr.DigestMD5NC)

	_, err := q.RunWith(u.db).ExecContext(ctx)
	return err
}

// FetchUser retrieves from storage a user entity.
func (u *mySQLUser) FetchUser(ctx context.Context, username string) (*model.User, error) {
	q := sq.Select("username", "password", "digest_md5_nonce", "digest_md5_nc").
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
func (u *mySQLUser) DeleteUser(ctx context.Context, username string) error {
	return u.inTransaction(ctx, func(tx *sql.Tx) error {
		_, err := sq.Delete("roster_entries").
			Where("roster_group_id IN (SELECT id FROM roster_groups WHERE username = ?)", username).
			RunWith(tx).ExecContext(ctx)
		if err != nil {
			return err
		}
		_, err = sq.Delete("roster_groups").Where(sq.Eq{"username": username}).RunWith(tx).ExecContext(ctx)
		if err != nil {
			return err
		}
		_, err = sq.Delete("users").Where(sq.Eq{"username": username}).RunWith(tx).ExecContext(ctx)
		return err
	})
}

// UserExists returns whether or not a user exists within storage.
func (u *mySQLUser) UserExists(ctx context.Context, username string) (bool, error) {
	var count int

	q := sq.Select("COUNT(*)").From("users").Where(sq.Eq{"username": username})
	if err := q.RunWith(u.db).QueryRowContext(ctx).Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}
