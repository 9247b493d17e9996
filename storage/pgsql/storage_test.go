/*
 * Copyright (c) 2019 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package pgsql

import (
	"errors"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/ortuman/rabber/log"
)

var errMocked = errors.New("pgsql: storage error")

// newStorageMock returns a mocked PostgreSQL storage instance.
func newStorageMock() (*pgSQLStorage, sqlmock.Sqlmock) {
	db, sqlMock, err := sqlmock.New()
	if err != nil {
		log.Fatalf("%v", err)
	}
	return &pgSQLStorage{db: db}, sqlMock
}
