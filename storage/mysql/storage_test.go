/*
 * Copyright (c) 2019 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package mysql

import (
	"errors"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/ortuman/rabber/log"
)

var errMocked = errors.New("mysql: storage error")

// newStorageMock returns a mocked MySQL storage instance.
func newStorageMock() (*mySQLStorage, sqlmock.Sqlmock) {
	db, sqlMock, err := sqlmock.New()
	if err != nil {
		log.Fatalf("%v", err)
	}
	return &mySQLStorage{db: db}, sqlMock
}
