/*
 * Copyright (c) 2019 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package mysql

import (
	"context"
	"database/sql"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/ortuman/rabber/log"
	"github.com/ortuman/rabber/storage/repository"
	"github.com/pkg/errors"
)

const driverName = "mysql"

// keepAliveInterval defines how often idle connections are checked.
var keepAliveInterval = 15 * time.Second

var openDB = sql.Open

type mySQLContainer struct {
	user   *mySQLUser
	roster *mySQLRoster

	db     *sql.DB
	stopCh chan struct{}
	doneCh chan struct{}
}

// New opens a MySQL connection pool described by cfg and returns a container
// serving users and rosters out of it.
func New(cfg *Config) (repository.Container, error) {
	db, err := openDB(driverName, cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "mysql: open")
	}
	db.SetMaxOpenConns(cfg.PoolSize)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "mysql: unable to reach %s", cfg.Host)
	}
	c := &mySQLContainer{
		user:   newUser(db),
		roster: newRoster(db),
		db:     db,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
	go c.keepAlive()
	return c, nil
}

// DSN returns the go-sql-driver connection string for c.
func (c *Config) DSN() string {
	dc := mysqldriver.NewConfig()
	dc.User = c.User
	dc.Passwd = c.Password
	dc.Net = "tcp"
	dc.Addr = c.Host
	dc.DBName = c.Database
	dc.ParseTime = true
	return dc.FormatDSN()
}

func (c *mySQLContainer) User() repository.User     { return c.user }
func (c *mySQLContainer) Roster() repository.Roster { return c.roster }

// Close stops the keep-alive loop and releases every pooled connection.
func (c *mySQLContainer) Close(ctx context.Context) error {
	close(c.stopCh)
	select {
	case <-c.doneCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *mySQLContainer) keepAlive() {
	defer close(c.doneCh)

	tc := time.NewTicker(keepAliveInterval)
	defer tc.Stop()
	for {
		select {
		case <-tc.C:
			if err := c.db.Ping(); err != nil {
				log.Warnf("mysql: keep-alive ping failed: %v", err)
			}
		case <-c.stopCh:
			if err := c.db.Close(); err != nil {
				log.Error(err)
			}
			return
		}
	}
}
