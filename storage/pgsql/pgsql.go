/*
 * Copyright (c) 2019 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package pgsql

import (
	"context"
	"database/sql"
	"net/url"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"github.com/ortuman/rabber/log"
	"github.com/ortuman/rabber/storage/repository"
	"github.com/pkg/errors"
)

const driverName = "postgres"

var (
	keepAliveInterval = 15 * time.Second
	pingTimeout       = 10 * time.Second
)

var openDB = sql.Open

type pgSQLContainer struct {
	user   *pgSQLUser
	roster *pgSQLRoster

	db     *sql.DB
	cancel context.CancelFunc
	doneCh chan struct{}
}

// New opens a PostgreSQL connection pool described by cfg and returns a container
// serving users and rosters out of it.
func New(cfg *Config) (repository.Container, error) {
	db, err := openDB(driverName, cfg.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "pgsql: open")
	}
	db.SetMaxOpenConns(cfg.PoolSize)

	if err := ping(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, errors.Wrapf(err, "pgsql: unable to reach %s", cfg.Host)
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &pgSQLContainer{
		user:   newUser(db),
		roster: newRoster(db),
		db:     db,
		cancel: cancel,
		doneCh: make(chan struct{}),
	}
	go c.keepAlive(ctx)
	return c, nil
}

// DSN returns the lib/pq connection URL for c.
func (c *Config) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host,
		Path:     "/" + c.Database,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	return u.String()
}

func (c *pgSQLContainer) User() repository.User     { return c.user }
func (c *pgSQLContainer) Roster() repository.Roster { return c.roster }

// Close stops the keep-alive loop and releases every pooled connection.
func (c *pgSQLContainer) Close(ctx context.Context) error {
	c.cancel()
	select {
	case <-c.doneCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (c *pgSQLContainer) keepAlive(ctx context.Context) {
	defer close(c.doneCh)

	tc := time.NewTicker(keepAliveInterval)
	defer tc.Stop()
	for {
		select {
		case <-tc.C:
			if err := ping(ctx, c.db); err != nil && ctx.Err() == nil {
				log.Warnf("pgsql: keep-alive ping failed: %v", err)
			}
		case <-ctx.Done():
			if err := c.db.Close(); err != nil {
				log.Error(err)
			}
			return
		}
	}
}

func ping(ctx context.Context, db *sql.DB) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return db.PingContext(pingCtx)
}
