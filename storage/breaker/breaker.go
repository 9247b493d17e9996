/*
 * Copyright (c) 2019 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package breaker

import (
	"context"

	"github.com/ortuman/rabber/log"
	"github.com/ortuman/rabber/model"
	"github.com/ortuman/rabber/model/rostermodel"
	"github.com/ortuman/rabber/storage/repository"
	"github.com/sony/gobreaker"
)

type breakerContainer struct {
	rep    repository.Container
	user   *breakerUser
	roster *breakerRoster
}

// New wraps rep so that every repository call goes through a shared circuit breaker.
// Once tripped, calls fail fast with gobreaker.ErrOpenState until the breaker timeout elapses.
func New(rep repository.Container, cfg *Config) repository.Container {
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.setDefaults()

	threshold := cfg.FailureThreshold
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "storage",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warnf("%s circuit breaker state changed: %s -> %s", name, from, to)
		},
		IsSuccessful: func(err error) bool {
			// canceled requests say nothing about storage health
			return err == nil || err == context.Canceled
		},
	})
	return &breakerContainer{
		rep:    rep,
		user:   &breakerUser{cb: cb, rep: rep.User()},
		roster: &breakerRoster{cb: cb, rep: rep.Roster()},
	}
}

func (c *breakerContainer) User() repository.User     { return c.user }
func (c *breakerContainer) Roster() repository.Roster { return c.roster }

func (c *breakerContainer) Close(ctx context.Context) error { return c.rep.Close(ctx) }

type breakerUser struct {
	cb  *gobreaker.CircuitBreaker
	rep repository.User
}

func (u *breakerUser) UpsertUser(ctx context.Context, user *model.User) error {
	_, err := u.cb.Execute(func() (interface{}, error) {
		return nil, u.rep.UpsertUser(ctx, user)
	})
	return err
}

func (u *breakerUser) DeleteUser(ctx context.Context, username string) error {
	_, err := u.cb.Execute(func() (interface{}, error) {
		return nil, u.rep.DeleteUser(ctx, username)
	})
	return err
}

func (u *breakerUser) FetchUser(ctx context.Context, username string) (*model.User, error) {
	v, err := u.cb.Execute(func() (interface{}, error) {
		return u.rep.FetchUser(ctx, username)
	})
	if err != nil {
		return nil, err
	}
	usr, _ := v.(*model.User)
	return usr, nil
}

func (u *breakerUser) UserExists(ctx context.Context, username string) (bool, error) {
	v, err := u.cb.Execute(func() (interface{}, error) {
		return u.rep.UserExists(ctx, username)
	})
	if err != nil {
		return false, err
	}
	return v.(bool), nil
}

type breakerRoster struct {
	cb  *gobreaker.CircuitBreaker
	rep repository.Roster
}

func (r *breakerRoster) FindOrCreateRosterGroup(ctx context.Context, username, name string) (*rostermodel.Group, error) {
	v, err := r.cb.Execute(func() (interface{}, error) {
		return r.rep.FindOrCreateRosterGroup(ctx, username, name)
	})
	if err != nil {
		return nil, err
	}
	g, _ := v.(*rostermodel.Group)
	return g, nil
}

func (r *breakerRoster) InsertRosterEntry(ctx context.Context, entry *rostermodel.Entry) error {
	_, err := r.cb.Execute(func() (interface{}, error) {
		return nil, r.rep.InsertRosterEntry(ctx, entry)
	})
	return err
}

func (r *breakerRoster) FetchRosterGroups(ctx context.Context, username string) ([]rostermodel.Group, error) {
	v, err := r.cb.Execute(func() (interface{}, error) {
		return r.rep.FetchRosterGroups(ctx, username)
	})
	if err != nil {
		return nil, err
	}
	groups, _ := v.([]rostermodel.Group)
	return groups, nil
}

func (r *breakerRoster) FetchRosterEntries(ctx context.Context, username string) ([]rostermodel.Entry, error) {
	v, err := r.cb.Execute(func() (interface{}, error) {
		return r.rep.FetchRosterEntries(ctx, username)
	})
	if err != nil {
		return nil, err
	}
	entries, _ := v.([]rostermodel.Entry)
	return entries, nil
}
