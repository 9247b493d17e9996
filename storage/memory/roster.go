/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package memorystorage

import (
	"context"
	"strconv"

	"github.com/ortuman/rabber/model/rostermodel"
)

// Roster represents an in memory roster repository.
type Roster struct {
	*memoryStorage
	lastGroupID int64
	lastEntryID int64
}

// NewRoster returns an in memory roster repository.
func NewRoster() *Roster {
	return &Roster{memoryStorage: newStorage()}
}

// FindOrCreateRosterGroup returns the user roster group named after name, creating it if needed.
func (m *Roster) FindOrCreateRosterGroup(_ context.Context, username, name string) (*rostermodel.Group, error) {
	var ret *rostermodel.Group
	err := m.inWriteLock(func() error {
		var groups []rostermodel.Group
		if err := m.readSlice(rosterGroupsKey(username), &groups); err != nil {
			return err
		}
		for _, g := range groups {
			if g.Name == name {
				ret = &g
				return nil
			}
		}
		m.lastGroupID++
		g := rostermodel.Group{ID: m.lastGroupID, Username: username, Name: name}
		if err := m.putSlice(rosterGroupsKey(username), append(groups, g)); err != nil {
			return err
		}
		ret = &g
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ret, nil
}

// InsertRosterEntry inserts a new roster entry into storage.
func (m *Roster) InsertRosterEntry(_ context.Context, entry *rostermodel.Entry) error {
	return m.inWriteLock(func() error {
		var entries []rostermodel.Entry
		if err := m.readSlice(rosterEntriesKey(entry.GroupID), &entries); err != nil {
			return err
		}
		e := *entry
		e.ID = m.lastEntryID + 1
		if err := m.putSlice(rosterEntriesKey(entry.GroupID), append(entries, e)); err != nil {
			return err
		}
		m.lastEntryID++
		entry.ID = e.ID
		return nil
	})
}

// FetchRosterGroups retrieves all groups associated to a user roster.
func (m *Roster) FetchRosterGroups(_ context.Context, username string) ([]rostermodel.Group, error) {
	var groups []rostermodel.Group
	if err := m.inReadLock(func() error {
		return m.readSlice(rosterGroupsKey(username), &groups)
	}); err != nil {
		return nil, err
	}
	return groups, nil
}

// FetchRosterEntries retrieves all roster entries associated to a user roster.
func (m *Roster) FetchRosterEntries(_ context.Context, username string) ([]rostermodel.Entry, error) {
	var ret []rostermodel.Entry
	if err := m.inReadLock(func() error {
		var groups []rostermodel.Group
		if err := m.readSlice(rosterGroupsKey(username), &groups); err != nil {
			return err
		}
		for _, g := range groups {
			var entries []rostermodel.Entry
			if err := m.readSlice(rosterEntriesKey(g.ID), &entries); err != nil {
				return err
			}
			ret = append(ret, entries...)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	return ret, nil
}

func rosterGroupsKey(username string) string {
	return "rosterGroups:" + username
}

func rosterEntriesKey(groupID int64) string {
	return "rosterEntries:" + strconv.FormatInt(groupID, 10)
}
