/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package rostermodel

import (
	"bytes"
	"encoding/gob"
)

// Group represents a roster group storage entity.
// A group name is unique within a user roster.
type Group struct {
	ID       int64
	Username string
	Name     string
}

// FromBytes deserializes a Group entity from it's gob binary representation.
func (g *Group) FromBytes(buf *bytes.Buffer) error {
	dec := gob.NewDecoder(buf)
	if err := dec.Decode(&g.ID); err != nil {
		return err
	}
	if err := dec.Decode(&g.Username); err != nil {
		return err
	}
	return dec.Decode(&g.Name)
}

// ToBytes converts a Group entity to it's gob binary representation.
func (g *Group) ToBytes(buf *bytes.Buffer) error {
	enc := gob.NewEncoder(buf)
	if err := enc.Encode(&g.ID); err != nil {
		return err
	}
	if err := enc.Encode(&g.Username); err != nil {
		return err
	}
	return enc.Encode(&g.Name)
}
