/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package model

import (
	"bytes"
	"encoding/gob"
)

// User represents a user storage entity.
type User struct {
	Username       string
	Password       string
	DigestMD5Nonce string
	DigestMD5NC    int
}

// FromBytes deserializes a User entity from it's gob binary representation.
func (u *User) FromBytes(buf *bytes.Buffer) error {
	dec := gob.NewDecoder(buf)
	if err := dec.Decode(&u.Username); err != nil {
		return err
	}
	if err := dec.Decode(&u.Password); err != nil {
		return err
	}
	if err := dec.Decode(&u.DigestMD5Nonce); err != nil {
		return err
	}
	return dec.Decode(&u.DigestMD5NC)
}

// ToBytes converts a User entity to it's gob binary representation.
func (u *User) ToBytes(buf *bytes.Buffer) error {
	enc := gob.NewEncoder(buf)
	if err := enc.Encode(&u.Username); err != nil {
		return err
	}
	if err := enc.Encode(&u.Password); err != nil {
		return err
	}
	if err := enc.Encode(&u.DigestMD5Nonce); err != nil {
		return err
	}
	return enc.Encode(&u.DigestMD5NC)
}
