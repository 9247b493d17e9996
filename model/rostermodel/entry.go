/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package rostermodel

import (
	"bytes"
	"encoding/gob"
)

// Subscription represents a roster entry subscription bitmask.
type Subscription int

// roster entry subscription values
const (
	SubscriptionNone Subscription = 0
	SubscriptionTo   Subscription = 1 << 0
	SubscriptionFrom Subscription = 1 << 1
	SubscriptionBoth              = SubscriptionTo | SubscriptionFrom
)

// IsTo tells whether the contact presence is received.
func (s Subscription) IsTo() bool { return s&SubscriptionTo != 0 }

// IsFrom tells whether the contact receives the user presence.
func (s Subscription) IsFrom() bool { return s&SubscriptionFrom != 0 }

// String returns the subscription roster attribute value.
func (s Subscription) String() string {
	switch s {
	case SubscriptionTo:
		return "to"
	case SubscriptionFrom:
		return "from"
	case SubscriptionBoth:
		return "both"
	}
	return "none"
}

// Entry represents a roster entry storage entity.
type Entry struct {
	ID           int64
	GroupID      int64
	JID          string
	Name         string
	Subscription Subscription
}

// FromBytes deserializes an Entry entity from it's gob binary representation.
func (e *Entry) FromBytes(buf *bytes.Buffer) error {
	dec := gob.NewDecoder(buf)
	if err := dec.Decode(&e.ID); err != nil {
		return err
	}
	if err := dec.Decode(&e.GroupID); err != nil {
		return err
	}
	if err := dec.Decode(&e.JID); err != nil {
		return err
	}
	if err := dec.Decode(&e.Name); err != nil {
		return err
	}
	return dec.Decode(&e.Subscription)
}

// ToBytes converts an Entry entity to it's gob binary representation.
func (e *Entry) ToBytes(buf *bytes.Buffer) error {
	enc := gob.NewEncoder(buf)
	if err := enc.Encode(&e.ID); err != nil {
		return err
	}
	if err := enc.Encode(&e.GroupID); err != nil {
		return err
	}
	if err := enc.Encode(&e.JID); err != nil {
		return err
	}
	if err := enc.Encode(&e.Name); err != nil {
		return err
	}
	return enc.Encode(&e.Subscription)
}
