/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package rostermodel

import "time"

// History represents a message history record attached to a roster entry.
type History struct {
	ID      int64
	EntryID int64
	Body    string
	SentAt  time.Time
}
