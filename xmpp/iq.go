/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package xmpp

const (
	// GetType represents a 'get' IQ type.
	GetType = "get"

	// SetType represents a 'set' IQ type.
	SetType = "set"

	// ResultType represents a 'result' IQ type.
	ResultType = "result"

	// ErrorType represents an 'error' stanza type.
	ErrorType = "error"
)

// NewIQType creates and returns a new IQ element.
func NewIQType(identifier string, iqType string) *Element {
	return NewElementName(IQName).SetID(identifier).SetType(iqType)
}

// IsIQType returns true if tp is one of the four IQ types.
func IsIQType(tp string) bool {
	switch tp {
	case GetType, SetType, ResultType, ErrorType:
		return true
	}
	return false
}
