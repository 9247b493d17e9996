/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package auth

import "github.com/ortuman/rabber/xmpp"

// supported SASL mechanism names
const (
	PlainMechanism     = "PLAIN"
	DigestMD5Mechanism = "DIGEST-MD5"
)

// Mechanisms lists the offered SASL mechanisms in advertisement order.
var Mechanisms = []string{PlainMechanism, DigestMD5Mechanism}

// SASLError represents specific SASL error type.
type SASLError struct {
	reason string
}

func newSASLError(reason string) error {
	return &SASLError{reason}
}

// Element returs sasl error XML representation.
func (se *SASLError) Element() *xmpp.Element {
	return xmpp.NewElementName(se.reason)
}

// Error satisfies error interface.
func (se *SASLError) Error() string {
	return se.reason
}

var (
	// ErrSASLIncorrectEncoding represents a 'incorrect-encoding' authentication error.
	ErrSASLIncorrectEncoding = newSASLError("incorrect-encoding")

	// ErrSASLMalformedRequest represents a 'malformed-request' authentication error.
	ErrSASLMalformedRequest = newSASLError("malformed-request")

	// ErrSASLNotAuthorized represents a 'not-authorized' authentication error.
	ErrSASLNotAuthorized = newSASLError("not-authorized")

	// ErrSASLTemporaryAuthFailure represents a 'temporary-auth-failure' authentication error.
	ErrSASLTemporaryAuthFailure = newSASLError("temporary-auth-failure")
)
