/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package xmpp

// StanzaError represents a stanza "error" element.
type StanzaError struct {
	errorType string
	reason    string
}

func newStanzaError(errorType string, reason string) *StanzaError {
	return &StanzaError{errorType: errorType, reason: reason}
}

// Error satisfies error interface.
func (se *StanzaError) Error() string {
	return se.reason
}

// Element returns StanzaError equivalent XML element.
func (se *StanzaError) Element() *Element {
	return NewElementName("error").
		SetType(se.errorType).
		AppendElement(NewElementNamespace(se.reason, StanzasNamespace))
}

const (
	cancelErrorType = "cancel"
	modifyErrorType = "modify"
)

var (
	// ErrBadRequest is returned when the sender has sent XML that is malformed
	// or that cannot be processed.
	ErrBadRequest = newStanzaError(modifyErrorType, "bad-request")

	// ErrServiceUnavailable is returned when the server does not provide the
	// requested service.
	ErrServiceUnavailable = newStanzaError(cancelErrorType, "service-unavailable")
)
