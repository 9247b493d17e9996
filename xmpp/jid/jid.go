/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package jid

import (
	"errors"
	"net"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/idna"
	"golang.org/x/text/secure/precis"
)

const maxPartLength = 1023

var (
	errInvalidUTF8       = errors.New("jid: contains invalid UTF-8")
	errEmptyDomain       = errors.New("jid: empty domain")
	errEmptyResource     = errors.New("jid: empty resource")
	errNodeForbidden     = errors.New("jid: node contains forbidden characters")
	errPartTooLong       = errors.New("jid: part must be smaller than 1024 bytes")
	errInvalidIPv6Domain = errors.New("jid: domain is not a valid IPv6 address")
)

// JID represents an XMPP address (JID).
// A JID is made up of a node (generally a username), a domain, and a resource.
// The node and resource are optional; domain is required.
type JID struct {
	node     string
	domain   string
	resource string
}

// New constructs a JID given a user, domain, and resource.
// This construction allows the caller to specify if stringprep should be applied or not.
func New(node, domain, resource string, skipStringPrep bool) (*JID, error) {
	if skipStringPrep {
		return &JID{node: node, domain: domain, resource: resource}, nil
	}
	return prepare(node, domain, resource)
}

// NewWithString constructs a JID from it's string representation.
// This construction allows the caller to specify if stringprep should be applied or not.
func NewWithString(str string, skipStringPrep bool) (*JID, error) {
	var node, resource string

	rest := str
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		resource = rest[i+1:]
		if len(resource) == 0 {
			return nil, errEmptyResource
		}
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '@'); i >= 0 {
		node = rest[:i]
		rest = rest[i+1:]
	}
	if len(rest) == 0 {
		return nil, errEmptyDomain
	}
	return New(node, rest, resource, skipStringPrep)
}

// Node returns the node, or empty string if this JID does not contain node information.
func (j *JID) Node() string { return j.node }

// Domain returns the domain.
func (j *JID) Domain() string { return j.domain }

// Resource returns the resource, or empty string if this JID does not contain resource information.
func (j *JID) Resource() string { return j.resource }

// ToBareJID returns the JID equivalent of the bare JID, which is the JID with resource information removed.
func (j *JID) ToBareJID() *JID {
	return &JID{node: j.node, domain: j.domain}
}

// IsFullWithUser returns true if instance is a full client JID.
func (j *JID) IsFullWithUser() bool {
	return len(j.node) > 0 && len(j.resource) > 0
}

// String returns a string representation of the JID.
func (j *JID) String() string {
	var sb strings.Builder
	if len(j.node) > 0 {
		sb.WriteString(j.node)
		sb.WriteByte('@')
	}
	sb.WriteString(j.domain)
	if len(j.resource) > 0 {
		sb.WriteByte('/')
		sb.WriteString(j.resource)
	}
	return sb.String()
}

// prepare applies RFC 7622 preparation and enforcement to every JID part.
func prepare(node, domain, resource string) (*JID, error) {
	if !utf8.ValidString(node) || !utf8.ValidString(resource) {
		return nil, errInvalidUTF8
	}
	// A-labels must be converted to U-labels (RFC 7622 §3.2.1).
	domain, err := idna.ToUnicode(domain)
	if err != nil {
		return nil, err
	}
	if !utf8.ValidString(domain) {
		return nil, errInvalidUTF8
	}
	if node != "" {
		node, err = precis.UsernameCaseMapped.String(node)
		if err != nil {
			return nil, err
		}
	}
	if resource != "" {
		resource, err = precis.OpaqueString.String(resource)
		if err != nil {
			return nil, err
		}
	}
	if err := validate(node, domain, resource); err != nil {
		return nil, err
	}
	return &JID{node: node, domain: domain, resource: resource}, nil
}

func validate(node, domain, resource string) error {
	if len(node) > maxPartLength || len(resource) > maxPartLength || len(domain) > maxPartLength {
		return errPartTooLong
	}
	if len(domain) == 0 {
		return errEmptyDomain
	}
	// RFC 7622 §3.3.1 characters still disallowed in nodes.
	if strings.ContainsAny(node, `"&'/:<>@`) {
		return errNodeForbidden
	}
	if l := len(domain); l > 2 && domain[0] == '[' && domain[l-1] == ']' {
		if ip := net.ParseIP(domain[1 : l-1]); ip == nil || ip.To4() != nil {
			return errInvalidIPv6Domain
		}
	}
	return nil
}
