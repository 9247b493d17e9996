/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package auth

import (
	"context"
	"encoding/base64"

	"github.com/ortuman/rabber/log"
	"github.com/ortuman/rabber/model"
	"github.com/ortuman/rabber/storage/repository"
	"github.com/pkg/errors"
	"mellium.im/sasl"
)

// Plain verifies SASL PLAIN credentials against the user repository.
type Plain struct {
	users repository.User
}

// NewPlain returns a PLAIN authenticator instance.
func NewPlain(users repository.User) *Plain {
	return &Plain{users: users}
}

// Mechanism returns authenticator mechanism name.
func (p *Plain) Mechanism() string {
	return PlainMechanism
}

// Authenticate decodes the base64 'authzid\0username\0password' payload and
// returns the matching user. Passwords are compared verbatim.
// Repository failures are reported as ErrSASLTemporaryAuthFailure.
func (p *Plain) Authenticate(ctx context.Context, payload string) (*model.User, error) {
	if len(payload) == 0 {
		return nil, ErrSASLMalformedRequest
	}
	b, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrSASLIncorrectEncoding
	}
	var usr *model.User
	var fetchErr error

	srv := sasl.NewServer(sasl.Plain, func(n *sasl.Negotiator) bool {
		username, password, _ := n.Credentials()

		u, err := p.users.FetchUser(ctx, string(username))
		if err != nil {
			fetchErr = err
			return false
		}
		if u == nil || u.Password != string(password) {
			return false
		}
		usr = u
		return true
	})
	_, _, err = srv.Step(b)
	if fetchErr != nil {
		log.Error(errors.Wrap(fetchErr, "auth: plain user lookup"))
		return nil, ErrSASLTemporaryAuthFailure
	}
	switch err {
	case nil:
		return usr, nil
	case sasl.ErrInvalidChallenge:
		return nil, ErrSASLMalformedRequest
	default:
		return nil, ErrSASLNotAuthorized
	}
}
