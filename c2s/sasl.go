/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package c2s

import (
	"context"

	"github.com/ortuman/rabber/auth"
	"github.com/ortuman/rabber/log"
	"github.com/ortuman/rabber/model"
	"github.com/ortuman/rabber/parser"
	"github.com/ortuman/rabber/xmpp"
)

func (s *Session) handleAuth(ctx context.Context, attrs map[string]string) error {
	if s.user != nil {
		return parser.Faultf("auth requested on an already authenticated stream")
	}
	switch mechanism := attrs["mechanism"]; mechanism {
	case s.plain.Mechanism():
		return s.authenticatePlain(ctx)
	case s.digestMD5.Mechanism():
		return s.startDigestMD5(ctx)
	default:
		return parser.Faultf("unsupported sasl mechanism: %s", mechanism)
	}
}

func (s *Session) authenticatePlain(ctx context.Context) error {
	payload, err := s.cur.ExpectText(ctx)
	if err != nil {
		return err
	}
	usr, err := s.plain.Authenticate(ctx, payload)
	if err != nil {
		reportAuthentication(s.plain.Mechanism(), err)
		return err
	}
	s.setAuthenticated(usr, s.plain.Mechanism())
	return s.sendElement(xmpp.NewElementNamespace("success", xmpp.SASLNamespace))
}

// startDigestMD5 tries a subsequent authentication when the element carries
// a response, and issues a fresh challenge otherwise or if that attempt fails.
func (s *Session) startDigestMD5(ctx context.Context) error {
	hasText, err := s.cur.IsNextText(ctx)
	if err != nil {
		return err
	}
	if hasText {
		payload, err := s.cur.ExpectText(ctx)
		if err != nil {
			return err
		}
		usr, rspAuth, err := s.digestMD5.Resume(ctx, payload)
		if err == nil {
			return s.digestMD5Succeeded(usr, rspAuth)
		}
		log.Debugf("%s: digest-md5 subsequent authentication rejected: %v", s.id, err)
	}
	nonce, challenge, err := s.digestMD5.Challenge()
	if err != nil {
		return err
	}
	s.nonce = nonce
	return s.sendElement(xmpp.NewElementNamespace("challenge", xmpp.SASLNamespace).SetText(challenge))
}

func (s *Session) handleResponse(ctx context.Context, _ map[string]string) error {
	payload, err := s.cur.ExpectText(ctx)
	if err != nil {
		return err
	}
	usr, rspAuth, err := s.digestMD5.Authenticate(ctx, payload, s.nonce, 1)
	switch err {
	case nil:
		return s.digestMD5Succeeded(usr, rspAuth)
	case auth.ErrDuplicateParameter, auth.ErrMalformedParameters:
		return parser.Faultf("invalid digest-md5 response: %v", err)
	}
	reportAuthentication(s.digestMD5.Mechanism(), err)
	return err
}

// digestMD5Succeeded consumes the outstanding challenge, so a replayed response is rejected.
func (s *Session) digestMD5Succeeded(usr *model.User, rspAuth string) error {
	s.nonce = ""
	s.setAuthenticated(usr, s.digestMD5.Mechanism())
	return s.sendElement(xmpp.NewElementNamespace("success", xmpp.SASLNamespace).SetText(rspAuth))
}

func (s *Session) setAuthenticated(usr *model.User, mechanism string) {
	s.user = usr
	reportAuthentication(mechanism, nil)
	log.Infof("%s: authenticated as %s [mechanism: %s]", s.id, usr.Username, mechanism)
}
