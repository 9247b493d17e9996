/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package auth

import (
	"context"
	"crypto/md5"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/ortuman/rabber/log"
	"github.com/ortuman/rabber/model"
	"github.com/ortuman/rabber/storage/repository"
	"github.com/pkg/errors"
)

const nonceLength = 30

var randRead = rand.Read

// DigestMD5 implements RFC 2831 DIGEST-MD5 (md5-sess, qop=auth) server side verification.
type DigestMD5 struct {
	domain string
	users  repository.User
}

// NewDigestMD5 returns a DIGEST-MD5 authenticator for domain.
func NewDigestMD5(domain string, users repository.User) *DigestMD5 {
	return &DigestMD5{domain: domain, users: users}
}

// Mechanism returns authenticator mechanism name.
func (d *DigestMD5) Mechanism() string {
	return DigestMD5Mechanism
}

// Challenge generates a fresh nonce and returns it along with
// the base64 encoded challenge payload that announces it.
func (d *DigestMD5) Challenge() (nonce string, payload string, err error) {
	b := make([]byte, nonceLength)
	if _, err := randRead(b); err != nil {
		return "", "", errors.Wrap(err, "auth: nonce generation")
	}
	nonce = base64.StdEncoding.EncodeToString(b)
	chnge := fmt.Sprintf(`realm="%s",nonce="%s",qop="auth",charset=utf-8,algorithm=md5-sess`, d.domain, nonce)
	return nonce, base64.StdEncoding.EncodeToString([]byte(chnge)), nil
}

// Authenticate verifies a base64 encoded client response against expectedNonce and expectedNC.
// On success the nonce and count are persisted on the user, which is returned along with
// the base64 encoded 'rspauth' payload. Repository failures are reported as ErrSASLTemporaryAuthFailure.
func (d *DigestMD5) Authenticate(ctx context.Context, payload, expectedNonce string, expectedNC int) (*model.User, string, error) {
	params, err := decodeParameters(payload)
	if err != nil {
		return nil, "", err
	}
	user, err := d.fetchUser(ctx, params)
	if err != nil {
		return nil, "", err
	}
	return d.authenticate(ctx, user, params, expectedNonce, expectedNC)
}

// Resume verifies a client response against the nonce persisted on the user record
// by a previous successful authentication, expecting the next nonce count.
func (d *DigestMD5) Resume(ctx context.Context, payload string) (*model.User, string, error) {
	params, err := decodeParameters(payload)
	if err != nil {
		return nil, "", err
	}
	user, err := d.fetchUser(ctx, params)
	if err != nil {
		return nil, "", err
	}
	return d.authenticate(ctx, user, params, user.DigestMD5Nonce, user.DigestMD5NC+1)
}

func (d *DigestMD5) authenticate(ctx context.Context, user *model.User, params Parameters, expectedNonce string, expectedNC int) (*model.User, string, error) {
	rspAuth, err := d.verify(user, params, expectedNonce, expectedNC)
	if err != nil {
		return nil, "", err
	}
	user.DigestMD5Nonce = expectedNonce
	user.DigestMD5NC = expectedNC
	if err := d.users.UpsertUser(ctx, user); err != nil {
		log.Error(errors.Wrap(err, "auth: digest-md5 nonce persistence"))
		return nil, "", ErrSASLTemporaryAuthFailure
	}
	return user, base64.StdEncoding.EncodeToString([]byte("rspauth=" + rspAuth)), nil
}

// verify checks params against the expected nonce and count, returning the server 'rspauth' value.
func (d *DigestMD5) verify(user *model.User, params Parameters, expectedNonce string, expectedNC int) (string, error) {
	if len(expectedNonce) == 0 || params["nonce"] != expectedNonce {
		return "", ErrSASLNotAuthorized
	}
	if params["realm"] != d.domain {
		return "", ErrSASLNotAuthorized
	}
	digestURI := params["digest-uri"]
	if digestURI != "xmpp/"+d.domain {
		return "", ErrSASLNotAuthorized
	}
	if nc, err := strconv.Atoi(params["nc"]); err != nil || nc != expectedNC {
		return "", ErrSASLNotAuthorized
	}
	clientResp := computeResponse(user, d.domain, params, "AUTHENTICATE:"+digestURI)
	if subtle.ConstantTimeCompare([]byte(clientResp), []byte(params["response"])) != 1 {
		return "", ErrSASLNotAuthorized
	}
	return computeResponse(user, d.domain, params, ":"+digestURI), nil
}

func (d *DigestMD5) fetchUser(ctx context.Context, params Parameters) (*model.User, error) {
	user, err := d.users.FetchUser(ctx, params["username"])
	if err != nil {
		log.Error(errors.Wrap(err, "auth: digest-md5 user lookup"))
		return nil, ErrSASLTemporaryAuthFailure
	}
	if user == nil {
		return nil, ErrSASLNotAuthorized
	}
	return user, nil
}

func decodeParameters(payload string) (Parameters, error) {
	if len(payload) == 0 {
		return nil, ErrSASLMalformedRequest
	}
	b, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ErrSASLIncorrectEncoding
	}
	return ParseParameters(string(b))
}

// computeResponse returns the md5-sess digest for the given A2 value.
func computeResponse(user *model.User, realm string, params Parameters, a2 string) string {
	x := md5Hash([]byte(user.Username + ":" + realm + ":" + user.Password))

	a1 := make([]byte, 0, len(x)+64)
	a1 = append(a1, x...)
	a1 = append(a1, ":"+params["nonce"]+":"+params["cnonce"]...)

	ha1 := hex.EncodeToString(md5Hash(a1))
	ha2 := hex.EncodeToString(md5Hash([]byte(a2)))

	kd := ha1 + ":" + params["nonce"] + ":" + params["nc"] + ":" + params["cnonce"] + ":" + params["qop"] + ":" + ha2
	return hex.EncodeToString(md5Hash([]byte(kd)))
}

func md5Hash(b []byte) []byte {
	h := md5.Sum(b)
	return h[:]
}
