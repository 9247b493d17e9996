/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package c2s

import (
	"context"
	"strconv"

	"github.com/ortuman/rabber/auth"
	"github.com/ortuman/rabber/log"
	"github.com/ortuman/rabber/model"
	"github.com/ortuman/rabber/parser"
	"github.com/ortuman/rabber/storage/repository"
	"github.com/ortuman/rabber/transport"
	"github.com/ortuman/rabber/xmpp"
	"github.com/pkg/errors"
)

const xmlDeclaration = `<?xml version="1.0" encoding="UTF-8"?>`

type handlerFunc func(ctx context.Context, attrs map[string]string) error

// Session drives a single client connection: stream negotiation,
// SASL authentication and stanza handling.
type Session struct {
	id            string
	domain        string
	maxStanzaSize int
	tr            transport.Transport
	cur           *parser.Cursor
	users         repository.User
	roster        repository.Roster
	plain         *auth.Plain
	digestMD5     *auth.DigestMD5
	handlers      map[string]handlerFunc

	user          *model.User
	nonce         string
	streamID      int
	streamCounter int
}

// NewSession returns a session bound to tr. Run must be called to start processing.
func NewSession(id string, tr transport.Transport, cfg *Config, rep repository.Container) *Session {
	s := &Session{
		id:            id,
		domain:        cfg.Domain,
		maxStanzaSize: cfg.MaxStanzaSize,
		tr:            tr,
		users:         rep.User(),
		roster:        rep.Roster(),
		plain:         auth.NewPlain(rep.User()),
		digestMD5:     auth.NewDigestMD5(cfg.Domain, rep.User()),
	}
	s.handlers = map[string]handlerFunc{
		"auth":            s.handleAuth,
		"response":        s.handleResponse,
		xmpp.IQName:       s.handleIQ,
		xmpp.PresenceName: s.handlePresence,
		xmpp.MessageName:  s.handleMessage,
		xmpp.StreamName:   s.handleStreamRestart,
	}
	return s
}

// ID returns session identifier.
func (s *Session) ID() string {
	return s.id
}

// Username returns the authenticated user name, or an empty string
// if the session has not been authenticated yet.
func (s *Session) Username() string {
	if s.user == nil {
		return ""
	}
	return s.user.Username
}

// Run processes the client stream until the connection is closed, a protocol
// fault occurs or ctx is done. The underlying transport is always closed on return.
// A connection closed by the peer is not reported as an error.
func (s *Session) Run(ctx context.Context) error {
	defer func() { _ = s.tr.Close() }()

	q := parser.NewQueue()
	go func() {
		tk := parser.NewXMLTokenizer(s.tr, s.maxStanzaSize)
		if err := parser.NewAdapter(q).Run(tk); err != nil {
			log.Debugf("%s: tokenizer stopped: %v", s.id, err)
		}
	}()
	s.cur = parser.NewCursor(q)

	err := s.cur.ExpectTag(ctx, xmpp.StreamName, func(string, map[string]string) error {
		return s.openStream(ctx)
	})
	if _, ok := err.(*parser.ProtocolFault); ok {
		log.Errorf("%s: %v", s.id, err)
		return err
	}
	switch err {
	case nil:
		log.Infof("%s: stream closed", s.id)
		return nil
	case parser.ErrConnectionClosed:
		log.Infof("%s: connection closed", s.id)
		return nil
	case context.Canceled:
		log.Infof("%s: session canceled", s.id)
		return err
	}
	log.Errorf("%s: session terminated: %v", s.id, err)
	return err
}

// openStream assigns a new stream identifier, sends the stream header along with
// the current features and dispatches top level elements until the stream ends.
func (s *Session) openStream(ctx context.Context) error {
	s.streamID = s.streamCounter
	s.streamCounter++
	s.nonce = ""

	if err := s.tr.WriteString(xmlDeclaration); err != nil {
		return errors.Wrap(err, "c2s: write stream header")
	}
	if err := s.tr.WriteElement(s.streamElement(), false); err != nil {
		return errors.Wrap(err, "c2s: write stream header")
	}
	if err := s.sendElement(s.featuresElement()); err != nil {
		return err
	}
	log.Debugf("%s: stream %d opened [authenticated: %v]", s.id, s.streamID, s.user != nil)

	for {
		end, err := s.cur.IsNextTagEnd(ctx)
		if err != nil {
			return err
		}
		if end {
			break
		}
		if err := s.cur.ExpectTag(ctx, "", s.dispatch(ctx)); err != nil {
			return err
		}
	}
	if err := s.tr.WriteString("</" + xmpp.StreamName + ">"); err != nil {
		return errors.Wrap(err, "c2s: write stream footer")
	}
	return nil
}

func (s *Session) handleStreamRestart(ctx context.Context, _ map[string]string) error {
	return s.openStream(ctx)
}

func (s *Session) dispatch(ctx context.Context) func(name string, attrs map[string]string) error {
	return func(name string, attrs map[string]string) error {
		h, ok := s.handlers[name]
		if !ok {
			return parser.Faultf("unexpected element <%s>", name)
		}
		reportIncomingElement(name)

		err := h(ctx, attrs)
		if saslErr, ok := err.(*auth.SASLError); ok {
			log.Infof("%s: authentication failed: %v", s.id, saslErr)
			return s.sendElement(xmpp.NewElementNamespace("failure", xmpp.SASLNamespace).AppendElement(saslErr.Element()))
		}
		return err
	}
}

func (s *Session) streamElement() *xmpp.Element {
	return xmpp.NewElementName(xmpp.StreamName).
		SetAttribute("xmlns:stream", xmpp.StreamNamespace).
		SetNamespace(xmpp.ClientNamespace).
		SetFrom(s.domain).
		SetID(strconv.Itoa(s.streamID)).
		SetAttribute("xml:lang", "en").
		SetAttribute("version", "1.0")
}

func (s *Session) featuresElement() *xmpp.Element {
	features := xmpp.NewElementName("stream:features")
	if s.user == nil {
		mechanisms := xmpp.NewElementNamespace("mechanisms", xmpp.SASLNamespace)
		for _, mechanism := range auth.Mechanisms {
			mechanisms.AppendElement(xmpp.NewElementName("mechanism").SetText(mechanism))
		}
		features.AppendElement(mechanisms)
		features.AppendElement(xmpp.NewElementNamespace("auth", xmpp.IQAuthFeatureNamespace))
	} else {
		features.AppendElement(xmpp.NewElementNamespace("bind", xmpp.BindNamespace))
		features.AppendElement(xmpp.NewElementNamespace("session", xmpp.SessionNamespace))
	}
	return features
}

// fullJID returns the session address as seen by the client.
func (s *Session) fullJID() string {
	return s.user.Username + "@" + s.domain + "/" + strconv.Itoa(s.streamID)
}

// serverAddress returns the address IQ responses are sent to.
func (s *Session) serverAddress() string {
	return s.domain + "/" + strconv.Itoa(s.streamID)
}

func (s *Session) sendElement(elem xmpp.XElement) error {
	if err := s.tr.WriteElement(elem, true); err != nil {
		return errors.Wrapf(err, "c2s: write <%s>", elem.Name())
	}
	return nil
}
