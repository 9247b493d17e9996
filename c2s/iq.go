/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package c2s

import (
	"context"

	"github.com/ortuman/rabber/log"
	"github.com/ortuman/rabber/model/rostermodel"
	"github.com/ortuman/rabber/parser"
	"github.com/ortuman/rabber/xmpp"
	"github.com/ortuman/rabber/xmpp/jid"
	"github.com/pkg/errors"
)

func (s *Session) handleIQ(ctx context.Context, attrs map[string]string) error {
	id := attrs["id"]

	switch tp := attrs["type"]; tp {
	case xmpp.SetType:
		return s.cur.ExpectTag(ctx, "", func(name string, childAttrs map[string]string) error {
			return s.handleIQSet(ctx, id, name, childAttrs["xmlns"])
		})
	case xmpp.GetType:
		return s.cur.ExpectTag(ctx, "", func(name string, childAttrs map[string]string) error {
			return s.handleIQGet(ctx, id, name, childAttrs["xmlns"])
		})
	default:
		if !xmpp.IsIQType(tp) {
			return parser.Faultf("unexpected iq type: %s", tp)
		}
		// result and error payloads are not processed
		return s.cur.SkipContent(ctx)
	}
}

func (s *Session) handleIQSet(ctx context.Context, id, name, namespace string) error {
	switch {
	case name == "bind" || name == "session":
		if err := s.requireAuthenticated(name); err != nil {
			return err
		}
		if err := s.cur.SkipContent(ctx); err != nil {
			return err
		}
		return s.sendElement(s.resultIQ(id).AppendElement(s.jidPayload(name, namespace)))

	case name == "query" && namespace == xmpp.RosterNamespace:
		if err := s.requireAuthenticated(name); err != nil {
			return err
		}
		return s.handleRosterSet(ctx, id)

	default:
		if err := s.cur.SkipContent(ctx); err != nil {
			return err
		}
		return s.sendElement(s.errorIQ(id, name, namespace, xmpp.ErrServiceUnavailable))
	}
}

func (s *Session) handleIQGet(ctx context.Context, id, name, namespace string) error {
	if err := s.cur.SkipContent(ctx); err != nil {
		return err
	}
	switch name {
	case "query":
		if namespace == xmpp.RosterNamespace && s.user != nil {
			return s.sendRoster(ctx, id)
		}
		return s.sendElement(s.resultIQ(id).AppendElement(xmpp.NewElementNamespace(name, namespace)))
	case "vCard":
		return s.sendElement(s.resultIQ(id).AppendElement(xmpp.NewElementNamespace(name, namespace)))
	case "ping":
		return s.sendElement(s.resultIQ(id))
	default:
		return s.sendElement(s.errorIQ(id, name, namespace, xmpp.ErrServiceUnavailable))
	}
}

// handleRosterSet stores the single roster item carried by a roster query,
// creating the item group on first use.
func (s *Session) handleRosterSet(ctx context.Context, id string) error {
	var badJID bool

	err := s.cur.ExpectTag(ctx, "item", func(_ string, itemAttrs map[string]string) error {
		var groupName string
		err := s.cur.ExpectTag(ctx, "group", func(string, map[string]string) error {
			var err error
			groupName, err = s.cur.ExpectText(ctx)
			return err
		})
		if err != nil {
			return err
		}
		contactJID, err := jid.NewWithString(itemAttrs["jid"], false)
		if err != nil {
			log.Debugf("%s: invalid roster item jid %q: %v", s.id, itemAttrs["jid"], err)
			badJID = true
			return nil
		}
		grp, err := s.roster.FindOrCreateRosterGroup(ctx, s.user.Username, groupName)
		if err != nil {
			return errors.Wrap(err, "c2s: roster group lookup")
		}
		entry := &rostermodel.Entry{
			GroupID:      grp.ID,
			JID:          contactJID.String(),
			Name:         itemAttrs["name"],
			Subscription: rostermodel.SubscriptionNone,
		}
		if err := s.roster.InsertRosterEntry(ctx, entry); err != nil {
			return errors.Wrap(err, "c2s: roster entry insertion")
		}
		log.Infof("%s: roster item %s added to group '%s'", s.id, entry.JID, grp.Name)
		return nil
	})
	if err != nil {
		return err
	}
	if badJID {
		return s.sendElement(s.errorIQ(id, "query", xmpp.RosterNamespace, xmpp.ErrBadRequest))
	}
	return s.sendElement(s.resultIQ(id).AppendElement(s.jidPayload("query", xmpp.RosterNamespace)))
}

func (s *Session) sendRoster(ctx context.Context, id string) error {
	groups, err := s.roster.FetchRosterGroups(ctx, s.user.Username)
	if err != nil {
		return errors.Wrap(err, "c2s: roster groups fetch")
	}
	entries, err := s.roster.FetchRosterEntries(ctx, s.user.Username)
	if err != nil {
		return errors.Wrap(err, "c2s: roster entries fetch")
	}
	groupNames := make(map[int64]string, len(groups))
	for _, grp := range groups {
		groupNames[grp.ID] = grp.Name
	}
	query := xmpp.NewElementNamespace("query", xmpp.RosterNamespace)
	for _, entry := range entries {
		item := xmpp.NewElementName("item").
			SetAttribute("jid", entry.JID).
			SetAttribute("name", entry.Name).
			SetAttribute("subscription", entry.Subscription.String())
		if groupName := groupNames[entry.GroupID]; len(groupName) > 0 {
			item.AppendElement(xmpp.NewElementName("group").SetText(groupName))
		}
		query.AppendElement(item)
	}
	return s.sendElement(s.resultIQ(id).AppendElement(query))
}

func (s *Session) requireAuthenticated(name string) error {
	if s.user == nil {
		return parser.Faultf("<%s> requested on an unauthenticated stream", name)
	}
	return nil
}

func (s *Session) resultIQ(id string) *xmpp.Element {
	return xmpp.NewIQType(id, xmpp.ResultType).SetTo(s.serverAddress())
}

func (s *Session) errorIQ(id, name, namespace string, stanzaErr *xmpp.StanzaError) *xmpp.Element {
	return xmpp.NewIQType(id, xmpp.ErrorType).
		SetTo(s.serverAddress()).
		AppendElement(xmpp.NewElementNamespace(name, namespace)).
		AppendElement(stanzaErr.Element())
}

func (s *Session) jidPayload(name, namespace string) *xmpp.Element {
	return xmpp.NewElementNamespace(name, namespace).
		AppendElement(xmpp.NewElementName("jid").SetText(s.fullJID()))
}
