/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package c2s

import (
	"context"

	"github.com/ortuman/rabber/log"
	"github.com/ortuman/rabber/parser"
)

const chatMessageType = "chat"

func (s *Session) handleMessage(ctx context.Context, attrs map[string]string) error {
	if tp := attrs["type"]; tp != chatMessageType {
		return parser.Faultf("unsupported message type: %s", tp)
	}
	var body, htmlBody string
	for {
		end, err := s.cur.IsNextTagEnd(ctx)
		if err != nil {
			return err
		}
		if end {
			break
		}
		err = s.cur.ExpectTag(ctx, "", func(name string, _ map[string]string) error {
			var err error
			switch name {
			case "body":
				body, err = s.cur.ExpectText(ctx)
				return err
			case "html":
				return s.cur.ExpectTag(ctx, "body", func(string, map[string]string) error {
					htmlBody, err = s.cur.ExpectText(ctx)
					return err
				})
			default:
				return parser.Faultf("unexpected message child <%s>", name)
			}
		})
		if err != nil {
			return err
		}
	}
	log.Debugf("%s: chat message to %s [body: %d bytes, html: %d bytes]", s.id, attrs["to"], len(body), len(htmlBody))
	return nil
}
