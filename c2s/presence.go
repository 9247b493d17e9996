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

// handlePresence acknowledges every status and priority child with an
// iq result carrying the presence id.
func (s *Session) handlePresence(ctx context.Context, attrs map[string]string) error {
	id := attrs["id"]
	for {
		end, err := s.cur.IsNextTagEnd(ctx)
		if err != nil {
			return err
		}
		if end {
			return nil
		}
		err = s.cur.ExpectTag(ctx, "", func(name string, _ map[string]string) error {
			switch name {
			case "status", "priority":
				value, err := s.cur.ExpectText(ctx)
				if err != nil {
					return err
				}
				log.Debugf("%s: presence %s: %s", s.id, name, value)
				return s.sendElement(s.resultIQ(id))
			case "c":
				// entity capabilities
				return s.cur.SkipContent(ctx)
			default:
				return parser.Faultf("unexpected presence child <%s>", name)
			}
		})
		if err != nil {
			return err
		}
	}
}
