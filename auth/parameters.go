/*
 * Copyright (c) 2018 Miguel Ángel Ortuño.
 * See the LICENSE file for more information.
 */

package auth

import (
	"errors"
	"strings"
)

var (
	// ErrDuplicateParameter is returned by ParseParameters when a directive key appears twice.
	ErrDuplicateParameter = errors.New("auth: duplicate parameter")

	// ErrMalformedParameters is returned by ParseParameters when a directive list cannot be split.
	ErrMalformedParameters = errors.New("auth: malformed parameters")
)

// Parameters represents a DIGEST-MD5 directive set.
type Parameters map[string]string

// ParseParameters parses a comma separated 'key=value' directive list.
// Values may be double quoted, in which case they can contain commas.
func ParseParameters(s string) (Parameters, error) {
	items, err := splitDirectives(s)
	if err != nil {
		return nil, err
	}
	ret := make(Parameters, len(items))
	for _, item := range items {
		var key, val string
		if i := strings.IndexByte(item, '='); i != -1 {
			key, val = item[:i], item[i+1:]
		} else {
			key = item
		}
		key = strings.TrimSpace(key)
		if len(key) == 0 {
			return nil, ErrMalformedParameters
		}
		if _, ok := ret[key]; ok {
			return nil, ErrDuplicateParameter
		}
		ret[key] = unquote(strings.TrimSpace(val))
	}
	return ret, nil
}

func splitDirectives(s string) ([]string, error) {
	var ret []string
	var quoted, escaped bool

	start := 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case escaped:
			escaped = false
		case quoted && c == '\\':
			escaped = true
		case c == '"':
			quoted = !quoted
		case c == ',' && !quoted:
			if item := strings.TrimSpace(s[start:i]); len(item) > 0 {
				ret = append(ret, item)
			}
			start = i + 1
		}
	}
	if quoted {
		return nil, ErrMalformedParameters
	}
	if item := strings.TrimSpace(s[start:]); len(item) > 0 {
		ret = append(ret, item)
	}
	return ret, nil
}

func unquote(val string) string {
	if len(val) < 2 || val[0] != '"' || val[len(val)-1] != '"' {
		return val
	}
	val = val[1 : len(val)-1]
	if strings.IndexByte(val, '\\') == -1 {
		return val
	}
	var sb strings.Builder
	for i := 0; i < len(val); i++ {
		if val[i] == '\\' && i+1 < len(val) {
			i++
		}
		sb.WriteByte(val[i])
	}
	return sb.String()
}
