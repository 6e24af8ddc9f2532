// Copyright (c) 2025 AUTHORS All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cinch

import "strings"

// Token is one word of a command line. Quoted records whether the word
// came from a quoted region; a quoted token is never treated as a
// switch during binding even when its text starts with the switch
// prefix.
type Token struct {
	Text   string
	Quoted bool
}

// DefaultEscape is the escape character recognized before a double
// quote inside quoted regions.
const DefaultEscape = '\\'

// Tokenize splits a raw command line into the executable name and its
// argument tokens using DefaultEscape. See TokenizeEscape.
func Tokenize(raw string) (exe string, tokens []Token) {
	return TokenizeEscape(raw, DefaultEscape)
}

// TokenizeEscape splits a raw command line into tokens. Outside quotes,
// runs of whitespace separate tokens and a double quote at the start of
// a token opens a quoted region. Inside a quoted region, escape
// followed by a double quote yields a literal double quote; any other
// double quote closes the region and ends the token, which may be
// empty and is still marked quoted. An unterminated quote ends the
// final token at end of input. The first token is returned separately
// as the executable name and excluded from the token slice; empty
// input yields an empty name and no tokens.
func TokenizeEscape(raw string, escape byte) (exe string, tokens []Token) {
	var (
		cur     strings.Builder
		started bool // inside a token
		inQuote bool
		quoted  bool // current token began with a quote
		first   = true
	)
	flush := func() {
		if first {
			exe = cur.String()
			first = false
		} else {
			tokens = append(tokens, Token{Text: cur.String(), Quoted: quoted})
		}
		cur.Reset()
		started, inQuote, quoted = false, false, false
	}
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case inQuote:
			if c == escape && i+1 < len(raw) && raw[i+1] == '"' {
				cur.WriteByte('"')
				i++
			} else if c == '"' {
				flush()
			} else {
				cur.WriteByte(c)
			}
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			if started {
				flush()
			}
		case c == '"' && !started:
			started, inQuote, quoted = true, true, true
		default:
			started = true
			cur.WriteByte(c)
		}
	}
	if started {
		flush()
	}
	return exe, tokens
}
