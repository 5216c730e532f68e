// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package username validates and normalizes profile usernames.
package username

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	// MinLength and MaxLength bound the username size.
	MinLength = 3
	MaxLength = 30
)

var (
	ErrTooShort     = fmt.Errorf("username must be at least %d characters", MinLength)
	ErrTooLong      = fmt.Errorf("username must be at most %d characters", MaxLength)
	ErrInvalidChars = errors.New("username can only contain letters, numbers, and hyphens")
	ErrReserved     = errors.New("username is reserved")
)

// valid matches allowed username characters.
var valid = regexp.MustCompile(`^[a-zA-Z0-9-]+$`)

// strip removes everything that can't appear in a username.
var strip = regexp.MustCompile(`[^a-z0-9-]`)

// reserved lists names that collide with routes mounted at the root
// path, where public profiles also live.
var reserved = map[string]struct{}{
	"api":        {},
	"login":      {},
	"signup":     {},
	"logout":     {},
	"dashboard":  {},
	"dash":       {},
	"onboarding": {},
	"preview":    {},
	"health":     {},
	"static":     {},
	"2fa":        {},
	"admin":      {},
}

// Normalize lowercases and trims the input so usernames compare and
// route consistently regardless of how they were typed.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Validate checks a normalized username against the length, character,
// and reserved-name rules. Returns nil if the username is acceptable.
func Validate(s string) error {
	if len(s) < MinLength {
		return ErrTooShort
	}
	if len(s) > MaxLength {
		return ErrTooLong
	}
	if !valid.MatchString(s) {
		return ErrInvalidChars
	}
	if _, ok := reserved[strings.ToLower(s)]; ok {
		return ErrReserved
	}
	return nil
}

// FromDisplayName derives a username candidate from a display name.
// Example: "Jane Doe!" → "jane-doe". The result may still fail
// Validate (too short after stripping), so callers must check.
func FromDisplayName(name string) string {
	s := Normalize(name)
	s = strings.ReplaceAll(s, " ", "-")
	s = strip.ReplaceAllString(s, "")
	s = strings.Trim(s, "-")
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	if len(s) > MaxLength {
		s = strings.Trim(s[:MaxLength], "-")
	}
	return s
}

// Suggest produces up to n numbered alternatives for a taken username,
// keeping each within the length limit.
func Suggest(base string, n int) []string {
	base = Normalize(base)
	out := make([]string, 0, n)
	for i := 1; len(out) < n; i++ {
		suffix := fmt.Sprintf("-%d", i)
		candidate := base
		if len(candidate)+len(suffix) > MaxLength {
			candidate = candidate[:MaxLength-len(suffix)]
			candidate = strings.Trim(candidate, "-")
		}
		out = append(out, candidate+suffix)
	}
	return out
}
