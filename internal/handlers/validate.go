package handlers

import (
	"net/url"
	"strings"
	"unicode/utf8"
)

// Validation limits for profile and link fields.
const (
	maxLinkTitleLen   = 100
	maxLinkURLLen     = 2048
	maxDisplayNameLen = 100
	maxBioLen         = 500
	minPasswordLen    = 8
)

// validateLink checks link form inputs and returns the first error found.
func validateLink(title, rawURL string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return "Title is required."
	}
	if utf8.RuneCountInString(title) > maxLinkTitleLen {
		return "Title is too long (max 100 characters)."
	}
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "URL is required."
	}
	if len(rawURL) > maxLinkURLLen {
		return "URL is too long."
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "URL must start with http:// or https://."
	}
	return ""
}

// validateProfile checks display name and bio limits.
func validateProfile(displayName, bio string) string {
	if utf8.RuneCountInString(displayName) > maxDisplayNameLen {
		return "Display name is too long (max 100 characters)."
	}
	if utf8.RuneCountInString(bio) > maxBioLen {
		return "Bio is too long (max 500 characters)."
	}
	return ""
}

// validateSignup checks account creation inputs.
func validateSignup(email, password string) string {
	email = strings.TrimSpace(email)
	if email == "" || !strings.Contains(email, "@") {
		return "A valid email address is required."
	}
	if len(password) < minPasswordLen {
		return "Password must be at least 8 characters."
	}
	return ""
}
