// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package markdown renders profile bios from Markdown to HTML.
// Bios are short visitor-facing snippets, so raw HTML stays escaped
// and there is no code-block highlighting.
package markdown

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// md is the configured goldmark instance, reused across calls.
var md = goldmark.New(
	goldmark.WithExtensions(
		extension.Linkify,       // bare URLs become links
		extension.Strikethrough, // ~~struck~~ text
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(), // bios are written with single newlines
	),
)

// ToHTML converts Markdown source into HTML. Embedded raw HTML is
// escaped, never passed through.
func ToHTML(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
