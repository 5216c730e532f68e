// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package imaging normalizes uploaded avatars. Every avatar is decoded,
// center-cropped to a square, scaled to a fixed edge size, and re-encoded
// as JPEG. Re-encoding also strips metadata from the upload.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
)

const (
	// AvatarSize is the edge length of processed avatars in pixels.
	AvatarSize = 400

	// jpegQuality balances file size against visible artifacts at 400px.
	jpegQuality = 85

	// MaxUploadBytes caps accepted avatar uploads (5 MB).
	MaxUploadBytes = 5 << 20
)

// Avatar is a processed avatar ready for upload to object storage.
type Avatar struct {
	Data        []byte
	Width       int
	Height      int
	ContentType string // always "image/jpeg"
}

// ProcessAvatar decodes an uploaded image, square-crops it around the
// center, scales it to AvatarSize, and encodes it as JPEG.
func ProcessAvatar(original []byte) (*Avatar, error) {
	src, format, err := image.Decode(bytes.NewReader(original))
	if err != nil {
		return nil, fmt.Errorf("imaging: decode: %w", err)
	}
	_ = format

	square := centerSquare(src.Bounds())

	dst := image.NewRGBA(image.Rect(0, 0, AvatarSize, AvatarSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, square, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("imaging: encode: %w", err)
	}

	return &Avatar{
		Data:        buf.Bytes(),
		Width:       AvatarSize,
		Height:      AvatarSize,
		ContentType: "image/jpeg",
	}, nil
}

// centerSquare returns the largest square inside b, centered on both axes.
func centerSquare(b image.Rectangle) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	if w == h {
		return b
	}
	if w > h {
		off := (w - h) / 2
		return image.Rect(b.Min.X+off, b.Min.Y, b.Min.X+off+h, b.Max.Y)
	}
	off := (h - w) / 2
	return image.Rect(b.Min.X, b.Min.Y+off, b.Max.X, b.Min.Y+off+w)
}
