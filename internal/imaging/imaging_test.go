package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"
)

// encodeTestImage produces a PNG of the given dimensions.
func encodeTestImage(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestProcessAvatarSquareOutput(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"landscape", 800, 500},
		{"portrait", 300, 900},
		{"square", 600, 600},
		{"smaller than target", 100, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avatar, err := ProcessAvatar(encodeTestImage(t, tt.w, tt.h))
			if err != nil {
				t.Fatalf("ProcessAvatar: %v", err)
			}
			if avatar.Width != AvatarSize || avatar.Height != AvatarSize {
				t.Errorf("got %dx%d, want %dx%d", avatar.Width, avatar.Height, AvatarSize, AvatarSize)
			}
			if avatar.ContentType != "image/jpeg" {
				t.Errorf("content type = %q, want image/jpeg", avatar.ContentType)
			}

			decoded, err := jpeg.Decode(bytes.NewReader(avatar.Data))
			if err != nil {
				t.Fatalf("decode output: %v", err)
			}
			b := decoded.Bounds()
			if b.Dx() != AvatarSize || b.Dy() != AvatarSize {
				t.Errorf("decoded size %dx%d, want %dx%d", b.Dx(), b.Dy(), AvatarSize, AvatarSize)
			}
		})
	}
}

func TestProcessAvatarRejectsGarbage(t *testing.T) {
	if _, err := ProcessAvatar([]byte("not an image")); err == nil {
		t.Error("expected error for non-image input")
	}
}

func TestCenterSquare(t *testing.T) {
	tests := []struct {
		name string
		in   image.Rectangle
		want image.Rectangle
	}{
		{"landscape", image.Rect(0, 0, 100, 60), image.Rect(20, 0, 80, 60)},
		{"portrait", image.Rect(0, 0, 60, 100), image.Rect(0, 20, 60, 80)},
		{"square", image.Rect(0, 0, 50, 50), image.Rect(0, 0, 50, 50)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := centerSquare(tt.in); got != tt.want {
				t.Errorf("centerSquare(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
