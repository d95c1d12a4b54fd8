package imaging

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png encode: %v", err)
	}
	return buf.Bytes()
}

func TestDataURIFromPNG(t *testing.T) {
	uri, err := DataURI(pngBytes(t, 8, 8))
	if err != nil {
		t.Fatalf("DataURI: %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/") {
		t.Errorf("unexpected prefix: %s", uri[:32])
	}
	if !strings.Contains(uri, ";base64,") {
		t.Error("expected base64 data URI")
	}
}

func TestDataURIRejectsNonImage(t *testing.T) {
	if _, err := DataURI([]byte("<html>nope</html>")); !errors.Is(err, ErrNotAnImage) {
		t.Errorf("expected ErrNotAnImage, got %v", err)
	}
	if _, err := DataURI(nil); !errors.Is(err, ErrNotAnImage) {
		t.Errorf("expected ErrNotAnImage for empty input, got %v", err)
	}
}

func TestDataURIRejectsOversized(t *testing.T) {
	big := make([]byte, MaxUploadBytes+1)
	// valid PNG magic so the size check is what trips, not the sniff
	copy(big, pngBytes(t, 4, 4))
	if _, err := DataURI(big); !errors.Is(err, ErrTooLarge) {
		t.Errorf("expected ErrTooLarge, got %v", err)
	}
}

func TestURLOrEmpty(t *testing.T) {
	cases := map[string]string{
		"https://cdn.example.org/a.jpg": "https://cdn.example.org/a.jpg",
		"http://cdn.example.org/a.jpg":  "http://cdn.example.org/a.jpg",
		"  https://x.org/b.png  ":       "https://x.org/b.png",
		"javascript:alert(1)":           "",
		"ftp://x.org/a.jpg":             "",
		"":                              "",
	}
	for in, want := range cases {
		if got := URLOrEmpty(in); got != want {
			t.Errorf("URLOrEmpty(%q) = %q, want %q", in, got, want)
		}
	}
}
