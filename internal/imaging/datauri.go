package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"net/http"
	"strings"

	"github.com/chai2010/webp"
)

// MaxUploadBytes caps uploaded images; email payloads get unwieldy fast.
const MaxUploadBytes = 5 << 20

const webpQuality = 80

// ErrNotAnImage is returned for uploads that do not sniff as a supported
// image type.
var ErrNotAnImage = errors.New("imaging: upload is not a supported image")

// ErrTooLarge is returned for uploads over MaxUploadBytes.
var ErrTooLarge = errors.New("imaging: upload exceeds size limit")

var supported = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/gif":  true,
	"image/webp": true,
}

// DataURI converts uploaded image bytes into a data URI suitable for an
// <img> src attribute. PNG and JPEG uploads are re-encoded to webp when that
// makes the payload smaller; anything else is embedded as-is.
func DataURI(data []byte) (string, error) {
	if len(data) == 0 {
		return "", ErrNotAnImage
	}
	if len(data) > MaxUploadBytes {
		return "", ErrTooLarge
	}
	mediaType := http.DetectContentType(data)
	if !supported[mediaType] {
		return "", fmt.Errorf("%w: %s", ErrNotAnImage, mediaType)
	}
	if mediaType == "image/png" || mediaType == "image/jpeg" {
		if smaller, ok := reencodeWebP(data); ok {
			data = smaller
			mediaType = "image/webp"
		}
	}
	return encode(mediaType, data), nil
}

// URLOrEmpty validates a user-supplied image URL. Only http(s) is accepted;
// anything else yields empty so the renderer falls back to the placeholder.
func URLOrEmpty(raw string) string {
	u := strings.TrimSpace(raw)
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	return ""
}

func encode(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// reencodeWebP decodes and re-encodes the image as lossy webp. Returns ok
// only when decoding succeeded and the result is actually smaller.
func reencodeWebP(data []byte) ([]byte, bool) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		slog.Warn("imaging: decode for webp re-encode failed", "err", err)
		return nil, false
	}
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: webpQuality}); err != nil {
		slog.Warn("imaging: webp encode failed", "err", err)
		return nil, false
	}
	if buf.Len() >= len(data) {
		return nil, false
	}
	return buf.Bytes(), true
}
