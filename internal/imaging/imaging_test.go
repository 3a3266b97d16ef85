package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"
)

// pngDataURL builds a solid-color PNG of the given size as a data URL.
func pngDataURL(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encoding test PNG: %v", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}

// decodeResult decodes a normalized data URL back into an image.
func decodeResult(t *testing.T, dataURL string) image.Image {
	t.Helper()
	if !strings.HasPrefix(dataURL, "data:image/jpeg;base64,") {
		t.Fatalf("expected JPEG data URL, got prefix %q", dataURL[:min(40, len(dataURL))])
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(dataURL, "data:image/jpeg;base64,"))
	if err != nil {
		t.Fatalf("decoding base64: %v", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		t.Fatalf("decoding result image: %v", err)
	}
	return img
}

func TestNormalizePassesThroughPlainText(t *testing.T) {
	got, err := NormalizeDataURL("https://example.com/widget.png")
	if err != nil {
		t.Fatalf("NormalizeDataURL: %v", err)
	}
	if got != "https://example.com/widget.png" {
		t.Errorf("expected passthrough, got %q", got)
	}
}

func TestNormalizePassesThroughEmpty(t *testing.T) {
	got, err := NormalizeDataURL("")
	if err != nil || got != "" {
		t.Errorf("expected empty passthrough, got %q, %v", got, err)
	}
}

func TestNormalizePassesThroughNonImageDataURL(t *testing.T) {
	payload := "data:text/plain;base64," + base64.StdEncoding.EncodeToString([]byte("hello"))
	got, err := NormalizeDataURL(payload)
	if err != nil {
		t.Fatalf("NormalizeDataURL: %v", err)
	}
	if got != payload {
		t.Errorf("expected passthrough for non-image data URL, got %q", got)
	}
}

func TestNormalizeReencodesSmallImage(t *testing.T) {
	result, err := NormalizeDataURL(pngDataURL(t, 100, 60))
	if err != nil {
		t.Fatalf("NormalizeDataURL: %v", err)
	}

	img := decodeResult(t, result)
	bounds := img.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 60 {
		t.Errorf("expected 100x60, got %dx%d", bounds.Dx(), bounds.Dy())
	}
}

func TestNormalizeDownscalesLargeImage(t *testing.T) {
	result, err := NormalizeDataURL(pngDataURL(t, 2048, 512))
	if err != nil {
		t.Fatalf("NormalizeDataURL: %v", err)
	}

	img := decodeResult(t, result)
	bounds := img.Bounds()
	if bounds.Dx() != MaxDimension {
		t.Errorf("expected width %d, got %d", MaxDimension, bounds.Dx())
	}
	if bounds.Dy() != 256 {
		t.Errorf("expected aspect-preserving height 256, got %d", bounds.Dy())
	}
}

func TestNormalizeRejectsUndecodableImage(t *testing.T) {
	payload := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("not an image"))
	if _, err := NormalizeDataURL(payload); err == nil {
		t.Error("expected error for undecodable image payload")
	}
}

func TestNormalizeRejectsMalformedDataURL(t *testing.T) {
	if _, err := NormalizeDataURL("data:image/png;base64"); err == nil {
		t.Error("expected error for data URL without payload")
	}
}
