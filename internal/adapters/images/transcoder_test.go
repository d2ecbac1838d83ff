package images

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func pngFixture(t *testing.T) []byte {
	t.Helper()

	// Ruido determinístico: un PNG de ruido es voluminoso, así el
	// re-encode JPEG siempre achica y gana sobre el original.
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	seed := uint32(1)
	for y := 0; y < 64; y++ {
		for x := 0; x < 64; x++ {
			seed = seed*1664525 + 1013904223
			img.Set(x, y, color.RGBA{
				R: uint8(seed >> 24),
				G: uint8(seed >> 16),
				B: uint8(seed >> 8),
				A: 255,
			})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	return buf.Bytes()
}

func TestTranscodeToDataURL(t *testing.T) {
	raw := pngFixture(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(raw)
	}))
	defer srv.Close()

	tr := New(Config{})

	got := tr.Transcode(context.Background(), srv.URL+"/photo.png")
	if !strings.HasPrefix(got, "data:image/jpeg;base64,") {
		t.Fatalf("got %q, want data URL", truncate(got))
	}
}

func TestTranscodeFetchFailureKeepsOriginal(t *testing.T) {
	tr := New(Config{})

	ref := "http://127.0.0.1:1/missing.jpg"
	if got := tr.Transcode(context.Background(), ref); got != ref {
		t.Fatalf("got %q, want original ref", truncate(got))
	}
}

func TestTranscodeBadPayloadKeepsOriginal(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("definitely not an image"))
	}))
	defer srv.Close()

	tr := New(Config{})

	ref := srv.URL + "/broken.jpg"
	if got := tr.Transcode(context.Background(), ref); got != ref {
		t.Fatalf("got %q, want original ref", truncate(got))
	}
}

func TestTranscodePassthrough(t *testing.T) {
	tr := New(Config{})

	if got := tr.Transcode(context.Background(), ""); got != "" {
		t.Errorf("empty ref: got %q", got)
	}

	data := "data:image/jpeg;base64,abc"
	if got := tr.Transcode(context.Background(), data); got != data {
		t.Errorf("data url: got %q", truncate(got))
	}
}

func truncate(s string) string {
	if len(s) > 60 {
		return s[:60] + "..."
	}
	return s
}
