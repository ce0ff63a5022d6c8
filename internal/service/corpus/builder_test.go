package corpus

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

	"go.uber.org/zap"
)

func pagePNG(t *testing.T, shade uint8) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 24, 36))
	for y := 0; y < 36; y++ {
		for x := 0; x < 24; x++ {
			img.Set(x, y, color.RGBA{R: shade, G: shade, B: shade, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestBuildAssemblesDocument(t *testing.T) {
	first := pagePNG(t, 40)
	second := pagePNG(t, 200)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		switch r.URL.Path {
		case "/p1.png":
			w.Write(first)
		case "/p2.png":
			w.Write(second)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	builder := NewBuilder(server.Client(), 4, zap.NewNop())
	doc, err := builder.Build(context.Background(), []string{
		server.URL + "/p1.png",
		server.URL + "/p2.png",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(string(doc), "%PDF") {
		t.Fatalf("expected a PDF document, got prefix %q", string(doc[:min(8, len(doc))]))
	}
}

func TestBuildSkipsUnsupportedContentType(t *testing.T) {
	page := pagePNG(t, 128)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/notes.txt" {
			w.Header().Set("Content-Type", "text/plain")
			w.Write([]byte("not an image"))
			return
		}
		w.Header().Set("Content-Type", "image/png")
		w.Write(page)
	}))
	defer server.Close()

	builder := NewBuilder(server.Client(), 2, zap.NewNop())
	doc, err := builder.Build(context.Background(), []string{
		server.URL + "/p1.png",
		server.URL + "/notes.txt",
	})
	if err != nil {
		t.Fatalf("unsupported page must be skipped, not fatal: %v", err)
	}
	if !strings.HasPrefix(string(doc), "%PDF") {
		t.Fatal("expected a PDF document")
	}
}

func TestBuildFailsOnFetchError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	builder := NewBuilder(server.Client(), 2, zap.NewNop())
	if _, err := builder.Build(context.Background(), []string{server.URL + "/missing.png"}); err == nil {
		t.Fatal("expected error for failed page fetch")
	}
}

func TestBuildRejectsEmptyChapter(t *testing.T) {
	builder := NewBuilder(nil, 2, zap.NewNop())
	if _, err := builder.Build(context.Background(), nil); err == nil {
		t.Fatal("expected error for empty page list")
	}
}
