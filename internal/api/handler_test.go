package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yomu/manga-bgm-go/internal/domain"
)

type fakeRunner struct {
	timeline []domain.MusicSegment
	err      error
	gotID    string
}

func (f *fakeRunner) Run(_ context.Context, chapterID string) ([]domain.MusicSegment, error) {
	f.gotID = chapterID
	return f.timeline, f.err
}

func newTestRouter(runner *fakeRunner) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(runner, zap.NewNop()).Register(router)
	return router
}

func TestChapterMusicReturnsTimeline(t *testing.T) {
	runner := &fakeRunner{timeline: []domain.MusicSegment{
		{Start: 1, End: 6, Src: "https://www.youtube.com/watch?v=a", Title: "A", Artist: "X"},
		{Start: 7, End: 12, Src: "https://www.youtube.com/watch?v=b", Title: "B", Artist: "Y"},
	}}
	router := newTestRouter(runner)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/chapters/ch-42/music", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if runner.gotID != "ch-42" {
		t.Fatalf("expected chapter id ch-42, got %q", runner.gotID)
	}

	var got []domain.MusicSegment
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if len(got) != 2 || got[0].Title != "A" || got[1].Start != 7 {
		t.Fatalf("unexpected timeline: %+v", got)
	}
}

func TestChapterMusicEmptyTimeline(t *testing.T) {
	router := newTestRouter(&fakeRunner{timeline: nil})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/chapters/ch-42/music", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "[]" {
		t.Fatalf("expected empty JSON array, got %q", body)
	}
}

func TestChapterMusicPipelineError(t *testing.T) {
	router := newTestRouter(&fakeRunner{err: fmt.Errorf("segmentation failed")})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/chapters/ch-42/music", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON error body: %v", err)
	}
	if body["error"] == "" {
		t.Fatal("expected error message in body")
	}
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(&fakeRunner{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
