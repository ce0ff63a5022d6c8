// Package api exposes the recommendation pipeline over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yomu/manga-bgm-go/internal/domain"
)

// TimelineRunner is the pipeline entry point the handler invokes.
type TimelineRunner interface {
	Run(ctx context.Context, chapterID string) ([]domain.MusicSegment, error)
}

type Handler struct {
	pipeline TimelineRunner
	logger   *zap.Logger
}

func NewHandler(pipeline TimelineRunner, logger *zap.Logger) *Handler {
	return &Handler{
		pipeline: pipeline,
		logger:   logger,
	}
}

// Register mounts the API routes.
func (h *Handler) Register(router *gin.Engine) {
	router.GET("/healthz", h.health)
	router.GET("/api/chapters/:chapterID/music", h.chapterMusic)
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// chapterMusic returns the chapter's music timeline. A fatal pipeline
// error yields 502; a chapter with zero resolvable segments yields an
// empty array, not an error.
func (h *Handler) chapterMusic(c *gin.Context) {
	chapterID := c.Param("chapterID")
	if chapterID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "chapter id is required"})
		return
	}

	timeline, err := h.pipeline.Run(c.Request.Context(), chapterID)
	if err != nil {
		h.logger.Error("Pipeline run failed",
			zap.String("chapter_id", chapterID),
			zap.Error(err),
		)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to compute music timeline"})
		return
	}

	if timeline == nil {
		timeline = []domain.MusicSegment{}
	}
	c.JSON(http.StatusOK, timeline)
}
