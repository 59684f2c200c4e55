package handlers

import (
	"net/http"
	"strings"

	"sparetime/internal/domain"
	"sparetime/internal/http/middleware"
	"sparetime/internal/services"

	"github.com/gin-gonic/gin"
)

// VideoHandler serves metadata lookups.
type VideoHandler struct {
	Recs services.Recommender
}

// GET /api/video-info
// The video identifier travels as the `videoId` header.
func (h VideoHandler) Info(c *gin.Context) {
	videoID := strings.TrimSpace(c.GetHeader("videoId"))
	if videoID == "" {
		RespondDomainError(c, domain.ValidationError{Field: "videoId", Msg: "videoId header required"})
		return
	}

	ref, err := h.Recs.VideoInfo(c.Request.Context(), middleware.UserID(c), videoID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, ref)
}
