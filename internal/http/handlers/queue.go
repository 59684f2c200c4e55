package handlers

import (
	"net/http"

	"sparetime/internal/http/middleware"
	"sparetime/internal/services"

	"github.com/gin-gonic/gin"
)

// QueueHandler serves the pending-review queue use cases.
type QueueHandler struct {
	Recs  services.Recommender
	Queue services.QueueStore
}

func (h QueueHandler) service(c *gin.Context) services.SessionService {
	return services.SessionService{
		Recs:      h.Recs,
		Queue:     h.Queue,
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/queue
func (h QueueHandler) List(c *gin.Context) {
	entries, err := h.service(c).ListQueue(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"queue": entries})
}

type queueVideoRequest struct {
	VideoID string `json:"videoId"`
}

// POST /api/queue/add
func (h QueueHandler) Add(c *gin.Context) {
	var req queueVideoRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	added, err := h.service(c).SaveForLater(c.Request.Context(), middleware.UserID(c), req.VideoID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	msg := "video added to queue"
	if !added {
		msg = "video already in queue"
	}
	c.JSON(http.StatusOK, gin.H{"added": added, "message": msg})
}

// POST /api/queue/remove
func (h QueueHandler) Remove(c *gin.Context) {
	var req queueVideoRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	removed, err := h.service(c).RemoveFromQueue(c.Request.Context(), middleware.UserID(c), req.VideoID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	msg := "video removed from queue"
	if !removed {
		msg = "video was not in queue"
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed, "message": msg})
}

type rateVideoRequest struct {
	VideoID string `json:"videoId"`
	Rating  int    `json:"rating"`
}

// POST /api/queue/rate
// Forwards the rating upstream and dequeues only after the acknowledgement.
// `removed:false` with a 200 means the entry was already resolved elsewhere;
// an upstream error means the entry is retained and the rating can be retried.
func (h QueueHandler) Rate(c *gin.Context) {
	var req rateVideoRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	removed, err := h.service(c).ReviewVideo(c.Request.Context(), middleware.UserID(c), req.VideoID, req.Rating)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	msg := "video rated"
	if !removed {
		msg = "video rated; it was no longer in the queue"
	}
	c.JSON(http.StatusOK, gin.H{"removed": removed, "message": msg})
}

// GET /api/queue/export
func (h QueueHandler) Export(c *gin.Context) {
	svc := services.DocsService{
		Queue:     h.Queue,
		RequestID: middleware.GetRequestID(c),
	}
	pdfBytes, filename, err := svc.GenerateQueueSheet(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", `inline; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", pdfBytes)
}
