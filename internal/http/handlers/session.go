package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"sparetime/internal/domain"
	"sparetime/internal/http/middleware"
	"sparetime/internal/services"

	"github.com/gin-gonic/gin"
)

// SessionHandler serves the start-session use case.
type SessionHandler struct {
	Recs  services.Recommender
	Queue services.QueueStore
}

func (h SessionHandler) service(c *gin.Context) services.SessionService {
	return services.SessionService{
		Recs:      h.Recs,
		Queue:     h.Queue,
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/session/top3
// The session duration hint travels as the `duration` header (minutes).
func (h SessionHandler) Top3(c *gin.Context) {
	raw := strings.TrimSpace(c.GetHeader("duration"))
	if raw == "" {
		RespondDomainError(c, domain.ValidationError{Field: "duration", Msg: "duration header required"})
		return
	}
	minutes, err := strconv.Atoi(raw)
	if err != nil {
		RespondDomainError(c, domain.ValidationError{Field: "duration", Msg: "must be a number of minutes"})
		return
	}

	ids, err := h.service(c).StartSession(c.Request.Context(), middleware.UserID(c), minutes)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"videoIds": ids})
}
