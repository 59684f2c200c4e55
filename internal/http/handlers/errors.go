package handlers

import (
	"net/http"

	"sparetime/internal/domain"
	"sparetime/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, code, message string) {
	if code == "" {
		code = http.StatusText(status)
	}
	c.JSON(status, gin.H{
		"error":      message,
		"code":       code,
		"request_id": middleware.GetRequestID(c),
	})
}

// RespondDomainError maps domain errors to HTTP responses. Only the structured
// kind and a short message cross the boundary; internals stay in the logs.
func RespondDomainError(c *gin.Context, err error) {
	switch {
	case domain.IsMalformedCredential(err):
		respondError(c, http.StatusUnauthorized, "malformed_credential", "unauthorized")
	case domain.IsInvalidCredential(err):
		respondError(c, http.StatusUnauthorized, "invalid_credential", "unauthorized")
	case domain.IsValidation(err):
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error())
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error())
	case domain.IsUpstreamUnavailable(err):
		respondError(c, http.StatusBadGateway, "upstream_unavailable", "recommendation service unreachable")
	case domain.IsUpstreamError(err):
		respondError(c, http.StatusBadGateway, "upstream_error", "recommendation service rejected the request")
	default:
		respondError(c, http.StatusInternalServerError, "internal_error", "something went wrong")
	}
}
