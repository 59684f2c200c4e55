package handlers

import (
	"net/http"
	"strings"

	"sparetime/internal/auth"
	"sparetime/internal/domain"
	"sparetime/internal/repositories"
	"sparetime/internal/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler issues the bearer tokens the rest of the API verifies.
type AuthHandler struct {
	Secret []byte
	Users  repositories.UserRepository
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/login
func (h AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	userID, hash, err := h.Users.Credentials(c.Request.Context(), strings.TrimSpace(req.Username))
	if err != nil {
		if domain.IsNotFound(err) {
			respondError(c, http.StatusUnauthorized, "invalid_credentials", "username or password incorrect")
			return
		}
		RespondDomainError(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		respondError(c, http.StatusUnauthorized, "invalid_credentials", "username or password incorrect")
		return
	}

	token, err := auth.IssueToken(h.Secret, userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "token_error", "failed to create token")
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "userId": userID})
}

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /api/auth/register
func (h AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" {
		respondError(c, http.StatusBadRequest, "validation_error", "username must not be empty")
		return
	}
	if len(req.Password) < 8 {
		respondError(c, http.StatusBadRequest, "validation_error", "password must be at least 8 characters")
		return
	}

	taken, err := h.Users.UsernameTaken(c.Request.Context(), username)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if taken {
		respondError(c, http.StatusBadRequest, "username_taken", "username already registered")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "hash_error", "failed to hash password")
		return
	}

	userID, err := h.Users.Create(c.Request.Context(), username, string(hash))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	utils.LogEvent("", "auth", "register", "new user registered")
	c.JSON(http.StatusCreated, gin.H{
		"message":  "registration successful",
		"userId":   userID,
		"username": username,
	})
}
