package handlers

import (
	"net/http"

	"sparetime/internal/http/middleware"
	"sparetime/internal/repositories"
	"sparetime/internal/services"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the profile surface: username, interests, password,
// and the recommendation profile consumed by the recommendation service.
type UserHandler struct {
	Users repositories.UserRepository
}

func (h UserHandler) service(c *gin.Context) services.ProfileService {
	return services.ProfileService{
		Users:     h.Users,
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/user
func (h UserHandler) Get(c *gin.Context) {
	p, err := h.service(c).GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"username": p.Username, "interests": p.Interests})
}

type updateUserRequest struct {
	Username  *string  `json:"username"`
	Interests []string `json:"interests"`
}

// PUT /api/user — partial update; absent fields are untouched.
func (h UserHandler) Update(c *gin.Context) {
	var req updateUserRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	p, err := h.service(c).UpdateProfile(c.Request.Context(), middleware.UserID(c), req.Username, req.Interests)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":   "user data updated successfully",
		"username":  p.Username,
		"interests": p.Interests,
	})
}

type interestRequest struct {
	Interest string `json:"interest"`
}

// POST /api/user/interests
func (h UserHandler) AddInterest(c *gin.Context) {
	var req interestRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	svc := h.service(c)
	added, err := svc.AddInterest(c.Request.Context(), middleware.UserID(c), req.Interest)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	interests, err := h.Users.Interests(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	msg := "interest added successfully"
	if !added {
		msg = "interest already present"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "added": added, "interests": interests})
}

// DELETE /api/user/interests
func (h UserHandler) RemoveInterest(c *gin.Context) {
	var req interestRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	removed, err := h.service(c).RemoveInterest(c.Request.Context(), middleware.UserID(c), req.Interest)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	interests, err := h.Users.Interests(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	msg := "interest removed successfully"
	if !removed {
		msg = "interest was not present"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "removed": removed, "interests": interests})
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// PUT /api/user/password
func (h UserHandler) ChangePassword(c *gin.Context) {
	var req changePasswordRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if err := h.service(c).ChangePassword(c.Request.Context(), middleware.UserID(c), req.CurrentPassword, req.NewPassword); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated successfully"})
}

// GET /api/user/recommendation-profile
// Returns the inputs the recommendation service needs: identity, interests,
// and the opaque cached average-video summary.
func (h UserHandler) RecommendationProfile(c *gin.Context) {
	p, err := h.service(c).GetProfile(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"userId":       p.ID,
		"interests":    p.Interests,
		"averageVideo": p.AverageVideo,
	})
}
