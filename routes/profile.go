package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"home-service-server/middleware"
	"home-service-server/models"
	"home-service-server/services"
)

// ProfileHandler serves user profiles and the public directory endpoints
type ProfileHandler struct {
	identity *services.Identity
}

// NewProfileHandler creates the profile handler
func NewProfileHandler(identity *services.Identity) *ProfileHandler {
	return &ProfileHandler{identity: identity}
}

// RegisterPublic registers unauthenticated directory routes
func (h *ProfileHandler) RegisterPublic(router *gin.RouterGroup) {
	router.GET("/categories", h.categories)
	router.GET("/technicians", h.technicians)
	router.GET("/technicians/:id", h.technician)
}

// RegisterProtected registers the profile routes on an authenticated group
func (h *ProfileHandler) RegisterProtected(router *gin.RouterGroup) {
	router.GET("/profile", h.getProfile)
	router.PUT("/profile", h.updateProfile)
}

func (h *ProfileHandler) categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"categories": models.ServiceCategories,
		"timeSlots":  models.TimeSlots,
	})
}

func (h *ProfileHandler) technicians(c *gin.Context) {
	profiles, err := h.identity.ListTechnicians()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"technicians": profiles,
	})
}

func (h *ProfileHandler) technician(c *gin.Context) {
	profile, err := h.identity.GetTechnician(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"technician": profile,
	})
}

func (h *ProfileHandler) getProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, gin.H{
		"user": user,
	})
}

func (h *ProfileHandler) updateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var patch models.UserProfileUpdate
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	updated, err := h.identity.UpdateProfile(user.ID, patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user":    updated,
	})
}
