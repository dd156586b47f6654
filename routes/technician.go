package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"home-service-server/middleware"
	"home-service-server/models"
	"home-service-server/services"
)

// TechnicianHandler serves the technician side of the request lifecycle
type TechnicianHandler struct {
	lifecycle *services.Lifecycle
}

// NewTechnicianHandler creates the technician handler
func NewTechnicianHandler(lifecycle *services.Lifecycle) *TechnicianHandler {
	return &TechnicianHandler{lifecycle: lifecycle}
}

// Register registers technician routes. The group must already carry
// AuthMiddleware plus the technician role gate.
func (h *TechnicianHandler) Register(router *gin.RouterGroup) {
	tech := router.Group("/technician")
	{
		tech.GET("/available-requests", h.availableRequests)
		tech.GET("/jobs", h.myJobs)
		tech.POST("/requests/:id/accept", h.accept)
		tech.POST("/requests/:id/start", h.start)
		tech.POST("/requests/:id/complete", h.complete)
		tech.POST("/requests/:id/cancel", h.cancel)
		tech.POST("/requests/:id/invoice", h.sendInvoice)
	}
}

func (h *TechnicianHandler) availableRequests(c *gin.Context) {
	requests, err := h.lifecycle.ListOpen()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": requests,
	})
}

func (h *TechnicianHandler) myJobs(c *gin.Context) {
	user := middleware.CurrentUser(c)

	requests, err := h.lifecycle.ListForTechnician(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": requests,
	})
}

func (h *TechnicianHandler) accept(c *gin.Context) {
	user := middleware.CurrentUser(c)

	req, err := h.lifecycle.Accept(c.Param("id"), user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Service request accepted",
		"request": req,
	})
}

// requireAssigned loads the request and checks the caller is its technician
func (h *TechnicianHandler) requireAssigned(c *gin.Context) (*models.ServiceRequest, bool) {
	user := middleware.CurrentUser(c)

	req, err := h.lifecycle.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	if req.AssignedTechnicianID == nil || *req.AssignedTechnicianID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Forbidden",
			"message": "This request is not assigned to you",
		})
		return nil, false
	}
	return req, true
}

func (h *TechnicianHandler) start(c *gin.Context) {
	req, ok := h.requireAssigned(c)
	if !ok {
		return
	}

	req, err := h.lifecycle.Start(req.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Work started",
		"request": req,
	})
}

func (h *TechnicianHandler) complete(c *gin.Context) {
	req, ok := h.requireAssigned(c)
	if !ok {
		return
	}

	req, err := h.lifecycle.Complete(req.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Work completed",
		"request": req,
	})
}

func (h *TechnicianHandler) cancel(c *gin.Context) {
	req, ok := h.requireAssigned(c)
	if !ok {
		return
	}

	var input struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	req, err := h.lifecycle.CancelByTechnician(req.ID, input.Reason)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Service request cancelled",
		"request": req,
	})
}

func (h *TechnicianHandler) sendInvoice(c *gin.Context) {
	req, ok := h.requireAssigned(c)
	if !ok {
		return
	}

	req, err := h.lifecycle.SendInvoice(req.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invoice sent",
		"request": req,
	})
}
