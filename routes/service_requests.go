package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"home-service-server/middleware"
	"home-service-server/models"
	"home-service-server/services"
)

// ServiceRequestHandler serves the customer side of the request lifecycle
type ServiceRequestHandler struct {
	lifecycle *services.Lifecycle
}

// NewServiceRequestHandler creates the service request handler
func NewServiceRequestHandler(lifecycle *services.Lifecycle) *ServiceRequestHandler {
	return &ServiceRequestHandler{lifecycle: lifecycle}
}

// Register registers customer service request routes. The group must already
// carry AuthMiddleware.
func (h *ServiceRequestHandler) Register(router *gin.RouterGroup) {
	requests := router.Group("/service-requests")
	{
		requests.POST("", h.create)
		requests.GET("/my-requests", h.myRequests)
		requests.GET("/:id", h.get)
		requests.POST("/:id/cancel", h.cancel)
		requests.POST("/:id/pay", h.pay)
		requests.POST("/:id/rating", h.submitRating)
		requests.GET("/:id/messages", h.getMessages)
		requests.POST("/:id/messages", h.sendMessage)
	}
}

// canAccess reports whether the user may see or touch this request
func canAccess(user *models.User, req *models.ServiceRequest) bool {
	if user == nil {
		return false
	}
	if user.IsAdmin() || req.UserID == user.ID {
		return true
	}
	return req.AssignedTechnicianID != nil && *req.AssignedTechnicianID == user.ID
}

func forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{
		"error":   "Forbidden",
		"message": "You do not have access to this service request",
	})
}

func (h *ServiceRequestHandler) create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var input models.ServiceRequestCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	req, err := h.lifecycle.Create(user.ID, input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Service request created successfully",
		"request": req,
	})
}

func (h *ServiceRequestHandler) myRequests(c *gin.Context) {
	user := middleware.CurrentUser(c)

	requests, err := h.lifecycle.ListForUser(user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": requests,
	})
}

func (h *ServiceRequestHandler) get(c *gin.Context) {
	user := middleware.CurrentUser(c)

	req, err := h.lifecycle.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !canAccess(user, req) {
		forbidden(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"request": req,
	})
}

func (h *ServiceRequestHandler) cancel(c *gin.Context) {
	user := middleware.CurrentUser(c)

	req, err := h.lifecycle.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if req.UserID != user.ID && !user.IsAdmin() {
		forbidden(c)
		return
	}

	req, err = h.lifecycle.CancelByRequester(req.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Service request cancelled",
		"request": req,
	})
}

func (h *ServiceRequestHandler) pay(c *gin.Context) {
	user := middleware.CurrentUser(c)

	req, err := h.lifecycle.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if req.UserID != user.ID && !user.IsAdmin() {
		forbidden(c)
		return
	}

	req, err = h.lifecycle.PayInvoice(req.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Invoice paid successfully",
		"request": req,
	})
}

func (h *ServiceRequestHandler) submitRating(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var input models.RatingSubmit
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	req, err := h.lifecycle.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	// The rating slot follows the caller's relationship to the request
	var author models.RatingAuthor
	switch {
	case req.UserID == user.ID:
		author = models.RatingByCustomer
	case req.AssignedTechnicianID != nil && *req.AssignedTechnicianID == user.ID:
		author = models.RatingByTechnician
	default:
		forbidden(c)
		return
	}

	req, err = h.lifecycle.SubmitRating(req.ID, author, input.Value, input.Feedback)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Rating submitted successfully",
		"request": req,
	})
}

func (h *ServiceRequestHandler) getMessages(c *gin.Context) {
	user := middleware.CurrentUser(c)

	req, err := h.lifecycle.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !canAccess(user, req) {
		forbidden(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"messages": req.Messages,
	})
}

func (h *ServiceRequestHandler) sendMessage(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var input models.MessageSend
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	req, err := h.lifecycle.Get(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !canAccess(user, req) {
		forbidden(c)
		return
	}

	req, err = h.lifecycle.SendMessage(req.ID, user.ID, input.Text)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Message sent",
		"messages": req.Messages,
	})
}
