package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"home-service-server/models"
	"home-service-server/services"
)

// AdminHandler serves the back-office views
type AdminHandler struct {
	lifecycle *services.Lifecycle
	identity  *services.Identity
}

// NewAdminHandler creates the admin handler
func NewAdminHandler(lifecycle *services.Lifecycle, identity *services.Identity) *AdminHandler {
	return &AdminHandler{lifecycle: lifecycle, identity: identity}
}

// Register registers admin routes. The group must already carry
// AuthMiddleware plus the admin role gate.
func (h *AdminHandler) Register(router *gin.RouterGroup) {
	admin := router.Group("/admin")
	{
		admin.GET("/dashboard/stats", h.dashboardStats)
		admin.GET("/service-requests", h.listRequests)
		admin.GET("/users", h.listUsers)
	}
}

func (h *AdminHandler) dashboardStats(c *gin.Context) {
	requests, err := h.lifecycle.List()
	if err != nil {
		respondError(c, err)
		return
	}

	statusCounts := make(map[string]int)
	categoryCounts := make(map[string]int)
	var revenue float64
	var ratingSum, ratingCount float64

	for _, req := range requests {
		statusCounts[string(req.Status)]++
		categoryCounts[req.Category]++
		if req.Status == models.StatusPaid && req.Invoice != nil {
			revenue += req.Invoice.Total
		}
		if req.UserRating != nil {
			ratingSum += float64(req.UserRating.Value)
			ratingCount++
		}
	}

	var averageRating float64
	if ratingCount > 0 {
		averageRating = ratingSum / ratingCount
	}

	users, err := h.identity.ListUsers()
	if err != nil {
		respondError(c, err)
		return
	}
	technicians, err := h.identity.ListTechnicians()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"totalRequests":   len(requests),
		"requestsByStatus": statusCounts,
		"requestsByCategory": categoryCounts,
		"totalRevenue":    revenue,
		"averageRating":   averageRating,
		"totalUsers":      len(users),
		"totalTechnicians": len(technicians),
	})
}

func (h *AdminHandler) listRequests(c *gin.Context) {
	status := c.Query("status")

	var (
		requests []*models.ServiceRequest
		err      error
	)
	if status != "" {
		requests, err = h.lifecycle.ListByStatus(models.RequestStatus(status))
	} else {
		requests, err = h.lifecycle.List()
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": requests,
	})
}

func (h *AdminHandler) listUsers(c *gin.Context) {
	users, err := h.identity.ListUsers()
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
	})
}
