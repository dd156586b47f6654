package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"home-service-server/middleware"
	"home-service-server/services"
	"home-service-server/utils"
)

// AuthHandler serves signup, login and token refresh
type AuthHandler struct {
	identity *services.Identity
}

// NewAuthHandler creates the auth handler
func NewAuthHandler(identity *services.Identity) *AuthHandler {
	return &AuthHandler{identity: identity}
}

// Register registers authentication routes
func (h *AuthHandler) Register(router *gin.RouterGroup) {
	auth := router.Group("/auth")
	auth.Use(middleware.AuthRateLimitMiddleware())
	{
		auth.POST("/signup", h.signup)
		auth.POST("/login", h.login)
		auth.POST("/refresh", h.refresh)
		auth.POST("/logout", h.logout)
	}
}

func (h *AuthHandler) signup(c *gin.Context) {
	var input services.SignupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	user, err := h.identity.Signup(input)
	if err != nil {
		respondError(c, err)
		return
	}

	accessToken, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		respondError(c, err)
		return
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID, string(user.Role))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":      "Account created successfully",
		"user":         user,
		"token":        accessToken,
		"refreshToken": refreshToken,
	})
}

func (h *AuthHandler) login(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	user, err := h.identity.Login(input.Email)
	if err != nil {
		// A generic 401 so login does not reveal which emails exist
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Login failed",
			"message": "No account found for this email",
		})
		return
	}

	accessToken, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		respondError(c, err)
		return
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID, string(user.Role))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"user":         user,
		"token":        accessToken,
		"refreshToken": refreshToken,
	})
}

func (h *AuthHandler) refresh(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"message": err.Error(),
		})
		return
	}

	claims, err := utils.VerifyRefreshToken(input.RefreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Invalid refresh token",
			"message": "Refresh token is invalid or expired",
		})
		return
	}

	user, err := h.identity.GetUser(claims.UserID)
	if err != nil || !user.IsActive {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error":   "Invalid refresh token",
			"message": "User associated with token not found",
		})
		return
	}

	accessToken, err := utils.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		respondError(c, err)
		return
	}
	refreshToken, err := utils.GenerateRefreshToken(user.ID, string(user.Role))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Token refreshed successfully",
		"token":        accessToken,
		"refreshToken": refreshToken,
	})
}

// logout is a formality with stateless tokens; clients drop their copies
func (h *AuthHandler) logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Logged out successfully",
	})
}
