package handler

import (
	"errors"
	"net/http"
	"time"

	"cleanic/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler interface {
	Login(c *gin.Context)
}

type authHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService service.AuthService, logger *zap.Logger) AuthHandler {
	return &authHandler{authService: authService, logger: logger}
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginUser struct {
	ID    int64  `json:"id"`
	Login string `json:"login"`
	Role  string `json:"role"`
	Mail  string `json:"mail"`
}

// Login handles POST /auth/login. Account-not-found, not-provisioned
// and pending-approval all answer 403; only a refused password is 401.
func (h *authHandler) Login(c *gin.Context) {
	startedAt := time.Now()

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "username/password required"})
		return
	}

	user, token, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingCredentials):
			c.JSON(http.StatusBadRequest, gin.H{"message": "username/password required"})
		case errors.Is(err, service.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
		case errors.Is(err, service.ErrUserNotFound):
			c.JSON(http.StatusForbidden, gin.H{"message": "user not found in directory"})
		case errors.Is(err, service.ErrNotProvisioned):
			c.JSON(http.StatusForbidden, gin.H{"message": "user not provisioned"})
		case errors.Is(err, service.ErrPendingApproval):
			c.JSON(http.StatusForbidden, gin.H{"message": "account pending approval"})
		case errors.Is(err, service.ErrDirectoryBindFailed):
			c.JSON(http.StatusBadGateway, gin.H{"message": "directory bind failed"})
		default:
			h.logger.Error("Login failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "ok",
		"user": loginUser{
			ID:    user.ID,
			Login: user.LoginAD,
			Role:  string(user.Role),
			Mail:  user.Mail,
		},
		"token": token,
		"ms":    time.Since(startedAt).Milliseconds(),
	})
}
