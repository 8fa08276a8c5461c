// Package http contains the gin handlers of the Trinkprotokoll API.
package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ItsBakerX/trinkprotokolle-backend/internal/middleware"
	"github.com/ItsBakerX/trinkprotokolle-backend/internal/service"
)

// LoginHandler manages the session cookie lifecycle.
type LoginHandler struct {
	authService *service.AuthService
}

func NewLoginHandler(authService *service.AuthService) *LoginHandler {
	return &LoginHandler{authService: authService}
}

// LoginRequest is the credential payload of POST /api/login.
type LoginRequest struct {
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials, sets the httpOnly session cookie and returns
// the decoded claims.
func (h *LoginHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.Login: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: name and password required")
		return
	}

	token, err := h.authService.Login(c.Request.Context(), req.Name, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrAuthenticationFailed) {
			logrus.WithField("name", req.Name).Warn("Handler.Login: Authentication failed")
			ErrorResponse(c, http.StatusUnauthorized, "invalid credentials")
		} else {
			logrus.WithError(err).Error("Handler.Login: Internal error during login")
			ErrorResponse(c, http.StatusInternalServerError, "Login failed due to server error")
		}
		return
	}

	login, err := h.authService.VerifyToken(token)
	if err != nil {
		logrus.WithError(err).Error("Handler.Login: Freshly issued token failed verification")
		ErrorResponse(c, http.StatusInternalServerError, "Login failed due to server error")
		return
	}

	h.setSessionCookie(c, token, login.Exp)
	c.JSON(http.StatusOK, login)
}

// Current returns the decoded claims of the session cookie, or the literal
// false when no valid session exists.
func (h *LoginHandler) Current(c *gin.Context) {
	token, err := c.Cookie(middleware.AccessTokenCookie)
	if err != nil || token == "" {
		c.JSON(http.StatusOK, false)
		return
	}

	login, err := h.authService.VerifyToken(token)
	if err != nil {
		h.clearSessionCookie(c)
		c.JSON(http.StatusOK, false)
		return
	}
	c.JSON(http.StatusOK, login)
}

// Logout clears the session cookie.
func (h *LoginHandler) Logout(c *gin.Context) {
	h.clearSessionCookie(c)
	c.Status(http.StatusOK)
}

func (h *LoginHandler) setSessionCookie(c *gin.Context, token string, exp int64) {
	maxAge := int(time.Until(time.Unix(exp, 0)).Seconds())
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.AccessTokenCookie, token, maxAge, "/", "", true, true)
}

func (h *LoginHandler) clearSessionCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(middleware.AccessTokenCookie, "", -1, "/", "", true, true)
}
