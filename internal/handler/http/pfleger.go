package http

import (
	"errors"
	"net/http"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ItsBakerX/trinkprotokolle-backend/internal/middleware"
	"github.com/ItsBakerX/trinkprotokolle-backend/internal/service"
)

// PflegerHandler exposes the admin-only account management endpoints.
type PflegerHandler struct {
	pflegerService *service.PflegerService
}

func NewPflegerHandler(pflegerService *service.PflegerService) *PflegerHandler {
	return &PflegerHandler{pflegerService: pflegerService}
}

const adminOnlyMessage = "Access is prohibited, only admin has access"

// CreatePflegerRequest is the payload of POST /api/pfleger.
type CreatePflegerRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"required,min=1,max=100"`
	Admin    *bool  `json:"admin" binding:"required"`
}

// UpdatePflegerRequest is the payload of PUT /api/pfleger/:id. Password is
// optional; when present it must again be strong.
type UpdatePflegerRequest struct {
	ID       string `json:"id" binding:"required"`
	Name     string `json:"name" binding:"required,min=1,max=100"`
	Password string `json:"password" binding:"omitempty,min=1,max=100"`
	Admin    *bool  `json:"admin" binding:"required"`
}

// GetAlle lists every account, password never included. Admin only.
func (h *PflegerHandler) GetAlle(c *gin.Context) {
	caller := middleware.CallerFromContext(c)
	if !service.CanListPfleger(caller) {
		ErrorResponse(c, http.StatusForbidden, adminOnlyMessage)
		return
	}

	pflegern, err := h.pflegerService.GetAlle(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pflegern)
}

// Create adds a new account. Admin only.
func (h *PflegerHandler) Create(c *gin.Context) {
	var req CreatePflegerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.CreatePfleger: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input")
		return
	}
	if !isStrongPassword(req.Password) {
		ValidationErrorResponse(c, fieldError("password", "body", "password is not strong enough", nil))
		return
	}

	caller := middleware.CallerFromContext(c)
	if !service.CanWritePfleger(caller) {
		ErrorResponse(c, http.StatusForbidden, adminOnlyMessage)
		return
	}

	pfleger, err := h.pflegerService.Create(c.Request.Context(), req.Name, req.Password, *req.Admin)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateName) {
			ValidationErrorResponse(c, fieldError("name", "body", "Duplicate, name pfleger already exists", req.Name))
			return
		}
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, pfleger)
}

// Update mutates an account in place. Admin only; path and body id must
// match.
func (h *PflegerHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if !validID(id) {
		ValidationErrorResponse(c, fieldError("id", "params", "invalid id", id))
		return
	}

	var req UpdatePflegerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.UpdatePfleger: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input")
		return
	}
	if id != req.ID {
		ValidationErrorResponse(c,
			fieldError("id", "params", "the IDs of param and body do not match", id),
			fieldError("id", "body", "the IDs of param and body do not match", req.ID),
		)
		return
	}
	if req.Password != "" && !isStrongPassword(req.Password) {
		ValidationErrorResponse(c, fieldError("password", "body", "password is not strong enough", nil))
		return
	}

	caller := middleware.CallerFromContext(c)
	if !service.CanWritePfleger(caller) {
		ErrorResponse(c, http.StatusForbidden, adminOnlyMessage)
		return
	}

	pfleger, err := h.pflegerService.Update(c.Request.Context(), id, req.Name, req.Password, *req.Admin)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateName) {
			ValidationErrorResponse(c, fieldError("name", "body", "Duplicate, name pfleger already exists", req.Name))
			return
		}
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, pfleger)
}

// Delete removes an account and everything it owns. Admin only; an admin
// can never delete their own account.
func (h *PflegerHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if !validID(id) {
		ValidationErrorResponse(c, fieldError("id", "params", "invalid id", id))
		return
	}

	caller := middleware.CallerFromContext(c)
	if !caller.IsAdmin() {
		ErrorResponse(c, http.StatusForbidden, adminOnlyMessage)
		return
	}
	if !service.CanDeletePfleger(caller, id) {
		ErrorResponse(c, http.StatusForbidden, "cannot delete own account")
		return
	}

	if err := h.pflegerService.Delete(c.Request.Context(), id); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// isStrongPassword mirrors the registration policy: at least 8 characters
// with a lower-case letter, an upper-case letter, a digit and a symbol.
func isStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var lower, upper, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		default:
			symbol = true
		}
	}
	return lower && upper && digit && symbol
}
