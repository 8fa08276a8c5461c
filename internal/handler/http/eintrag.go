package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ItsBakerX/trinkprotokolle-backend/internal/middleware"
	"github.com/ItsBakerX/trinkprotokolle-backend/internal/service"
)

// EintragHandler exposes the line-item endpoints.
type EintragHandler struct {
	eintragService   *service.EintragService
	protokollService *service.ProtokollService
}

func NewEintragHandler(eintragService *service.EintragService, protokollService *service.ProtokollService) *EintragHandler {
	return &EintragHandler{
		eintragService:   eintragService,
		protokollService: protokollService,
	}
}

const (
	accessProhibitedMessage = "Access is prohibited"
	notProtokollOwnerAdd    = "cannot add Eintrag to this protokoll if you are not the creator of this protokoll"
	protokollClosedMessage  = "Protokoll is already closed"
)

// CreateEintragRequest is the payload of POST /api/eintrag.
type CreateEintragRequest struct {
	Protokoll string   `json:"protokoll" binding:"required"`
	Ersteller string   `json:"ersteller" binding:"required"`
	Getraenk  string   `json:"getraenk" binding:"required,min=1,max=100"`
	Menge     *float64 `json:"menge" binding:"required"`
	Kommentar string   `json:"kommentar" binding:"omitempty,min=1,max=1000"`
}

// UpdateEintragRequest is the payload of PUT /api/eintrag/:id. Protokoll
// and Ersteller must be well-formed but any change to them is ignored;
// both are immutable after creation.
type UpdateEintragRequest struct {
	ID        string   `json:"id" binding:"required"`
	Protokoll string   `json:"protokoll" binding:"required"`
	Ersteller string   `json:"ersteller" binding:"required"`
	Getraenk  string   `json:"getraenk" binding:"required,min=1,max=100"`
	Menge     *float64 `json:"menge" binding:"required"`
	Kommentar string   `json:"kommentar" binding:"omitempty,min=1,max=1000"`
}

// Get returns one Eintrag when the caller may read it: parent public,
// parent owner or Eintrag creator.
func (h *EintragHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !validID(id) {
		ValidationErrorResponse(c, fieldError("id", "params", "invalid id", id))
		return
	}

	eintrag, err := h.eintragService.Get(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	protokoll, err := h.protokollService.Get(c.Request.Context(), eintrag.Protokoll)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	caller := middleware.CallerFromContext(c)
	if !service.CanReadEintrag(caller, protokoll, eintrag) {
		ErrorResponse(c, http.StatusForbidden, accessProhibitedMessage)
		return
	}
	c.JSON(http.StatusOK, eintrag)
}

// Create adds an Eintrag to a Protokoll. Allowed for the Protokoll owner,
// or for anyone when the Protokoll is public.
func (h *EintragHandler) Create(c *gin.Context) {
	var req CreateEintragRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.CreateEintrag: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input")
		return
	}
	if !validID(req.Protokoll) {
		ValidationErrorResponse(c, fieldError("protokoll", "body", "invalid id", req.Protokoll))
		return
	}
	if !validID(req.Ersteller) {
		ValidationErrorResponse(c, fieldError("ersteller", "body", "invalid id", req.Ersteller))
		return
	}

	protokoll, err := h.protokollService.Get(c.Request.Context(), req.Protokoll)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	caller := middleware.CallerFromContext(c)
	if !service.CanCreateEintrag(caller, protokoll) {
		ErrorResponse(c, http.StatusForbidden, notProtokollOwnerAdd)
		return
	}

	eintrag, err := h.eintragService.Create(c.Request.Context(), service.CreateEintragParams{
		Ersteller: req.Ersteller,
		Protokoll: req.Protokoll,
		Getraenk:  req.Getraenk,
		Menge:     *req.Menge,
		Kommentar: req.Kommentar,
	})
	if err != nil {
		if errors.Is(err, service.ErrProtokollClosed) {
			ValidationErrorResponse(c, fieldError("protokoll", "body", protokollClosedMessage, req.Protokoll))
			return
		}
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, eintrag)
}

// Update mutates the drinkable fields of an Eintrag. Allowed for the
// parent Protokoll owner and the Eintrag creator.
func (h *EintragHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if !validID(id) {
		ValidationErrorResponse(c, fieldError("id", "params", "invalid id", id))
		return
	}

	var req UpdateEintragRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.UpdateEintrag: Invalid input format")
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

	eintrag, err := h.eintragService.Get(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	protokoll, err := h.protokollService.Get(c.Request.Context(), eintrag.Protokoll)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	caller := middleware.CallerFromContext(c)
	if !service.CanModifyEintrag(caller, protokoll, eintrag) {
		ErrorResponse(c, http.StatusForbidden, accessProhibitedMessage)
		return
	}

	updated, err := h.eintragService.Update(c.Request.Context(), service.UpdateEintragParams{
		ID:        id,
		Getraenk:  req.Getraenk,
		Menge:     *req.Menge,
		Kommentar: req.Kommentar,
	})
	if err != nil {
		if errors.Is(err, service.ErrProtokollClosed) {
			ValidationErrorResponse(c, fieldError("protokoll", "body", protokollClosedMessage, req.Protokoll))
			return
		}
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes an Eintrag. Allowed for the parent Protokoll owner and
// the Eintrag creator.
func (h *EintragHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if !validID(id) {
		ValidationErrorResponse(c, fieldError("id", "params", "invalid id", id))
		return
	}

	eintrag, err := h.eintragService.Get(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	protokoll, err := h.protokollService.Get(c.Request.Context(), eintrag.Protokoll)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	caller := middleware.CallerFromContext(c)
	if !service.CanModifyEintrag(caller, protokoll, eintrag) {
		ErrorResponse(c, http.StatusForbidden, accessProhibitedMessage)
		return
	}

	if err := h.eintragService.Delete(c.Request.Context(), id); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
