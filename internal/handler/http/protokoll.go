package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/ItsBakerX/trinkprotokolle-backend/internal/domain"
	"github.com/ItsBakerX/trinkprotokolle-backend/internal/middleware"
	"github.com/ItsBakerX/trinkprotokolle-backend/internal/service"
)

// ProtokollHandler exposes the log-header endpoints.
type ProtokollHandler struct {
	protokollService *service.ProtokollService
	eintragService   *service.EintragService
}

func NewProtokollHandler(protokollService *service.ProtokollService, eintragService *service.EintragService) *ProtokollHandler {
	return &ProtokollHandler{
		protokollService: protokollService,
		eintragService:   eintragService,
	}
}

const (
	notOwnerReadMessage  = "STOP, not owner of this Protokoll are not allowed to read"
	notOwnerWriteMessage = "STOP, not owner of this Protokoll are not allowed to make changes"
	duplicatePairMessage = "Unique constraint of Patient Datum combination violated"
)

// CreateProtokollRequest is the payload of POST /api/protokoll.
type CreateProtokollRequest struct {
	Patient   string `json:"patient" binding:"required,min=1,max=100"`
	Datum     string `json:"datum" binding:"required"`
	Public    bool   `json:"public"`
	Closed    bool   `json:"closed"`
	Ersteller string `json:"ersteller" binding:"required"`
}

// UpdateProtokollRequest is the payload of PUT /api/protokoll/:id.
type UpdateProtokollRequest struct {
	ID        string `json:"id" binding:"required"`
	Patient   string `json:"patient" binding:"required,min=1,max=100"`
	Datum     string `json:"datum" binding:"required"`
	Public    bool   `json:"public"`
	Closed    bool   `json:"closed"`
	Ersteller string `json:"ersteller" binding:"required"`
}

// GetAlle lists every visible Protokoll: all public ones plus the caller's
// own. Guests see only the public ones.
func (h *ProtokollHandler) GetAlle(c *gin.Context) {
	caller := middleware.CallerFromContext(c)
	protokolle, err := h.protokollService.GetAlle(c.Request.Context(), caller.ID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, protokolle)
}

// Get returns one Protokoll; private ones only to their owner.
func (h *ProtokollHandler) Get(c *gin.Context) {
	id := c.Param("id")
	if !validID(id) {
		ValidationErrorResponse(c, fieldError("id", "params", "invalid id", id))
		return
	}

	protokoll, err := h.protokollService.Get(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}

	caller := middleware.CallerFromContext(c)
	if !service.CanReadProtokoll(caller, protokoll) {
		ErrorResponse(c, http.StatusForbidden, notOwnerReadMessage)
		return
	}
	c.JSON(http.StatusOK, protokoll)
}

// GetEintraege lists the Eintraege of a Protokoll in creation order.
func (h *ProtokollHandler) GetEintraege(c *gin.Context) {
	id := c.Param("id")
	if !validID(id) {
		ValidationErrorResponse(c, fieldError("id", "params", "invalid id", id))
		return
	}

	eintraege, err := h.eintragService.GetAlleEintraege(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, eintraege)
}

// Create adds a new Protokoll for an authenticated caller.
func (h *ProtokollHandler) Create(c *gin.Context) {
	var req CreateProtokollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.CreateProtokoll: Invalid input format")
		ErrorResponse(c, http.StatusBadRequest, "Invalid input")
		return
	}
	if !validID(req.Ersteller) {
		ValidationErrorResponse(c, fieldError("ersteller", "body", "invalid id", req.Ersteller))
		return
	}
	datum, err := domain.ParseDatum(req.Datum)
	if err != nil {
		ValidationErrorResponse(c, fieldError("datum", "body", "datum must be a DD.MM.YYYY date", req.Datum))
		return
	}

	protokoll, err := h.protokollService.Create(c.Request.Context(), service.CreateProtokollParams{
		Ersteller: req.Ersteller,
		Patient:   req.Patient,
		Datum:     datum,
		Public:    req.Public,
		Closed:    req.Closed,
	})
	if err != nil {
		if errors.Is(err, service.ErrDuplicatePatientDatum) {
			ValidationErrorResponse(c,
				fieldError("patient", "body", duplicatePairMessage, req.Patient),
				fieldError("datum", "body", duplicatePairMessage, req.Datum),
			)
			return
		}
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, protokoll)
}

// Update mutates a Protokoll. Owner only.
func (h *ProtokollHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if !validID(id) {
		ValidationErrorResponse(c, fieldError("id", "params", "invalid id", id))
		return
	}

	var req UpdateProtokollRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logrus.WithError(err).Warn("Handler.UpdateProtokoll: Invalid input format")
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
	if !validID(req.Ersteller) {
		ValidationErrorResponse(c, fieldError("ersteller", "body", "invalid id", req.Ersteller))
		return
	}
	datum, err := domain.ParseDatum(req.Datum)
	if err != nil {
		ValidationErrorResponse(c, fieldError("datum", "body", "datum must be a DD.MM.YYYY date", req.Datum))
		return
	}

	existing, err := h.protokollService.Get(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	caller := middleware.CallerFromContext(c)
	if !service.CanModifyProtokoll(caller, existing) {
		ErrorResponse(c, http.StatusForbidden, notOwnerWriteMessage)
		return
	}

	protokoll, err := h.protokollService.Update(c.Request.Context(), service.UpdateProtokollParams{
		ID:        id,
		Ersteller: req.Ersteller,
		Patient:   req.Patient,
		Datum:     datum,
		Public:    req.Public,
		Closed:    req.Closed,
	})
	if err != nil {
		if errors.Is(err, service.ErrDuplicatePatientDatum) {
			ValidationErrorResponse(c,
				fieldError("patient", "body", duplicatePairMessage, req.Patient),
				fieldError("datum", "body", duplicatePairMessage, req.Datum),
			)
			return
		}
		HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, protokoll)
}

// Delete removes a Protokoll and all its Eintraege. Owner only.
func (h *ProtokollHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if !validID(id) {
		ValidationErrorResponse(c, fieldError("id", "params", "invalid id", id))
		return
	}

	existing, err := h.protokollService.Get(c.Request.Context(), id)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	caller := middleware.CallerFromContext(c)
	if !service.CanModifyProtokoll(caller, existing) {
		ErrorResponse(c, http.StatusForbidden, notOwnerWriteMessage)
		return
	}

	if err := h.protokollService.Delete(c.Request.Context(), id); err != nil {
		HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
