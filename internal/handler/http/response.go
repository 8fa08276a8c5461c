package http

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// FieldError is the field-scoped validation error shape used for 400
// responses, e.g. duplicate (patient, datum) pairs or id mismatches.
type FieldError struct {
	Type     string      `json:"type"`
	Path     string      `json:"path"`
	Location string      `json:"location"`
	Msg      string      `json:"msg"`
	Value    interface{} `json:"value"`
}

func fieldError(path, location, msg string, value interface{}) FieldError {
	return FieldError{Type: "field", Path: path, Location: location, Msg: msg, Value: value}
}

// ErrorResponse renders a plain error body.
func ErrorResponse(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"message": message})
}

// ValidationErrorResponse renders a 400 with field-scoped errors.
func ValidationErrorResponse(c *gin.Context, errs ...FieldError) {
	c.JSON(400, gin.H{"errors": errs})
}

// validID reports whether s is a well-formed entity id. Malformed ids are a
// 400 validation error, never a 404.
func validID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
