package tasks

import (
	"encoding/json"
)

// Task type constants.
const (
	// TypeProtokollAutoClose is the periodic task that closes open
	// Protokolle whose Datum lies too far in the past.
	TypeProtokollAutoClose = "protokoll:autoclose"
)

// ProtokollAutoClosePayload carries the retention window for the
// auto-close sweep. MaxAgeDays counts back from the day the task runs.
type ProtokollAutoClosePayload struct {
	MaxAgeDays int `json:"max_age_days"`
}

// NewProtokollAutoCloseTask builds the payload for an auto-close sweep.
func NewProtokollAutoCloseTask(maxAgeDays int) ([]byte, error) {
	payload := ProtokollAutoClosePayload{MaxAgeDays: maxAgeDays}
	return json.Marshal(payload)
}
