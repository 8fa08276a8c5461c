package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"github.com/ItsBakerX/trinkprotokolle-backend/internal/service"
	"github.com/ItsBakerX/trinkprotokolle-backend/internal/tasks"
)

// ProtokollAutoCloseHandler processes the periodic auto-close sweep.
// Each run closes every open Protokoll whose Datum is older than the
// configured retention window.
type ProtokollAutoCloseHandler struct {
	protokollService *service.ProtokollService
}

// NewProtokollAutoCloseHandler creates a handler instance.
func NewProtokollAutoCloseHandler(protokollService *service.ProtokollService) *ProtokollAutoCloseHandler {
	if protokollService == nil {
		panic("ProtokollService cannot be nil for ProtokollAutoCloseHandler")
	}
	return &ProtokollAutoCloseHandler{protokollService: protokollService}
}

// ProcessTask implements asynq.Handler.
func (h *ProtokollAutoCloseHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	logCtx := logrus.WithFields(logrus.Fields{
		"task_type": t.Type(),
	})
	logCtx.Info("Processing periodic Protokoll auto-close task...")

	var payload tasks.ProtokollAutoClosePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		logCtx.WithError(err).Error("Failed to unmarshal auto-close payload")
		return fmt.Errorf("unmarshal auto-close payload: %w", err)
	}
	if payload.MaxAgeDays <= 0 {
		logCtx.Warnf("Auto-close disabled (max_age_days=%d), skipping sweep.", payload.MaxAgeDays)
		return nil
	}

	sweepCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	cutoff := time.Now().UTC().AddDate(0, 0, -payload.MaxAgeDays)
	closed, err := h.protokollService.CloseOlderThan(sweepCtx, cutoff)
	if err != nil {
		logCtx.WithError(err).Error("Protokoll auto-close sweep failed")
		return fmt.Errorf("auto-close sweep: %w", err)
	}

	logCtx.WithFields(logrus.Fields{
		"cutoff": cutoff.Format("2006-01-02"),
		"closed": closed,
	}).Info("Protokoll auto-close task completed successfully.")
	return nil
}
