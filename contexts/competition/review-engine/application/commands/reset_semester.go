package commands

import (
	"context"
	"fmt"
	"log/slog"

	application "codecomp/contexts/competition/review-engine/application"
	domainerrors "codecomp/contexts/competition/review-engine/domain/errors"
	"codecomp/contexts/competition/review-engine/ports"
)

type ResetSemesterUseCase struct {
	Repository ports.Repository
	Claims     *application.ClaimRegistry
	Logger     *slog.Logger
}

// Execute clears submissions, ledger and the queue pointer. The catalog
// and roster survive resets. A failed batch surfaces as
// ErrPartialResetFailure; deletes are idempotent so the caller retries
// the whole operation.
func (uc ResetSemesterUseCase) Execute(ctx context.Context) error {
	logger := application.ResolveLogger(uc.Logger)

	if err := uc.Repository.ResetSemester(ctx); err != nil {
		logger.Error("semester reset failed",
			"event", "semester_reset_failed",
			"module", "competition/review-engine",
			"layer", "application",
			"error", err.Error(),
		)
		return fmt.Errorf("%w: %v", domainerrors.ErrPartialResetFailure, err)
	}
	if uc.Claims != nil {
		uc.Claims.ReleaseAll()
	}

	logger.Info("semester reset completed",
		"event", "semester_reset_completed",
		"module", "competition/review-engine",
		"layer", "application",
	)
	return nil
}
