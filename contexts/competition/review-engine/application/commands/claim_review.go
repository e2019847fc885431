package commands

import (
	"context"
	"log/slog"
	"strings"

	application "codecomp/contexts/competition/review-engine/application"
	"codecomp/contexts/competition/review-engine/domain/entities"
	domainerrors "codecomp/contexts/competition/review-engine/domain/errors"
	"codecomp/contexts/competition/review-engine/ports"
)

type ClaimReviewCommand struct {
	Reviewer string
}

type ClaimReviewUseCase struct {
	Repository ports.Repository
	Claims     *application.ClaimRegistry
	Clock      ports.Clock
	Logger     *slog.Logger
}

// Execute assigns the oldest unclaimed pending submission to the
// reviewer. found is false when the queue is empty; ErrAlreadyClaimed is
// returned when pending work exists but other reviewers hold it all.
func (uc ClaimReviewUseCase) Execute(ctx context.Context, cmd ClaimReviewCommand) (entities.Submission, bool, error) {
	logger := application.ResolveLogger(uc.Logger)
	reviewer := strings.TrimSpace(cmd.Reviewer)
	if reviewer == "" {
		return entities.Submission{}, false, domainerrors.ErrUnauthorized
	}

	pending, err := uc.Repository.ListSubmissions(ctx, ports.SubmissionFilter{
		Status: entities.SubmissionStatusPending,
	})
	if err != nil {
		return entities.Submission{}, false, err
	}
	if len(pending) == 0 {
		return entities.Submission{}, false, nil
	}
	entities.SortForReview(pending)

	now := uc.Clock.Now().UTC()
	for _, submission := range pending {
		if uc.Claims.TryClaim(submission.SubmissionID, reviewer, now) {
			logger.Info("review claimed",
				"event", "review_claimed",
				"module", "competition/review-engine",
				"layer", "application",
				"submission_id", submission.SubmissionID,
				"reviewer", reviewer,
			)
			return submission, true, nil
		}
	}
	return entities.Submission{}, false, domainerrors.ErrAlreadyClaimed
}
