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

type ApproveSubmissionCommand struct {
	SubmissionID   string
	Reviewer       string
	ChallengeKey   string
	PointsOverride *int
}

type RejectSubmissionCommand struct {
	SubmissionID string
	Reviewer     string
	Reason       string
}

type ReviewSubmissionUseCase struct {
	Repository ports.Repository
	Claims     *application.ClaimRegistry
	Clock      ports.Clock
	Logger     *slog.Logger
}

// Approve resolves points from the catalog (or the override for surprise
// challenges) and writes the terminal transition together with exactly
// one ledger row.
func (uc ReviewSubmissionUseCase) Approve(ctx context.Context, cmd ApproveSubmissionCommand) (entities.Submission, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.Reviewer) == "" {
		return entities.Submission{}, domainerrors.ErrUnauthorized
	}

	submission, err := uc.Repository.GetSubmission(ctx, strings.TrimSpace(cmd.SubmissionID))
	if err != nil {
		return entities.Submission{}, err
	}
	if submission.Status != entities.SubmissionStatusPending {
		return entities.Submission{}, domainerrors.ErrNotPending
	}

	challenge, err := uc.Repository.GetChallenge(ctx, strings.TrimSpace(cmd.ChallengeKey))
	if err != nil {
		return entities.Submission{}, err
	}
	points := challenge.Points
	if cmd.PointsOverride != nil {
		points = *cmd.PointsOverride
	}

	now := uc.Clock.Now().UTC()
	submission.Status = entities.SubmissionStatusApproved
	submission.ReviewedBy = strings.TrimSpace(cmd.Reviewer)
	submission.ChallengeKey = challenge.ChallengeKey
	submission.Points = points

	entry := entities.LedgerEntry{
		Timestamp:    now,
		Team:         submission.Team,
		PointsDelta:  points,
		ChallengeKey: challenge.ChallengeKey,
		SubmissionID: submission.SubmissionID,
		ReviewedBy:   submission.ReviewedBy,
	}
	if err := uc.Repository.DecideSubmission(ctx, submission, &entry); err != nil {
		return entities.Submission{}, err
	}
	if uc.Claims != nil {
		uc.Claims.Release(submission.SubmissionID)
	}

	logger.Info("submission approved",
		"event", "submission_approved",
		"module", "competition/review-engine",
		"layer", "application",
		"submission_id", submission.SubmissionID,
		"team", submission.Team,
		"challenge_key", submission.ChallengeKey,
		"points_delta", points,
		"reviewed_by", submission.ReviewedBy,
	)
	return submission, nil
}

// Reject writes the terminal transition with no ledger row.
func (uc ReviewSubmissionUseCase) Reject(ctx context.Context, cmd RejectSubmissionCommand) (entities.Submission, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.Reviewer) == "" {
		return entities.Submission{}, domainerrors.ErrUnauthorized
	}

	submission, err := uc.Repository.GetSubmission(ctx, strings.TrimSpace(cmd.SubmissionID))
	if err != nil {
		return entities.Submission{}, err
	}
	if submission.Status != entities.SubmissionStatusPending {
		return entities.Submission{}, domainerrors.ErrNotPending
	}

	submission.Status = entities.SubmissionStatusRejected
	submission.ReviewedBy = strings.TrimSpace(cmd.Reviewer)
	if err := uc.Repository.DecideSubmission(ctx, submission, nil); err != nil {
		return entities.Submission{}, err
	}
	if uc.Claims != nil {
		uc.Claims.Release(submission.SubmissionID)
	}

	logger.Info("submission rejected",
		"event", "submission_rejected",
		"module", "competition/review-engine",
		"layer", "application",
		"submission_id", submission.SubmissionID,
		"team", submission.Team,
		"reviewed_by", submission.ReviewedBy,
	)
	return submission, nil
}
