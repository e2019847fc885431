package queries

import (
	"context"
	"log/slog"
	"strings"

	"codecomp/contexts/competition/review-engine/domain/entities"
	"codecomp/contexts/competition/review-engine/ports"
)

type ListSubmissionsQuery struct {
	Status       string
	Team         string
	ChallengeKey string
}

type QueryUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

func (uc QueryUseCase) GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error) {
	return uc.Repository.GetSubmission(ctx, strings.TrimSpace(submissionID))
}

func (uc QueryUseCase) ListSubmissions(ctx context.Context, query ListSubmissionsQuery) ([]entities.Submission, error) {
	filter := ports.SubmissionFilter{
		Team:         strings.TrimSpace(query.Team),
		ChallengeKey: strings.TrimSpace(query.ChallengeKey),
	}
	if strings.TrimSpace(query.Status) != "" {
		filter.Status = entities.SubmissionStatus(strings.ToLower(strings.TrimSpace(query.Status)))
	}
	return uc.Repository.ListSubmissions(ctx, filter)
}

// NextPending returns the oldest pending submission in review order.
func (uc QueryUseCase) NextPending(ctx context.Context) (entities.Submission, bool, error) {
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
	return pending[0], true, nil
}

func (uc QueryUseCase) PendingCount(ctx context.Context) (int, error) {
	pending, err := uc.Repository.ListSubmissions(ctx, ports.SubmissionFilter{
		Status: entities.SubmissionStatusPending,
	})
	if err != nil {
		return 0, err
	}
	return len(pending), nil
}
