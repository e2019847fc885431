package queries

import (
	"context"
	"log/slog"
	"math/rand"
	"strings"

	"codecomp/contexts/competition/review-engine/domain/entities"
	domainerrors "codecomp/contexts/competition/review-engine/domain/errors"
	"codecomp/contexts/competition/review-engine/ports"
)

type RandomChallengeUseCase struct {
	Repository ports.Repository
	Rand       ports.RandomSource
	Logger     *slog.Logger
}

// RandomUnclaimed picks uniformly among challenges no team has an
// approved submission for. Eligibility comes from Submissions, not the
// Ledger, so a reset makes everything unclaimed again. An empty eligible
// set is an expected terminal condition, not a fault.
func (uc RandomChallengeUseCase) RandomUnclaimed(ctx context.Context) (entities.Challenge, bool, error) {
	return uc.pick(ctx, ports.SubmissionFilter{Status: entities.SubmissionStatusApproved})
}

// RandomForTeam picks uniformly among challenges the team has not
// completed, regardless of other teams' progress.
func (uc RandomChallengeUseCase) RandomForTeam(ctx context.Context, team string) (entities.Challenge, bool, error) {
	members, err := uc.Repository.ListMembers(ctx)
	if err != nil {
		return entities.Challenge{}, false, err
	}
	canonical := resolveRosterTeam(team, members)
	if canonical == "" {
		return entities.Challenge{}, false, domainerrors.ErrUnknownTeam
	}
	return uc.pick(ctx, ports.SubmissionFilter{
		Status: entities.SubmissionStatusApproved,
		Team:   canonical,
	})
}

// RandomForMember resolves the actor's roster team and picks for it.
func (uc RandomChallengeUseCase) RandomForMember(ctx context.Context, actorID string) (entities.Challenge, bool, error) {
	member, err := uc.Repository.GetMember(ctx, strings.TrimSpace(actorID))
	if err != nil {
		return entities.Challenge{}, false, err
	}
	if strings.TrimSpace(member.Team) == "" {
		return entities.Challenge{}, false, domainerrors.ErrMemberNotOnTeam
	}
	return uc.pick(ctx, ports.SubmissionFilter{
		Status: entities.SubmissionStatusApproved,
		Team:   member.Team,
	})
}

func (uc RandomChallengeUseCase) pick(ctx context.Context, filter ports.SubmissionFilter) (entities.Challenge, bool, error) {
	catalog, err := uc.Repository.ListChallenges(ctx)
	if err != nil {
		return entities.Challenge{}, false, err
	}
	approved, err := uc.Repository.ListSubmissions(ctx, filter)
	if err != nil {
		return entities.Challenge{}, false, err
	}

	claimed := make(map[string]bool, len(approved))
	for _, submission := range approved {
		key := strings.TrimSpace(submission.ChallengeKey)
		if key != "" {
			claimed[key] = true
		}
	}
	var eligible []entities.Challenge
	for _, challenge := range catalog {
		if !claimed[strings.TrimSpace(challenge.ChallengeKey)] {
			eligible = append(eligible, challenge)
		}
	}
	if len(eligible) == 0 {
		return entities.Challenge{}, false, nil
	}
	return eligible[uc.intn(len(eligible))], true, nil
}

func (uc RandomChallengeUseCase) intn(n int) int {
	if uc.Rand != nil {
		return uc.Rand.Intn(n)
	}
	return rand.Intn(n)
}
