package queries

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"codecomp/contexts/competition/review-engine/domain/entities"
	domainerrors "codecomp/contexts/competition/review-engine/domain/errors"
	"codecomp/contexts/competition/review-engine/ports"
)

type ChallengesLeftQuery struct {
	ActorID      string
	Team         string // optional; falls back to the actor's roster team
	PointsFilter *int
}

type ChallengesLeftUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

// Execute returns catalog challenges the team has no approved submission
// for. Negative-point penalty challenges stay hidden unless the points
// filter names them explicitly.
func (uc ChallengesLeftUseCase) Execute(ctx context.Context, query ChallengesLeftQuery) (string, []entities.Challenge, error) {
	team, err := uc.resolveTeam(ctx, query)
	if err != nil {
		return "", nil, err
	}

	catalog, err := uc.Repository.ListChallenges(ctx)
	if err != nil {
		return "", nil, err
	}
	approved, err := uc.Repository.ListSubmissions(ctx, ports.SubmissionFilter{
		Status: entities.SubmissionStatusApproved,
		Team:   team,
	})
	if err != nil {
		return "", nil, err
	}

	claimed := make(map[string]bool, len(approved))
	for _, submission := range approved {
		key := strings.TrimSpace(submission.ChallengeKey)
		if key != "" {
			claimed[key] = true
		}
	}

	var left []entities.Challenge
	for _, challenge := range catalog {
		if claimed[strings.TrimSpace(challenge.ChallengeKey)] {
			continue
		}
		if query.PointsFilter != nil {
			if challenge.Points != *query.PointsFilter {
				continue
			}
		} else if challenge.Points < 0 {
			continue
		}
		left = append(left, challenge)
	}
	sort.Slice(left, func(i, j int) bool {
		return left[i].ChallengeKey < left[j].ChallengeKey
	})
	return team, left, nil
}

func (uc ChallengesLeftUseCase) resolveTeam(ctx context.Context, query ChallengesLeftQuery) (string, error) {
	if strings.TrimSpace(query.Team) != "" {
		members, err := uc.Repository.ListMembers(ctx)
		if err != nil {
			return "", err
		}
		team := resolveRosterTeam(query.Team, members)
		if team == "" {
			return "", domainerrors.ErrUnknownTeam
		}
		return team, nil
	}

	member, err := uc.Repository.GetMember(ctx, strings.TrimSpace(query.ActorID))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(member.Team) == "" {
		return "", domainerrors.ErrMemberNotOnTeam
	}
	return member.Team, nil
}

func resolveRosterTeam(input string, members []entities.Member) string {
	want := strings.ToLower(strings.TrimSpace(input))
	if want == "" {
		return ""
	}
	for _, member := range members {
		if strings.ToLower(strings.TrimSpace(member.Team)) == want {
			return strings.TrimSpace(member.Team)
		}
	}
	return ""
}
