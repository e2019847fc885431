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

type CreateSubmissionCommand struct {
	ActorID       string
	Team          string // explicit team, admin submissions only
	MemberText    string
	MessageURL    string
	AttachmentRef string
	OnBehalfOf    bool
}

type CreateSubmissionUseCase struct {
	Repository ports.Repository
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func (uc CreateSubmissionUseCase) Execute(ctx context.Context, cmd CreateSubmissionCommand) (entities.Submission, error) {
	logger := application.ResolveLogger(uc.Logger)
	if strings.TrimSpace(cmd.ActorID) == "" {
		return entities.Submission{}, domainerrors.ErrInvalidInput
	}
	if strings.TrimSpace(cmd.AttachmentRef) == "" {
		return entities.Submission{}, domainerrors.ErrMissingAttachment
	}

	team, err := uc.resolveTeam(ctx, cmd)
	if err != nil {
		return entities.Submission{}, err
	}

	submissionID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return entities.Submission{}, err
	}
	now := uc.Clock.Now().UTC()
	memberText := strings.TrimSpace(cmd.MemberText)
	if memberText == "" {
		memberText = "_No description_"
	}
	submission := entities.Submission{
		SubmissionID: submissionID,
		CreatedAt:    now,
		SlackUserID:  strings.TrimSpace(cmd.ActorID),
		Team:         team,
		MemberText:   memberText,
		MessageURL:   strings.TrimSpace(cmd.MessageURL),
		PhotoURL:     strings.TrimSpace(cmd.AttachmentRef),
		Status:       entities.SubmissionStatusPending,
	}
	if !submission.ValidateCreate() {
		return entities.Submission{}, domainerrors.ErrInvalidInput
	}
	if err := uc.Repository.CreateSubmission(ctx, submission); err != nil {
		return entities.Submission{}, err
	}

	logger.Info("submission created",
		"event", "submission_created",
		"module", "competition/review-engine",
		"layer", "application",
		"submission_id", submission.SubmissionID,
		"team", submission.Team,
		"on_behalf_of", cmd.OnBehalfOf,
	)
	return submission, nil
}

// Admin submissions carry an explicit team; member submissions derive the
// team from the roster.
func (uc CreateSubmissionUseCase) resolveTeam(ctx context.Context, cmd CreateSubmissionCommand) (string, error) {
	if cmd.OnBehalfOf {
		members, err := uc.Repository.ListMembers(ctx)
		if err != nil {
			return "", err
		}
		team := ResolveTeam(cmd.Team, members)
		if team == "" {
			return "", domainerrors.ErrUnknownTeam
		}
		return team, nil
	}

	member, err := uc.Repository.GetMember(ctx, strings.TrimSpace(cmd.ActorID))
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(member.Team) == "" {
		return "", domainerrors.ErrMemberNotOnTeam
	}
	return member.Team, nil
}

// ResolveTeam finds the canonical roster team matching input
// case-insensitively, or "" when no roster team matches.
func ResolveTeam(input string, members []entities.Member) string {
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
