package commands

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	application "codecomp/contexts/competition/review-engine/application"
	"codecomp/contexts/competition/review-engine/domain/entities"
	domainerrors "codecomp/contexts/competition/review-engine/domain/errors"
	"codecomp/contexts/competition/review-engine/ports"
)

const surprisePrefix = "SUP-"

type CreateSurpriseChallengeCommand struct {
	ChallengeName string
	Points        int
}

type CreateSurpriseChallengeUseCase struct {
	Repository ports.Repository
	Logger     *slog.Logger
}

// Execute inserts an ad hoc catalog entry with a generated SUP-NNN key,
// numbered after the highest existing surprise challenge.
func (uc CreateSurpriseChallengeUseCase) Execute(ctx context.Context, cmd CreateSurpriseChallengeCommand) (entities.Challenge, error) {
	logger := application.ResolveLogger(uc.Logger)
	name := strings.TrimSpace(cmd.ChallengeName)
	if name == "" {
		return entities.Challenge{}, domainerrors.ErrInvalidInput
	}

	catalog, err := uc.Repository.ListChallenges(ctx)
	if err != nil {
		return entities.Challenge{}, err
	}
	challenge := entities.Challenge{
		ChallengeKey:  nextSurpriseKey(catalog),
		ChallengeName: name,
		Points:        cmd.Points,
		MinNum:        1,
	}
	if err := uc.Repository.CreateChallenge(ctx, challenge); err != nil {
		return entities.Challenge{}, err
	}

	logger.Info("surprise challenge created",
		"event", "surprise_challenge_created",
		"module", "competition/review-engine",
		"layer", "application",
		"challenge_key", challenge.ChallengeKey,
		"points", challenge.Points,
	)
	return challenge, nil
}

func nextSurpriseKey(catalog []entities.Challenge) string {
	maxNum := 0
	for _, challenge := range catalog {
		key := strings.ToUpper(strings.TrimSpace(challenge.ChallengeKey))
		if !strings.HasPrefix(key, surprisePrefix) {
			continue
		}
		num, err := strconv.Atoi(strings.TrimPrefix(key, surprisePrefix))
		if err != nil {
			continue
		}
		if num > maxNum {
			maxNum = num
		}
	}
	return fmt.Sprintf("%s%03d", surprisePrefix, maxNum+1)
}
