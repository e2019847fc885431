package reviewengine

import (
	"log/slog"
	"time"

	httpadapter "codecomp/contexts/competition/review-engine/adapters/http"
	"codecomp/contexts/competition/review-engine/adapters/memory"
	application "codecomp/contexts/competition/review-engine/application"
	"codecomp/contexts/competition/review-engine/application/commands"
	"codecomp/contexts/competition/review-engine/application/dispatcher"
	"codecomp/contexts/competition/review-engine/application/queries"
	"codecomp/contexts/competition/review-engine/application/workers"
	"codecomp/contexts/competition/review-engine/ports"
)

type Module struct {
	Handler    httpadapter.Handler
	Dispatcher dispatcher.Dispatcher
	Expirer    workers.ClaimExpirer
	Claims     *application.ClaimRegistry

	// Store and Messenger are set only by NewInMemoryModule so tests
	// can inspect state directly.
	Store     *memory.Store
	Messenger *memory.Messenger
}

type Dependencies struct {
	Repository ports.Repository
	Messenger  ports.QueueMessenger
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Sequencer  ports.Sequencer
	Rand       ports.RandomSource
	ClaimTTL   time.Duration
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	claims := application.NewClaimRegistry(deps.ClaimTTL)

	createSubmission := commands.CreateSubmissionUseCase{
		Repository: deps.Repository,
		Clock:      deps.Clock,
		IDGen:      deps.IDGen,
		Logger:     deps.Logger,
	}
	reviewSubmission := commands.ReviewSubmissionUseCase{
		Repository: deps.Repository,
		Claims:     claims,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	claimReview := commands.ClaimReviewUseCase{
		Repository: deps.Repository,
		Claims:     claims,
		Clock:      deps.Clock,
		Logger:     deps.Logger,
	}
	surprise := commands.CreateSurpriseChallengeUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}
	reset := commands.ResetSemesterUseCase{
		Repository: deps.Repository,
		Claims:     claims,
		Logger:     deps.Logger,
	}
	queue := commands.QueueMessageUseCase{
		Repository: deps.Repository,
		Messenger:  deps.Messenger,
		Logger:     deps.Logger,
	}
	standings := queries.StandingsUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}
	challengesLeft := queries.ChallengesLeftUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}
	random := queries.RandomChallengeUseCase{
		Repository: deps.Repository,
		Rand:       deps.Rand,
		Logger:     deps.Logger,
	}
	queryUseCase := queries.QueryUseCase{
		Repository: deps.Repository,
		Logger:     deps.Logger,
	}

	d := dispatcher.Dispatcher{
		CreateSubmission: createSubmission,
		Review:           reviewSubmission,
		Claim:            claimReview,
		Surprise:         surprise,
		Reset:            reset,
		Queue:            queue,
		Standings:        standings,
		ChallengesLeft:   challengesLeft,
		Random:           random,
		Submissions:      queryUseCase,
		Sequencer:        deps.Sequencer,
		Logger:           deps.Logger,
	}

	return Module{
		Handler: httpadapter.Handler{
			Dispatcher: d,
			Queries:    queryUseCase,
			Logger:     deps.Logger,
		},
		Dispatcher: d,
		Expirer: workers.ClaimExpirer{
			Claims: claims,
			Clock:  deps.Clock,
			Logger: deps.Logger,
		},
		Claims: claims,
	}
}

func NewInMemoryModule(seed memory.Seed, logger *slog.Logger) Module {
	store := memory.NewStore(seed)
	messenger := memory.NewMessenger("")
	module := NewModule(Dependencies{
		Repository: store,
		Messenger:  messenger,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	module.Messenger = messenger
	return module
}
