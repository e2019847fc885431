package ports

import (
	"context"
	"time"

	"codecomp/contexts/competition/review-engine/domain/entities"
)

type SubmissionFilter struct {
	Status       entities.SubmissionStatus
	Team         string
	ChallengeKey string
}

// Repository is the abstract row store over the five logical tables.
// The engine is the sole writer of submissions, ledger rows and the queue
// pointer; members and challenges are administered externally.
type Repository interface {
	ListMembers(ctx context.Context) ([]entities.Member, error)
	GetMember(ctx context.Context, slackUserID string) (entities.Member, error)

	ListChallenges(ctx context.Context) ([]entities.Challenge, error)
	GetChallenge(ctx context.Context, challengeKey string) (entities.Challenge, error)
	CreateChallenge(ctx context.Context, challenge entities.Challenge) error

	CreateSubmission(ctx context.Context, submission entities.Submission) error
	GetSubmission(ctx context.Context, submissionID string) (entities.Submission, error)
	ListSubmissions(ctx context.Context, filter SubmissionFilter) ([]entities.Submission, error)
	// DecideSubmission applies a terminal transition and, when entry is
	// non-nil, appends the matching ledger row in the same logical write.
	// Returns ErrNotPending when the stored row is no longer pending.
	DecideSubmission(ctx context.Context, submission entities.Submission, entry *entities.LedgerEntry) error

	ListLedger(ctx context.Context) ([]entities.LedgerEntry, error)

	GetQueuePointer(ctx context.Context) (entities.QueuePointer, bool, error)
	SetQueuePointer(ctx context.Context, pointer entities.QueuePointer) error

	// ResetSemester clears submissions, ledger and the queue pointer in
	// one batch. Members and challenges survive resets.
	ResetSemester(ctx context.Context) error
}

// QueueMessenger posts or refreshes the single review-queue message.
// Implementations own transport; the engine only tracks the pointer.
type QueueMessenger interface {
	PostQueueMessage(ctx context.Context, pendingCount int) (entities.QueuePointer, error)
	UpdateQueueMessage(ctx context.Context, pointer entities.QueuePointer, pendingCount int) error
}

// Sequencer funnels mutating operations through a single writer lane so
// cross-table updates never interleave.
type Sequencer interface {
	Do(ctx context.Context, fn func(context.Context) error) error
}

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// RandomSource exists so randomizer selection is deterministic in tests.
type RandomSource interface {
	Intn(n int) int
}
