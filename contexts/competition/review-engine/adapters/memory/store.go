package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"codecomp/contexts/competition/review-engine/domain/entities"
	domainerrors "codecomp/contexts/competition/review-engine/domain/errors"
	"codecomp/contexts/competition/review-engine/ports"

	"github.com/google/uuid"
)

// Store is the in-memory row store used by tests and local runs. One
// mutex over all five tables makes every batch naturally atomic.
type Store struct {
	mu sync.RWMutex

	members     []entities.Member
	challenges  map[string]entities.Challenge
	submissions map[string]entities.Submission
	ledger      []entities.LedgerEntry
	queue       *entities.QueuePointer
}

type Seed struct {
	Members    []entities.Member
	Challenges []entities.Challenge
}

func NewStore(seed Seed) *Store {
	challenges := make(map[string]entities.Challenge, len(seed.Challenges))
	for _, challenge := range seed.Challenges {
		challenges[challenge.ChallengeKey] = challenge
	}
	return &Store{
		members:     append([]entities.Member(nil), seed.Members...),
		challenges:  challenges,
		submissions: make(map[string]entities.Submission),
	}
}

func (s *Store) ListMembers(_ context.Context) ([]entities.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Member(nil), s.members...), nil
}

func (s *Store) GetMember(_ context.Context, slackUserID string) (entities.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	want := strings.TrimSpace(slackUserID)
	for _, member := range s.members {
		if member.SlackUserID == want {
			return member, nil
		}
	}
	return entities.Member{}, domainerrors.ErrMemberNotOnTeam
}

func (s *Store) ListChallenges(_ context.Context) ([]entities.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Challenge, 0, len(s.challenges))
	for _, challenge := range s.challenges {
		items = append(items, challenge)
	}
	return items, nil
}

func (s *Store) GetChallenge(_ context.Context, challengeKey string) (entities.Challenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	challenge, exists := s.challenges[strings.TrimSpace(challengeKey)]
	if !exists {
		return entities.Challenge{}, domainerrors.ErrUnknownChallenge
	}
	return challenge, nil
}

func (s *Store) CreateChallenge(_ context.Context, challenge entities.Challenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !challenge.ValidateCreate() {
		return domainerrors.ErrInvalidInput
	}
	s.challenges[challenge.ChallengeKey] = challenge
	return nil
}

func (s *Store) CreateSubmission(_ context.Context, submission entities.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.submissions[submission.SubmissionID]; exists {
		return domainerrors.ErrInvalidInput
	}
	s.submissions[submission.SubmissionID] = submission
	return nil
}

func (s *Store) GetSubmission(_ context.Context, submissionID string) (entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.submissions[strings.TrimSpace(submissionID)]
	if !exists {
		return entities.Submission{}, domainerrors.ErrSubmissionNotFound
	}
	return item, nil
}

func (s *Store) ListSubmissions(_ context.Context, filter ports.SubmissionFilter) ([]entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Submission, 0, len(s.submissions))
	for _, item := range s.submissions {
		if filter.Status != "" && item.Status != filter.Status {
			continue
		}
		if strings.TrimSpace(filter.Team) != "" && item.Team != strings.TrimSpace(filter.Team) {
			continue
		}
		if strings.TrimSpace(filter.ChallengeKey) != "" && item.ChallengeKey != strings.TrimSpace(filter.ChallengeKey) {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

func (s *Store) DecideSubmission(_ context.Context, submission entities.Submission, entry *entities.LedgerEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.submissions[submission.SubmissionID]
	if !exists {
		return domainerrors.ErrSubmissionNotFound
	}
	if current.Status != entities.SubmissionStatusPending {
		return domainerrors.ErrNotPending
	}
	s.submissions[submission.SubmissionID] = submission
	if entry != nil {
		s.ledger = append(s.ledger, *entry)
	}
	return nil
}

func (s *Store) ListLedger(_ context.Context) ([]entities.LedgerEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.LedgerEntry(nil), s.ledger...), nil
}

func (s *Store) GetQueuePointer(_ context.Context) (entities.QueuePointer, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.queue == nil {
		return entities.QueuePointer{}, false, nil
	}
	return *s.queue, true, nil
}

func (s *Store) SetQueuePointer(_ context.Context, pointer entities.QueuePointer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queue = &pointer
	return nil
}

func (s *Store) ResetSemester(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.submissions = make(map[string]entities.Submission)
	s.ledger = nil
	s.queue = nil
	return nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
