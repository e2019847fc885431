package entities

import (
	"strings"
	"time"
)

type SubmissionStatus string

const (
	SubmissionStatusPending  SubmissionStatus = "pending"
	SubmissionStatusApproved SubmissionStatus = "approved"
	SubmissionStatusRejected SubmissionStatus = "rejected"
)

// Terminal reports whether no further transition is allowed.
func (s SubmissionStatus) Terminal() bool {
	return s == SubmissionStatusApproved || s == SubmissionStatusRejected
}

// Member is a roster fact owned by an external sync process; the engine
// only reads it.
type Member struct {
	SlackUserID string
	Name        string
	Team        string
}

type Challenge struct {
	ChallengeKey  string
	ChallengeName string
	Points        int
	MinNum        int
}

func (c Challenge) ValidateCreate() bool {
	return strings.TrimSpace(c.ChallengeKey) != "" &&
		strings.TrimSpace(c.ChallengeName) != ""
}

type Submission struct {
	SubmissionID string
	CreatedAt    time.Time
	SlackUserID  string
	Team         string
	MemberText   string
	MessageURL   string
	PhotoURL     string
	Status       SubmissionStatus
	ChallengeKey string
	Points       int
	ReviewedBy   string
}

func (s Submission) ValidateCreate() bool {
	return strings.TrimSpace(s.SlackUserID) != "" &&
		strings.TrimSpace(s.Team) != "" &&
		strings.TrimSpace(s.PhotoURL) != ""
}

// LedgerEntry is append-only; standings are always recomputed as
// sum(points_delta) per team, never kept as a running total.
type LedgerEntry struct {
	Timestamp    time.Time
	Team         string
	PointsDelta  int
	ChallengeKey string
	SubmissionID string
	ReviewedBy   string
}

// QueuePointer identifies the single live review-queue message. At most
// one row exists at any time; writing a new one retires the old.
type QueuePointer struct {
	MessageTS string
	ChannelID string
}

func (q QueuePointer) Empty() bool {
	return strings.TrimSpace(q.MessageTS) == "" || strings.TrimSpace(q.ChannelID) == ""
}
