package dispatcher

import (
	"context"
	"log/slog"

	"codecomp/contexts/competition/review-engine/application/commands"
	"codecomp/contexts/competition/review-engine/application/queries"
	"codecomp/contexts/competition/review-engine/domain/entities"
	domainerrors "codecomp/contexts/competition/review-engine/domain/errors"
	"codecomp/contexts/competition/review-engine/ports"
)

type Verb string

const (
	VerbSubmit          Verb = "submit"
	VerbAdminSubmit     Verb = "admin_submit"
	VerbStandings       Verb = "standings"
	VerbChallengesLeft  Verb = "challenges_left"
	VerbRandomChallenge Verb = "random_challenge"
	VerbQueue           Verb = "queue"
	VerbResetSemester   Verb = "reset_semester"
	VerbSurprise        Verb = "surprise"
	VerbClaimReview     Verb = "claim_review"
	VerbApprove         Verb = "approve"
	VerbReject          Verb = "reject"
)

type ChannelKind string

const (
	ChannelChallenge ChannelKind = "challenge"
	ChannelReview    ChannelKind = "review"
	ChannelOther     ChannelKind = "other"
)

type RandomScope string

const (
	RandomScopeUnclaimed RandomScope = "unclaimed"
	RandomScopeTeam      RandomScope = "team"
)

// Command is the pre-parsed inbound intent. Raw-text normalization and
// alias matching happen upstream in transport.
type Command struct {
	Verb    Verb
	ActorID string
	IsAdmin bool
	Channel ChannelKind

	Team           string
	MemberText     string
	MessageURL     string
	AttachmentRef  string
	PointsFilter   *int
	RandomScope    RandomScope
	SurprisePoints int
	ChallengeName  string
	SubmissionID   string
	ChallengeKey   string
	PointsOverride *int
	Reason         string
}

type ResultKind string

const (
	ResultSubmission     ResultKind = "submission"
	ResultStandings      ResultKind = "standings"
	ResultChallengesLeft ResultKind = "challenges_left"
	ResultChallenge      ResultKind = "challenge"
	ResultQueuePointer   ResultKind = "queue_pointer"
	ResultReset          ResultKind = "reset"
	// ResultEmpty is a soft outcome: empty queue or no eligible
	// challenge. Not an error.
	ResultEmpty ResultKind = "empty"
)

type Result struct {
	Kind           ResultKind
	Submission     *entities.Submission
	Standings      []queries.TeamStanding
	Team           string
	ChallengesLeft []entities.Challenge
	Challenge      *entities.Challenge
	QueuePointer   *entities.QueuePointer
	QueueCreated   bool
	PendingCount   int
}

type rule struct {
	adminOnly bool
	channels  []ChannelKind // empty means any channel
}

// Authorization and channel restrictions live in one declarative table
// instead of being scattered across handlers.
var rules = map[Verb]rule{
	VerbSubmit:          {channels: []ChannelKind{ChannelChallenge}},
	VerbAdminSubmit:     {adminOnly: true},
	VerbStandings:       {channels: []ChannelKind{ChannelChallenge, ChannelReview}},
	VerbChallengesLeft:  {channels: []ChannelKind{ChannelChallenge, ChannelReview}},
	VerbRandomChallenge: {channels: []ChannelKind{ChannelChallenge, ChannelReview}},
	VerbQueue:           {adminOnly: true, channels: []ChannelKind{ChannelReview}},
	VerbResetSemester:   {adminOnly: true, channels: []ChannelKind{ChannelReview}},
	VerbSurprise:        {adminOnly: true, channels: []ChannelKind{ChannelReview}},
	VerbClaimReview:     {adminOnly: true},
	VerbApprove:         {adminOnly: true},
	VerbReject:          {adminOnly: true},
}

// Dispatcher routes commands to use cases. It performs no I/O of its
// own: authorization and channel checks are pure, then the matched use
// case runs — mutations inside the single-writer lane, reads directly.
type Dispatcher struct {
	CreateSubmission commands.CreateSubmissionUseCase
	Review           commands.ReviewSubmissionUseCase
	Claim            commands.ClaimReviewUseCase
	Surprise         commands.CreateSurpriseChallengeUseCase
	Reset            commands.ResetSemesterUseCase
	Queue            commands.QueueMessageUseCase
	Standings        queries.StandingsUseCase
	ChallengesLeft   queries.ChallengesLeftUseCase
	Random           queries.RandomChallengeUseCase
	Submissions      queries.QueryUseCase
	Sequencer        ports.Sequencer
	Logger           *slog.Logger
}

func (d Dispatcher) Dispatch(ctx context.Context, cmd Command) (Result, error) {
	r, known := rules[cmd.Verb]
	if !known {
		return Result{}, domainerrors.ErrInvalidInput
	}
	// Admin check first: Unauthorized wins over WrongChannel regardless
	// of where the command was issued.
	if r.adminOnly && !cmd.IsAdmin {
		return Result{}, domainerrors.ErrUnauthorized
	}
	if len(r.channels) > 0 && !channelAllowed(cmd.Channel, r.channels) {
		return Result{}, domainerrors.ErrWrongChannel
	}

	switch cmd.Verb {
	case VerbSubmit, VerbAdminSubmit:
		return d.dispatchCreate(ctx, cmd)
	case VerbStandings:
		standings, err := d.Standings.Standings(ctx)
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: ResultStandings, Standings: standings}, nil
	case VerbChallengesLeft:
		team, left, err := d.ChallengesLeft.Execute(ctx, queries.ChallengesLeftQuery{
			ActorID:      cmd.ActorID,
			Team:         cmd.Team,
			PointsFilter: cmd.PointsFilter,
		})
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: ResultChallengesLeft, Team: team, ChallengesLeft: left}, nil
	case VerbRandomChallenge:
		return d.dispatchRandom(ctx, cmd)
	case VerbQueue:
		return d.dispatchQueue(ctx)
	case VerbResetSemester:
		err := d.serialize(ctx, func(ctx context.Context) error {
			return d.Reset.Execute(ctx)
		})
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: ResultReset}, nil
	case VerbSurprise:
		var challenge entities.Challenge
		err := d.serialize(ctx, func(ctx context.Context) error {
			var innerErr error
			challenge, innerErr = d.Surprise.Execute(ctx, commands.CreateSurpriseChallengeCommand{
				ChallengeName: cmd.ChallengeName,
				Points:        cmd.SurprisePoints,
			})
			return innerErr
		})
		if err != nil {
			return Result{}, err
		}
		return Result{Kind: ResultChallenge, Challenge: &challenge}, nil
	case VerbClaimReview:
		return d.dispatchClaim(ctx, cmd)
	case VerbApprove:
		return d.dispatchApprove(ctx, cmd)
	case VerbReject:
		return d.dispatchReject(ctx, cmd)
	}
	return Result{}, domainerrors.ErrInvalidInput
}

func (d Dispatcher) dispatchCreate(ctx context.Context, cmd Command) (Result, error) {
	var submission entities.Submission
	err := d.serialize(ctx, func(ctx context.Context) error {
		var innerErr error
		submission, innerErr = d.CreateSubmission.Execute(ctx, commands.CreateSubmissionCommand{
			ActorID:       cmd.ActorID,
			Team:          cmd.Team,
			MemberText:    cmd.MemberText,
			MessageURL:    cmd.MessageURL,
			AttachmentRef: cmd.AttachmentRef,
			OnBehalfOf:    cmd.Verb == VerbAdminSubmit,
		})
		if innerErr != nil {
			return innerErr
		}
		// Best effort: the queue message shows a stale count until the
		// next refresh, never a missing submission.
		_ = d.Queue.Refresh(ctx)
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return Result{Kind: ResultSubmission, Submission: &submission}, nil
}

func (d Dispatcher) dispatchRandom(ctx context.Context, cmd Command) (Result, error) {
	var (
		challenge entities.Challenge
		found     bool
		err       error
	)
	switch {
	case cmd.RandomScope == RandomScopeTeam && cmd.Team != "":
		challenge, found, err = d.Random.RandomForTeam(ctx, cmd.Team)
	case cmd.RandomScope == RandomScopeTeam:
		challenge, found, err = d.Random.RandomForMember(ctx, cmd.ActorID)
	default:
		challenge, found, err = d.Random.RandomUnclaimed(ctx)
	}
	if err != nil {
		return Result{}, err
	}
	if !found {
		return Result{Kind: ResultEmpty}, nil
	}
	return Result{Kind: ResultChallenge, Challenge: &challenge}, nil
}

func (d Dispatcher) dispatchQueue(ctx context.Context) (Result, error) {
	var (
		pointer entities.QueuePointer
		created bool
	)
	err := d.serialize(ctx, func(ctx context.Context) error {
		var innerErr error
		pointer, created, innerErr = d.Queue.Ensure(ctx)
		return innerErr
	})
	if err != nil {
		return Result{}, err
	}
	count, err := d.Submissions.PendingCount(ctx)
	if err != nil {
		return Result{}, err
	}
	return Result{Kind: ResultQueuePointer, QueuePointer: &pointer, QueueCreated: created, PendingCount: count}, nil
}

func (d Dispatcher) dispatchClaim(ctx context.Context, cmd Command) (Result, error) {
	var (
		submission entities.Submission
		found      bool
	)
	err := d.serialize(ctx, func(ctx context.Context) error {
		var innerErr error
		submission, found, innerErr = d.Claim.Execute(ctx, commands.ClaimReviewCommand{
			Reviewer: cmd.ActorID,
		})
		return innerErr
	})
	if err != nil {
		return Result{}, err
	}
	if !found {
		return Result{Kind: ResultEmpty}, nil
	}
	return Result{Kind: ResultSubmission, Submission: &submission}, nil
}

// dispatchApprove covers "decide submission" and "advance queue" in one
// serialized section, so a concurrent claim can never observe the old
// pending row after the decision landed.
func (d Dispatcher) dispatchApprove(ctx context.Context, cmd Command) (Result, error) {
	var submission entities.Submission
	err := d.serialize(ctx, func(ctx context.Context) error {
		var innerErr error
		submission, innerErr = d.Review.Approve(ctx, commands.ApproveSubmissionCommand{
			SubmissionID:   cmd.SubmissionID,
			Reviewer:       cmd.ActorID,
			ChallengeKey:   cmd.ChallengeKey,
			PointsOverride: cmd.PointsOverride,
		})
		if innerErr != nil {
			return innerErr
		}
		_ = d.Queue.Refresh(ctx)
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return Result{Kind: ResultSubmission, Submission: &submission}, nil
}

func (d Dispatcher) dispatchReject(ctx context.Context, cmd Command) (Result, error) {
	var submission entities.Submission
	err := d.serialize(ctx, func(ctx context.Context) error {
		var innerErr error
		submission, innerErr = d.Review.Reject(ctx, commands.RejectSubmissionCommand{
			SubmissionID: cmd.SubmissionID,
			Reviewer:     cmd.ActorID,
			Reason:       cmd.Reason,
		})
		if innerErr != nil {
			return innerErr
		}
		_ = d.Queue.Refresh(ctx)
		return nil
	})
	if err != nil {
		return Result{}, err
	}
	return Result{Kind: ResultSubmission, Submission: &submission}, nil
}

func (d Dispatcher) serialize(ctx context.Context, fn func(context.Context) error) error {
	if d.Sequencer == nil {
		return fn(ctx)
	}
	return d.Sequencer.Do(ctx, fn)
}

func channelAllowed(channel ChannelKind, allowed []ChannelKind) bool {
	for _, kind := range allowed {
		if channel == kind {
			return true
		}
	}
	return false
}
