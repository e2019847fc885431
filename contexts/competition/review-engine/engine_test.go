package reviewengine_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	reviewengine "codecomp/contexts/competition/review-engine"
	"codecomp/contexts/competition/review-engine/adapters/memory"
	"codecomp/contexts/competition/review-engine/application/dispatcher"
	"codecomp/contexts/competition/review-engine/application/workers"
	"codecomp/contexts/competition/review-engine/domain/entities"
	domainerrors "codecomp/contexts/competition/review-engine/domain/errors"
	"codecomp/contexts/competition/review-engine/ports"
)

func newTestModule() reviewengine.Module {
	return reviewengine.NewInMemoryModule(memory.Seed{
		Members: []entities.Member{
			{SlackUserID: "U-RED1", Name: "Rita", Team: "Red"},
			{SlackUserID: "U-RED2", Name: "Ravi", Team: "Red"},
			{SlackUserID: "U-BLUE1", Name: "Bea", Team: "Blue"},
			{SlackUserID: "U-GREEN1", Name: "Gus", Team: "Green"},
			{SlackUserID: "U-ADMIN", Name: "Ada", Team: "admin"},
		},
		Challenges: []entities.Challenge{
			{ChallengeKey: "A", ChallengeName: "Scavenger hunt", Points: 3, MinNum: 1},
			{ChallengeKey: "B", ChallengeName: "Bake off", Points: 5, MinNum: 1},
			{ChallengeKey: "C", ChallengeName: "Curfew violation", Points: -2, MinNum: 1},
		},
	}, nil)
}

func submitAs(t *testing.T, module reviewengine.Module, userID, text string) entities.Submission {
	t.Helper()
	result, err := module.Dispatcher.Dispatch(context.Background(), dispatcher.Command{
		Verb:          dispatcher.VerbSubmit,
		ActorID:       userID,
		Channel:       dispatcher.ChannelChallenge,
		MemberText:    text,
		MessageURL:    "https://slack.com/archives/C-CHAL/p1",
		AttachmentRef: "https://files.slack.com/photo.jpg",
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	return *result.Submission
}

func approveAs(t *testing.T, module reviewengine.Module, reviewer, submissionID, challengeKey string) entities.Submission {
	t.Helper()
	result, err := module.Dispatcher.Dispatch(context.Background(), dispatcher.Command{
		Verb:         dispatcher.VerbApprove,
		ActorID:      reviewer,
		IsAdmin:      true,
		Channel:      dispatcher.ChannelReview,
		SubmissionID: submissionID,
		ChallengeKey: challengeKey,
	})
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	return *result.Submission
}

func TestSubmitThenApproveWritesOneLedgerEntry(t *testing.T) {
	module := newTestModule()
	submission := submitAs(t, module, "U-RED1", "we found all ten items")

	if submission.Status != entities.SubmissionStatusPending {
		t.Fatalf("expected pending status, got %s", submission.Status)
	}
	if submission.Team != "Red" {
		t.Fatalf("expected roster team Red, got %s", submission.Team)
	}

	approved := approveAs(t, module, "U-ADMIN", submission.SubmissionID, "A")
	if approved.Status != entities.SubmissionStatusApproved {
		t.Fatalf("expected approved status, got %s", approved.Status)
	}
	if approved.Points != 3 {
		t.Fatalf("expected catalog points 3, got %d", approved.Points)
	}
	if approved.ReviewedBy != "U-ADMIN" {
		t.Fatalf("expected reviewer recorded, got %q", approved.ReviewedBy)
	}

	entries, err := module.Store.ListLedger(context.Background())
	if err != nil {
		t.Fatalf("list ledger failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly one ledger entry, got %d", len(entries))
	}
	if entries[0].Team != "Red" || entries[0].PointsDelta != 3 || entries[0].SubmissionID != submission.SubmissionID {
		t.Fatalf("unexpected ledger entry: %+v", entries[0])
	}
}

func TestApproveTwiceIsRejectedWithoutSecondLedgerEntry(t *testing.T) {
	module := newTestModule()
	submission := submitAs(t, module, "U-RED1", "done")
	approveAs(t, module, "U-ADMIN", submission.SubmissionID, "A")

	_, err := module.Dispatcher.Dispatch(context.Background(), dispatcher.Command{
		Verb:         dispatcher.VerbApprove,
		ActorID:      "U-ADMIN",
		IsAdmin:      true,
		Channel:      dispatcher.ChannelReview,
		SubmissionID: submission.SubmissionID,
		ChallengeKey: "B",
	})
	if !errors.Is(err, domainerrors.ErrNotPending) {
		t.Fatalf("expected ErrNotPending, got %v", err)
	}

	entries, _ := module.Store.ListLedger(context.Background())
	if len(entries) != 1 {
		t.Fatalf("expected one ledger entry after double approve, got %d", len(entries))
	}
}

func TestRejectLeavesLedgerUntouched(t *testing.T) {
	module := newTestModule()
	submission := submitAs(t, module, "U-RED1", "blurry photo")

	result, err := module.Dispatcher.Dispatch(context.Background(), dispatcher.Command{
		Verb:         dispatcher.VerbReject,
		ActorID:      "U-ADMIN",
		IsAdmin:      true,
		Channel:      dispatcher.ChannelReview,
		SubmissionID: submission.SubmissionID,
		Reason:       "cannot see the items",
	})
	if err != nil {
		t.Fatalf("reject failed: %v", err)
	}
	if result.Submission.Status != entities.SubmissionStatusRejected {
		t.Fatalf("expected rejected status, got %s", result.Submission.Status)
	}

	entries, _ := module.Store.ListLedger(context.Background())
	if len(entries) != 0 {
		t.Fatalf("expected no ledger entries after reject, got %d", len(entries))
	}

	// A rejected submission cannot flip to approved afterwards.
	_, err = module.Dispatcher.Dispatch(context.Background(), dispatcher.Command{
		Verb:         dispatcher.VerbApprove,
		ActorID:      "U-ADMIN",
		IsAdmin:      true,
		Channel:      dispatcher.ChannelReview,
		SubmissionID: submission.SubmissionID,
		ChallengeKey: "A",
	})
	if !errors.Is(err, domainerrors.ErrNotPending) {
		t.Fatalf("expected ErrNotPending after reject, got %v", err)
	}
}

func TestSubmitRequiresAttachment(t *testing.T) {
	module := newTestModule()
	_, err := module.Dispatcher.Dispatch(context.Background(), dispatcher.Command{
		Verb:       dispatcher.VerbSubmit,
		ActorID:    "U-RED1",
		Channel:    dispatcher.ChannelChallenge,
		MemberText: "trust me, we did it",
	})
	if !errors.Is(err, domainerrors.ErrMissingAttachment) {
		t.Fatalf("expected ErrMissingAttachment, got %v", err)
	}
}

func TestSubmitFromUnknownMember(t *testing.T) {
	module := newTestModule()
	_, err := module.Dispatcher.Dispatch(context.Background(), dispatcher.Command{
		Verb:          dispatcher.VerbSubmit,
		ActorID:       "U-STRANGER",
		Channel:       dispatcher.ChannelChallenge,
		AttachmentRef: "https://files.slack.com/photo.jpg",
	})
	if !errors.Is(err, domainerrors.ErrMemberNotOnTeam) {
		t.Fatalf("expected ErrMemberNotOnTeam, got %v", err)
	}
}

func TestAdminSubmitResolvesTeamCaseInsensitively(t *testing.T) {
	module := newTestModule()
	result, err := module.Dispatcher.Dispatch(context.Background(), dispatcher.Command{
		Verb:          dispatcher.VerbAdminSubmit,
		ActorID:       "U-ADMIN",
		IsAdmin:       true,
		Channel:       dispatcher.ChannelReview,
		Team:          "red",
		MemberText:    "submitted over DM",
		AttachmentRef: "https://files.slack.com/photo.jpg",
	})
	if err != nil {
		t.Fatalf("admin submit failed: %v", err)
	}
	if result.Submission.Team != "Red" {
		t.Fatalf("expected canonical roster team Red, got %s", result.Submission.Team)
	}

	_, err = module.Dispatcher.Dispatch(context.Background(), dispatcher.Command{
		Verb:          dispatcher.VerbAdminSubmit,
		ActorID:       "U-ADMIN",
		IsAdmin:       true,
		Channel:       dispatcher.ChannelReview,
		Team:          "Chartreuse",
		AttachmentRef: "https://files.slack.com/photo.jpg",
	})
	if !errors.Is(err, domainerrors.ErrUnknownTeam) {
		t.Fatalf("expected ErrUnknownTeam, got %v", err)
	}
}

func TestChallengesLeftHidesCompletedAndPenalties(t *testing.T) {
	module := newTestModule()
	submission := submitAs(t, module, "U-RED1", "scavenger done")
	approveAs(t, module, "U-ADMIN", submission.SubmissionID, "A")

	result, err := module.Dispatcher.Dispatch(context.Background(), dispatcher.Command{
		Verb:    dispatcher.VerbChallengesLeft,
		ActorID: "U-RED2",
		Channel: dispatcher.ChannelChallenge,
	})
	if err != nil {
		t.Fatalf("challenges left failed: %v", err)
	}
	if result.Team != "Red" {
		t.Fatalf("expected team Red, got %s", result.Team)
	}
	if len(result.ChallengesLeft) != 1 || result.ChallengesLeft[0].ChallengeKey != "B" {
		t.Fatalf("expected only B left for Red, got %+v", result.ChallengesLeft)
	}

	// Another team's progress is independent; penalties stay hidden.
	result, err = module.Dispatcher.Dispatch(context.Background(), dispatcher.Command{
		Verb:    dispatcher.VerbChallengesLeft,
		ActorID: "U-BLUE1",
		Channel: dispatcher.ChannelChallenge,
	})
	if err != nil {
		t.Fatalf("challenges left failed: %v", err)
	}
	if len(result.ChallengesLeft) != 2 {
		t.Fatalf("expected A and B left for Blue, got %+v", result.ChallengesLeft)
	}

	// A points filter names penalty challenges explicitly.
	filter := -2
	result, err = module.Dispatcher.Dispatch(context.Background(), dispatcher.Command{
		Verb:         dispatcher.VerbChallengesLeft,
		ActorID:      "U-RED1",
		Channel:      dispatcher.ChannelChallenge,
		PointsFilter: &filter,
	})
	if err != nil {
		t.Fatalf("challenges left with filter failed: %v", err)
	}
	if len(result.ChallengesLeft) != 1 || result.ChallengesLeft[0].ChallengeKey != "C" {
		t.Fatalf("expected only C with -2 filter, got %+v", result.ChallengesLeft)
	}
}

func TestStandingsRankAllRosterTeamsExceptAdmin(t *testing.T) {
	module := newTestModule()

	red := submitAs(t, module, "U-RED1", "scavenger")
	approveAs(t, module, "U-ADMIN", red.SubmissionID, "A")
	blue := submitAs(t, module, "U-BLUE1", "bake off")
	approveAs(t, module, "U-ADMIN", blue.SubmissionID, "B")

	result, err := module.Dispatcher.Dispatch(context.Background(), dispatcher.Command{
		Verb:    dispatcher.VerbStandings,
		ActorID: "U-RED1",
		Channel: dispatcher.ChannelChallenge,
	})
	if err != nil {
		t.Fatalf("standings failed: %v", err)
	}
	if len(result.Standings) != 3 {
		t.Fatalf("expected 3 ranked teams, got %+v", result.Standings)
	}
	if result.Standings[0].Team != "Blue" || result.Standings[0].TotalPoints != 5 {
		t.Fatalf("expected Blue at 5 first, got %+v", result.Standings[0])
	}
	if result.Standings[1].Team != "Red" || result.Standings[1].TotalPoints != 3 {
		t.Fatalf("expected Red at 3 second, got %+v", result.Standings[1])
	}
	if result.Standings[2].Team != "Green" || result.Standings[2].TotalPoints != 0 {
		t.Fatalf("expected Green at 0 last, got %+v", result.Standings[2])
	}
	for _, standing := range result.Standings {
		if standing.Team == "admin" {
			t.Fatalf("bookkeeping team must not rank: %+v", result.Standings)
		}
	}
}

func TestStandingsBreakTiesByTeamName(t *testing.T) {
	module := newTestModule()

	red := submitAs(t, module, "U-RED1", "scavenger")
	approveAs(t, module, "U-ADMIN", red.SubmissionID, "A")
	blue := submitAs(t, module, "U-BLUE1", "scavenger too")
	approveAs(t, module, "U-ADMIN", blue.SubmissionID, "A")

	result, err := module.Dispatcher.Dispatch(context.Background(), dispatcher.Command{
		Verb:    dispatcher.VerbStandings,
		ActorID: "U-RED1",
		Channel: dispatcher.ChannelChallenge,
	})
	if err != nil {
		t.Fatalf("standings failed: %v", err)
	}
	if result.Standings[0].Team != "Blue" || result.Standings[1].Team != "Red" {
		t.Fatalf("expected alphabetical tie-break, got %+v", result.Standings)
	}
}

func TestClaimReviewSingleWinnerUnderContention(t *testing.T) {
	module := newTestModule()
	submitAs(t, module, "U-RED1", "only one pending")

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		winners  int
		claimErr []error
	)
	for _, reviewer := range []string{"U-ADMIN", "U-ADMIN2"} {
		wg.Add(1)
		go func(reviewer string) {
			defer wg.Done()
			result, err := module.Dispatcher.Dispatch(context.Background(), dispatcher.Command{
				Verb:    dispatcher.VerbClaimReview,
				ActorID: reviewer,
				IsAdmin: true,
				Channel: dispatcher.ChannelReview,
			})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				claimErr = append(claimErr, err)
				return
			}
			if result.Kind == dispatcher.ResultSubmission {
				winners++
			}
		}(reviewer)
	}
	wg.Wait()

	if winners != 1 {
		t.Fatalf("expected exactly one winning claim, got %d", winners)
	}
	if len(claimErr) != 1 || !errors.Is(claimErr[0], domainerrors.ErrAlreadyClaimed) {
		t.Fatalf("expected one ErrAlreadyClaimed, got %v", claimErr)
	}
}

func TestClaimReviewEmptyQueueIsSoft(t *testing.T) {
	module := newTestModule()
	result, err := module.Dispatcher.Dispatch(context.Background(), dispatcher.Command{
		Verb:    dispatcher.VerbClaimReview,
		ActorID: "U-ADMIN",
		IsAdmin: true,
		Channel: dispatcher.ChannelReview,
	})
	if err != nil {
		t.Fatalf("claim on empty queue failed: %v", err)
	}
	if result.Kind != dispatcher.ResultEmpty {
		t.Fatalf("expected empty result, got %s", result.Kind)
	}
}

func TestClaimReviewOrdersOldestFirst(t *testing.T) {
	module := newTestModule()
	first := submitAs(t, module, "U-RED1", "first in")
	time.Sleep(2 * time.Millisecond)
	submitAs(t, module, "U-BLUE1", "second in")

	result, err := module.Dispatcher.Dispatch(context.Background(), dispatcher.Command{
		Verb:    dispatcher.VerbClaimReview,
		ActorID: "U-ADMIN",
		IsAdmin: true,
		Channel: dispatcher.ChannelReview,
	})
	if err != nil {
		t.Fatalf("claim failed: %v", err)
	}
	if result.Submission.SubmissionID != first.SubmissionID {
		t.Fatalf("expected oldest submission claimed first")
	}
}

type fixedClock struct {
	at time.Time
}

func (c fixedClock) Now() time.Time { return c.at }

var _ ports.Clock = fixedClock{}

func TestExpiredClaimBecomesClaimableAgain(t *testing.T) {
	module := newTestModule()
	submission := submitAs(t, module, "U-RED1", "stuck in review")

	now := time.Now().UTC()
	if !module.Claims.TryClaim(submission.SubmissionID, "U-GONE", now) {
		t.Fatalf("initial claim should succeed")
	}
	if !module.Claims.TryClaim(submission.SubmissionID, "U-GONE", now) {
		t.Fatalf("same reviewer renews freely")
	}
	if module.Claims.TryClaim(submission.SubmissionID, "U-ADMIN", now) {
		t.Fatalf("competing claim should fail while the lock is live")
	}

	expirer := workers.ClaimExpirer{
		Claims: module.Claims,
		Clock:  fixedClock{at: now.Add(10 * time.Minute)},
	}
	if err := expirer.RunOnce(context.Background()); err != nil {
		t.Fatalf("expirer failed: %v", err)
	}

	result, err := module.Dispatcher.Dispatch(context.Background(), dispatcher.Command{
		Verb:    dispatcher.VerbClaimReview,
		ActorID: "U-ADMIN",
		IsAdmin: true,
		Channel: dispatcher.ChannelReview,
	})
	if err != nil {
		t.Fatalf("claim after expiry failed: %v", err)
	}
	if result.Submission == nil || result.Submission.SubmissionID != submission.SubmissionID {
		t.Fatalf("expected the released submission to be claimable")
	}
}

func TestQueueEnsureNeverPostsTwice(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	first, err := module.Dispatcher.Dispatch(ctx, dispatcher.Command{
		Verb:    dispatcher.VerbQueue,
		ActorID: "U-ADMIN",
		IsAdmin: true,
		Channel: dispatcher.ChannelReview,
	})
	if err != nil {
		t.Fatalf("queue ensure failed: %v", err)
	}
	if !first.QueueCreated {
		t.Fatalf("first ensure should post the queue message")
	}

	second, err := module.Dispatcher.Dispatch(ctx, dispatcher.Command{
		Verb:    dispatcher.VerbQueue,
		ActorID: "U-ADMIN",
		IsAdmin: true,
		Channel: dispatcher.ChannelReview,
	})
	if err != nil {
		t.Fatalf("repeat queue ensure failed: %v", err)
	}
	if second.QueueCreated {
		t.Fatalf("repeat ensure must reuse the existing message")
	}
	if second.QueuePointer.MessageTS != first.QueuePointer.MessageTS {
		t.Fatalf("pointer changed across ensures: %s vs %s", first.QueuePointer.MessageTS, second.QueuePointer.MessageTS)
	}
	if posted := module.Messenger.PostedCounts(); len(posted) != 1 {
		t.Fatalf("expected one posted queue message, got %d", len(posted))
	}
}

func TestQueueMessageRefreshedOnSubmitAndDecision(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	if _, err := module.Dispatcher.Dispatch(ctx, dispatcher.Command{
		Verb:    dispatcher.VerbQueue,
		ActorID: "U-ADMIN",
		IsAdmin: true,
		Channel: dispatcher.ChannelReview,
	}); err != nil {
		t.Fatalf("queue ensure failed: %v", err)
	}

	submission := submitAs(t, module, "U-RED1", "counts toward the queue")
	updates := module.Messenger.UpdatedCounts()
	if len(updates) == 0 || updates[len(updates)-1] != 1 {
		t.Fatalf("expected in-place update showing 1 pending, got %v", updates)
	}

	approveAs(t, module, "U-ADMIN", submission.SubmissionID, "A")
	updates = module.Messenger.UpdatedCounts()
	if len(updates) == 0 || updates[len(updates)-1] != 0 {
		t.Fatalf("expected in-place update showing 0 pending, got %v", updates)
	}
	if posted := module.Messenger.PostedCounts(); len(posted) != 1 {
		t.Fatalf("updates must never post a second message, got %d posts", len(posted))
	}
}

func TestResetSemesterClearsEverythingButRosterAndCatalog(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	submission := submitAs(t, module, "U-RED1", "scavenger")
	approveAs(t, module, "U-ADMIN", submission.SubmissionID, "A")
	pendingSub := submitAs(t, module, "U-BLUE1", "pending at reset")
	module.Claims.TryClaim(pendingSub.SubmissionID, "U-ADMIN", time.Now().UTC())
	if _, err := module.Dispatcher.Dispatch(ctx, dispatcher.Command{
		Verb:    dispatcher.VerbQueue,
		ActorID: "U-ADMIN",
		IsAdmin: true,
		Channel: dispatcher.ChannelReview,
	}); err != nil {
		t.Fatalf("queue ensure failed: %v", err)
	}

	if _, err := module.Dispatcher.Dispatch(ctx, dispatcher.Command{
		Verb:    dispatcher.VerbResetSemester,
		ActorID: "U-ADMIN",
		IsAdmin: true,
		Channel: dispatcher.ChannelReview,
	}); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	submissions, _ := module.Store.ListSubmissions(ctx, ports.SubmissionFilter{})
	if len(submissions) != 0 {
		t.Fatalf("expected no submissions after reset, got %d", len(submissions))
	}
	entries, _ := module.Store.ListLedger(ctx)
	if len(entries) != 0 {
		t.Fatalf("expected empty ledger after reset, got %d", len(entries))
	}
	if _, found, _ := module.Store.GetQueuePointer(ctx); found {
		t.Fatalf("expected queue pointer cleared after reset")
	}
	if _, held := module.Claims.Holder(pendingSub.SubmissionID, time.Now().UTC()); held {
		t.Fatalf("expected claims released after reset")
	}

	challenges, _ := module.Store.ListChallenges(ctx)
	if len(challenges) != 3 {
		t.Fatalf("catalog must survive reset, got %d challenges", len(challenges))
	}
	members, _ := module.Store.ListMembers(ctx)
	if len(members) != 5 {
		t.Fatalf("roster must survive reset, got %d members", len(members))
	}

	// Completed challenges are eligible again after the wipe.
	result, err := module.Dispatcher.Dispatch(ctx, dispatcher.Command{
		Verb:    dispatcher.VerbChallengesLeft,
		ActorID: "U-RED1",
		Channel: dispatcher.ChannelChallenge,
	})
	if err != nil {
		t.Fatalf("challenges left after reset failed: %v", err)
	}
	if len(result.ChallengesLeft) != 2 {
		t.Fatalf("expected A and B available again, got %+v", result.ChallengesLeft)
	}
}

func TestRandomChallengeNeverReturnsCompleted(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	submission := submitAs(t, module, "U-RED1", "scavenger")
	approveAs(t, module, "U-ADMIN", submission.SubmissionID, "A")

	for i := 0; i < 25; i++ {
		result, err := module.Dispatcher.Dispatch(ctx, dispatcher.Command{
			Verb:        dispatcher.VerbRandomChallenge,
			ActorID:     "U-RED1",
			Channel:     dispatcher.ChannelChallenge,
			RandomScope: dispatcher.RandomScopeTeam,
		})
		if err != nil {
			t.Fatalf("randomize failed: %v", err)
		}
		if result.Challenge.ChallengeKey == "A" {
			t.Fatalf("randomizer returned a completed challenge")
		}
	}
}

func TestRandomChallengeExhaustionIsSoft(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	for _, key := range []string{"A", "B", "C"} {
		submission := submitAs(t, module, "U-RED1", "completing "+key)
		approveAs(t, module, "U-ADMIN", submission.SubmissionID, key)
	}

	result, err := module.Dispatcher.Dispatch(ctx, dispatcher.Command{
		Verb:        dispatcher.VerbRandomChallenge,
		ActorID:     "U-RED1",
		Channel:     dispatcher.ChannelChallenge,
		RandomScope: dispatcher.RandomScopeTeam,
	})
	if err != nil {
		t.Fatalf("randomize on exhausted catalog failed: %v", err)
	}
	if result.Kind != dispatcher.ResultEmpty {
		t.Fatalf("expected soft empty result, got %s", result.Kind)
	}
}

func TestSurpriseChallengeKeysAreSequential(t *testing.T) {
	module := newTestModule()
	ctx := context.Background()

	first, err := module.Dispatcher.Dispatch(ctx, dispatcher.Command{
		Verb:           dispatcher.VerbSurprise,
		ActorID:        "U-ADMIN",
		IsAdmin:        true,
		Channel:        dispatcher.ChannelReview,
		SurprisePoints: 4,
		ChallengeName:  "Flash mob",
	})
	if err != nil {
		t.Fatalf("surprise failed: %v", err)
	}
	if first.Challenge.ChallengeKey != "SUP-001" {
		t.Fatalf("expected SUP-001, got %s", first.Challenge.ChallengeKey)
	}

	second, err := module.Dispatcher.Dispatch(ctx, dispatcher.Command{
		Verb:           dispatcher.VerbSurprise,
		ActorID:        "U-ADMIN",
		IsAdmin:        true,
		Channel:        dispatcher.ChannelReview,
		SurprisePoints: 2,
		ChallengeName:  "Karaoke",
	})
	if err != nil {
		t.Fatalf("second surprise failed: %v", err)
	}
	if second.Challenge.ChallengeKey != "SUP-002" {
		t.Fatalf("expected SUP-002, got %s", second.Challenge.ChallengeKey)
	}

	// A surprise challenge is immediately approvable.
	submission := submitAs(t, module, "U-RED1", "flash mob evidence")
	approved := approveAs(t, module, "U-ADMIN", submission.SubmissionID, "SUP-001")
	if approved.Points != 4 {
		t.Fatalf("expected surprise points 4, got %d", approved.Points)
	}
}

func TestUnauthorizedWinsOverWrongChannel(t *testing.T) {
	module := newTestModule()

	// Non-admin in the wrong channel: the identity failure reports first.
	_, err := module.Dispatcher.Dispatch(context.Background(), dispatcher.Command{
		Verb:    dispatcher.VerbResetSemester,
		ActorID: "U-RED1",
		Channel: dispatcher.ChannelChallenge,
	})
	if !errors.Is(err, domainerrors.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	// Admin in the wrong channel fails on the channel rule.
	_, err = module.Dispatcher.Dispatch(context.Background(), dispatcher.Command{
		Verb:    dispatcher.VerbResetSemester,
		ActorID: "U-ADMIN",
		IsAdmin: true,
		Channel: dispatcher.ChannelChallenge,
	})
	if !errors.Is(err, domainerrors.ErrWrongChannel) {
		t.Fatalf("expected ErrWrongChannel, got %v", err)
	}
}

func TestSubmitOutsideChallengeChannel(t *testing.T) {
	module := newTestModule()
	_, err := module.Dispatcher.Dispatch(context.Background(), dispatcher.Command{
		Verb:          dispatcher.VerbSubmit,
		ActorID:       "U-RED1",
		Channel:       dispatcher.ChannelOther,
		AttachmentRef: "https://files.slack.com/photo.jpg",
	})
	if !errors.Is(err, domainerrors.ErrWrongChannel) {
		t.Fatalf("expected ErrWrongChannel, got %v", err)
	}
}

func TestPointsOverrideBeatsCatalog(t *testing.T) {
	module := newTestModule()
	submission := submitAs(t, module, "U-RED1", "partial credit")

	override := 1
	result, err := module.Dispatcher.Dispatch(context.Background(), dispatcher.Command{
		Verb:           dispatcher.VerbApprove,
		ActorID:        "U-ADMIN",
		IsAdmin:        true,
		Channel:        dispatcher.ChannelReview,
		SubmissionID:   submission.SubmissionID,
		ChallengeKey:   "B",
		PointsOverride: &override,
	})
	if err != nil {
		t.Fatalf("approve with override failed: %v", err)
	}
	if result.Submission.Points != 1 {
		t.Fatalf("expected override points 1, got %d", result.Submission.Points)
	}
	entries, _ := module.Store.ListLedger(context.Background())
	if len(entries) != 1 || entries[0].PointsDelta != 1 {
		t.Fatalf("ledger must carry the override delta, got %+v", entries)
	}
}

func TestApproveUnknownChallengeKey(t *testing.T) {
	module := newTestModule()
	submission := submitAs(t, module, "U-RED1", "mystery task")

	_, err := module.Dispatcher.Dispatch(context.Background(), dispatcher.Command{
		Verb:         dispatcher.VerbApprove,
		ActorID:      "U-ADMIN",
		IsAdmin:      true,
		Channel:      dispatcher.ChannelReview,
		SubmissionID: submission.SubmissionID,
		ChallengeKey: "ZZZ",
	})
	if !errors.Is(err, domainerrors.ErrUnknownChallenge) {
		t.Fatalf("expected ErrUnknownChallenge, got %v", err)
	}

	// The failed approval must not consume the pending state.
	current, err := module.Store.GetSubmission(context.Background(), submission.SubmissionID)
	if err != nil {
		t.Fatalf("get submission failed: %v", err)
	}
	if current.Status != entities.SubmissionStatusPending {
		t.Fatalf("expected submission still pending, got %s", current.Status)
	}
}
