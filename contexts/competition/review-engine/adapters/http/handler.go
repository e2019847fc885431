package httpadapter

import (
	"context"
	"log/slog"
	"time"

	"codecomp/contexts/competition/review-engine/application/dispatcher"
	"codecomp/contexts/competition/review-engine/application/queries"
	"codecomp/contexts/competition/review-engine/domain/entities"
	httptransport "codecomp/contexts/competition/review-engine/transport/http"
)

// Handler adapts the REST surface onto the dispatcher so HTTP callers go
// through the same authorization, channel, and serialization rules as
// chat commands.
type Handler struct {
	Dispatcher dispatcher.Dispatcher
	Queries    queries.QueryUseCase
	Logger     *slog.Logger
}

// CreateSubmissionHandler godoc
// @Summary Create a pending submission
// @Description Creates a submission with a mandatory photo or video reference. Admin callers may submit on behalf of a team.
// @Tags review-engine
// @Accept json
// @Produce json
// @Param X-Slack-User-Id header string true "Actor Slack user id"
// @Param request body httptransport.CreateSubmissionRequest true "Submission payload"
// @Success 200 {object} httptransport.CreateSubmissionResponse
// @Failure 400 {object} httptransport.ErrorResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /v1/submissions [post]
func (h Handler) CreateSubmissionHandler(
	ctx context.Context,
	actorID string,
	isAdmin bool,
	req httptransport.CreateSubmissionRequest,
) (httptransport.CreateSubmissionResponse, error) {
	verb := dispatcher.VerbSubmit
	channel := dispatcher.ChannelChallenge
	if req.OnBehalfOf {
		verb = dispatcher.VerbAdminSubmit
	}
	result, err := h.Dispatcher.Dispatch(ctx, dispatcher.Command{
		Verb:          verb,
		ActorID:       actorID,
		IsAdmin:       isAdmin,
		Channel:       channel,
		Team:          req.Team,
		MemberText:    req.MemberText,
		MessageURL:    req.MessageURL,
		AttachmentRef: req.AttachmentRef,
	})
	if err != nil {
		return httptransport.CreateSubmissionResponse{}, err
	}
	return httptransport.CreateSubmissionResponse{
		Submission: mapSubmission(*result.Submission),
	}, nil
}

func (h Handler) GetSubmissionHandler(ctx context.Context, submissionID string) (httptransport.GetSubmissionResponse, error) {
	item, err := h.Queries.GetSubmission(ctx, submissionID)
	if err != nil {
		return httptransport.GetSubmissionResponse{}, err
	}
	return httptransport.GetSubmissionResponse{
		Submission: mapSubmission(item),
	}, nil
}

func (h Handler) ListSubmissionsHandler(
	ctx context.Context,
	status string,
	team string,
	challengeKey string,
) (httptransport.ListSubmissionsResponse, error) {
	items, err := h.Queries.ListSubmissions(ctx, queries.ListSubmissionsQuery{
		Status:       status,
		Team:         team,
		ChallengeKey: challengeKey,
	})
	if err != nil {
		return httptransport.ListSubmissionsResponse{}, err
	}
	result := make([]httptransport.SubmissionDTO, 0, len(items))
	for _, item := range items {
		result = append(result, mapSubmission(item))
	}
	return httptransport.ListSubmissionsResponse{Items: result}, nil
}

// ClaimReviewHandler godoc
// @Summary Claim the next pending submission for review
// @Description Assigns the oldest unclaimed pending submission to the reviewer. queue_empty is true when no pending work exists.
// @Tags review-engine
// @Produce json
// @Param X-Slack-User-Id header string true "Reviewer Slack user id"
// @Success 200 {object} httptransport.ClaimReviewResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /v1/reviews/claim [post]
func (h Handler) ClaimReviewHandler(ctx context.Context, actorID string, isAdmin bool) (httptransport.ClaimReviewResponse, error) {
	result, err := h.Dispatcher.Dispatch(ctx, dispatcher.Command{
		Verb:    dispatcher.VerbClaimReview,
		ActorID: actorID,
		IsAdmin: isAdmin,
		Channel: dispatcher.ChannelReview,
	})
	if err != nil {
		return httptransport.ClaimReviewResponse{}, err
	}
	if result.Kind == dispatcher.ResultEmpty || result.Submission == nil {
		return httptransport.ClaimReviewResponse{QueueEmpty: true}, nil
	}
	dto := mapSubmission(*result.Submission)
	return httptransport.ClaimReviewResponse{Submission: &dto}, nil
}

// ApproveSubmissionHandler godoc
// @Summary Approve a pending submission
// @Description Marks the submission approved and appends exactly one ledger entry. Points come from the catalog unless an override is supplied.
// @Tags review-engine
// @Accept json
// @Produce json
// @Param X-Slack-User-Id header string true "Reviewer Slack user id"
// @Param submission_id path string true "Submission id"
// @Param request body httptransport.ApproveSubmissionRequest true "Decision payload"
// @Success 200 {object} httptransport.ReviewDecisionResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Failure 409 {object} httptransport.ErrorResponse
// @Router /v1/submissions/{submission_id}/approve [post]
func (h Handler) ApproveSubmissionHandler(
	ctx context.Context,
	actorID string,
	isAdmin bool,
	submissionID string,
	req httptransport.ApproveSubmissionRequest,
) (httptransport.ReviewDecisionResponse, error) {
	result, err := h.Dispatcher.Dispatch(ctx, dispatcher.Command{
		Verb:           dispatcher.VerbApprove,
		ActorID:        actorID,
		IsAdmin:        isAdmin,
		Channel:        dispatcher.ChannelReview,
		SubmissionID:   submissionID,
		ChallengeKey:   req.ChallengeKey,
		PointsOverride: req.PointsOverride,
	})
	if err != nil {
		return httptransport.ReviewDecisionResponse{}, err
	}
	return httptransport.ReviewDecisionResponse{
		Submission: mapSubmission(*result.Submission),
	}, nil
}

func (h Handler) RejectSubmissionHandler(
	ctx context.Context,
	actorID string,
	isAdmin bool,
	submissionID string,
	req httptransport.RejectSubmissionRequest,
) (httptransport.ReviewDecisionResponse, error) {
	result, err := h.Dispatcher.Dispatch(ctx, dispatcher.Command{
		Verb:         dispatcher.VerbReject,
		ActorID:      actorID,
		IsAdmin:      isAdmin,
		Channel:      dispatcher.ChannelReview,
		SubmissionID: submissionID,
		Reason:       req.Reason,
	})
	if err != nil {
		return httptransport.ReviewDecisionResponse{}, err
	}
	return httptransport.ReviewDecisionResponse{
		Submission: mapSubmission(*result.Submission),
	}, nil
}

// StandingsHandler godoc
// @Summary Current team standings
// @Description Totals are recomputed from the append-only ledger. Teams with no points appear at zero; the bookkeeping admin team is excluded.
// @Tags review-engine
// @Produce json
// @Success 200 {object} httptransport.StandingsResponse
// @Router /v1/standings [get]
func (h Handler) StandingsHandler(ctx context.Context, actorID string, isAdmin bool) (httptransport.StandingsResponse, error) {
	result, err := h.Dispatcher.Dispatch(ctx, dispatcher.Command{
		Verb:    dispatcher.VerbStandings,
		ActorID: actorID,
		IsAdmin: isAdmin,
		Channel: dispatcher.ChannelChallenge,
	})
	if err != nil {
		return httptransport.StandingsResponse{}, err
	}
	standings := make([]httptransport.TeamStandingDTO, 0, len(result.Standings))
	for _, standing := range result.Standings {
		standings = append(standings, httptransport.TeamStandingDTO{
			Team:        standing.Team,
			TotalPoints: standing.TotalPoints,
		})
	}
	return httptransport.StandingsResponse{Standings: standings}, nil
}

// ChallengesLeftHandler godoc
// @Summary Challenges a team has not completed
// @Tags review-engine
// @Produce json
// @Param team query string false "Team name; defaults to the actor's roster team"
// @Param points query int false "Restrict to challenges worth exactly this many points"
// @Success 200 {object} httptransport.ChallengesLeftResponse
// @Failure 404 {object} httptransport.ErrorResponse
// @Router /v1/challenges/left [get]
func (h Handler) ChallengesLeftHandler(
	ctx context.Context,
	actorID string,
	isAdmin bool,
	team string,
	pointsFilter *int,
) (httptransport.ChallengesLeftResponse, error) {
	result, err := h.Dispatcher.Dispatch(ctx, dispatcher.Command{
		Verb:         dispatcher.VerbChallengesLeft,
		ActorID:      actorID,
		IsAdmin:      isAdmin,
		Channel:      dispatcher.ChannelChallenge,
		Team:         team,
		PointsFilter: pointsFilter,
	})
	if err != nil {
		return httptransport.ChallengesLeftResponse{}, err
	}
	items := make([]httptransport.ChallengeDTO, 0, len(result.ChallengesLeft))
	for _, challenge := range result.ChallengesLeft {
		items = append(items, mapChallenge(challenge))
	}
	return httptransport.ChallengesLeftResponse{
		Team:  result.Team,
		Items: items,
	}, nil
}

// RandomChallengeHandler godoc
// @Summary Pick a random eligible challenge
// @Tags review-engine
// @Produce json
// @Param scope query string false "unclaimed (default) or team"
// @Success 200 {object} httptransport.RandomChallengeResponse
// @Router /v1/challenges/random [get]
func (h Handler) RandomChallengeHandler(
	ctx context.Context,
	actorID string,
	isAdmin bool,
	scope dispatcher.RandomScope,
) (httptransport.RandomChallengeResponse, error) {
	result, err := h.Dispatcher.Dispatch(ctx, dispatcher.Command{
		Verb:        dispatcher.VerbRandomChallenge,
		ActorID:     actorID,
		IsAdmin:     isAdmin,
		Channel:     dispatcher.ChannelChallenge,
		RandomScope: scope,
	})
	if err != nil {
		return httptransport.RandomChallengeResponse{}, err
	}
	if result.Kind == dispatcher.ResultEmpty || result.Challenge == nil {
		return httptransport.RandomChallengeResponse{Exhausted: true}, nil
	}
	dto := mapChallenge(*result.Challenge)
	return httptransport.RandomChallengeResponse{Challenge: &dto}, nil
}

func (h Handler) SurpriseChallengeHandler(
	ctx context.Context,
	actorID string,
	isAdmin bool,
	req httptransport.SurpriseChallengeRequest,
) (httptransport.SurpriseChallengeResponse, error) {
	result, err := h.Dispatcher.Dispatch(ctx, dispatcher.Command{
		Verb:           dispatcher.VerbSurprise,
		ActorID:        actorID,
		IsAdmin:        isAdmin,
		Channel:        dispatcher.ChannelReview,
		ChallengeName:  req.ChallengeName,
		SurprisePoints: req.Points,
	})
	if err != nil {
		return httptransport.SurpriseChallengeResponse{}, err
	}
	return httptransport.SurpriseChallengeResponse{
		Challenge: mapChallenge(*result.Challenge),
	}, nil
}

// QueueMessageHandler godoc
// @Summary Ensure the single live review-queue message exists
// @Tags review-engine
// @Produce json
// @Param X-Slack-User-Id header string true "Admin Slack user id"
// @Success 200 {object} httptransport.QueueMessageResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Router /v1/queue/ensure [post]
func (h Handler) QueueMessageHandler(ctx context.Context, actorID string, isAdmin bool) (httptransport.QueueMessageResponse, error) {
	result, err := h.Dispatcher.Dispatch(ctx, dispatcher.Command{
		Verb:    dispatcher.VerbQueue,
		ActorID: actorID,
		IsAdmin: isAdmin,
		Channel: dispatcher.ChannelReview,
	})
	if err != nil {
		return httptransport.QueueMessageResponse{}, err
	}
	resp := httptransport.QueueMessageResponse{
		Created:      result.QueueCreated,
		PendingCount: result.PendingCount,
	}
	if result.QueuePointer != nil {
		resp.Pointer = httptransport.QueuePointerDTO{
			MessageTS: result.QueuePointer.MessageTS,
			ChannelID: result.QueuePointer.ChannelID,
		}
	}
	return resp, nil
}

// ResetSemesterHandler godoc
// @Summary Reset the semester
// @Description Clears submissions, ledger, and the queue pointer. Roster and catalog survive.
// @Tags review-engine
// @Produce json
// @Param X-Slack-User-Id header string true "Admin Slack user id"
// @Success 200 {object} httptransport.ResetSemesterResponse
// @Failure 403 {object} httptransport.ErrorResponse
// @Failure 503 {object} httptransport.ErrorResponse
// @Router /v1/semester/reset [post]
func (h Handler) ResetSemesterHandler(ctx context.Context, actorID string, isAdmin bool) (httptransport.ResetSemesterResponse, error) {
	_, err := h.Dispatcher.Dispatch(ctx, dispatcher.Command{
		Verb:    dispatcher.VerbResetSemester,
		ActorID: actorID,
		IsAdmin: isAdmin,
		Channel: dispatcher.ChannelReview,
	})
	if err != nil {
		return httptransport.ResetSemesterResponse{}, err
	}
	return httptransport.ResetSemesterResponse{Reset: true}, nil
}

func mapSubmission(item entities.Submission) httptransport.SubmissionDTO {
	return httptransport.SubmissionDTO{
		SubmissionID: item.SubmissionID,
		CreatedAt:    item.CreatedAt.UTC().Format(time.RFC3339),
		SlackUserID:  item.SlackUserID,
		Team:         item.Team,
		MemberText:   item.MemberText,
		MessageURL:   item.MessageURL,
		PhotoURL:     item.PhotoURL,
		Status:       string(item.Status),
		ChallengeKey: item.ChallengeKey,
		Points:       item.Points,
		ReviewedBy:   item.ReviewedBy,
	}
}

func mapChallenge(item entities.Challenge) httptransport.ChallengeDTO {
	return httptransport.ChallengeDTO{
		ChallengeKey:  item.ChallengeKey,
		ChallengeName: item.ChallengeName,
		Points:        item.Points,
		MinNum:        item.MinNum,
	}
}
