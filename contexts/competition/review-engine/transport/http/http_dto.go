package http

type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type CreateSubmissionRequest struct {
	Team          string `json:"team,omitempty"`
	MemberText    string `json:"member_text"`
	MessageURL    string `json:"message_url"`
	AttachmentRef string `json:"attachment_ref"`
	OnBehalfOf    bool   `json:"on_behalf_of,omitempty"`
}

type ApproveSubmissionRequest struct {
	ChallengeKey   string `json:"challenge_key"`
	PointsOverride *int   `json:"points_override,omitempty"`
}

type RejectSubmissionRequest struct {
	Reason string `json:"reason,omitempty"`
}

type SurpriseChallengeRequest struct {
	ChallengeName string `json:"challenge_name"`
	Points        int    `json:"points"`
}

type SubmissionDTO struct {
	SubmissionID string `json:"submission_id"`
	CreatedAt    string `json:"created_at"`
	SlackUserID  string `json:"slack_user_id"`
	Team         string `json:"team"`
	MemberText   string `json:"member_text"`
	MessageURL   string `json:"message_url,omitempty"`
	PhotoURL     string `json:"photo_url"`
	Status       string `json:"status"`
	ChallengeKey string `json:"challenge_key,omitempty"`
	Points       int    `json:"points"`
	ReviewedBy   string `json:"reviewed_by,omitempty"`
}

type ChallengeDTO struct {
	ChallengeKey  string `json:"challenge_key"`
	ChallengeName string `json:"challenge_name"`
	Points        int    `json:"points"`
	MinNum        int    `json:"min_num"`
}

type TeamStandingDTO struct {
	Team        string `json:"team"`
	TotalPoints int    `json:"total_points"`
}

type QueuePointerDTO struct {
	MessageTS string `json:"message_ts"`
	ChannelID string `json:"channel_id"`
}

type CreateSubmissionResponse struct {
	Submission SubmissionDTO `json:"submission"`
}

type GetSubmissionResponse struct {
	Submission SubmissionDTO `json:"submission"`
}

type ListSubmissionsResponse struct {
	Items []SubmissionDTO `json:"items"`
}

type ReviewDecisionResponse struct {
	Submission SubmissionDTO `json:"submission"`
}

type ClaimReviewResponse struct {
	Submission *SubmissionDTO `json:"submission,omitempty"`
	QueueEmpty bool           `json:"queue_empty"`
}

type StandingsResponse struct {
	Standings []TeamStandingDTO `json:"standings"`
}

type ChallengesLeftResponse struct {
	Team  string         `json:"team"`
	Items []ChallengeDTO `json:"items"`
}

type RandomChallengeResponse struct {
	Challenge *ChallengeDTO `json:"challenge,omitempty"`
	Exhausted bool          `json:"exhausted"`
}

type SurpriseChallengeResponse struct {
	Challenge ChallengeDTO `json:"challenge"`
}

type QueueMessageResponse struct {
	Pointer      QueuePointerDTO `json:"pointer"`
	Created      bool            `json:"created"`
	PendingCount int             `json:"pending_count"`
}

type ResetSemesterResponse struct {
	Reset bool `json:"reset"`
}
