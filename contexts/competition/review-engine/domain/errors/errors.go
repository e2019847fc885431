package errors

import "errors"

var (
	ErrMissingAttachment   = errors.New("submission requires a photo or video attachment")
	ErrNotPending          = errors.New("submission is not pending")
	ErrAlreadyReviewed     = errors.New("submission already reviewed")
	ErrUnknownChallenge    = errors.New("challenge key not in catalog")
	ErrAlreadyClaimed      = errors.New("submission already claimed by another reviewer")
	ErrUnauthorized        = errors.New("actor is not authorized")
	ErrWrongChannel        = errors.New("command not allowed in this channel")
	ErrSubmissionNotFound  = errors.New("submission not found")
	ErrMemberNotOnTeam     = errors.New("member is not on a team")
	ErrUnknownTeam         = errors.New("team not found in roster")
	ErrInvalidInput        = errors.New("invalid input")
	ErrStoreUnavailable    = errors.New("row store unavailable")
	ErrPartialResetFailure = errors.New("semester reset aborted mid-batch; retry the whole operation")
)
