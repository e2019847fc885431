package httpserver

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	reviewengine "codecomp/contexts/competition/review-engine"
	"codecomp/contexts/competition/review-engine/application/dispatcher"
	domainerrors "codecomp/contexts/competition/review-engine/domain/errors"
	"codecomp/contexts/competition/review-engine/transport/command"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/slackevents"
)

type SlackOptions struct {
	SigningSecret      string
	ChallengeChannelID string
	ReviewChannelID    string
}

// slackRoutes turns Slack callbacks into dispatcher commands. Message
// text goes through the command parser; button actions carry a
// structured action id so they skip parsing entirely.
type slackRoutes struct {
	engine  reviewengine.Module
	isAdmin func(slackUserID string) bool
	opts    SlackOptions
	logger  *slog.Logger
}

func (s *slackRoutes) handleEvents(w http.ResponseWriter, r *http.Request) {
	body, ok := s.verifiedBody(w, r)
	if !ok {
		return
	}

	event, err := slackevents.ParseEvent(json.RawMessage(body), slackevents.OptionNoVerifyToken())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "event payload could not be parsed")
		return
	}

	switch event.Type {
	case slackevents.URLVerification:
		var challenge slackevents.ChallengeResponse
		if err := json.Unmarshal(body, &challenge); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_payload", "challenge payload could not be parsed")
			return
		}
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(challenge.Challenge))
	case slackevents.CallbackEvent:
		s.handleCallback(w, r, event)
	default:
		w.WriteHeader(http.StatusOK)
	}
}

func (s *slackRoutes) handleCallback(w http.ResponseWriter, r *http.Request, event slackevents.EventsAPIEvent) {
	message, ok := event.InnerEvent.Data.(*slackevents.MessageEvent)
	if !ok {
		w.WriteHeader(http.StatusOK)
		return
	}
	// Bot echoes and edits are not commands; file_share is, since
	// submissions arrive as messages with attachments.
	if message.BotID != "" || (message.SubType != "" && message.SubType != "file_share") {
		w.WriteHeader(http.StatusOK)
		return
	}

	input := command.Input{
		Text:          message.Text,
		ActorID:       message.User,
		IsAdmin:       s.isAdmin(message.User),
		Channel:       s.channelKind(message.Channel),
		MessageURL:    s.messageURL(message.Channel, message.TimeStamp),
		AttachmentRef: firstFileURL(message),
	}

	cmd, matched, err := command.Parse(input)
	if err != nil {
		s.logger.WarnContext(r.Context(), "command rejected",
			"event", "slack_command_rejected",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"user_id", message.User,
			"error", err.Error(),
		)
		w.WriteHeader(http.StatusOK)
		return
	}
	if !matched {
		w.WriteHeader(http.StatusOK)
		return
	}

	if _, err := s.engine.Dispatcher.Dispatch(r.Context(), cmd); err != nil && !expectedCommandError(err) {
		s.logger.ErrorContext(r.Context(), "command dispatch failed",
			"event", "slack_command_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"verb", string(cmd.Verb),
			"user_id", message.User,
			"error", err.Error(),
		)
	}
	// Slack retries on non-2xx; command-level failures are reported in
	// channel, not via HTTP status.
	w.WriteHeader(http.StatusOK)
}

const (
	actionClaimReview = "claim_review"
	actionApprove     = "approve_submission"
	actionReject      = "reject_submission"
)

func (s *slackRoutes) handleActions(w http.ResponseWriter, r *http.Request) {
	body, ok := s.verifiedBody(w, r)
	if !ok {
		return
	}

	// Interactive payloads arrive form encoded under a "payload" key.
	values, err := parseForm(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "action payload could not be parsed")
		return
	}

	var callback slack.InteractionCallback
	if err := json.Unmarshal([]byte(values), &callback); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_payload", "action payload could not be parsed")
		return
	}

	userID := callback.User.ID
	for _, action := range callback.ActionCallback.BlockActions {
		cmd := dispatcher.Command{
			ActorID: userID,
			IsAdmin: s.isAdmin(userID),
			Channel: s.channelKind(callback.Channel.ID),
		}
		switch action.ActionID {
		case actionClaimReview:
			cmd.Verb = dispatcher.VerbClaimReview
		case actionApprove:
			cmd.Verb = dispatcher.VerbApprove
			cmd.SubmissionID, cmd.ChallengeKey = splitActionValue(action.Value)
		case actionReject:
			cmd.Verb = dispatcher.VerbReject
			cmd.SubmissionID, _ = splitActionValue(action.Value)
		default:
			continue
		}

		if _, err := s.engine.Dispatcher.Dispatch(r.Context(), cmd); err != nil && !expectedCommandError(err) {
			s.logger.ErrorContext(r.Context(), "action dispatch failed",
				"event", "slack_action_failed",
				"module", "internal/platform/httpserver",
				"layer", "platform",
				"action_id", action.ActionID,
				"user_id", userID,
				"error", err.Error(),
			)
		}
	}
	w.WriteHeader(http.StatusOK)
}

// verifiedBody reads the request body and, when a signing secret is
// configured, checks the Slack signature before anything is parsed.
func (s *slackRoutes) verifiedBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body could not be read")
		return nil, false
	}

	if s.opts.SigningSecret != "" {
		verifier, err := slack.NewSecretsVerifier(r.Header, s.opts.SigningSecret)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "bad_signature", "signature headers missing")
			return nil, false
		}
		if _, err := verifier.Write(body); err != nil {
			writeError(w, http.StatusInternalServerError, "internal_error", "internal server error")
			return nil, false
		}
		if err := verifier.Ensure(); err != nil {
			writeError(w, http.StatusUnauthorized, "bad_signature", "signature mismatch")
			return nil, false
		}
	}
	return body, true
}

func (s *slackRoutes) channelKind(channelID string) dispatcher.ChannelKind {
	switch channelID {
	case s.opts.ChallengeChannelID:
		return dispatcher.ChannelChallenge
	case s.opts.ReviewChannelID:
		return dispatcher.ChannelReview
	default:
		return dispatcher.ChannelOther
	}
}

func (s *slackRoutes) messageURL(channelID, timestamp string) string {
	if channelID == "" || timestamp == "" {
		return ""
	}
	return "https://slack.com/archives/" + channelID + "/p" + strings.ReplaceAll(timestamp, ".", "")
}

func firstFileURL(message *slackevents.MessageEvent) string {
	for _, file := range message.Files {
		if file.URLPrivate != "" {
			return file.URLPrivate
		}
		if file.Permalink != "" {
			return file.Permalink
		}
	}
	return ""
}

// splitActionValue decodes "submissionID|challengeKey" button values.
func splitActionValue(value string) (string, string) {
	parts := strings.SplitN(value, "|", 2)
	if len(parts) == 1 {
		return strings.TrimSpace(parts[0]), ""
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
}

func parseForm(body []byte) (string, error) {
	raw := string(bytes.TrimSpace(body))
	// Some clients post the JSON directly.
	if strings.HasPrefix(raw, "{") {
		return raw, nil
	}
	values, err := url.ParseQuery(raw)
	if err != nil {
		return "", err
	}
	payload := values.Get("payload")
	if payload == "" {
		return "", errors.New("missing payload field")
	}
	return payload, nil
}

func expectedCommandError(err error) bool {
	return errors.Is(err, domainerrors.ErrUnauthorized) ||
		errors.Is(err, domainerrors.ErrWrongChannel) ||
		errors.Is(err, domainerrors.ErrMissingAttachment) ||
		errors.Is(err, domainerrors.ErrMemberNotOnTeam) ||
		errors.Is(err, domainerrors.ErrUnknownTeam) ||
		errors.Is(err, domainerrors.ErrAlreadyClaimed) ||
		errors.Is(err, domainerrors.ErrNotPending) ||
		errors.Is(err, domainerrors.ErrInvalidInput)
}
