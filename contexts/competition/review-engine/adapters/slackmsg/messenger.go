package slackmsg

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"codecomp/contexts/competition/review-engine/domain/entities"
	domainerrors "codecomp/contexts/competition/review-engine/domain/errors"

	"github.com/slack-go/slack"
)

// SlackAPI is the slice of the Slack web API the messenger needs. The
// real *slack.Client satisfies it.
type SlackAPI interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	UpdateMessageContext(ctx context.Context, channelID, timestamp string, options ...slack.MsgOption) (string, string, string, error)
}

// Messenger owns the single live review-queue message in the review
// channel.
type Messenger struct {
	api       SlackAPI
	channelID string
	logger    *slog.Logger
}

func NewMessenger(api SlackAPI, channelID string, logger *slog.Logger) *Messenger {
	if logger == nil {
		logger = slog.Default()
	}
	return &Messenger{
		api:       api,
		channelID: strings.TrimSpace(channelID),
		logger:    logger,
	}
}

func (m *Messenger) PostQueueMessage(ctx context.Context, pendingCount int) (entities.QueuePointer, error) {
	_, timestamp, err := m.api.PostMessageContext(
		ctx,
		m.channelID,
		slack.MsgOptionText(queueText(pendingCount), false),
	)
	if err != nil {
		m.logger.ErrorContext(ctx, "post queue message failed",
			"event", "queue_message_post_failed",
			"channel_id", m.channelID,
			"error", err,
		)
		return entities.QueuePointer{}, fmt.Errorf("post queue message: %w", err)
	}
	return entities.QueuePointer{
		MessageTS: timestamp,
		ChannelID: m.channelID,
	}, nil
}

func (m *Messenger) UpdateQueueMessage(ctx context.Context, pointer entities.QueuePointer, pendingCount int) error {
	if pointer.Empty() {
		return domainerrors.ErrInvalidInput
	}
	_, _, _, err := m.api.UpdateMessageContext(
		ctx,
		pointer.ChannelID,
		pointer.MessageTS,
		slack.MsgOptionText(queueText(pendingCount), false),
	)
	if err != nil {
		m.logger.ErrorContext(ctx, "update queue message failed",
			"event", "queue_message_update_failed",
			"channel_id", pointer.ChannelID,
			"message_ts", pointer.MessageTS,
			"error", err,
		)
		return fmt.Errorf("update queue message: %w", err)
	}
	return nil
}

func queueText(pendingCount int) string {
	switch pendingCount {
	case 0:
		return "Review queue: no pending submissions."
	case 1:
		return "Review queue: 1 pending submission."
	default:
		return fmt.Sprintf("Review queue: %d pending submissions.", pendingCount)
	}
}
