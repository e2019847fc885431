package commands

import (
	"context"
	"log/slog"

	application "codecomp/contexts/competition/review-engine/application"
	"codecomp/contexts/competition/review-engine/domain/entities"
	"codecomp/contexts/competition/review-engine/ports"
)

type QueueMessageUseCase struct {
	Repository ports.Repository
	Messenger  ports.QueueMessenger
	Logger     *slog.Logger
}

// Ensure returns the live queue pointer, posting a new queue message only
// when none exists. Repeated calls never spawn duplicate messages; the
// stored pointer row is overwritten, never accumulated.
func (uc QueueMessageUseCase) Ensure(ctx context.Context) (entities.QueuePointer, bool, error) {
	logger := application.ResolveLogger(uc.Logger)

	pointer, found, err := uc.Repository.GetQueuePointer(ctx)
	if err != nil {
		return entities.QueuePointer{}, false, err
	}
	if found && !pointer.Empty() {
		return pointer, false, nil
	}

	count, err := uc.pendingCount(ctx)
	if err != nil {
		return entities.QueuePointer{}, false, err
	}
	pointer, err = uc.Messenger.PostQueueMessage(ctx, count)
	if err != nil {
		return entities.QueuePointer{}, false, err
	}
	if err := uc.Repository.SetQueuePointer(ctx, pointer); err != nil {
		return entities.QueuePointer{}, false, err
	}

	logger.Info("queue message created",
		"event", "queue_message_created",
		"module", "competition/review-engine",
		"layer", "application",
		"message_ts", pointer.MessageTS,
		"channel_id", pointer.ChannelID,
		"pending_count", count,
	)
	return pointer, true, nil
}

// Refresh updates the existing queue message in place with the current
// pending count. When no pointer exists it does nothing; only Ensure is
// allowed to post a fresh message, keeping the channel to one queue post.
func (uc QueueMessageUseCase) Refresh(ctx context.Context) error {
	logger := application.ResolveLogger(uc.Logger)

	pointer, found, err := uc.Repository.GetQueuePointer(ctx)
	if err != nil {
		return err
	}
	if !found || pointer.Empty() {
		return nil
	}
	count, err := uc.pendingCount(ctx)
	if err != nil {
		return err
	}
	if err := uc.Messenger.UpdateQueueMessage(ctx, pointer, count); err != nil {
		logger.Warn("queue message update failed",
			"event", "queue_message_update_failed",
			"module", "competition/review-engine",
			"layer", "application",
			"message_ts", pointer.MessageTS,
			"error", err.Error(),
		)
		return err
	}
	return nil
}

func (uc QueueMessageUseCase) pendingCount(ctx context.Context) (int, error) {
	pending, err := uc.Repository.ListSubmissions(ctx, ports.SubmissionFilter{
		Status: entities.SubmissionStatusPending,
	})
	if err != nil {
		return 0, err
	}
	return len(pending), nil
}
