package slackmsg

import (
	"context"
	"errors"
	"testing"

	"codecomp/contexts/competition/review-engine/domain/entities"
	domainerrors "codecomp/contexts/competition/review-engine/domain/errors"

	"github.com/slack-go/slack"
)

type fakeAPI struct {
	postErr   error
	updateErr error
	posts     int
	updates   int
}

func (f *fakeAPI) PostMessageContext(context.Context, string, ...slack.MsgOption) (string, string, error) {
	f.posts++
	if f.postErr != nil {
		return "", "", f.postErr
	}
	return "C-REVIEW", "1700000000.000100", nil
}

func (f *fakeAPI) UpdateMessageContext(context.Context, string, string, ...slack.MsgOption) (string, string, string, error) {
	f.updates++
	if f.updateErr != nil {
		return "", "", "", f.updateErr
	}
	return "C-REVIEW", "1700000000.000100", "", nil
}

func TestPostQueueMessageReturnsPointer(t *testing.T) {
	api := &fakeAPI{}
	messenger := NewMessenger(api, "C-REVIEW", nil)

	pointer, err := messenger.PostQueueMessage(context.Background(), 2)
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	if pointer.MessageTS != "1700000000.000100" || pointer.ChannelID != "C-REVIEW" {
		t.Fatalf("unexpected pointer: %+v", pointer)
	}
	if api.posts != 1 {
		t.Fatalf("expected one post, got %d", api.posts)
	}
}

func TestPostQueueMessageWrapsAPIError(t *testing.T) {
	boom := errors.New("channel_not_found")
	messenger := NewMessenger(&fakeAPI{postErr: boom}, "C-REVIEW", nil)

	_, err := messenger.PostQueueMessage(context.Background(), 0)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped API error, got %v", err)
	}
}

func TestUpdateQueueMessageRejectsEmptyPointer(t *testing.T) {
	api := &fakeAPI{}
	messenger := NewMessenger(api, "C-REVIEW", nil)

	err := messenger.UpdateQueueMessage(context.Background(), entities.QueuePointer{}, 1)
	if !errors.Is(err, domainerrors.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if api.updates != 0 {
		t.Fatalf("empty pointer must not reach the API")
	}
}

func TestUpdateQueueMessageUsesStoredPointer(t *testing.T) {
	api := &fakeAPI{}
	messenger := NewMessenger(api, "C-REVIEW", nil)

	pointer := entities.QueuePointer{MessageTS: "1700000000.000100", ChannelID: "C-REVIEW"}
	if err := messenger.UpdateQueueMessage(context.Background(), pointer, 3); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if api.updates != 1 || api.posts != 0 {
		t.Fatalf("expected one update and no posts, got updates=%d posts=%d", api.updates, api.posts)
	}
}

func TestQueueTextPluralization(t *testing.T) {
	cases := map[int]string{
		0: "Review queue: no pending submissions.",
		1: "Review queue: 1 pending submission.",
		4: "Review queue: 4 pending submissions.",
	}
	for count, want := range cases {
		if got := queueText(count); got != want {
			t.Fatalf("queueText(%d) = %q, want %q", count, got, want)
		}
	}
}
