package memory

import (
	"context"
	"fmt"
	"sync"

	"codecomp/contexts/competition/review-engine/domain/entities"
)

// Messenger is an in-process queue-message sink. Posted messages get
// synthetic incrementing timestamps so pointer bookkeeping behaves like
// the real channel.
type Messenger struct {
	mu        sync.Mutex
	channelID string
	nextTS    int
	posted    []int
	updated   []int
}

func NewMessenger(channelID string) *Messenger {
	if channelID == "" {
		channelID = "C-REVIEW"
	}
	return &Messenger{channelID: channelID}
}

func (m *Messenger) PostQueueMessage(_ context.Context, pendingCount int) (entities.QueuePointer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextTS++
	m.posted = append(m.posted, pendingCount)
	return entities.QueuePointer{
		MessageTS: fmt.Sprintf("%d.000000", m.nextTS),
		ChannelID: m.channelID,
	}, nil
}

func (m *Messenger) UpdateQueueMessage(_ context.Context, _ entities.QueuePointer, pendingCount int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.updated = append(m.updated, pendingCount)
	return nil
}

// PostedCounts returns the pending counts carried by each posted
// message, oldest first.
func (m *Messenger) PostedCounts() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.posted...)
}

// UpdatedCounts returns the pending counts carried by each in-place
// update, oldest first.
func (m *Messenger) UpdatedCounts() []int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int(nil), m.updated...)
}
