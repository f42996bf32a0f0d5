package testutil

import (
	"context"
	"sync"

	"github.com/giveawayhub/backend/pkg/pubsub"
)

type PublishedMessage struct {
	Topic string
	Pack  *pubsub.Pack
}

// MockPublisher records every published message.
type MockPublisher struct {
	mutex    sync.Mutex
	Messages []PublishedMessage

	PublishFunc func(context.Context, string, *pubsub.Pack) error
}

func (m *MockPublisher) Publish(ctx context.Context, topic string, pack *pubsub.Pack) error {
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, topic, pack)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.Messages = append(m.Messages, PublishedMessage{Topic: topic, Pack: pack})
	return nil
}

func (m *MockPublisher) Stop(ctx context.Context) error {
	return nil
}
