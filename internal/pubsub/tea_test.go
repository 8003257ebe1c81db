package pubsub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListenCmd_ReceivesEvent(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch := broker.Subscribe(ctx)
	broker.Publish(UpdatedEvent, "order_shipped")

	msg := ListenCmd(ctx, ch)()

	event, ok := msg.(Event[string])
	require.True(t, ok, "msg should be Event[string]")
	require.Equal(t, "order_shipped", event.Payload)
	require.Equal(t, UpdatedEvent, event.Type)
}

func TestListenCmd_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ch := make(chan Event[string])
	require.Nil(t, ListenCmd(ctx, ch)())
}

func TestListenCmd_ChannelClosed(t *testing.T) {
	ch := make(chan Event[string])
	close(ch)

	require.Nil(t, ListenCmd(context.Background(), ch)())
}

func TestContinuousListener_Listen(t *testing.T) {
	broker := NewBroker[templateChange]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewContinuousListener(ctx, broker)

	broker.Publish(CreatedEvent, templateChange{Name: "welcome", Version: 1})
	broker.Publish(UpdatedEvent, templateChange{Name: "welcome", Version: 2})

	for _, want := range []EventType{CreatedEvent, UpdatedEvent} {
		event, ok := listener.Listen()().(Event[templateChange])
		require.True(t, ok)
		require.Equal(t, want, event.Type)
		require.Equal(t, "welcome", event.Payload.Name)
	}
}

func TestFilteredListener_SkipsOtherTypes(t *testing.T) {
	broker := NewBroker[templateChange]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	listener := NewFilteredListener(ctx, broker, DeletedEvent)

	broker.Publish(UpdatedEvent, templateChange{Name: "a"})
	broker.Publish(DeletedEvent, templateChange{Name: "b"})

	event, ok := listener.Listen()().(Event[templateChange])
	require.True(t, ok)
	require.Equal(t, "b", event.Payload.Name)
}
