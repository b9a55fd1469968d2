package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"gochat/internal/chat/repository/mocks"
	"gochat/internal/common"
	"gochat/internal/dbmysql"
)

func directMessage(id, sender, receiver uint64, status common.MessageStatus) *dbmysql.Message {
	return &dbmysql.Message{
		ID:          id,
		SenderID:    sender,
		ReceiverID:  &receiver,
		Content:     "hello",
		ContentType: common.ContentTypeText,
		Timestamp:   time.Now().UTC(),
		Status:      status,
	}
}

func TestDeliveryEngine_PushToOnlineRecipient(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockMessageRepository(ctrl)
	registry := NewRegistry()
	ch := &fakeChannel{}
	registry.Register(2, ch)

	engine := NewDeliveryEngine(registry, repo, 3, time.Millisecond)
	defer engine.Shutdown()

	repo.EXPECT().MarkDelivered(gomock.Any(), uint64(10)).Return(true, nil)

	engine.Deliver(context.Background(), directMessage(10, 1, 2, common.StatusSent))

	frames := ch.sentFrames()
	require.Len(t, frames, 1)
	wire := frames[0].(*WireMessage)
	assert.Equal(t, ActionNewMessage, wire.Action)
	assert.Equal(t, uint64(10), wire.MessageID)
	assert.Equal(t, "hello", wire.Content)
	assert.Equal(t, "text", wire.ContentType)
}

func TestDeliveryEngine_ClaimLostMeansAlreadyDelivered(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockMessageRepository(ctrl)
	registry := NewRegistry()
	ch := &fakeChannel{}
	registry.Register(2, ch)

	engine := NewDeliveryEngine(registry, repo, 3, time.Millisecond)
	defer engine.Shutdown()

	// Catch-up replay already claimed this message.
	repo.EXPECT().MarkDelivered(gomock.Any(), uint64(10)).Return(false, nil)

	engine.Deliver(context.Background(), directMessage(10, 1, 2, common.StatusSent))

	assert.Empty(t, ch.sentFrames(), "no duplicate push after losing the claim")
}

func TestDeliveryEngine_OfflineRecipientSchedulesRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockMessageRepository(ctrl)
	registry := NewRegistry()
	engine := NewDeliveryEngine(registry, repo, 2, 5*time.Millisecond)

	fetched := make(chan struct{}, 2)
	repo.EXPECT().
		GetMessage(gomock.Any(), uint64(10)).
		DoAndReturn(func(ctx context.Context, id uint64) (*dbmysql.Message, error) {
			fetched <- struct{}{}
			return directMessage(10, 1, 2, common.StatusSent), nil
		}).
		Times(2)

	engine.Deliver(context.Background(), directMessage(10, 1, 2, common.StatusSent))

	for i := 0; i < 2; i++ {
		select {
		case <-fetched:
		case <-time.After(time.Second):
			t.Fatalf("retry attempt %d never ran", i+1)
		}
	}
	engine.Shutdown()
}

func TestDeliveryEngine_RetryStopsOnceRead(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockMessageRepository(ctrl)
	registry := NewRegistry()
	engine := NewDeliveryEngine(registry, repo, 3, 5*time.Millisecond)

	fetched := make(chan struct{}, 1)
	repo.EXPECT().
		GetMessage(gomock.Any(), uint64(10)).
		DoAndReturn(func(ctx context.Context, id uint64) (*dbmysql.Message, error) {
			fetched <- struct{}{}
			return directMessage(10, 1, 2, common.StatusRead), nil
		}).
		Times(1)

	engine.Deliver(context.Background(), directMessage(10, 1, 2, common.StatusSent))

	select {
	case <-fetched:
	case <-time.After(time.Second):
		t.Fatal("first retry attempt never ran")
	}
	// Shutdown waits for the sequence goroutine, so a second fetch would
	// trip the Times(1) expectation before ctrl.Finish.
	engine.Shutdown()
}

func TestDeliveryEngine_BrokenChannelEvictedAndRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockMessageRepository(ctrl)
	registry := NewRegistry()
	ch := &fakeChannel{sendErr: errBrokenPipe}
	registry.Register(2, ch)

	engine := NewDeliveryEngine(registry, repo, 1, 5*time.Millisecond)

	repo.EXPECT().MarkDelivered(gomock.Any(), uint64(10)).Return(true, nil)

	fetched := make(chan struct{}, 1)
	repo.EXPECT().
		GetMessage(gomock.Any(), uint64(10)).
		DoAndReturn(func(ctx context.Context, id uint64) (*dbmysql.Message, error) {
			fetched <- struct{}{}
			return nil, common.ErrNotFound
		})

	engine.Deliver(context.Background(), directMessage(10, 1, 2, common.StatusSent))

	_, ok := registry.Lookup(2)
	assert.False(t, ok, "stale binding must be removed after a write failure")

	select {
	case <-fetched:
	case <-time.After(time.Second):
		t.Fatal("redelivery was not scheduled after the write failure")
	}
	engine.Shutdown()
	assert.True(t, ch.isClosed())
}

func TestNewWireMessage_ReplayFramesCarryNoAction(t *testing.T) {
	msg := directMessage(5, 1, 2, common.StatusSent)
	fileURL := "/media/abc"
	msg.FileURL = &fileURL

	live := NewWireMessage(msg, true)
	replay := NewWireMessage(msg, false)

	assert.Equal(t, ActionNewMessage, live.Action)
	assert.Empty(t, replay.Action)
	assert.Equal(t, msg.Timestamp.UTC().Format(time.RFC3339), replay.Timestamp)
	assert.Equal(t, &fileURL, replay.FileURL)
}
