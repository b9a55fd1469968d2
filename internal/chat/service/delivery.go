package service

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"gochat/internal/chat/repository"
	"gochat/internal/common"
	"gochat/internal/dbmysql"
)

// DeliveryEngine decides, per message and recipient, between an immediate
// push over the live channel and a deferred redelivery sequence. The
// persisted store stays the source of truth for status; the engine never
// trusts in-memory state over a fresh read.
type DeliveryEngine struct {
	registry   *Registry
	repo       repository.MessageRepository
	maxRetries int
	retryDelay time.Duration

	wg   sync.WaitGroup
	stop chan struct{}
}

func NewDeliveryEngine(registry *Registry, repo repository.MessageRepository, maxRetries int, retryDelay time.Duration) *DeliveryEngine {
	return &DeliveryEngine{
		registry:   registry,
		repo:       repo,
		maxRetries: maxRetries,
		retryDelay: retryDelay,
		stop:       make(chan struct{}),
	}
}

// Deliver attempts a live push and falls back to scheduling redelivery. It
// never blocks on the retry sequence and never reports transport failures to
// the caller.
func (e *DeliveryEngine) Deliver(ctx context.Context, msg *dbmysql.Message) {
	if msg.ReceiverID == nil {
		log.Printf("message %d has no receiver, skipping delivery", msg.ID)
		return
	}

	if e.push(ctx, msg) {
		return
	}
	e.scheduleRedelivery(msg.ID, *msg.ReceiverID)
}

// push returns true when nothing further is needed: the frame was written,
// or another path already claimed delivery. The sent -> delivered claim
// happens before the write so a concurrent catch-up replay cannot send the
// same id.
func (e *DeliveryEngine) push(ctx context.Context, msg *dbmysql.Message) bool {
	receiverID := *msg.ReceiverID

	ch, online := e.registry.Lookup(receiverID)
	if !online {
		return false
	}

	if msg.Status == common.StatusSent {
		claimed, err := e.repo.MarkDelivered(ctx, msg.ID)
		if err != nil {
			log.Printf("claiming delivery of message %d: %v", msg.ID, err)
			return false
		}
		if !claimed {
			// Already delivered through another path (catch-up replay).
			return true
		}
	}

	if err := ch.Send(NewWireMessage(msg, true)); err != nil {
		log.Printf("push to user %d failed, dropping stale binding: %v", receiverID, err)
		e.registry.Remove(receiverID)
		return false
	}
	return true
}

// scheduleRedelivery runs a detached retry sequence keyed by message and
// recipient, decoupled from the originating connection's lifetime. Each
// attempt re-reads the message and re-resolves the live channel; the
// sequence ends early once the recipient has read the message.
func (e *DeliveryEngine) scheduleRedelivery(messageID, receiverID uint64) {
	e.wg.Add(1)
	go func() {
		defer e.wg.Done()

		for attempt := 1; attempt <= e.maxRetries; attempt++ {
			select {
			case <-time.After(e.retryDelay):
			case <-e.stop:
				return
			}

			msg, err := e.repo.GetMessage(context.Background(), messageID)
			if errors.Is(err, common.ErrNotFound) {
				return
			}
			if err != nil {
				log.Printf("redelivery of message %d to user %d, attempt %d: %v",
					messageID, receiverID, attempt, err)
				continue
			}

			if msg.Status == common.StatusRead {
				return
			}

			e.push(context.Background(), msg)
		}

		log.Printf("redelivery budget exhausted for message %d to user %d", messageID, receiverID)
	}()
}

// Shutdown stops pending redelivery sequences and waits for them to exit.
func (e *DeliveryEngine) Shutdown() {
	close(e.stop)
	e.wg.Wait()
}
