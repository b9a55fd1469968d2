package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gochat/internal/chat/repository"
	"gochat/internal/common"
	"gochat/internal/dbmysql"
)

// ErrForbidden marks history requests for chats the caller is not part of.
var ErrForbidden = errors.New("not a participant of this chat")

// ChatService defines the interface exposed to the handler layer
type ChatService interface {
	SendMessage(ctx context.Context, draft *dbmysql.MessageDraft) ([]*dbmysql.Message, error)
	Acknowledge(ctx context.Context, messageID uint64) error
	Replay(ctx context.Context, userID uint64, ch Channel) error
	DirectHistory(ctx context.Context, userID, otherID uint64) ([]*dbmysql.Message, error)
	ChatHistory(ctx context.Context, chatID, userID uint64) ([]*dbmysql.Message, error)
	CreateChat(ctx context.Context, creatorID uint64, name *string, participantIDs []uint64) (*dbmysql.Chat, error)
}

type chatService struct {
	messages repository.MessageRepository
	chats    repository.ChatRepository
	engine   *DeliveryEngine
	fanout   *FanoutResolver
}

// Constructor used in DI/wire
func NewChatService(messages repository.MessageRepository, chats repository.ChatRepository, engine *DeliveryEngine, fanout *FanoutResolver) ChatService {
	return &chatService{
		messages: messages,
		chats:    chats,
		engine:   engine,
		fanout:   fanout,
	}
}

// SendMessage validates, persists and delivers a draft. A chat-addressed
// draft is expanded into per-participant copies first; every copy is
// persisted and run through the delivery engine independently.
func (s *chatService) SendMessage(ctx context.Context, draft *dbmysql.MessageDraft) ([]*dbmysql.Message, error) {
	if !draft.To.IsValid() {
		return nil, common.ErrBadAddress
	}
	if !draft.ContentType.IsValid() {
		return nil, fmt.Errorf("unsupported content type %q", draft.ContentType)
	}
	if draft.Content == "" && draft.FileURL == nil {
		return nil, errors.New("message content cannot be empty")
	}

	drafts := []*dbmysql.MessageDraft{draft}
	if draft.To.IsGroup() {
		expanded, err := s.fanout.Expand(ctx, draft.To.ChatID(), draft.SenderID, draft)
		if err != nil {
			return nil, err
		}
		drafts = expanded
	}

	saved := make([]*dbmysql.Message, 0, len(drafts))
	for _, d := range drafts {
		msg, err := s.messages.CreateMessage(ctx, d)
		if err != nil {
			return nil, err
		}
		saved = append(saved, msg)
	}

	for _, msg := range saved {
		s.engine.Deliver(ctx, msg)
	}
	return saved, nil
}

// Acknowledge advances a message to read. A non-existent id is a no-op.
func (s *chatService) Acknowledge(ctx context.Context, messageID uint64) error {
	return s.messages.MarkRead(ctx, messageID)
}

// Replay pushes every currently-undelivered message for userID down ch,
// direct messages first, then fan-out copies, each category in timestamp
// order. Each message is claimed sent -> delivered immediately before the
// send, so a racing live push cannot duplicate it.
func (s *chatService) Replay(ctx context.Context, userID uint64, ch Channel) error {
	direct, err := s.messages.ListUndeliveredDirect(ctx, userID)
	if err != nil {
		return err
	}
	group, err := s.messages.ListUndeliveredGroup(ctx, userID)
	if err != nil {
		return err
	}

	for _, msg := range append(direct, group...) {
		claimed, err := s.messages.MarkDelivered(ctx, msg.ID)
		if err != nil {
			log.Printf("replay claim for message %d: %v", msg.ID, err)
			continue
		}
		if !claimed {
			continue
		}
		if err := ch.Send(NewWireMessage(msg, false)); err != nil {
			// The claim already persisted, so the undelivered queries will
			// never surface this message again. The redelivery sequence
			// keeps pushing a delivered-but-unread message until it is
			// read or the budget runs out.
			if msg.ReceiverID != nil {
				s.engine.scheduleRedelivery(msg.ID, *msg.ReceiverID)
			}
			return err
		}
	}
	return nil
}

func (s *chatService) DirectHistory(ctx context.Context, userID, otherID uint64) ([]*dbmysql.Message, error) {
	return s.messages.ListDirectHistory(ctx, userID, otherID)
}

// ChatHistory returns a chat's messages, refusing callers who are not
// participants.
func (s *chatService) ChatHistory(ctx context.Context, chatID, userID uint64) ([]*dbmysql.Message, error) {
	ok, err := s.chats.IsParticipant(ctx, chatID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return s.messages.ListChatMessages(ctx, chatID)
}

// CreateChat creates a group chat; the creator is always a participant.
func (s *chatService) CreateChat(ctx context.Context, creatorID uint64, name *string, participantIDs []uint64) (*dbmysql.Chat, error) {
	if creatorID == 0 {
		return nil, errors.New("creator is required")
	}
	return s.chats.CreateChat(ctx, name, true, append(participantIDs, creatorID))
}
