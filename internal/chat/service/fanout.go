package service

import (
	"context"
	"log"

	"github.com/samber/lo"

	"gochat/internal/chat/repository"
	"gochat/internal/dbmysql"
)

// FanoutResolver expands a chat-addressed draft into one deliverable copy
// per participant. A "group" message is N independent direct-like messages,
// each with its own delivery status.
type FanoutResolver struct {
	chats repository.ChatRepository
}

func NewFanoutResolver(chats repository.ChatRepository) *FanoutResolver {
	return &FanoutResolver{chats: chats}
}

// Expand returns one draft per participant other than the sender. An unknown
// chat yields an empty result, never an error.
func (f *FanoutResolver) Expand(ctx context.Context, chatID, senderID uint64, draft *dbmysql.MessageDraft) ([]*dbmysql.MessageDraft, error) {
	participants, err := f.chats.GetParticipants(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if len(participants) == 0 {
		log.Printf("fan-out for unknown or empty chat %d, nothing to deliver", chatID)
		return nil, nil
	}

	recipients := lo.Filter(participants, func(userID uint64, _ int) bool {
		return userID != senderID
	})

	drafts := make([]*dbmysql.MessageDraft, 0, len(recipients))
	for _, userID := range recipients {
		drafts = append(drafts, &dbmysql.MessageDraft{
			SenderID:    draft.SenderID,
			To:          dbmysql.FanoutAddress(userID, chatID),
			Content:     draft.Content,
			ContentType: draft.ContentType,
			FileURL:     draft.FileURL,
		})
	}
	return drafts, nil
}
