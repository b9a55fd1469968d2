package repository

import (
	"context"

	"gorm.io/gorm"

	"gochat/internal/dbmysql"
)

type ChatRepository interface {
	CreateChat(ctx context.Context, name *string, isGroup bool, participantIDs []uint64) (*dbmysql.Chat, error)
	GetParticipants(ctx context.Context, chatID uint64) ([]uint64, error)
	IsParticipant(ctx context.Context, chatID, userID uint64) (bool, error)
}

type chatRepo struct {
	db *gorm.DB
}

func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepo{db: db}
}

func (r *chatRepo) CreateChat(ctx context.Context, name *string, isGroup bool, participantIDs []uint64) (*dbmysql.Chat, error) {
	chat := &dbmysql.Chat{
		Name:    name,
		IsGroup: isGroup,
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(chat).Error; err != nil {
			return err
		}

		seen := make(map[uint64]bool, len(participantIDs))
		for _, userID := range participantIDs {
			if seen[userID] {
				continue
			}
			seen[userID] = true

			participant := &dbmysql.ChatParticipant{
				ChatID: chat.ID,
				UserID: userID,
			}
			if err := tx.Create(participant).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return chat, nil
}

func (r *chatRepo) GetParticipants(ctx context.Context, chatID uint64) ([]uint64, error) {
	var ids []uint64
	err := r.db.WithContext(ctx).
		Model(&dbmysql.ChatParticipant{}).
		Where("chat_id = ?", chatID).
		Pluck("user_id", &ids).Error
	return ids, err
}

func (r *chatRepo) IsParticipant(ctx context.Context, chatID, userID uint64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbmysql.ChatParticipant{}).
		Where("chat_id = ? AND user_id = ?", chatID, userID).
		Count(&count).Error
	return count > 0, err
}
