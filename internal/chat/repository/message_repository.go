package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"gochat/internal/common"
	"gochat/internal/dbmysql"
)

type MessageRepository interface {
	CreateMessage(ctx context.Context, draft *dbmysql.MessageDraft) (*dbmysql.Message, error)
	GetMessage(ctx context.Context, id uint64) (*dbmysql.Message, error)
	MarkDelivered(ctx context.Context, id uint64) (bool, error)
	MarkRead(ctx context.Context, id uint64) error
	ListUndeliveredDirect(ctx context.Context, userID uint64) ([]*dbmysql.Message, error)
	ListUndeliveredGroup(ctx context.Context, userID uint64) ([]*dbmysql.Message, error)
	ListDirectHistory(ctx context.Context, userA, userB uint64) ([]*dbmysql.Message, error)
	ListChatMessages(ctx context.Context, chatID uint64) ([]*dbmysql.Message, error)
}

type messageRepo struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepo{db: db}
}

// CreateMessage persists a draft, assigning id, server timestamp and the
// initial sent status.
func (r *messageRepo) CreateMessage(ctx context.Context, draft *dbmysql.MessageDraft) (*dbmysql.Message, error) {
	if !draft.To.IsValid() {
		return nil, common.ErrBadAddress
	}

	msg := &dbmysql.Message{
		SenderID:    draft.SenderID,
		Content:     draft.Content,
		ContentType: draft.ContentType,
		FileURL:     draft.FileURL,
		Timestamp:   time.Now().UTC(),
		Status:      common.StatusSent,
	}
	if draft.To.HasReceiver() {
		id := draft.To.ReceiverID()
		msg.ReceiverID = &id
	}
	if cid := draft.To.ChatID(); cid != 0 {
		msg.ChatID = &cid
	}

	if err := r.db.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

func (r *messageRepo) GetMessage(ctx context.Context, id uint64) (*dbmysql.Message, error) {
	var msg dbmysql.Message
	err := r.db.WithContext(ctx).First(&msg, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// MarkDelivered claims the sent -> delivered transition. The conditional
// update is what serializes catch-up replay against a concurrent live push:
// whichever path claims first is the only one that sends.
func (r *messageRepo) MarkDelivered(ctx context.Context, id uint64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&dbmysql.Message{}).
		Where("id = ? AND status = ?", id, common.StatusSent).
		Update("status", common.StatusDelivered)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// MarkRead advances a message to read. A missing id is a no-op.
func (r *messageRepo) MarkRead(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).
		Model(&dbmysql.Message{}).
		Where("id = ? AND status <> ?", id, common.StatusRead).
		Update("status", common.StatusRead).Error
}

func (r *messageRepo) ListUndeliveredDirect(ctx context.Context, userID uint64) ([]*dbmysql.Message, error) {
	var messages []*dbmysql.Message
	err := r.db.WithContext(ctx).
		Where("receiver_id = ? AND chat_id IS NULL AND status = ?", userID, common.StatusSent).
		Order("timestamp asc").
		Find(&messages).Error
	return messages, err
}

// ListUndeliveredGroup returns undelivered fan-out copies. Fan-out always
// sets receiver_id on each copy, so chat membership is already baked in.
func (r *messageRepo) ListUndeliveredGroup(ctx context.Context, userID uint64) ([]*dbmysql.Message, error) {
	var messages []*dbmysql.Message
	err := r.db.WithContext(ctx).
		Where("receiver_id = ? AND chat_id IS NOT NULL AND status = ?", userID, common.StatusSent).
		Order("timestamp asc").
		Find(&messages).Error
	return messages, err
}

func (r *messageRepo) ListDirectHistory(ctx context.Context, userA, userB uint64) ([]*dbmysql.Message, error) {
	var messages []*dbmysql.Message
	err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Order("timestamp asc").
		Find(&messages).Error
	return messages, err
}

func (r *messageRepo) ListChatMessages(ctx context.Context, chatID uint64) ([]*dbmysql.Message, error) {
	var messages []*dbmysql.Message
	err := r.db.WithContext(ctx).
		Where("chat_id = ?", chatID).
		Order("timestamp asc").
		Find(&messages).Error
	return messages, err
}
