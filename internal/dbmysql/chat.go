package dbmysql

import "time"

type Chat struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"chat_id"`
	Name      *string   `gorm:"size:255" json:"name"`
	IsGroup   bool      `gorm:"default:false" json:"is_group"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// ChatParticipant rows are immutable once created; there is no leave/remove.
type ChatParticipant struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ChatID uint64 `gorm:"index:idx_chat_user,unique;not null" json:"chat_id"`
	UserID uint64 `gorm:"index:idx_chat_user,unique;index;not null" json:"user_id"`
}
