package model

import "time"

// セッションごとに永続化するカートの中身。
// items/totalsだけを保存する。開閉フラグと通知は載せない。
type CartSnapshot struct {
	SessionID   string    `gorm:"type:varchar(40);primaryKey" json:"session_id"`
	ItemsJSON   string    `gorm:"type:text;not null" json:"items_json"`
	TotalItems  int64     `gorm:"not null" json:"total_items"`
	TotalAmount float64   `gorm:"not null" json:"total_amount"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
