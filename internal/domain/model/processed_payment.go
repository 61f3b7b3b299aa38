package model

import "time"

// Webhookの重複配信を弾くための台帳。
// payment_idのユニーク制約が二重の在庫減算を止める。
type ProcessedPayment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PaymentID string    `gorm:"type:varchar(60);not null;uniqueIndex" json:"payment_id"`
	Status    string    `gorm:"type:varchar(60);not null" json:"status"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
