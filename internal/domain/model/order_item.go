package model

import "time"

// カート投入時点のデータを切り離して保存する明細スナップショット。
// UnitPriceSnapshot は税込単価。カタログが変わっても動かない。
type OrderItem struct {
	ID                int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID           int64     `gorm:"not null;index" json:"order_id"`
	ItemKey           string    `gorm:"type:varchar(40);not null" json:"item_key"`
	WineID            int64     `gorm:"not null;index" json:"wine_id"`
	Kind              string    `gorm:"type:varchar(10);not null" json:"kind"`
	NameSnapshot      string    `gorm:"type:varchar(255);not null" json:"name_snapshot"`
	WinerySnapshot    string    `gorm:"type:varchar(255)" json:"winery_snapshot"`
	UnitPriceSnapshot float64   `gorm:"not null" json:"unit_price_snapshot"`
	Quantity          int64     `gorm:"not null" json:"quantity"`
	CreatedAt         time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
