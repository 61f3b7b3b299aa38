package model

import (
	"time"

	"gorm.io/gorm"
)

// 複数ワインを1商品として売るセット。
// 参照ワインは作成時点のスナップショット（ライブ結合しない）。
type Combo struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	ImageURL    string         `gorm:"type:varchar(500)" json:"image_url"`
	Wines       []ComboWineRef `gorm:"foreignKey:ComboID;constraint:OnDelete:CASCADE" json:"wines"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// コンボ作成時に値コピーする参照（id/名前/画像のみ）。
type ComboWineRef struct {
	ID       int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	ComboID  int64  `gorm:"not null;index" json:"combo_id"`
	WineID   int64  `gorm:"not null" json:"wine_id"`
	Name     string `gorm:"type:varchar(255);not null" json:"name"`
	ImageURL string `gorm:"type:varchar(500)" json:"image_url"`
}
