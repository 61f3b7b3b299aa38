package model

import (
	"time"

	"gorm.io/gorm"
)

// カタログのワイン。stockは0以上。
type Wine struct {
	ID          int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"type:varchar(255);not null" json:"name"`
	Winery      string         `gorm:"type:varchar(255);not null" json:"winery"`
	Varietal    string         `gorm:"type:varchar(100)" json:"varietal"`
	Category    string         `gorm:"type:varchar(100);index" json:"category"`
	Description string         `gorm:"type:text" json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	Cost        float64        `gorm:"not null;default:0" json:"cost"`
	IVA         float64        `gorm:"column:iva;not null;default:0" json:"iva"`
	Stock       int64          `gorm:"not null" json:"stock"`
	Region      string         `gorm:"type:varchar(100);index" json:"region"`
	Vintage     int            `gorm:"" json:"vintage"`
	Alcohol     float64        `gorm:"" json:"alcohol"`
	ImageURL    string         `gorm:"type:varchar(500)" json:"image_url"`
	IsFeatured  bool           `gorm:"not null;default:false;index" json:"is_featured"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
