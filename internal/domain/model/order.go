package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

type PaymentMethod string

const (
	PaymentMethodMercadoPago PaymentMethod = "mercadopago"
	PaymentMethodCustom      PaymentMethod = "custom"
)

// 注文。FinalAmount == TotalAmount + ShippingCost を常に満たす。
// MP系カラムはゲートウェイ決済のときだけ埋まる。
type Order struct {
	ID            int64         `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber   string        `gorm:"type:varchar(40);not null;uniqueIndex" json:"order_number"`
	Status        OrderStatus   `gorm:"type:varchar(20);not null;index" json:"status"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(20);not null;index" json:"payment_method"`
	TotalAmount   float64       `gorm:"not null" json:"total_amount"`
	ShippingCost  float64       `gorm:"not null" json:"shipping_cost"`
	FinalAmount   float64       `gorm:"not null" json:"final_amount"`

	// 配送先
	Address    string `gorm:"type:varchar(255);not null" json:"address"`
	Phone      string `gorm:"type:varchar(30);not null" json:"phone"`
	PostalCode string `gorm:"type:varchar(20);not null" json:"postal_code"`

	// ゲートウェイのメタデータ
	MPPreferenceID string `gorm:"type:varchar(140)" json:"mp_preference_id,omitempty"`
	MPPaymentID    string `gorm:"type:varchar(60);index" json:"mp_payment_id,omitempty"`
	MPStatus       string `gorm:"type:varchar(60)" json:"mp_status,omitempty"`

	Items     []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time   `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time   `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
