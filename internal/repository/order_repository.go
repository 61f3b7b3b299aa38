package repository

import (
	"context"
	"time"

	"app/internal/domain/model"
)

type AdminOrderListFilter struct {
	Page   int
	Limit  int
	Status string
	From   *time.Time
	To     *time.Time
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	FindByOrderNumber(ctx context.Context, orderNumber string) (model.Order, bool, error)

	// 注文と明細スナップショットをまとめて保存
	Create(ctx context.Context, order model.Order) (int64, error)

	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error

	// Webhookで決済のid/statusを書き戻す
	UpdatePaymentInfo(ctx context.Context, orderID int64, paymentID string, paymentStatus string) error

	// 管理者用の注文一覧
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)

	// 物理削除（監査ログ以外に痕跡は残らない）
	HardDelete(ctx context.Context, orderID int64) error
}
