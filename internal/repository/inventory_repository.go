package repository

import (
	"context"

	"app/internal/domain/model"
)

type InventoryRepository interface {
	// 在庫の現在値を設定
	SetStock(ctx context.Context, wineID int64, newStock int64) error

	// 在庫が足りるときだけ減算。足りなければfalse。
	DecreaseStockIfEnough(ctx context.Context, wineID int64, qty int64) (bool, error)

	// 在庫戻し（キャンセルなど）
	IncreaseStock(ctx context.Context, wineID int64, qty int64) error

	// 現在庫の読み出し（不足時のavailable報告に使う）
	GetStock(ctx context.Context, wineID int64) (int64, error)

	// 調整履歴作成
	CreateAdjustment(ctx context.Context, adjustment model.InventoryAdjustment) error
}
