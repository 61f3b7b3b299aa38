package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// 在庫の現在値を設定
func (r *InventoryGormRepository) SetStock(ctx context.Context, wineID int64, newStock int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Wine{}).
		Where("id = ?", wineID).
		Update("stock", newStock)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 在庫が足りるときだけ減らす。
// 条件付きUPDATEなので同じワインへの同時購入はDB側で直列化され、
// 負けた方は0行更新でfalseになる。
func (r *InventoryGormRepository) DecreaseStockIfEnough(ctx context.Context, wineID int64, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Wine{}).
		Where("id = ? AND stock >= ?", wineID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}

// 在庫戻し（キャンセル）
func (r *InventoryGormRepository) IncreaseStock(ctx context.Context, wineID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Wine{}).
		Where("id = ?", wineID).
		Update("stock", gorm.Expr("stock + ?", qty))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 現在庫の読み出し
func (r *InventoryGormRepository) GetStock(ctx context.Context, wineID int64) (int64, error) {
	var w model.Wine
	err := r.db.WithContext(ctx).Select("stock").First(&w, wineID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, repo.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	return w.Stock, nil
}

// 調整履歴作成
func (r *InventoryGormRepository) CreateAdjustment(ctx context.Context, adj model.InventoryAdjustment) error {
	if err := r.db.WithContext(ctx).Create(&adj).Error; err != nil {
		return err
	}
	return nil
}
