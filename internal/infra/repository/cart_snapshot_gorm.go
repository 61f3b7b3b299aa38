package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartSnapshotGormRepository struct {
	db *gorm.DB
}

func NewCartSnapshotGormRepository(db *gorm.DB) *CartSnapshotGormRepository {
	return &CartSnapshotGormRepository{db: db}
}

// セッションIDでupsert。リロードのたびに上書きされる。
func (r *CartSnapshotGormRepository) Save(ctx context.Context, sessionID string, itemsJSON string, totalItems int64, totalAmount float64) error {
	snap := model.CartSnapshot{
		SessionID:   sessionID,
		ItemsJSON:   itemsJSON,
		TotalItems:  totalItems,
		TotalAmount: totalAmount,
	}

	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"items_json", "total_items", "total_amount", "updated_at"}),
		}).
		Create(&snap).Error
}

func (r *CartSnapshotGormRepository) Load(ctx context.Context, sessionID string) (string, int64, float64, bool, error) {
	var snap model.CartSnapshot
	err := r.db.WithContext(ctx).Where("session_id = ?", sessionID).First(&snap).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", 0, 0, false, nil
	}
	if err != nil {
		return "", 0, 0, false, err
	}
	return snap.ItemsJSON, snap.TotalItems, snap.TotalAmount, true, nil
}

func (r *CartSnapshotGormRepository) Delete(ctx context.Context, sessionID string) error {
	return r.db.WithContext(ctx).Where("session_id = ?", sessionID).Delete(&model.CartSnapshot{}).Error
}
