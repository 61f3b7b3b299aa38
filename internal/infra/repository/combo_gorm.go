package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ComboGormRepository struct {
	db *gorm.DB
}

// DI
func NewComboGormRepository(db *gorm.DB) *ComboGormRepository {
	return &ComboGormRepository{db: db}
}

func (r *ComboGormRepository) List(ctx context.Context, page int, limit int) ([]model.Combo, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Combo{}).Count(&total).Error; err != nil {
		return []model.Combo{}, 0, err
	}

	var combos []model.Combo
	offset := (page - 1) * limit
	err := r.db.WithContext(ctx).
		Preload("Wines").
		Order("created_at desc").Order("id desc").
		Offset(offset).Limit(limit).
		Find(&combos).Error
	if err != nil {
		return []model.Combo{}, 0, err
	}

	return combos, total, nil
}

func (r *ComboGormRepository) FindByID(ctx context.Context, id int64) (model.Combo, error) {
	var c model.Combo
	err := r.db.WithContext(ctx).Preload("Wines").First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Combo{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Combo{}, err
	}
	return c, nil
}

// 参照ワインのスナップショットも同じトランザクションで保存する。
func (r *ComboGormRepository) Create(ctx context.Context, c model.Combo) (model.Combo, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return model.Combo{}, err
	}
	return c, nil
}

func (r *ComboGormRepository) Update(ctx context.Context, c model.Combo) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Combo{}).Where("id = ?", c.ID).Updates(map[string]interface{}{
			"name":        c.Name,
			"description": c.Description,
			"price":       c.Price,
			"image_url":   c.ImageURL,
		})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}

		//参照ワインは洗い替え（値コピーのやり直し）
		if err := tx.Where("combo_id = ?", c.ID).Delete(&model.ComboWineRef{}).Error; err != nil {
			return err
		}
		for i := range c.Wines {
			c.Wines[i].ID = 0
			c.Wines[i].ComboID = c.ID
		}
		if len(c.Wines) > 0 {
			if err := tx.Create(&c.Wines).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ComboGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Combo{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
