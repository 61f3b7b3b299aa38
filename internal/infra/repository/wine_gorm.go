package repository

import (
	"context"
	"errors"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type WineGormRepository struct {
	db *gorm.DB
}

// DI
func NewWineGormRepository(db *gorm.DB) *WineGormRepository {
	return &WineGormRepository{db: db}
}

// 検索/カテゴリ/産地/価格帯/featured/ソート/ページング付きの一覧。
// フリーテキストは名前・ワイナリー・説明を対象にする。
func (r *WineGormRepository) List(ctx context.Context, q repo.WineListQuery) ([]model.Wine, int64, error) {
	var wines []model.Wine
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Wine{})

	if s := strings.TrimSpace(q.Q); s != "" {
		like := "%" + s + "%"
		tx = tx.Where("name ILIKE ? OR winery ILIKE ? OR description ILIKE ?", like, like, like)
	}

	if q.Category != "" {
		tx = tx.Where("category = ?", q.Category)
	}
	if q.Region != "" {
		tx = tx.Where("region = ?", q.Region)
	}

	//価格帯
	if q.MinPrice != nil {
		tx = tx.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("price <= ?", *q.MaxPrice)
	}

	if q.Featured != nil {
		tx = tx.Where("is_featured = ?", *q.Featured)
	}

	//total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.Wine{}, 0, err
	}

	//sort
	switch q.Sort {
	case "price_asc":
		tx = tx.Order("price asc").Order("id asc")
	case "price_desc":
		tx = tx.Order("price desc").Order("id desc")
	default:
		tx = tx.Order("created_at desc").Order("id desc")
	}

	offset := (q.Page - 1) * q.Limit
	if err := tx.Offset(offset).Limit(q.Limit).Find(&wines).Error; err != nil {
		return []model.Wine{}, 0, err
	}

	return wines, total, nil
}

func (r *WineGormRepository) FindByID(ctx context.Context, id int64) (model.Wine, error) {
	var w model.Wine
	err := r.db.WithContext(ctx).First(&w, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Wine{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Wine{}, err
	}
	return w, nil
}

func (r *WineGormRepository) Create(ctx context.Context, w model.Wine) (model.Wine, error) {
	if err := r.db.WithContext(ctx).Create(&w).Error; err != nil {
		return model.Wine{}, err
	}
	return w, nil
}

func (r *WineGormRepository) Update(ctx context.Context, w model.Wine) error {
	res := r.db.WithContext(ctx).Model(&model.Wine{}).Where("id = ?", w.ID).Updates(map[string]interface{}{
		"name":        w.Name,
		"winery":      w.Winery,
		"varietal":    w.Varietal,
		"category":    w.Category,
		"description": w.Description,
		"price":       w.Price,
		"cost":        w.Cost,
		"iva":         w.IVA,
		"stock":       w.Stock,
		"region":      w.Region,
		"vintage":     w.Vintage,
		"alcohol":     w.Alcohol,
		"image_url":   w.ImageURL,
		"is_featured": w.IsFeatured,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *WineGormRepository) SoftDelete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Wine{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
