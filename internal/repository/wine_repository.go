package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// カタログ一覧の絞り込み条件。
type WineListQuery struct {
	Page     int
	Limit    int
	Q        string
	Category string
	Region   string
	MinPrice *float64
	MaxPrice *float64
	Featured *bool
	Sort     string
}

type WineRepository interface {
	// 公開一覧（検索/絞り込み/ソート/ページング）
	List(ctx context.Context, q WineListQuery) ([]model.Wine, int64, error)

	FindByID(ctx context.Context, wineID int64) (model.Wine, error)
	Create(ctx context.Context, w model.Wine) (model.Wine, error)
	Update(ctx context.Context, w model.Wine) error
	SoftDelete(ctx context.Context, wineID int64) error
}
