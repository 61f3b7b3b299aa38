package repository

import (
	"context"

	"app/internal/domain/model"
)

type ComboRepository interface {
	List(ctx context.Context, page int, limit int) ([]model.Combo, int64, error)
	FindByID(ctx context.Context, comboID int64) (model.Combo, error)

	// 参照ワインは値コピーで一緒に保存する
	Create(ctx context.Context, c model.Combo) (model.Combo, error)
	Update(ctx context.Context, c model.Combo) error
	SoftDelete(ctx context.Context, comboID int64) error
}
