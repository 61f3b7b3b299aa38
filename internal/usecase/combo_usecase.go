package usecase

import (
	"context"
	"net/http"
	"strings"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ComboUsecase struct {
	comboRepo repo.ComboRepository
	wineRepo  repo.WineRepository
}

// DI
func NewComboUsecase(comboRepo repo.ComboRepository, wineRepo repo.WineRepository) *ComboUsecase {
	return &ComboUsecase{comboRepo: comboRepo, wineRepo: wineRepo}
}

type ComboListOutput struct {
	Items []model.Combo `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

func (u *ComboUsecase) ListCombos(ctx context.Context, page int, limit int) (ComboListOutput, error) {
	if page < 1 {
		return ComboListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if limit < 1 || limit > 100 {
		return ComboListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	items, total, err := u.comboRepo.List(ctx, page, limit)
	if err != nil {
		return ComboListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return ComboListOutput{Items: items, Total: total, Page: page, Limit: limit}, nil
}

func (u *ComboUsecase) GetComboDetail(ctx context.Context, comboID int64) (model.Combo, error) {
	if comboID <= 0 {
		return model.Combo{}, NewHTTPError(http.StatusBadRequest, "invalid combo id")
	}

	c, err := u.comboRepo.FindByID(ctx, comboID)
	if err == repo.ErrNotFound {
		return model.Combo{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Combo{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c, nil
}

type AdminComboInput struct {
	Name        string
	Description string
	Price       float64
	ImageURL    string
	WineIDs     []int64
}

// 作成時に参照ワインを値コピーする（スナップショット、外部キー参照にしない）。
func (u *ComboUsecase) AdminCreateCombo(ctx context.Context, adminUserID int64, in AdminComboInput) (int64, error) {
	if adminUserID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.Name) == "" {
		return 0, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price < 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if len(in.WineIDs) == 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "wine_ids required")
	}

	refs, err := u.snapshotWines(ctx, in.WineIDs)
	if err != nil {
		return 0, err
	}

	c, err := u.comboRepo.Create(ctx, model.Combo{
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		Wines:       refs,
	})
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return c.ID, nil
}

func (u *ComboUsecase) AdminUpdateCombo(ctx context.Context, adminUserID int64, comboID int64, in AdminComboInput) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if comboID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid combo id")
	}
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Price < 0 {
		return NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if len(in.WineIDs) == 0 {
		return NewHTTPError(http.StatusBadRequest, "wine_ids required")
	}

	refs, err := u.snapshotWines(ctx, in.WineIDs)
	if err != nil {
		return err
	}

	err = u.comboRepo.Update(ctx, model.Combo{
		ID:          comboID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Price:       in.Price,
		ImageURL:    in.ImageURL,
		Wines:       refs,
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *ComboUsecase) AdminDeleteCombo(ctx context.Context, adminUserID int64, comboID int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if comboID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid combo id")
	}

	err := u.comboRepo.SoftDelete(ctx, comboID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 指定ワインの現時点の表示データをコピーする。
func (u *ComboUsecase) snapshotWines(ctx context.Context, wineIDs []int64) ([]model.ComboWineRef, error) {
	refs := make([]model.ComboWineRef, 0, len(wineIDs))
	for _, id := range wineIDs {
		w, err := u.wineRepo.FindByID(ctx, id)
		if err == repo.ErrNotFound {
			return nil, NewHTTPError(http.StatusBadRequest, "invalid wine_ids")
		}
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		refs = append(refs, model.ComboWineRef{
			WineID:   w.ID,
			Name:     w.Name,
			ImageURL: w.ImageURL,
		})
	}
	return refs, nil
}
