package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type WineUsecase struct {
	wineRepo      repo.WineRepository
	inventoryRepo repo.InventoryRepository
	auditRepo     repo.AuditLogRepository
}

// DI
func NewWineUsecase(
	wineRepo repo.WineRepository,
	inventoryRepo repo.InventoryRepository,
	auditRepo repo.AuditLogRepository,
) *WineUsecase {
	return &WineUsecase{
		wineRepo:      wineRepo,
		inventoryRepo: inventoryRepo,
		auditRepo:     auditRepo,
	}
}

// GET /winesの入力DTO
type ListWinesInput struct {
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

type WineListOutput struct {
	Items []model.Wine `json:"items"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}

func (u *WineUsecase) ListWines(ctx context.Context, in ListWinesInput) (WineListOutput, error) {
	if in.Page < 1 {
		return WineListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if in.Limit < 1 || in.Limit > 100 {
		return WineListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if len(in.Q) > 100 {
		return WineListOutput{}, NewHTTPError(http.StatusBadRequest, "q too long")
	}
	if in.MinPrice != nil && *in.MinPrice < 0 {
		return WineListOutput{}, NewHTTPError(http.StatusBadRequest, "min_price must be >= 0")
	}
	if in.MaxPrice != nil && *in.MaxPrice < 0 {
		return WineListOutput{}, NewHTTPError(http.StatusBadRequest, "max_price must be >= 0")
	}
	if in.MinPrice != nil && in.MaxPrice != nil && *in.MinPrice > *in.MaxPrice {
		return WineListOutput{}, NewHTTPError(http.StatusBadRequest, "min_price must be <= max_price")
	}
	switch in.Sort {
	case "", "new", "price_asc", "price_desc":
	default:
		return WineListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid sort")
	}

	items, total, err := u.wineRepo.List(ctx, repo.WineListQuery{
		Page:     in.Page,
		Limit:    in.Limit,
		Q:        strings.TrimSpace(in.Q),
		Category: strings.TrimSpace(in.Category),
		Region:   strings.TrimSpace(in.Region),
		MinPrice: in.MinPrice,
		MaxPrice: in.MaxPrice,
		Featured: in.Featured,
		Sort:     in.Sort,
	})
	if err != nil {
		return WineListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return WineListOutput{
		Items: items,
		Total: total,
		Page:  in.Page,
		Limit: in.Limit,
	}, nil
}

func (u *WineUsecase) GetWineDetail(ctx context.Context, wineID int64) (model.Wine, error) {
	if wineID <= 0 {
		return model.Wine{}, NewHTTPError(http.StatusBadRequest, "invalid wine id")
	}

	w, err := u.wineRepo.FindByID(ctx, wineID)
	if err == repo.ErrNotFound {
		return model.Wine{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Wine{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return w, nil
}

type AdminWineInput struct {
	Name        string
	Winery      string
	Varietal    string
	Category    string
	Description string
	Price       float64
	Cost        float64
	IVA         float64
	Stock       int64
	Region      string
	Vintage     int
	Alcohol     float64
	ImageURL    string
	IsFeatured  bool
}

func (in AdminWineInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	if strings.TrimSpace(in.Winery) == "" {
		return NewHTTPError(http.StatusBadRequest, "winery required")
	}
	if in.Price < 0 {
		return NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.Cost < 0 {
		return NewHTTPError(http.StatusBadRequest, "cost must be >= 0")
	}
	if in.IVA < 0 {
		return NewHTTPError(http.StatusBadRequest, "iva must be >= 0")
	}
	if in.Stock < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}
	return nil
}

func (u *WineUsecase) AdminCreateWine(ctx context.Context, adminUserID int64, in AdminWineInput) (int64, error) {
	if adminUserID <= 0 {
		return 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := in.validate(); err != nil {
		return 0, err
	}

	w, err := u.wineRepo.Create(ctx, model.Wine{
		Name:        strings.TrimSpace(in.Name),
		Winery:      strings.TrimSpace(in.Winery),
		Varietal:    in.Varietal,
		Category:    in.Category,
		Description: in.Description,
		Price:       in.Price,
		Cost:        in.Cost,
		IVA:         in.IVA,
		Stock:       in.Stock,
		Region:      in.Region,
		Vintage:     in.Vintage,
		Alcohol:     in.Alcohol,
		ImageURL:    in.ImageURL,
		IsFeatured:  in.IsFeatured,
	})
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return w.ID, nil
}

func (u *WineUsecase) AdminUpdateWine(ctx context.Context, adminUserID int64, wineID int64, in AdminWineInput) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if wineID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid wine id")
	}
	if err := in.validate(); err != nil {
		return err
	}

	err := u.wineRepo.Update(ctx, model.Wine{
		ID:          wineID,
		Name:        strings.TrimSpace(in.Name),
		Winery:      strings.TrimSpace(in.Winery),
		Varietal:    in.Varietal,
		Category:    in.Category,
		Description: in.Description,
		Price:       in.Price,
		Cost:        in.Cost,
		IVA:         in.IVA,
		Stock:       in.Stock,
		Region:      in.Region,
		Vintage:     in.Vintage,
		Alcohol:     in.Alcohol,
		ImageURL:    in.ImageURL,
		IsFeatured:  in.IsFeatured,
	})
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

func (u *WineUsecase) AdminDeleteWine(ctx context.Context, adminUserID int64, wineID int64) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if wineID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid wine id")
	}

	err := u.wineRepo.SoftDelete(ctx, wineID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return nil
}

// 在庫の現在値を直接セットする管理操作。調整履歴と監査ログを残す。
func (u *WineUsecase) AdminUpdateStock(ctx context.Context, adminUserID int64, wineID int64, newStock int64, reason string) error {
	if adminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if wineID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid wine id")
	}
	if newStock < 0 {
		return NewHTTPError(http.StatusBadRequest, "stock must be >= 0")
	}
	if strings.TrimSpace(reason) == "" {
		return NewHTTPError(http.StatusBadRequest, "reason required")
	}

	//変更前の在庫（before）
	w, err := u.wineRepo.FindByID(ctx, wineID)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.inventoryRepo.SetStock(ctx, wineID, newStock); err != nil {
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.inventoryRepo.CreateAdjustment(ctx, model.InventoryAdjustment{
		WineID:      wineID,
		AdminUserID: adminUserID,
		Delta:       newStock - w.Stock,
		Reason:      strings.TrimSpace(reason),
		CreatedAt:   time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//監査ログ（UPDATE_STOCK）
	before, _ := json.Marshal(map[string]int64{"stock": w.Stock})
	after, _ := json.Marshal(map[string]int64{"stock": newStock})
	if err := u.auditRepo.Create(ctx, model.AuditLog{
		ActorUserID:  adminUserID,
		Action:       model.AuditActionUpdateStock,
		ResourceType: model.AuditResourceWine,
		ResourceID:   wineID,
		BeforeJSON:   string(before),
		AfterJSON:    string(after),
		CreatedAt:    time.Now(),
	}); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}
