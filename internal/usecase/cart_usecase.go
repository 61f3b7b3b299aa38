package usecase

import (
	"context"
	"fmt"
	"net/http"

	"app/internal/cart"
	"app/internal/pricing"
	repo "app/internal/repository"
)

// CartUsecase は /cart の業務ロジックです。
// 状態そのものはcart.Storeが持つ。ここはカタログとの橋渡しだけ。
type CartUsecase struct {
	store     *cart.Store
	wineRepo  repo.WineRepository
	comboRepo repo.ComboRepository
}

func NewCartUsecase(store *cart.Store, wineRepo repo.WineRepository, comboRepo repo.ComboRepository) *CartUsecase {
	return &CartUsecase{
		store:     store,
		wineRepo:  wineRepo,
		comboRepo: comboRepo,
	}
}

func WineItemKey(wineID int64) string   { return fmt.Sprintf("wine-%d", wineID) }
func ComboItemKey(comboID int64) string { return fmt.Sprintf("combo-%d", comboID) }

func (u *CartUsecase) GetCart(ctx context.Context, sessionID string) (cart.Cart, error) {
	if sessionID == "" {
		return cart.Cart{}, NewHTTPError(http.StatusBadRequest, "missing session")
	}
	return u.store.Get(ctx, sessionID), nil
}

// ワインをカートに追加。単価はこの瞬間の税込価格で固定される。
// 在庫の強制はここではしない（サーバー側の本当の制約は決済確定時の減算）。
func (u *CartUsecase) AddWine(ctx context.Context, sessionID string, wineID int64, quantity int64) (cart.Cart, error) {
	if sessionID == "" {
		return cart.Cart{}, NewHTTPError(http.StatusBadRequest, "missing session")
	}
	if wineID <= 0 {
		return cart.Cart{}, NewHTTPError(http.StatusBadRequest, "invalid wine_id")
	}
	if quantity < 1 {
		quantity = 1
	}

	w, err := u.wineRepo.FindByID(ctx, wineID)
	if err == repo.ErrNotFound {
		return cart.Cart{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}
	if err != nil {
		return cart.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	item := cart.Item{
		Key:       WineItemKey(w.ID),
		WineID:    w.ID,
		Kind:      cart.KindWine,
		Name:      w.Name,
		Winery:    w.Winery,
		ImageURL:  w.ImageURL,
		UnitPrice: pricing.FinalPrice(w.Price, w.IVA),
	}
	return u.store.AddItem(ctx, sessionID, item, quantity), nil
}

// コンボは1明細の合成商品として入れる。税はゼロ、価格はコンボ価格。
func (u *CartUsecase) AddCombo(ctx context.Context, sessionID string, comboID int64, quantity int64) (cart.Cart, error) {
	if sessionID == "" {
		return cart.Cart{}, NewHTTPError(http.StatusBadRequest, "missing session")
	}
	if comboID <= 0 {
		return cart.Cart{}, NewHTTPError(http.StatusBadRequest, "invalid combo_id")
	}
	if quantity < 1 {
		quantity = 1
	}

	c, err := u.comboRepo.FindByID(ctx, comboID)
	if err == repo.ErrNotFound {
		return cart.Cart{}, NewHTTPError(http.StatusBadRequest, "invalid")
	}
	if err != nil {
		return cart.Cart{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	item := cart.Item{
		Key:       ComboItemKey(c.ID),
		WineID:    c.ID,
		Kind:      cart.KindCombo,
		Name:      c.Name,
		ImageURL:  c.ImageURL,
		UnitPrice: pricing.FinalPrice(c.Price, 0),
	}
	return u.store.AddItem(ctx, sessionID, item, quantity), nil
}

func (u *CartUsecase) UpdateQuantity(ctx context.Context, sessionID string, itemKey string, quantity int64) (cart.Cart, error) {
	if sessionID == "" {
		return cart.Cart{}, NewHTTPError(http.StatusBadRequest, "missing session")
	}
	if itemKey == "" {
		return cart.Cart{}, NewHTTPError(http.StatusBadRequest, "invalid item key")
	}
	return u.store.UpdateQuantity(ctx, sessionID, itemKey, quantity), nil
}

func (u *CartUsecase) RemoveItem(ctx context.Context, sessionID string, itemKey string) (cart.Cart, error) {
	if sessionID == "" {
		return cart.Cart{}, NewHTTPError(http.StatusBadRequest, "missing session")
	}
	if itemKey == "" {
		return cart.Cart{}, NewHTTPError(http.StatusBadRequest, "invalid item key")
	}
	return u.store.RemoveItem(ctx, sessionID, itemKey), nil
}

func (u *CartUsecase) ClearCart(ctx context.Context, sessionID string) (cart.Cart, error) {
	if sessionID == "" {
		return cart.Cart{}, NewHTTPError(http.StatusBadRequest, "missing session")
	}
	return u.store.Clear(ctx, sessionID), nil
}

func (u *CartUsecase) ToggleCart(ctx context.Context, sessionID string) (cart.Cart, error) {
	if sessionID == "" {
		return cart.Cart{}, NewHTTPError(http.StatusBadRequest, "missing session")
	}
	return u.store.Toggle(ctx, sessionID), nil
}

func (u *CartUsecase) SetShipping(ctx context.Context, sessionID string, sh cart.Shipping) (cart.Cart, error) {
	if sessionID == "" {
		return cart.Cart{}, NewHTTPError(http.StatusBadRequest, "missing session")
	}
	return u.store.SetShipping(ctx, sessionID, sh), nil
}
