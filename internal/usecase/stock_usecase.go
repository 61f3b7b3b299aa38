package usecase

import (
	"context"
	"fmt"
	"net/http"

	repo "app/internal/repository"
)

// 在庫不足。available/requestedを呼び出し側に報告する。
type ErrInsufficientStock struct {
	WineID    int64
	Available int64
	Requested int64
}

func (e *ErrInsufficientStock) Error() string {
	return fmt.Sprintf("insufficient stock for wine %d: available %d, requested %d", e.WineID, e.Available, e.Requested)
}

// StockUsecase は在庫の予約（確定減算）を担う。
// システムで唯一、本当の正しさが要るところ。最後の1本への同時購入を
// 両方成功させないのは条件付きUPDATEとDBのトランザクションに任せる。
type StockUsecase struct {
	tx repo.TransactionManager
}

func NewStockUsecase(tx repo.TransactionManager) *StockUsecase {
	return &StockUsecase{tx: tx}
}

// ReduceStock は在庫をqtyだけ減らし、新しい在庫数を返す。
// 足りなければ何も書かずに*ErrInsufficientStockを返す。部分減算はしない。
func (u *StockUsecase) ReduceStock(ctx context.Context, wineID int64, qty int64) (int64, error) {
	if wineID <= 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "invalid wine id")
	}
	if qty < 1 {
		return 0, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	var newStock int64

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		ok, err := r.Inventory().DecreaseStockIfEnough(ctx, wineID, qty)
		if err != nil {
			return err
		}
		if !ok {
			//負けた側は現在値を読み直して理由を報告する
			available, rerr := r.Inventory().GetStock(ctx, wineID)
			if rerr == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "wine not found")
			}
			if rerr != nil {
				return rerr
			}
			return &ErrInsufficientStock{WineID: wineID, Available: available, Requested: qty}
		}

		newStock, err = r.Inventory().GetStock(ctx, wineID)
		return err
	})
	if err != nil {
		return 0, err
	}

	return newStock, nil
}

// RestoreStock は在庫を戻す（承認済み決済の注文をキャンセルしたとき）。
func (u *StockUsecase) RestoreStock(ctx context.Context, wineID int64, qty int64) error {
	if wineID <= 0 || qty < 1 {
		return NewHTTPError(http.StatusBadRequest, "invalid restore")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		return r.Inventory().IncreaseStock(ctx, wineID, qty)
	})
}
