package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"app/internal/cart"
	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/rs/zerolog/log"
)

type AdminOrderUsecase struct {
	tx        repo.TransactionManager
	auditRepo repo.AuditLogRepository
}

func NewAdminOrderUsecase(tx repo.TransactionManager, auditRepo repo.AuditLogRepository) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, auditRepo: auditRepo}
}

// 許可する遷移。CANCELLEDは終端、キャンセルは未キャンセルならどこからでも可。
var orderTransitions = map[model.OrderStatus][]model.OrderStatus{
	model.OrderStatusPending:    {model.OrderStatusProcessing, model.OrderStatusCompleted, model.OrderStatusCancelled},
	model.OrderStatusProcessing: {model.OrderStatusCompleted, model.OrderStatusCancelled},
	model.OrderStatusCompleted:  {model.OrderStatusCancelled},
	model.OrderStatusCancelled:  {},
}

func canTransition(from model.OrderStatus, to model.OrderStatus) bool {
	for _, allowed := range orderTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

type AdminUpdateOrderStatusInput struct {
	Status string
}

type OrderListOutput struct {
	Items []model.Order `json:"items"`
	Total int64         `json:"total"`
	Page  int           `json:"page"`
	Limit int           `json:"limit"`
}

// 注文一覧
func (u *AdminOrderUsecase) List(ctx context.Context, f repo.AdminOrderListFilter) (OrderListOutput, error) {
	if f.Page < 1 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid page")
	}
	if f.Limit < 1 || f.Limit > 100 {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}

	var out OrderListOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListAdmin(ctx, f)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = OrderListOutput{Items: orders, Total: total, Page: f.Page, Limit: f.Limit}
		return nil
	})
	if err != nil {
		return OrderListOutput{}, err
	}
	return out, nil
}

func (u *AdminOrderUsecase) Get(ctx context.Context, orderID int64) (model.Order, error) {
	if orderID <= 0 {
		return model.Order{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out model.Order
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = o
		return nil
	})
	if err != nil {
		return model.Order{}, err
	}
	return out, nil
}

// ステータス更新。遷移表にない更新は拒否する。
// 承認済み決済の注文をキャンセルしたときだけ在庫を戻す。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, actorAdminUserID int64, orderID int64, in AdminUpdateOrderStatusInput) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	newStatus := model.OrderStatus(strings.ToUpper(strings.TrimSpace(in.Status)))
	switch newStatus {
	case model.OrderStatusPending, model.OrderStatusProcessing, model.OrderStatusCompleted, model.OrderStatusCancelled:
		// OK
	default:
		return NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// すでに同じなら何もしない（200）
		if o.Status == newStatus {
			return nil
		}
		if !canTransition(o.Status, newStatus) {
			return NewHTTPError(http.StatusBadRequest, "illegal status transition")
		}

		// 在庫を減らしたのは承認済み決済のときだけなので、戻すのもそのときだけ。
		if newStatus == model.OrderStatusCancelled && o.MPStatus == "approved" {
			for _, it := range o.Items {
				if it.Kind != cart.KindWine {
					continue
				}
				if err := r.Inventory().IncreaseStock(ctx, it.WineID, it.Quantity); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}
			log.Info().Int64("order_id", orderID).Msg("admin: stock restored on cancellation")
		}

		beforeStatus := string(o.Status)
		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//監査ログ（UPDATE_ORDER_STATUS）
		before, _ := json.Marshal(map[string]string{"status": beforeStatus})
		after, _ := json.Marshal(map[string]string{"status": string(newStatus)})
		if err := u.auditRepo.Create(ctx, model.AuditLog{
			ActorUserID:  actorAdminUserID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   string(before),
			AfterJSON:    string(after),
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})
}

// 物理削除。消した内容は監査ログにだけ残る。
func (u *AdminOrderUsecase) Delete(ctx context.Context, actorAdminUserID int64, orderID int64) error {
	if actorAdminUserID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Orders().HardDelete(ctx, orderID); err != nil {
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusNotFound, "not found")
			}
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		before, _ := json.Marshal(map[string]string{
			"order_number": o.OrderNumber,
			"status":       string(o.Status),
		})
		if err := u.auditRepo.Create(ctx, model.AuditLog{
			ActorUserID:  actorAdminUserID,
			Action:       model.AuditActionDeleteOrder,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   string(before),
			AfterJSON:    "{}",
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})
}

// 監査ログ一覧（管理画面用）
func (u *AdminOrderUsecase) ListAuditLogs(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	logs, err := u.auditRepo.List(ctx, filter)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return logs, nil
}
